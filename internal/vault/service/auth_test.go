package service

import (
	"context"
	"testing"
	"time"

	"github.com/quillworks/promptvault/internal/vault/session"
	"github.com/quillworks/promptvault/internal/vault/store"
	"github.com/stretchr/testify/require"
)

const testPassword = "Str0ng!pass"

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Store:    newTestStore(t),
		Sessions: session.NewStore(time.Hour),
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{"username too short", "ab", "ab@example.com", testPassword, ErrInvalidUsername},
		{"username too long", "abcdefghijklmnopqrstu", "long@example.com", testPassword, ErrInvalidUsername},
		{"username bad characters", "bad name!", "bad@example.com", testPassword, ErrInvalidUsername},
		{"email missing domain", "alice", "alice@", testPassword, ErrInvalidEmail},
		{"email empty", "alice", "", testPassword, ErrInvalidEmail},
		{"password too short", "alice", "alice@example.com", "Ab1!", ErrWeakPassword},
		{"password no symbol", "alice", "alice@example.com", "Abcdef12", ErrWeakPassword},
		{"password no upper", "alice", "alice@example.com", "abcdef1!", ErrWeakPassword},
		{"password no digit", "alice", "alice@example.com", "Abcdefg!", ErrWeakPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRegisterAndDuplicates(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.NotEqual(t, testPassword, user.PasswordHash)

	t.Run("duplicate username is case-insensitive", func(t *testing.T) {
		_, err := svc.Register(ctx, "ALICE", "other@example.com", testPassword)
		require.ErrorIs(t, err, ErrDuplicateIdentity)
	})

	t.Run("duplicate email is case-insensitive", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob", "Alice@Example.com", testPassword)
		require.ErrorIs(t, err, ErrDuplicateIdentity)
	})
}

func TestLoginFlow(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "alice@example.com", testPassword)
	require.NoError(t, err)

	t.Run("success by username rotates the token", func(t *testing.T) {
		anon, err := svc.Sessions.Issue()
		require.NoError(t, err)

		user, sess, err := svc.Login(ctx, anon.Token, "alice", testPassword)
		require.NoError(t, err)
		require.Equal(t, registered.ID, user.ID)
		require.Equal(t, registered.ID, sess.UserID)
		require.NotEqual(t, anon.Token, sess.Token)

		// The pre-login token is gone.
		_, err = svc.Sessions.Get(anon.Token)
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("success by email", func(t *testing.T) {
		anon, err := svc.Sessions.Issue()
		require.NoError(t, err)

		user, _, err := svc.Login(ctx, anon.Token, "alice@example.com", testPassword)
		require.NoError(t, err)
		require.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		anon, err := svc.Sessions.Issue()
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, anon.Token, "alice", "Wr0ng!pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = svc.Login(ctx, anon.Token, "nobody", testPassword)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown session token", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "no-such-token", "alice", testPassword)
		require.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestLoginLockout(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", testPassword)
	require.NoError(t, err)

	anon, err := svc.Sessions.Issue()
	require.NoError(t, err)

	for i := 0; i < session.MaxFailedLogins; i++ {
		_, _, err := svc.Login(ctx, anon.Token, "alice", "Wr0ng!pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// Sixth attempt is refused outright, even with the right password.
	_, _, err = svc.Login(ctx, anon.Token, "alice", testPassword)
	require.ErrorIs(t, err, ErrLockedOut)

	// Other sessions are unaffected.
	other, err := svc.Sessions.Issue()
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, other.Token, "alice", testPassword)
	require.NoError(t, err)
}

func TestLogout(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", testPassword)
	require.NoError(t, err)

	anon, err := svc.Sessions.Issue()
	require.NoError(t, err)
	_, sess, err := svc.Login(ctx, anon.Token, "alice", testPassword)
	require.NoError(t, err)

	fresh, err := svc.Logout(sess.Token)
	require.NoError(t, err)
	require.Empty(t, fresh.UserID)
	require.NotEqual(t, sess.Token, fresh.Token)

	_, err = svc.Sessions.Get(sess.Token)
	require.ErrorIs(t, err, session.ErrNotFound)

	// Logging out an unknown token still yields a usable session.
	again, err := svc.Logout("already-gone")
	require.NoError(t, err)
	require.NotEmpty(t, again.Token)
}

func TestChangePassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", testPassword)
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "Wr0ng!pass", "N3w!password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("new password equal to current", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, testPassword, testPassword)
		require.ErrorIs(t, err, ErrSamePassword)
	})

	t.Run("weak new password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, testPassword, "weak")
		require.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("success, old password stops working", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, user.ID, testPassword, "N3w!password"))

		anon, err := svc.Sessions.Issue()
		require.NoError(t, err)
		_, _, err = svc.Login(ctx, anon.Token, "alice", testPassword)
		require.ErrorIs(t, err, ErrInvalidCredentials)

		anon, err = svc.Sessions.Issue()
		require.NoError(t, err)
		_, _, err = svc.Login(ctx, anon.Token, "alice", "N3w!password")
		require.NoError(t, err)
	})
}

func TestProfile(t *testing.T) {
	st := newTestStore(t)
	svc := &AuthService{Store: st, Sessions: session.NewStore(time.Hour)}
	prompts := &PromptService{Store: st}
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", testPassword)
	require.NoError(t, err)

	got, count, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Username, got.Username)
	require.Zero(t, count)

	_, err = prompts.Save(ctx, user.ID, "original", "enhanced", nil)
	require.NoError(t, err)

	_, count, err = svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestDeleteAccount(t *testing.T) {
	st := newTestStore(t)
	svc := &AuthService{Store: st, Sessions: session.NewStore(time.Hour)}
	prompts := &PromptService{Store: st}
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", testPassword)
	require.NoError(t, err)
	bystander, err := svc.Register(ctx, "bob", "bob@example.com", testPassword)
	require.NoError(t, err)

	_, err = prompts.Save(ctx, user.ID, "mine", "mine enhanced", nil)
	require.NoError(t, err)
	_, err = prompts.Save(ctx, bystander.ID, "theirs", "theirs enhanced", nil)
	require.NoError(t, err)

	anon, err := svc.Sessions.Issue()
	require.NoError(t, err)
	_, sess, err := svc.Login(ctx, anon.Token, "alice", testPassword)
	require.NoError(t, err)

	t.Run("wrong password leaves everything intact", func(t *testing.T) {
		err := svc.DeleteAccount(ctx, user.ID, "Wr0ng!pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		_, err = svc.Sessions.Get(sess.Token)
		require.NoError(t, err)
	})

	t.Run("success removes user, prompts, and sessions", func(t *testing.T) {
		require.NoError(t, svc.DeleteAccount(ctx, user.ID, testPassword))

		_, err := st.Users().GetUserByID(ctx, user.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		count, err := st.Prompts().CountPrompts(ctx, user.ID)
		require.NoError(t, err)
		require.Zero(t, count)

		_, err = svc.Sessions.Get(sess.Token)
		require.ErrorIs(t, err, session.ErrNotFound)

		// The other user's data survives.
		count, err = st.Prompts().CountPrompts(ctx, bystander.ID)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})
}
