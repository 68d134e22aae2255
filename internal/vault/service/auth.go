package service

import (
	"context"
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/quillworks/promptvault/internal/vault/domain"
	"github.com/quillworks/promptvault/internal/vault/session"
	"github.com/quillworks/promptvault/internal/vault/store"
	"github.com/quillworks/promptvault/pkg/cryptox"
	"github.com/quillworks/promptvault/pkg/idx"
	"github.com/quillworks/promptvault/pkg/slogx"
)

var (
	ErrInvalidUsername    = errors.New("invalid_username")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrWeakPassword       = errors.New("weak_password")
	ErrDuplicateIdentity  = errors.New("duplicate_identity")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrSamePassword       = errors.New("same_password")
	ErrLockedOut          = errors.New("locked_out")
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// AuthService implements registration, login with lockout, password change
// and account deletion.
type AuthService struct {
	Store    store.Store
	Sessions *session.Store
}

// Register validates and creates a new user. Username and email uniqueness
// is case-insensitive; the password is stored only as a peppered Argon2id
// hash.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if !usernamePattern.MatchString(username) {
		return domain.User{}, ErrInvalidUsername
	}
	if err := validateEmail(email); err != nil {
		return domain.User{}, err
	}
	if err := validatePasswordStrength(password); err != nil {
		return domain.User{}, err
	}

	// Pre-check both identities so the common case fails fast; the unique
	// indexes still catch the race and surface as ErrAlreadyExists below.
	for _, identifier := range []string{username, email} {
		if _, err := s.Store.Users().GetUserByIdentifier(ctx, identifier); err == nil {
			return domain.User{}, ErrDuplicateIdentity
		} else if !errors.Is(err, store.ErrNotFound) {
			return domain.User{}, err
		}
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateIdentity
		}
		return domain.User{}, err
	}

	return user, nil
}

// Login authenticates identifier (username or email) + password against the
// credential store, enforcing the session's lockout state first. On success
// the session token is rotated and bound to the user.
func (s *AuthService) Login(ctx context.Context, sessionToken, identifier, password string) (domain.User, session.Session, error) {
	log := slogx.FromContext(ctx)

	sess, err := s.Sessions.Get(sessionToken)
	if err != nil {
		return domain.User{}, session.Session{}, err
	}

	// Lockout is checked before any credential work happens.
	if sess.LockedAt(time.Now()) {
		log.Warn("login rejected: session locked out")
		return domain.User{}, session.Session{}, ErrLockedOut
	}

	identifier = strings.TrimSpace(identifier)
	user, err := s.Store.Users().GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return s.failLogin(sessionToken)
		}
		return domain.User{}, session.Session{}, err
	}

	if cryptox.VerifyPassword(password, user.PasswordHash) != nil {
		return s.failLogin(sessionToken)
	}

	bound, err := s.Sessions.Bind(sessionToken, user.ID)
	if err != nil {
		return domain.User{}, session.Session{}, err
	}

	return user, bound, nil
}

// failLogin records a failed attempt and returns a uniform credentials error
// so unknown identifiers and wrong passwords are indistinguishable.
func (s *AuthService) failLogin(sessionToken string) (domain.User, session.Session, error) {
	if _, err := s.Sessions.RecordFailure(sessionToken); err != nil {
		return domain.User{}, session.Session{}, err
	}
	return domain.User{}, session.Session{}, ErrInvalidCredentials
}

// Logout destroys the session and issues a fresh anonymous one. Idempotent:
// an unknown token still yields a new session.
func (s *AuthService) Logout(sessionToken string) (session.Session, error) {
	s.Sessions.Destroy(sessionToken)
	return s.Sessions.Issue()
}

// Profile returns the user record plus the number of prompts they own.
func (s *AuthService) Profile(ctx context.Context, userID string) (domain.User, int, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, 0, err
	}

	count, err := s.Store.Prompts().CountPrompts(ctx, userID)
	if err != nil {
		return domain.User{}, 0, err
	}

	return user, count, nil
}

// ChangePassword replaces the user's password hash after verifying the
// current password. The new password is rejected when it verifies against
// the current hash (not by string comparison) or fails the strength rule.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if cryptox.VerifyPassword(currentPassword, user.PasswordHash) != nil {
		return ErrInvalidCredentials
	}
	if cryptox.VerifyPassword(newPassword, user.PasswordHash) == nil {
		return ErrSamePassword
	}
	if err := validatePasswordStrength(newPassword); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.Store.Users().UpdatePasswordHash(ctx, userID, hash)
}

// DeleteAccount re-verifies the password, then removes the user's prompts
// and the user row in one transaction. Every session bound to the user is
// invalidated after the commit.
func (s *AuthService) DeleteAccount(ctx context.Context, userID, password string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if cryptox.VerifyPassword(password, user.PasswordHash) != nil {
		return ErrInvalidCredentials
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Prompts().DeletePromptsByUser(ctx, userID); err != nil {
			return err
		}
		return tx.Users().DeleteUser(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.Sessions.DestroyAllForUser(userID)
	return nil
}

func validateEmail(email string) error {
	if email == "" || len(email) > 254 {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

// validatePasswordStrength enforces: length >= 8 with upper, lower, digit
// and a non-alphanumeric character.
func validatePasswordStrength(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return ErrWeakPassword
	}
	return nil
}
