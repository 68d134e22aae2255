package session

import (
	"errors"
	"sync"
	"time"

	"github.com/quillworks/promptvault/pkg/cryptox"
)

// ErrNotFound reports a missing or expired session token.
var ErrNotFound = errors.New("session: not found")

// Store is an in-memory session store. All methods are safe for concurrent
// use; Session values are returned by copy so callers never share mutable
// state with the store.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration

	now func() time.Time // overridable in tests
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue creates a new anonymous session and returns it.
func (st *Store) Issue() (Session, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return Session{}, err
	}

	now := st.now()
	s := &Session{
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(st.ttl),
	}

	st.mu.Lock()
	st.sessions[token] = s
	st.mu.Unlock()

	return *s, nil
}

// Get returns the session for token, sliding its expiry. Expired sessions
// are dropped and reported as ErrNotFound.
func (st *Store) Get(token string) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, err := st.live(token)
	if err != nil {
		return Session{}, err
	}
	s.ExpiresAt = st.now().Add(st.ttl)
	return *s, nil
}

// RecordFailure increments the failed-login counter and stamps the failure
// time. A counter older than the lockout window restarts from zero first.
func (st *Store) RecordFailure(token string) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, err := st.live(token)
	if err != nil {
		return Session{}, err
	}

	now := st.now()
	if now.Sub(s.LastFailure) >= LockoutWindow {
		s.FailedLogins = 0
	}
	s.FailedLogins++
	s.LastFailure = now
	return *s, nil
}

// Bind attaches userID to the session under a freshly rotated token and
// clears the failure counters. The old token stops working immediately.
func (st *Store) Bind(token, userID string) (Session, error) {
	newToken, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return Session{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	s, err := st.live(token)
	if err != nil {
		return Session{}, err
	}

	delete(st.sessions, s.Token)

	now := st.now()
	bound := &Session{
		Token:     newToken,
		UserID:    userID,
		CreatedAt: s.CreatedAt,
		ExpiresAt: now.Add(st.ttl),
	}
	st.sessions[newToken] = bound
	return *bound, nil
}

// Destroy removes the session unconditionally. Unknown tokens are a no-op,
// which keeps logout idempotent.
func (st *Store) Destroy(token string) {
	st.mu.Lock()
	delete(st.sessions, token)
	st.mu.Unlock()
}

// DestroyAllForUser removes every session bound to userID. Used when an
// account is deleted.
func (st *Store) DestroyAllForUser(userID string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for token, s := range st.sessions {
		if s.UserID == userID {
			delete(st.sessions, token)
		}
	}
}

// PurgeExpired drops expired sessions and returns how many were removed.
// Called from the housekeeping job.
func (st *Store) PurgeExpired() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	removed := 0
	for token, s := range st.sessions {
		if now.After(s.ExpiresAt) {
			delete(st.sessions, token)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// live returns the stored session for token, evicting it when expired.
// Caller must hold st.mu.
func (st *Store) live(token string) (*Session, error) {
	s, ok := st.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	if st.now().After(s.ExpiresAt) {
		delete(st.sessions, token)
		return nil, ErrNotFound
	}
	return s, nil
}
