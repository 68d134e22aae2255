// Package session implements the server-side session store. Sessions are
// keyed by an opaque token held by the client in a cookie and live only in
// process memory; users and prompts are the only durable state the service
// keeps.
package session

import (
	"time"
)

const (
	// CookieName is the session cookie issued to clients.
	CookieName = "vault_session"

	// MaxFailedLogins is the number of failed login attempts tolerated
	// before the session is locked out.
	MaxFailedLogins = 5

	// LockoutWindow is how long a lockout lasts after the most recent
	// failed attempt.
	LockoutWindow = 15 * time.Minute

	// DefaultTTL is the idle lifetime of a session.
	DefaultTTL = 24 * time.Hour
)

// Session is the per-client state: at most one authenticated user plus the
// failed-login counter used only during the unauthenticated login flow.
type Session struct {
	Token        string
	UserID       string // empty while anonymous
	FailedLogins int
	LastFailure  time.Time
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Authenticated reports whether the session is bound to a user.
func (s Session) Authenticated() bool { return s.UserID != "" }

// LockedAt reports whether the session is currently locked out of the login
// flow: MaxFailedLogins or more failures with the latest inside the window.
func (s Session) LockedAt(now time.Time) bool {
	return s.FailedLogins >= MaxFailedLogins && now.Sub(s.LastFailure) < LockoutWindow
}
