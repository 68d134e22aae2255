package http

import (
	"context"
	"net/http"

	"github.com/quillworks/promptvault/internal/vault/session"
	"github.com/quillworks/promptvault/pkg/httpx"
	"github.com/quillworks/promptvault/pkg/slogx"
	"github.com/quillworks/promptvault/pkg/vaultsdk"
)

type ctxKey int

const ctxKeySession ctxKey = iota

// SessionFromContext returns the session resolved by SessionMiddleware.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(ctxKeySession).(session.Session)
	return sess, ok
}

// SetSessionCookie writes the session cookie for sess. Called by the
// middleware on first contact and by handlers whenever the token rotates
// (login, logout, account deletion).
func SetSessionCookie(w http.ResponseWriter, sess session.Session, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionMiddleware resolves the session cookie into a server-side session
// and injects it into the request context. Clients without a cookie, or with
// an expired one, get a fresh anonymous session; handlers can therefore
// always assume a session exists.
func SessionMiddleware(sessions *session.Store, secure bool) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if cookie, err := r.Cookie(session.CookieName); err == nil {
				if sess, err := sessions.Get(cookie.Value); err == nil {
					ctx = context.WithValue(ctx, ctxKeySession, sess)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			sess, err := sessions.Issue()
			if err != nil {
				slogx.FromContext(ctx).Error("failed to issue session", "err", err)
				vaultsdk.ErrServerError.WriteError(w)
				return
			}

			SetSessionCookie(w, sess, secure)
			ctx = context.WithValue(ctx, ctxKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests whose session is not bound to a user. The
// message is uniform regardless of why authentication is absent.
func RequireAuth() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok || !sess.Authenticated() {
				vaultsdk.ErrNotAuthenticated.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
