package http

import (
	"errors"
	"net/http"

	"github.com/quillworks/promptvault/internal/vault/service"
	"github.com/quillworks/promptvault/internal/vault/session"
	"github.com/quillworks/promptvault/internal/vault/store"
	"github.com/quillworks/promptvault/pkg/httpx"
	"github.com/quillworks/promptvault/pkg/slogx"
	"github.com/quillworks/promptvault/pkg/vaultsdk"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles account registration.
//
//	@Summary		Register a new account
//	@Description	Creates a user account. Username and email must be unique (case-insensitive); the password must be at least 8 characters with upper, lower, digit and symbol.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	vaultsdk.AuthResponse		"Created account"
//	@Failure		400		{object}	vaultsdk.ErrorResponse		"Validation failure"
//	@Failure		409		{object}	vaultsdk.ErrorResponse		"Username or email already in use"
//	@Failure		429		{object}	vaultsdk.ErrorResponse		"Rate limited"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req vaultsdk.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.AuthService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUsername):
			httpx.WriteError(w, http.StatusBadRequest, "username must be 3-20 characters of letters, digits or underscore")
		case errors.Is(err, service.ErrInvalidEmail):
			httpx.WriteError(w, http.StatusBadRequest, "invalid email address")
		case errors.Is(err, service.ErrWeakPassword):
			httpx.WriteError(w, http.StatusBadRequest, "password must be at least 8 characters with upper, lower, digit and symbol")
		case errors.Is(err, service.ErrDuplicateIdentity):
			httpx.WriteError(w, http.StatusConflict, "username or email already in use")
		default:
			log.Error("registration failed", "err", err)
			vaultsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, vaultsdk.AuthResponse{User: toUserResponse(user)})
}

type LoginHandler struct {
	AuthService   *service.AuthService
	SecureCookies bool
}

// ServeHTTP handles login.
//
//	@Summary		Log in
//	@Description	Authenticates by username or email plus password. After 5 failed attempts within 15 minutes the session is locked out and further attempts are rejected before any credential check.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.LoginRequest	true	"Credentials (username accepts the email address too)"
//	@Success		200		{object}	vaultsdk.AuthResponse	"Authenticated account"
//	@Failure		401		{object}	vaultsdk.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	vaultsdk.ErrorResponse	"Locked out or rate limited"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	sess, ok := SessionFromContext(ctx)
	if !ok {
		vaultsdk.ErrServerError.WriteError(w)
		return
	}

	var req vaultsdk.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, bound, err := h.AuthService.Login(ctx, sess.Token, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLockedOut):
			httpx.WriteError(w, http.StatusTooManyRequests, "too many failed login attempts, try again later")
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, session.ErrNotFound):
			httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			log.Error("login failed", "err", err)
			vaultsdk.ErrServerError.WriteError(w)
		}
		return
	}

	// The token rotated on success; hand the new one to the client.
	SetSessionCookie(w, bound, h.SecureCookies)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.AuthResponse{User: toUserResponse(user)})
}

type LogoutHandler struct {
	AuthService   *service.AuthService
	SecureCookies bool
}

// ServeHTTP handles logout.
//
//	@Summary		Log out
//	@Description	Destroys the session unconditionally and issues a fresh anonymous one. Idempotent: succeeds even when not authenticated.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	vaultsdk.StatusResponse
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, ok := SessionFromContext(ctx)
	if !ok {
		vaultsdk.ErrServerError.WriteError(w)
		return
	}

	fresh, err := h.AuthService.Logout(sess.Token)
	if err != nil {
		slogx.FromContext(ctx).Error("logout failed", "err", err)
		vaultsdk.ErrServerError.WriteError(w)
		return
	}

	SetSessionCookie(w, fresh, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.StatusResponse{Status: "ok"})
}

type AuthCheckHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP reports the session's authentication state.
//
//	@Summary		Check authentication
//	@Description	Returns whether the current session is authenticated, and the account when it is. Never fails for anonymous callers.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	vaultsdk.AuthCheckResponse
//	@Router			/v1/auth/check [get].
func (h *AuthCheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, ok := SessionFromContext(ctx)
	if !ok || !sess.Authenticated() {
		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, vaultsdk.AuthCheckResponse{Authenticated: false})
		return
	}

	user, _, err := h.AuthService.Profile(ctx, sess.UserID)
	if err != nil {
		// A bound session whose user no longer exists counts as anonymous.
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSON(w, http.StatusOK, vaultsdk.AuthCheckResponse{Authenticated: false})
			return
		}
		slogx.FromContext(ctx).Error("auth check failed", "err", err)
		vaultsdk.ErrServerError.WriteError(w)
		return
	}

	resp := toUserResponse(user)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.AuthCheckResponse{Authenticated: true, User: &resp})
}
