package http

import (
	"errors"
	"net/http"

	"github.com/quillworks/promptvault/internal/vault/service"
	"github.com/quillworks/promptvault/internal/vault/store"
	"github.com/quillworks/promptvault/pkg/httpx"
	"github.com/quillworks/promptvault/pkg/slogx"
	"github.com/quillworks/promptvault/pkg/vaultsdk"
)

type ProfileHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP returns the caller's profile.
//
//	@Summary		Get profile
//	@Description	Returns the account details and the number of saved prompts.
//	@Tags			Profile
//	@Produce		json
//	@Success		200	{object}	vaultsdk.ProfileResponse
//	@Failure		401	{object}	vaultsdk.ErrorResponse	"Not authenticated"
//	@Failure		404	{object}	vaultsdk.ErrorResponse	"Account no longer exists"
//	@Router			/v1/profile [get].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := SessionFromContext(ctx)

	user, count, err := h.AuthService.Profile(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to load profile", "user_id", sess.UserID, "err", err)
		vaultsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.ProfileResponse{
		User:       toUserResponse(user),
		SavedCount: count,
	})
}

type ChangePasswordHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles password changes.
//
//	@Summary		Change password
//	@Description	Replaces the account password after verifying the current one. The new password must differ from the current one and meet the strength rule.
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	vaultsdk.StatusResponse
//	@Failure		400		{object}	vaultsdk.ErrorResponse	"Weak or unchanged password"
//	@Failure		401		{object}	vaultsdk.ErrorResponse	"Current password wrong or not authenticated"
//	@Router			/v1/profile/password [post].
func (h *ChangePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := SessionFromContext(ctx)

	var req vaultsdk.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.AuthService.ChangePassword(ctx, sess.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, service.ErrSamePassword):
			httpx.WriteError(w, http.StatusBadRequest, "new password must differ from the current password")
		case errors.Is(err, service.ErrWeakPassword):
			httpx.WriteError(w, http.StatusBadRequest, "password must be at least 8 characters with upper, lower, digit and symbol")
		default:
			slogx.FromContext(ctx).Error("password change failed", "user_id", sess.UserID, "err", err)
			vaultsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, vaultsdk.StatusResponse{Status: "ok"})
}

type DeleteAccountHandler struct {
	AuthService   *service.AuthService
	SecureCookies bool
}

// ServeHTTP handles account deletion.
//
//	@Summary		Delete account
//	@Description	Re-verifies the password, then removes the account and every saved prompt it owns in one transaction. All sessions for the account are invalidated.
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.DeleteAccountRequest	true	"Password confirmation"
//	@Success		200		{object}	vaultsdk.StatusResponse
//	@Failure		401		{object}	vaultsdk.ErrorResponse	"Password wrong or not authenticated"
//	@Router			/v1/account/delete [post].
func (h *DeleteAccountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	sess, _ := SessionFromContext(ctx)

	var req vaultsdk.DeleteAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.AuthService.DeleteAccount(ctx, sess.UserID, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Error("account deletion failed", "user_id", sess.UserID, "err", err)
		vaultsdk.ErrServerError.WriteError(w)
		return
	}

	// The caller's session died with the account; leave them an anonymous one.
	fresh, err := h.AuthService.Sessions.Issue()
	if err != nil {
		log.Error("failed to issue session after account deletion", "err", err)
		vaultsdk.ErrServerError.WriteError(w)
		return
	}

	SetSessionCookie(w, fresh, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.StatusResponse{Status: "ok"})
}
