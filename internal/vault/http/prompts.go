package http

import (
	"errors"
	"net/http"

	"github.com/quillworks/promptvault/internal/vault/service"
	"github.com/quillworks/promptvault/pkg/httpx"
	"github.com/quillworks/promptvault/pkg/slogx"
	"github.com/quillworks/promptvault/pkg/vaultsdk"
)

type PromptsHandler struct {
	PromptService *service.PromptService
}

// HandleSave stores an original/enhanced prompt pair.
//
//	@Summary		Save a prompt
//	@Description	Stores an original/enhanced prompt pair. When no title generator is available or generation fails the prompt is saved with a null title; the save itself never fails on generation.
//	@Tags			Prompts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.SavePromptRequest	true	"Prompt pair and optional notes"
//	@Success		201		{object}	vaultsdk.SavePromptResponse
//	@Failure		400		{object}	vaultsdk.ErrorResponse	"Validation failure"
//	@Failure		401		{object}	vaultsdk.ErrorResponse	"Not authenticated"
//	@Failure		409		{object}	vaultsdk.ErrorResponse	"Saved prompt limit reached"
//	@Router			/v1/prompts [post].
func (h *PromptsHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := SessionFromContext(ctx)

	var req vaultsdk.SavePromptRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	prompt, err := h.PromptService.Save(ctx, sess.UserID, req.OriginalPrompt, req.EnhancedPrompt, req.Notes)
	if err != nil {
		h.writeSaveError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, vaultsdk.SavePromptResponse{ID: prompt.ID, Title: prompt.Title})
}

// HandleSaveCustom stores a standalone prompt.
//
//	@Summary		Save a custom prompt
//	@Description	Stores a standalone prompt. An explicit title skips generation; without one a title is generated best-effort.
//	@Tags			Prompts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.SaveCustomPromptRequest	true	"Prompt content, optional title and notes"
//	@Success		201		{object}	vaultsdk.SavePromptResponse
//	@Failure		400		{object}	vaultsdk.ErrorResponse	"Validation failure"
//	@Failure		401		{object}	vaultsdk.ErrorResponse	"Not authenticated"
//	@Failure		409		{object}	vaultsdk.ErrorResponse	"Saved prompt limit reached"
//	@Router			/v1/prompts/custom [post].
func (h *PromptsHandler) HandleSaveCustom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := SessionFromContext(ctx)

	var req vaultsdk.SaveCustomPromptRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	prompt, err := h.PromptService.SaveCustom(ctx, sess.UserID, req.PromptContent, req.Title, req.Notes)
	if err != nil {
		h.writeSaveError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, vaultsdk.SavePromptResponse{ID: prompt.ID, Title: prompt.Title})
}

func (h *PromptsHandler) writeSaveError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyContent):
		httpx.WriteError(w, http.StatusBadRequest, "prompt content is required")
	case errors.Is(err, service.ErrContentTooLong):
		httpx.WriteError(w, http.StatusBadRequest, "prompt content exceeds 10000 characters")
	case errors.Is(err, service.ErrNotesTooLong):
		httpx.WriteError(w, http.StatusBadRequest, "notes exceed 500 characters")
	case errors.Is(err, service.ErrTitleTooLong):
		httpx.WriteError(w, http.StatusBadRequest, "title exceeds 100 characters")
	case errors.Is(err, service.ErrQuotaExceeded):
		httpx.WriteError(w, http.StatusConflict, "saved prompt limit reached")
	default:
		slogx.FromContext(r.Context()).Error("failed to save prompt", "err", err)
		vaultsdk.ErrServerError.WriteError(w)
	}
}

// HandleList returns the caller's saved prompts.
//
//	@Summary		List saved prompts
//	@Description	Returns all of the caller's saved prompts, newest first, with the count and the per-user limit.
//	@Tags			Prompts
//	@Produce		json
//	@Success		200	{object}	vaultsdk.ListPromptsResponse
//	@Failure		401	{object}	vaultsdk.ErrorResponse	"Not authenticated"
//	@Router			/v1/prompts [get].
func (h *PromptsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := SessionFromContext(ctx)

	prompts, err := h.PromptService.List(ctx, sess.UserID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list prompts", "err", err)
		vaultsdk.ErrServerError.WriteError(w)
		return
	}

	records := make([]vaultsdk.PromptRecord, 0, len(prompts))
	for _, p := range prompts {
		records = append(records, toPromptRecord(p))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.ListPromptsResponse{
		Prompts: records,
		Count:   len(records),
		Limit:   service.MaxPromptsPerUser,
	})
}

// HandleCheck reports whether an enhanced text is already saved.
//
//	@Summary		Check whether a prompt is saved
//	@Description	Exact-match lookup on normalized content against the caller's saved prompts.
//	@Tags			Prompts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.CheckPromptRequest	true	"Enhanced content to look up"
//	@Success		200		{object}	vaultsdk.CheckPromptResponse
//	@Failure		400		{object}	vaultsdk.ErrorResponse	"Empty content"
//	@Failure		401		{object}	vaultsdk.ErrorResponse	"Not authenticated"
//	@Router			/v1/prompts/check [post].
func (h *PromptsHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := SessionFromContext(ctx)

	var req vaultsdk.CheckPromptRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	found, err := h.PromptService.CheckSaved(ctx, sess.UserID, req.EnhancedPrompt)
	if err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			httpx.WriteError(w, http.StatusBadRequest, "prompt content is required")
			return
		}
		slogx.FromContext(ctx).Error("prompt check failed", "err", err)
		vaultsdk.ErrServerError.WriteError(w)
		return
	}

	resp := vaultsdk.CheckPromptResponse{Saved: found != nil}
	if found != nil {
		resp.PromptID = &found.ID
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleDelete removes one owned prompt.
//
//	@Summary		Delete a saved prompt
//	@Description	Deletes one of the caller's prompts. A prompt that does not exist and a prompt owned by someone else are rejected identically.
//	@Tags			Prompts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.DeletePromptRequest	true	"Prompt id"
//	@Success		200		{object}	vaultsdk.StatusResponse
//	@Failure		400		{object}	vaultsdk.ErrorResponse	"Missing prompt id"
//	@Failure		401		{object}	vaultsdk.ErrorResponse	"Not authenticated or prompt not owned"
//	@Router			/v1/prompts/delete [post].
func (h *PromptsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := SessionFromContext(ctx)

	var req vaultsdk.DeletePromptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PromptID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "prompt_id is required")
		return
	}

	if err := h.PromptService.Delete(ctx, sess.UserID, req.PromptID); err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			// Same response whether the prompt is missing or foreign.
			httpx.WriteError(w, http.StatusUnauthorized, "not authorized to delete this prompt")
			return
		}
		slogx.FromContext(ctx).Error("prompt deletion failed", "err", err)
		vaultsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, vaultsdk.StatusResponse{Status: "ok"})
}

// HandleUpdateTitle sets or clears a prompt's title.
//
//	@Summary		Update a prompt title
//	@Description	Sets a custom title on one of the caller's prompts. An empty custom_title clears the title.
//	@Tags			Prompts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.UpdateTitleRequest	true	"Prompt id and title"
//	@Success		200		{object}	vaultsdk.StatusResponse
//	@Failure		400		{object}	vaultsdk.ErrorResponse	"Missing prompt id or title too long"
//	@Failure		401		{object}	vaultsdk.ErrorResponse	"Not authenticated"
//	@Failure		404		{object}	vaultsdk.ErrorResponse	"Prompt not found"
//	@Router			/v1/prompts/title [post].
func (h *PromptsHandler) HandleUpdateTitle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := SessionFromContext(ctx)

	var req vaultsdk.UpdateTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PromptID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "prompt_id is required")
		return
	}

	if err := h.PromptService.UpdateTitle(ctx, sess.UserID, req.PromptID, req.CustomTitle); err != nil {
		switch {
		case errors.Is(err, service.ErrTitleTooLong):
			httpx.WriteError(w, http.StatusBadRequest, "title exceeds 100 characters")
		case errors.Is(err, service.ErrPromptNotFound):
			httpx.WriteError(w, http.StatusNotFound, "prompt not found")
		default:
			slogx.FromContext(ctx).Error("title update failed", "err", err)
			vaultsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, vaultsdk.StatusResponse{Status: "ok"})
}

// HandleRegenerateTitle generates a fresh title for one prompt.
//
//	@Summary		Regenerate a prompt title
//	@Description	Calls the title generator for one of the caller's prompts and persists the result. Unlike save, a generation failure here is surfaced to the caller.
//	@Tags			Prompts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.RegenerateTitleRequest	true	"Prompt id"
//	@Success		200		{object}	vaultsdk.RegenerateTitleResponse
//	@Failure		401		{object}	vaultsdk.ErrorResponse	"Not authenticated"
//	@Failure		404		{object}	vaultsdk.ErrorResponse	"Prompt not found"
//	@Failure		500		{object}	vaultsdk.ErrorResponse	"Title generation failed"
//	@Router			/v1/prompts/title/regenerate [post].
func (h *PromptsHandler) HandleRegenerateTitle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := SessionFromContext(ctx)

	var req vaultsdk.RegenerateTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PromptID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "prompt_id is required")
		return
	}

	title, err := h.PromptService.Regenerate(ctx, sess.UserID, req.PromptID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPromptNotFound):
			httpx.WriteError(w, http.StatusNotFound, "prompt not found")
		case errors.Is(err, service.ErrTitleGeneration):
			slogx.FromContext(ctx).Warn("title regeneration failed", "prompt_id", req.PromptID, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "title generation failed")
		default:
			slogx.FromContext(ctx).Error("title regeneration failed", "err", err)
			vaultsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, vaultsdk.RegenerateTitleResponse{Title: title})
}

type MigrateTitlesHandler struct {
	MigrationService *service.TitleMigrationService
}

// ServeHTTP runs one title-backfill batch for the caller.
//
//	@Summary		Backfill missing titles
//	@Description	Processes up to 10 of the caller's untitled prompts, generating and persisting titles with a paced delay between upstream calls. Remaining reports how many untitled prompts are left.
//	@Tags			Prompts
//	@Produce		json
//	@Success		200	{object}	vaultsdk.MigrateTitlesResponse
//	@Failure		401	{object}	vaultsdk.ErrorResponse	"Not authenticated"
//	@Router			/v1/prompts/migrate-titles [post].
func (h *MigrateTitlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := SessionFromContext(ctx)

	result, err := h.MigrationService.RunBatch(ctx, sess.UserID)
	if err != nil {
		slogx.FromContext(ctx).Error("title migration batch failed", "err", err)
		vaultsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, vaultsdk.MigrateTitlesResponse{
		Migrated:  result.Migrated,
		Failed:    result.Failed,
		Remaining: result.Remaining,
	})
}
