package vaultsdk

import (
	"context"
	"net/http"
)

// SavePrompt stores an original/enhanced prompt pair.
func (c *Client) SavePrompt(ctx context.Context, req SavePromptRequest) (*SavePromptResponse, error) {
	var resp SavePromptResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/prompts", req, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveCustomPrompt stores a standalone prompt.
func (c *Client) SaveCustomPrompt(ctx context.Context, req SaveCustomPromptRequest) (*SavePromptResponse, error) {
	var resp SavePromptResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/prompts/custom", req, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPrompts returns the caller's saved prompts, newest first.
func (c *Client) ListPrompts(ctx context.Context) (*ListPromptsResponse, error) {
	var resp ListPromptsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/prompts", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckPrompt reports whether the enhanced text is already saved.
func (c *Client) CheckPrompt(ctx context.Context, req CheckPromptRequest) (*CheckPromptResponse, error) {
	var resp CheckPromptResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/prompts/check", req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeletePrompt removes one owned prompt.
func (c *Client) DeletePrompt(ctx context.Context, req DeletePromptRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/prompts/delete", req, nil, http.StatusOK)
}

// UpdateTitle sets or clears a prompt's title.
func (c *Client) UpdateTitle(ctx context.Context, req UpdateTitleRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/prompts/title", req, nil, http.StatusOK)
}

// RegenerateTitle generates and persists a fresh title for one prompt.
func (c *Client) RegenerateTitle(ctx context.Context, req RegenerateTitleRequest) (*RegenerateTitleResponse, error) {
	var resp RegenerateTitleResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/prompts/title/regenerate", req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MigrateTitles runs one title-backfill batch for the caller.
func (c *Client) MigrateTitles(ctx context.Context) (*MigrateTitlesResponse, error) {
	var resp MigrateTitlesResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/prompts/migrate-titles", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}
