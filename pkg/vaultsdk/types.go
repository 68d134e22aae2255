package vaultsdk

import "time"

// ============================================================================
// Request Types
// ============================================================================

// RegisterRequest creates a new account.
type RegisterRequest struct {
	// Username is 3-20 characters of [A-Za-z0-9_], unique case-insensitively.
	Username string `json:"username"`

	// Email must be a valid address shape, unique case-insensitively.
	Email string `json:"email"`

	// Password must be at least 8 characters with upper, lower, digit and
	// symbol. It is never stored; only a salted one-way hash is kept.
	Password string `json:"password"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	// Username accepts either the username or the email address.
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest replaces the account password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// DeleteAccountRequest removes the account and everything it owns. The
// password is re-verified so a hijacked session alone cannot destroy data.
type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// SavePromptRequest stores an original/enhanced prompt pair.
type SavePromptRequest struct {
	OriginalPrompt string  `json:"original_prompt"`
	EnhancedPrompt string  `json:"enhanced_prompt"`
	Notes          *string `json:"notes,omitempty"`
}

// SaveCustomPromptRequest stores a standalone prompt, optionally with an
// explicit title. When Title is absent a title is generated best-effort.
type SaveCustomPromptRequest struct {
	PromptContent string  `json:"prompt_content"`
	Title         *string `json:"title,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// CheckPromptRequest asks whether this enhanced text is already saved.
type CheckPromptRequest struct {
	EnhancedPrompt string `json:"enhanced_prompt"`
}

// DeletePromptRequest removes one owned prompt.
type DeletePromptRequest struct {
	PromptID string `json:"prompt_id"`
}

// UpdateTitleRequest sets or clears a prompt's title. An empty CustomTitle
// clears it.
type UpdateTitleRequest struct {
	PromptID    string `json:"prompt_id"`
	CustomTitle string `json:"custom_title"`
}

// RegenerateTitleRequest requests a fresh generated title for one prompt.
type RegenerateTitleRequest struct {
	PromptID string `json:"prompt_id"`
}

// ============================================================================
// Response Types
// ============================================================================

// ErrorResponse is the uniform error body: {"error": "<message>"}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse acknowledges an operation with no other payload.
type StatusResponse struct {
	Status string `json:"status"`
}

// UserResponse is the public view of an account. The password hash is never
// serialized.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User UserResponse `json:"user"`
}

// AuthCheckResponse reports whether the caller's session is authenticated.
type AuthCheckResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
}

// ProfileResponse is the account profile plus the saved-prompt count.
type ProfileResponse struct {
	User       UserResponse `json:"user"`
	SavedCount int          `json:"saved_count"`
}

// PromptRecord is one saved prompt as returned by the API.
type PromptRecord struct {
	ID             string    `json:"id"`
	OriginalPrompt string    `json:"original_prompt"`
	EnhancedPrompt string    `json:"enhanced_prompt"`
	Notes          *string   `json:"notes"`
	Title          *string   `json:"title"`
	CreatedAt      time.Time `json:"created_at"`
}

// SavePromptResponse is returned by both save endpoints. Title is null when
// generation was skipped or failed.
type SavePromptResponse struct {
	ID    string  `json:"id"`
	Title *string `json:"title"`
}

// ListPromptsResponse is the caller's saved prompts, newest first. Limit is
// the per-user quota.
type ListPromptsResponse struct {
	Prompts []PromptRecord `json:"prompts"`
	Count   int            `json:"count"`
	Limit   int            `json:"limit"`
}

// CheckPromptResponse reports whether the content is already saved, and the
// id of the matching prompt when it is.
type CheckPromptResponse struct {
	Saved    bool    `json:"saved"`
	PromptID *string `json:"prompt_id,omitempty"`
}

// RegenerateTitleResponse carries the newly generated title.
type RegenerateTitleResponse struct {
	Title string `json:"title"`
}

// MigrateTitlesResponse summarizes one title-backfill batch.
type MigrateTitlesResponse struct {
	Migrated  int `json:"migrated"`
	Failed    int `json:"failed"`
	Remaining int `json:"remaining"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical dependencies; only /readyz
// fills it in.
type HealthChecks struct {
	Database string `json:"database"`
}
