package http

import (
	"encoding/json"
	"net/http"

	"github.com/quillworks/promptvault/internal/vault/domain"
	"github.com/quillworks/promptvault/pkg/vaultsdk"
)

// decodeJSON parses the request body into dst, writing a 400 and returning
// false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		vaultsdk.ErrInvalidRequestBody.WriteError(w)
		return false
	}
	return true
}

func toUserResponse(u domain.User) vaultsdk.UserResponse {
	return vaultsdk.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toPromptRecord(p domain.Prompt) vaultsdk.PromptRecord {
	return vaultsdk.PromptRecord{
		ID:             p.ID,
		OriginalPrompt: p.Original,
		EnhancedPrompt: p.Enhanced,
		Notes:          p.Notes,
		Title:          p.Title,
		CreatedAt:      p.CreatedAt,
	}
}
