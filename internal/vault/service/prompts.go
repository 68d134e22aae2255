package service

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	"github.com/quillworks/promptvault/internal/vault/domain"
	"github.com/quillworks/promptvault/internal/vault/store"
	"github.com/quillworks/promptvault/pkg/idx"
	"github.com/quillworks/promptvault/pkg/slogx"
)

const (
	// MaxPromptsPerUser is the hard cap on saved prompts per user,
	// enforced at creation.
	MaxPromptsPerUser = 100

	// MaxContentLength bounds original and enhanced content.
	MaxContentLength = 10000

	// MaxNotesLength bounds the optional notes field.
	MaxNotesLength = 500

	// MaxTitleLength bounds stored titles.
	MaxTitleLength = 100
)

var (
	ErrEmptyContent    = errors.New("empty_content")
	ErrContentTooLong  = errors.New("content_too_long")
	ErrNotesTooLong    = errors.New("notes_too_long")
	ErrTitleTooLong    = errors.New("title_too_long")
	ErrQuotaExceeded   = errors.New("quota_exceeded")
	ErrPromptNotFound  = errors.New("prompt_not_found")
	ErrTitleGeneration = errors.New("title_generation_failed")
)

// TitleGenerator produces a short descriptive title for prompt text.
// Implemented by titlegen.Client; faked in tests.
type TitleGenerator interface {
	GenerateTitle(ctx context.Context, prompt string) (string, error)
}

// PromptService implements ownership-scoped CRUD over saved prompts with the
// per-user quota, plus the opportunistic and explicit title-generation call
// sites.
type PromptService struct {
	Store  store.Store
	Titles TitleGenerator // nil disables generation entirely
}

// NormalizeContent is how all prompt content is stored and compared:
// trimmed, then HTML-escaped.
func NormalizeContent(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// Save stores a new prompt pair for the user. When no title generator is
// configured, or generation fails, the prompt is saved without a title; the
// create itself never fails on generation.
func (s *PromptService) Save(ctx context.Context, userID, original, enhanced string, notes *string) (domain.Prompt, error) {
	return s.create(ctx, userID, original, enhanced, notes, nil, true)
}

// SaveCustom stores a standalone prompt. An explicit title skips generation;
// otherwise a title is generated opportunistically.
func (s *PromptService) SaveCustom(ctx context.Context, userID, content string, title, notes *string) (domain.Prompt, error) {
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if len([]rune(trimmed)) > MaxTitleLength {
			return domain.Prompt{}, ErrTitleTooLong
		}
		if trimmed == "" {
			title = nil
		} else {
			title = &trimmed
		}
	}
	return s.create(ctx, userID, content, content, notes, title, title == nil)
}

func (s *PromptService) create(ctx context.Context, userID, original, enhanced string, notes, title *string, generate bool) (domain.Prompt, error) {
	original = NormalizeContent(original)
	enhanced = NormalizeContent(enhanced)

	if original == "" || enhanced == "" {
		return domain.Prompt{}, ErrEmptyContent
	}
	if len([]rune(original)) > MaxContentLength || len([]rune(enhanced)) > MaxContentLength {
		return domain.Prompt{}, ErrContentTooLong
	}

	if notes != nil {
		trimmed := strings.TrimSpace(*notes)
		if len([]rune(trimmed)) > MaxNotesLength {
			return domain.Prompt{}, ErrNotesTooLong
		}
		if trimmed == "" {
			notes = nil
		} else {
			notes = &trimmed
		}
	}

	prompt := domain.Prompt{
		ID:        idx.New().String(),
		UserID:    userID,
		Original:  original,
		Enhanced:  enhanced,
		Notes:     notes,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}

	// Quota check and insert share a transaction so a single caller can
	// never observe itself past the cap.
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		count, err := tx.Prompts().CountPrompts(ctx, userID)
		if err != nil {
			return err
		}
		if count >= MaxPromptsPerUser {
			return ErrQuotaExceeded
		}
		return tx.Prompts().CreatePrompt(ctx, prompt)
	})
	if err != nil {
		return domain.Prompt{}, err
	}

	if generate && title == nil {
		if generated, ok := s.tryGenerateTitle(ctx, userID, prompt.ID, prompt.Enhanced); ok {
			prompt.Title = &generated
		}
	}

	return prompt, nil
}

// tryGenerateTitle is the opportunistic call site: any failure is logged and
// swallowed, leaving the title unset.
func (s *PromptService) tryGenerateTitle(ctx context.Context, userID, promptID, content string) (string, bool) {
	if s.Titles == nil {
		return "", false
	}

	log := slogx.FromContext(ctx)

	title, err := s.Titles.GenerateTitle(ctx, content)
	if err != nil {
		log.Warn("opportunistic title generation failed", "prompt_id", promptID, "err", err)
		return "", false
	}

	if err := s.Store.Prompts().UpdateTitle(ctx, userID, promptID, &title); err != nil {
		log.Warn("failed to persist generated title", "prompt_id", promptID, "err", err)
		return "", false
	}

	return title, true
}

// List returns the user's prompts, newest first.
func (s *PromptService) List(ctx context.Context, userID string) ([]domain.Prompt, error) {
	return s.Store.Prompts().ListPrompts(ctx, userID)
}

// Delete removes an owned prompt. A prompt that is missing or owned by
// someone else yields the same ErrPromptNotFound.
func (s *PromptService) Delete(ctx context.Context, userID, promptID string) error {
	if err := s.Store.Prompts().DeletePrompt(ctx, userID, promptID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPromptNotFound
		}
		return err
	}
	return nil
}

// UpdateTitle sets a custom title on an owned prompt. An empty string clears
// the title (stored as absent).
func (s *PromptService) UpdateTitle(ctx context.Context, userID, promptID, title string) error {
	title = strings.TrimSpace(title)
	if len([]rune(title)) > MaxTitleLength {
		return ErrTitleTooLong
	}

	var value *string
	if title != "" {
		value = &title
	}

	if err := s.Store.Prompts().UpdateTitle(ctx, userID, promptID, value); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPromptNotFound
		}
		return err
	}
	return nil
}

// CheckSaved reports whether the user already saved a prompt with this
// enhanced content. Comparison runs on the normalized form, matching how
// content is stored.
func (s *PromptService) CheckSaved(ctx context.Context, userID, enhanced string) (*domain.Prompt, error) {
	enhanced = NormalizeContent(enhanced)
	if enhanced == "" {
		return nil, ErrEmptyContent
	}

	prompt, err := s.Store.Prompts().FindByEnhanced(ctx, userID, enhanced)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prompt, nil
}

// Regenerate produces and persists a fresh title for an owned prompt. This
// is the explicit call site: generation failure is surfaced to the caller.
func (s *PromptService) Regenerate(ctx context.Context, userID, promptID string) (string, error) {
	prompt, err := s.Store.Prompts().GetPrompt(ctx, userID, promptID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrPromptNotFound
		}
		return "", err
	}

	if s.Titles == nil {
		return "", ErrTitleGeneration
	}

	title, err := s.Titles.GenerateTitle(ctx, prompt.Enhanced)
	if err != nil {
		return "", errors.Join(ErrTitleGeneration, err)
	}

	if err := s.Store.Prompts().UpdateTitle(ctx, userID, promptID, &title); err != nil {
		return "", err
	}
	return title, nil
}
