package service

import (
	"context"
	"time"

	"github.com/quillworks/promptvault/internal/vault/store"
	"github.com/quillworks/promptvault/pkg/slogx"
	"golang.org/x/time/rate"
)

const (
	// MigrationBatchSize bounds one backfill run.
	MigrationBatchSize = 10

	// DefaultMigrationDelay is the pause between successive completion
	// calls within a batch. It exists to respect the upstream service's
	// rate limit, not as an accident of scheduling.
	DefaultMigrationDelay = 500 * time.Millisecond
)

// MigrationResult summarizes one backfill batch.
type MigrationResult struct {
	Migrated  int `json:"migrated"`
	Failed    int `json:"failed"`
	Remaining int `json:"remaining"`
}

// TitleMigrationService backfills titles for prompts saved before title
// generation existed (or whose generation failed). Batches are bounded and
// paced; the job is idempotent and safe to re-run.
type TitleMigrationService struct {
	Store  store.Store
	Titles TitleGenerator

	pace *rate.Limiter
}

// NewTitleMigrationService builds the batcher with the given inter-item
// delay; zero or negative falls back to DefaultMigrationDelay.
func NewTitleMigrationService(st store.Store, titles TitleGenerator, delay time.Duration) *TitleMigrationService {
	if delay <= 0 {
		delay = DefaultMigrationDelay
	}
	return &TitleMigrationService{
		Store:  st,
		Titles: titles,
		pace:   rate.NewLimiter(rate.Every(delay), 1),
	}
}

// RunBatch selects up to MigrationBatchSize of the user's untitled prompts
// (ordered by id, so repeated runs walk the set deterministically) and
// generates titles one by one. Failures are counted and skipped, never
// aborting the batch. Remaining reports how many untitled prompts are left,
// letting the caller decide whether to schedule another run.
func (s *TitleMigrationService) RunBatch(ctx context.Context, userID string) (MigrationResult, error) {
	log := slogx.FromContext(ctx)

	// With no generator configured there is nothing to migrate; report how
	// much is waiting so the caller can see the backlog.
	if s.Titles == nil {
		remaining, err := s.Store.Prompts().CountUntitled(ctx, userID)
		if err != nil {
			return MigrationResult{}, err
		}
		return MigrationResult{Remaining: remaining}, nil
	}

	prompts, err := s.Store.Prompts().ListUntitled(ctx, userID, MigrationBatchSize)
	if err != nil {
		return MigrationResult{}, err
	}

	var result MigrationResult
	for _, p := range prompts {
		// Inter-item pacing; the first call of a batch passes immediately.
		if err := s.pace.Wait(ctx); err != nil {
			return MigrationResult{}, err
		}

		title, err := s.Titles.GenerateTitle(ctx, p.Enhanced)
		if err != nil {
			log.Warn("title backfill: generation failed", "prompt_id", p.ID, "err", err)
			result.Failed++
			continue
		}

		// Each write is scoped by prompt id + owner, so concurrent runs
		// cannot corrupt one another's state.
		if err := s.Store.Prompts().UpdateTitle(ctx, userID, p.ID, &title); err != nil {
			log.Warn("title backfill: persist failed", "prompt_id", p.ID, "err", err)
			result.Failed++
			continue
		}

		result.Migrated++
	}

	remaining, err := s.Store.Prompts().CountUntitled(ctx, userID)
	if err != nil {
		return MigrationResult{}, err
	}
	result.Remaining = remaining

	log.Info("title backfill batch complete",
		"migrated", result.Migrated,
		"failed", result.Failed,
		"remaining", result.Remaining,
	)

	return result, nil
}
