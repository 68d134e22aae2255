package store

import (
	"context"
	"errors"

	"github.com/quillworks/promptvault/internal/vault/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and a transaction entry point for the operations that need
// multi-statement atomicity (quota-checked inserts, account deletion).
type Store interface {
	Users() Users
	Prompts() Prompts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended entry point.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the username or email collides
	// case-insensitively with an existing row.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByIdentifier looks a user up by username OR email,
	// case-insensitively. Used during login.
	GetUserByIdentifier(ctx context.Context, identifier string) (domain.User, error)

	// UpdatePasswordHash replaces the password hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// DeleteUser removes the user row. Owned prompts cascade per schema,
	// but account deletion also deletes them explicitly inside the same
	// transaction so the invariant doesn't hinge on pragma state.
	DeleteUser(ctx context.Context, userID string) error
}

type Prompts interface {
	// CreatePrompt inserts a new saved prompt.
	CreatePrompt(ctx context.Context, p domain.Prompt) error

	// GetPrompt returns the prompt only when it belongs to userID;
	// a missing row and a foreign row are both ErrNotFound.
	GetPrompt(ctx context.Context, userID, id string) (domain.Prompt, error)

	// ListPrompts returns all of the user's prompts, newest first.
	ListPrompts(ctx context.Context, userID string) ([]domain.Prompt, error)

	// CountPrompts returns the number of prompts the user owns.
	CountPrompts(ctx context.Context, userID string) (int, error)

	// DeletePrompt removes the prompt when owned by userID, else ErrNotFound.
	DeletePrompt(ctx context.Context, userID, id string) error

	// UpdateTitle sets (or clears, with nil) the title of an owned prompt.
	UpdateTitle(ctx context.Context, userID, id string, title *string) error

	// FindByEnhanced returns the user's prompt whose stored enhanced content
	// exactly matches the given (already normalized) text.
	FindByEnhanced(ctx context.Context, userID, enhanced string) (domain.Prompt, error)

	// ListUntitled returns up to limit of the user's prompts whose title is
	// NULL or empty, ordered by id for deterministic batching.
	ListUntitled(ctx context.Context, userID string, limit int) ([]domain.Prompt, error)

	// CountUntitled counts the user's prompts whose title is NULL or empty.
	CountUntitled(ctx context.Context, userID string) (int, error)

	// DeletePromptsByUser removes every prompt the user owns.
	DeletePromptsByUser(ctx context.Context, userID string) error
}
