package sqlite

import (
	"context"
	"database/sql"

	"github.com/quillworks/promptvault/internal/vault/domain"
	"github.com/quillworks/promptvault/internal/vault/store"
)

type promptsRepo struct {
	db dbtx
}

const promptColumns = `id, user_id, original, enhanced, notes, title, created_at`

func scanPrompt(row interface{ Scan(...any) error }) (domain.Prompt, error) {
	var p domain.Prompt
	var notes, title sql.NullString
	err := row.Scan(&p.ID, &p.UserID, &p.Original, &p.Enhanced, &notes, &title, &p.CreatedAt)
	if err != nil {
		return domain.Prompt{}, mapNotFound(err)
	}
	p.Notes = mapNullString(notes)
	p.Title = mapNullString(title)
	return p, nil
}

func (r *promptsRepo) collect(rows *sql.Rows) ([]domain.Prompt, error) {
	defer rows.Close()

	var out []domain.Prompt
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *promptsRepo) CreatePrompt(ctx context.Context, p domain.Prompt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO prompts (id, user_id, original, enhanced, notes, title, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Original, p.Enhanced,
		mapOptionalString(p.Notes), mapOptionalString(p.Title), p.CreatedAt,
	)
	return err
}

func (r *promptsRepo) GetPrompt(ctx context.Context, userID, id string) (domain.Prompt, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+promptColumns+` FROM prompts WHERE id = ? AND user_id = ?`,
		id, userID)
	return scanPrompt(row)
}

func (r *promptsRepo) ListPrompts(ctx context.Context, userID string) ([]domain.Prompt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+promptColumns+` FROM prompts
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *promptsRepo) CountPrompts(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM prompts WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

func (r *promptsRepo) DeletePrompt(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM prompts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *promptsRepo) UpdateTitle(ctx context.Context, userID, id string, title *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE prompts SET title = ? WHERE id = ? AND user_id = ?`,
		mapOptionalString(title), id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *promptsRepo) FindByEnhanced(ctx context.Context, userID, enhanced string) (domain.Prompt, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+promptColumns+` FROM prompts
		WHERE user_id = ? AND enhanced = ?
		LIMIT 1`,
		userID, enhanced)
	return scanPrompt(row)
}

func (r *promptsRepo) ListUntitled(ctx context.Context, userID string, limit int) ([]domain.Prompt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+promptColumns+` FROM prompts
		WHERE user_id = ? AND (title IS NULL OR title = '')
		ORDER BY id
		LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *promptsRepo) CountUntitled(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM prompts
		WHERE user_id = ? AND (title IS NULL OR title = '')`,
		userID).Scan(&count)
	return count, err
}

func (r *promptsRepo) DeletePromptsByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM prompts WHERE user_id = ?`, userID)
	return err
}

// requireRow converts a zero-row-affected result into ErrNotFound. Ownership
// scoping happens in the WHERE clause, so "missing" and "not owned" are
// indistinguishable by construction.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
