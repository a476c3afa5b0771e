package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"resume-builder/resume/model"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, res Resume, admit func(count int) error) error {
	payload, err := json.Marshal(res.Content)
	if err != nil {
		return fmt.Errorf("encode resume content: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Serialize per-user so the limit check and insert see the same count.
	if _, err := tx.ExecContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, res.UserID); err != nil {
		return err
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM resumes WHERE user_id = $1`, res.UserID).Scan(&count); err != nil {
		return err
	}
	if admit != nil {
		if err := admit(count); err != nil {
			return err
		}
	}

	const query = `
INSERT INTO resumes (id, user_id, name, template_id, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.ExecContext(ctx, query,
		res.ID,
		res.UserID,
		res.Name,
		res.TemplateID,
		payload,
		res.CreatedAt,
		res.UpdatedAt,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Resume, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Resume{}, ErrNotFound
	}
	const query = `
SELECT id, user_id, name, template_id, content, created_at, updated_at
FROM resumes
WHERE id = $1 AND user_id = $2`
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	const query = `
SELECT id, user_id, name, template_id, content, created_at, updated_at
FROM resumes
WHERE user_id = $1
ORDER BY updated_at DESC, id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, res Resume) error {
	if _, err := uuid.Parse(res.ID); err != nil {
		return ErrNotFound
	}
	payload, err := json.Marshal(res.Content)
	if err != nil {
		return fmt.Errorf("encode resume content: %w", err)
	}
	const query = `
UPDATE resumes
SET name = $3, template_id = $4, content = $5, updated_at = $6
WHERE id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, res.ID, res.UserID, res.Name, res.TemplateID, payload, res.UpdatedAt)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	result, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *PGRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM resumes WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var res Resume
	var content []byte
	if err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.Name,
		&res.TemplateID,
		&content,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	var decoded model.Content
	if err := json.Unmarshal(content, &decoded); err != nil {
		return Resume{}, fmt.Errorf("decode resume %s: %w", res.ID, err)
	}
	res.Content = decoded
	return res, nil
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
