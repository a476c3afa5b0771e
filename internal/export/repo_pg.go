package export

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, e Export) error {
	const query = `
INSERT INTO exports (id, user_id, resume_id, template_id, storage_key, size_bytes, page_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	var resumeID any
	if e.ResumeID != "" {
		resumeID = e.ResumeID
	}
	_, err := r.DB.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		resumeID,
		e.TemplateID,
		e.StorageKey,
		e.SizeBytes,
		e.PageCount,
		e.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Export, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Export{}, ErrNotFound
	}
	const query = `
SELECT id, user_id, resume_id, template_id, storage_key, size_bytes, page_count, created_at
FROM exports
WHERE id = $1 AND user_id = $2`
	var e Export
	var resumeID sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id, userID).Scan(
		&e.ID,
		&e.UserID,
		&resumeID,
		&e.TemplateID,
		&e.StorageKey,
		&e.SizeBytes,
		&e.PageCount,
		&e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Export{}, ErrNotFound
		}
		return Export{}, err
	}
	e.ResumeID = resumeID.String
	return e, nil
}
