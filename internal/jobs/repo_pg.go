package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"resume-builder/internal/scoring"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, jd JobDescription) error {
	analysis, err := json.Marshal(jd.Analysis)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	const query = `
INSERT INTO job_descriptions (id, user_id, content, analysis, provider, model, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.DB.ExecContext(ctx, query,
		jd.ID,
		jd.UserID,
		jd.Content,
		analysis,
		nullableString(jd.Provider),
		nullableString(jd.Model),
		jd.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (JobDescription, error) {
	if _, err := uuid.Parse(id); err != nil {
		return JobDescription{}, ErrNotFound
	}
	const query = `
SELECT id, user_id, content, analysis, provider, model, created_at
FROM job_descriptions
WHERE id = $1 AND user_id = $2`
	var jd JobDescription
	var analysis []byte
	var provider, model sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id, userID).Scan(
		&jd.ID,
		&jd.UserID,
		&jd.Content,
		&analysis,
		&provider,
		&model,
		&jd.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobDescription{}, ErrNotFound
		}
		return JobDescription{}, err
	}
	// Stored rows go back through the boundary parser.
	parsed, err := scoring.ParseAnalysis(analysis)
	if err != nil {
		return JobDescription{}, fmt.Errorf("decode analysis %s: %w", jd.ID, err)
	}
	jd.Analysis = parsed
	jd.Provider = provider.String
	jd.Model = model.String
	return jd, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
