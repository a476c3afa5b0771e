package billing

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements ConfirmationRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Record(ctx context.Context, c Confirmation) (bool, error) {
	const query = `
INSERT INTO payment_confirmations (session_id, user_id, amount_total, currency, confirmed_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (session_id) DO NOTHING`
	res, err := r.DB.ExecContext(ctx, query, c.SessionID, c.UserID, c.AmountTotal, c.Currency, c.ConfirmedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *PGRepo) Get(ctx context.Context, sessionID string) (Confirmation, error) {
	const query = `
SELECT session_id, user_id, amount_total, currency, confirmed_at
FROM payment_confirmations
WHERE session_id = $1`
	var c Confirmation
	err := r.DB.QueryRowContext(ctx, query, sessionID).Scan(&c.SessionID, &c.UserID, &c.AmountTotal, &c.Currency, &c.ConfirmedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Confirmation{}, ErrNotFound
		}
		return Confirmation{}, err
	}
	return c, nil
}
