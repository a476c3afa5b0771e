package billing

import "context"

// ConfirmationRepo stores processed checkout sessions.
type ConfirmationRepo interface {
	// Record stores c unless its session was already recorded. created
	// reports whether this call inserted it.
	Record(ctx context.Context, c Confirmation) (created bool, err error)
	Get(ctx context.Context, sessionID string) (Confirmation, error)
}
