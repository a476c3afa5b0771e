package export

import "context"

// Repo defines persistence operations for export records.
type Repo interface {
	Create(ctx context.Context, e Export) error
	GetByID(ctx context.Context, userID, id string) (Export, error)
}
