package resumes

import "context"

// Repo defines persistence operations for resumes. All reads and writes are
// scoped to the owning user.
type Repo interface {
	// Create stores a resume after admit accepts the owner's current count.
	// Implementations serialize concurrent creates per user so the count
	// admit sees is the count the insert lands on.
	Create(ctx context.Context, r Resume, admit func(count int) error) error
	GetByID(ctx context.Context, userID, id string) (Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	Update(ctx context.Context, r Resume) error
	Delete(ctx context.Context, userID, id string) error
	CountByUser(ctx context.Context, userID string) (int, error)
}
