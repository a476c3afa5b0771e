package users

import (
	"context"

	"resume-builder/internal/shared/plan"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

// Repo persists users. Upsert never changes the stored tier.
type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetTier(ctx context.Context, userID string) (plan.Tier, error)
	SetTier(ctx context.Context, userID string, tier plan.Tier) error
}
