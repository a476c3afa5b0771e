package users

import (
	"context"
	"errors"
	"strings"

	"resume-builder/internal/shared/plan"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// UpsertFromAuth persists the user identity from OAuth so resumes and billing have a stable owner.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return errors.New("user id and email are required")
	}
	return s.Repo.Upsert(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// Tier returns the caller's stored tier. Guests and unknown users are free.
func (s *Service) Tier(ctx context.Context, userID string) (plan.Tier, error) {
	if s == nil || s.Repo == nil {
		return plan.Free, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" || strings.HasPrefix(userID, "guest:") {
		return plan.Free, nil
	}
	tier, err := s.Repo.GetTier(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return plan.Free, nil
	}
	return tier, err
}

// Upgrade moves a user to pro. It is the only tier transition.
func (s *Service) Upgrade(ctx context.Context, userID string) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	return s.Repo.SetTier(ctx, userID, plan.Pro)
}
