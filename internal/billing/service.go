package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/plan"
	"resume-builder/internal/shared/telemetry"
)

// Provider talks to the payment processor.
type Provider interface {
	CreateCheckout(ctx context.Context, userID, email string) (Checkout, error)
	Verify(ctx context.Context, sessionID string) (Payment, error)
}

// Upgrader applies the free to pro transition.
type Upgrader interface {
	Upgrade(ctx context.Context, userID string) error
}

// Service sells the pro tier.
type Service struct {
	Provider      Provider
	Confirmations ConfirmationRepo
	Users         Upgrader
	Metrics       *metrics.Collector
	Now           func() time.Time
}

// Checkout starts a payment for the caller.
func (s *Service) Checkout(ctx context.Context, userID, email string) (Checkout, error) {
	if s.Provider == nil {
		return Checkout{}, ErrNotConfigured
	}
	co, err := s.Provider.CreateCheckout(ctx, userID, email)
	if err != nil {
		telemetry.Error("billing.checkout_failed", map[string]any{"user_id": userID, "error": err})
		return Checkout{}, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}
	return co, nil
}

// Confirm upgrades the caller once the provider reports the session paid.
// Repeating a confirmed session is a no-op that still reports pro.
func (s *Service) Confirm(ctx context.Context, userID, sessionID string) (plan.Tier, error) {
	if s.Provider == nil {
		return plan.Free, ErrNotConfigured
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return plan.Free, fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}

	prior, err := s.Confirmations.Get(ctx, sessionID)
	switch {
	case err == nil:
		if prior.UserID != userID {
			return plan.Free, ErrSessionMismatch
		}
		return plan.Pro, nil
	case !errors.Is(err, ErrNotFound):
		return plan.Free, err
	}

	payment, err := s.Provider.Verify(ctx, sessionID)
	if err != nil {
		telemetry.Error("billing.verify_failed", map[string]any{"user_id": userID, "session_id": sessionID, "error": err})
		return plan.Free, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}
	if payment.UserID != userID {
		return plan.Free, ErrSessionMismatch
	}
	if !payment.Paid {
		return plan.Free, ErrPaymentIncomplete
	}

	// Upgrade before recording so a failed upgrade can be retried.
	if err := s.Users.Upgrade(ctx, userID); err != nil {
		return plan.Free, err
	}
	created, err := s.Confirmations.Record(ctx, Confirmation{
		SessionID:   sessionID,
		UserID:      userID,
		AmountTotal: payment.AmountTotal,
		Currency:    payment.Currency,
		ConfirmedAt: s.now(),
	})
	if err != nil {
		return plan.Free, err
	}
	if created {
		s.Metrics.IncTierUpgrade()
		telemetry.Info("billing.upgraded", map[string]any{"user_id": userID, "session_id": sessionID})
	}
	return plan.Pro, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
