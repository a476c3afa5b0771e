package billing

import (
	"errors"
	"time"
)

var (
	ErrNotConfigured      = errors.New("payments not configured")
	ErrInvalidInput       = errors.New("invalid input")
	ErrPaymentUnavailable = errors.New("payment provider unavailable")
	ErrPaymentIncomplete  = errors.New("payment not completed")
	ErrSessionMismatch    = errors.New("checkout session belongs to another user")
	ErrNotFound           = errors.New("confirmation not found")
)

// Checkout is a hosted payment page the user is redirected to.
type Checkout struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// Payment is the provider's verdict on a checkout session.
type Payment struct {
	SessionID   string
	UserID      string
	Paid        bool
	AmountTotal int64
	Currency    string
}

// Confirmation records a session that already upgraded its user.
type Confirmation struct {
	SessionID   string
	UserID      string
	AmountTotal int64
	Currency    string
	ConfirmedAt time.Time
}
