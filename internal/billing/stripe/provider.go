// Package stripe implements billing.Provider with Stripe Checkout.
package stripe

import (
	"context"
	"errors"
	"strings"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"resume-builder/internal/billing"
)

// Provider creates one-time Checkout sessions for a single price.
type Provider struct {
	api        *client.API
	priceID    string
	successURL string
	cancelURL  string
}

// New constructs a Provider.
func New(secretKey, priceID, successURL, cancelURL string) (*Provider, error) {
	if strings.TrimSpace(secretKey) == "" || strings.TrimSpace(priceID) == "" {
		return nil, errors.New("STRIPE_SECRET_KEY and STRIPE_PRICE_ID are required")
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Provider{api: api, priceID: priceID, successURL: successURL, cancelURL: cancelURL}, nil
}

func (p *Provider) CreateCheckout(ctx context.Context, userID, email string) (billing.Checkout, error) {
	params := &stripego.CheckoutSessionParams{
		Mode: stripego.String(string(stripego.CheckoutSessionModePayment)),
		LineItems: []*stripego.CheckoutSessionLineItemParams{{
			Price:    stripego.String(p.priceID),
			Quantity: stripego.Int64(1),
		}},
		SuccessURL:        stripego.String(successURL(p.successURL)),
		CancelURL:         stripego.String(p.cancelURL),
		ClientReferenceID: stripego.String(userID),
	}
	if email != "" {
		params.CustomerEmail = stripego.String(email)
	}
	params.Context = ctx
	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return billing.Checkout{}, err
	}
	return billing.Checkout{SessionID: sess.ID, URL: sess.URL}, nil
}

func (p *Provider) Verify(ctx context.Context, sessionID string) (billing.Payment, error) {
	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := p.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return billing.Payment{}, err
	}
	return toPayment(sess), nil
}

func toPayment(sess *stripego.CheckoutSession) billing.Payment {
	return billing.Payment{
		SessionID:   sess.ID,
		UserID:      sess.ClientReferenceID,
		Paid:        sess.PaymentStatus == stripego.CheckoutSessionPaymentStatusPaid,
		AmountTotal: sess.AmountTotal,
		Currency:    string(sess.Currency),
	}
}

// successURL appends Stripe's session id placeholder so the UI can confirm.
func successURL(base string) string {
	if strings.Contains(base, "{CHECKOUT_SESSION_ID}") {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "session_id={CHECKOUT_SESSION_ID}"
}
