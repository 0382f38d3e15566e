package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/yungbote/sportshop-backend/internal/platform/apperr"
	"github.com/yungbote/sportshop-backend/internal/platform/logger"
)

type ChargeRequest struct {
	AmountCents     int64
	Currency        string
	CustomerID      string
	PaymentMethodID string
	Description     string
	// ReferenceID is sent as the idempotency key so a retried checkout
	// cannot charge twice.
	ReferenceID string
}

type ChargeResult struct {
	PaymentIntentID string
	Status          string
}

// Gateway is the payment collaborator. Checkout depends on this interface,
// not on the stripe client, so tests can stand in a fake.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

type gateway struct {
	log    *logger.Logger
	client *client.API
}

func NewGateway(log *logger.Logger, apiKey string) (Gateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing stripe api key")
	}
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return &gateway{log: log.With("client", "StripeGateway"), client: sc}, nil
}

func (g *gateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperr.ErrInvalidArgument)
	}
	if req.PaymentMethodID == "" {
		return nil, fmt.Errorf("%w: payment method required", apperr.ErrInvalidArgument)
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.AmountCents),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(req.Description),
	}
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	}
	if req.ReferenceID != "" {
		params.IdempotencyKey = stripe.String(req.ReferenceID)
	}
	params.Context = ctx

	pi, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return nil, g.mapStripeError(err)
	}

	// Network success is not payment success.
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return &ChargeResult{PaymentIntentID: pi.ID, Status: string(pi.Status)},
			fmt.Errorf("%w: intent status %s", apperr.ErrPaymentFailed, pi.Status)
	}

	return &ChargeResult{PaymentIntentID: pi.ID, Status: string(pi.Status)}, nil
}

func (g *gateway) mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.Code {
		case stripe.ErrorCodeCardDeclined:
			return fmt.Errorf("%w: card was declined", apperr.ErrPaymentFailed)
		case stripe.ErrorCodeExpiredCard:
			return fmt.Errorf("%w: card has expired", apperr.ErrPaymentFailed)
		case stripe.ErrorCodeBalanceInsufficient:
			return fmt.Errorf("%w: insufficient funds", apperr.ErrPaymentFailed)
		}
		if stripeErr.HTTPStatusCode >= http.StatusInternalServerError {
			g.log.Warn("Stripe unavailable", "status", stripeErr.HTTPStatusCode)
			return fmt.Errorf("%w: payment provider unavailable", apperr.ErrStoreUnavailable)
		}
	}
	// Gateway detail goes to the log, never to a caller.
	g.log.Warn("Stripe charge failed", "error", err)
	return fmt.Errorf("%w: payment could not be processed", apperr.ErrPaymentFailed)
}
