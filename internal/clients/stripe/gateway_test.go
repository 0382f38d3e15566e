package stripe

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stripe/stripe-go/v79"

	"github.com/yungbote/sportshop-backend/internal/platform/apperr"
	"github.com/yungbote/sportshop-backend/internal/platform/logger"
)

func newTestGateway(t *testing.T) *gateway {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return &gateway{log: log}
}

func TestMapStripeError(t *testing.T) {
	t.Parallel()
	g := newTestGateway(t)

	cases := []struct {
		name     string
		err      error
		wantIs   error
		wantText string
	}{
		{
			name:     "card declined",
			err:      &stripe.Error{Code: stripe.ErrorCodeCardDeclined},
			wantIs:   apperr.ErrPaymentFailed,
			wantText: "card was declined",
		},
		{
			name:     "expired card",
			err:      &stripe.Error{Code: stripe.ErrorCodeExpiredCard},
			wantIs:   apperr.ErrPaymentFailed,
			wantText: "card has expired",
		},
		{
			name:     "insufficient funds",
			err:      &stripe.Error{Code: stripe.ErrorCodeBalanceInsufficient},
			wantIs:   apperr.ErrPaymentFailed,
			wantText: "insufficient funds",
		},
		{
			name:     "provider outage",
			err:      &stripe.Error{HTTPStatusCode: http.StatusBadGateway},
			wantIs:   apperr.ErrStoreUnavailable,
			wantText: "payment provider unavailable",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := g.mapStripeError(tc.err)
			if !errors.Is(got, tc.wantIs) {
				t.Fatalf("classification: got %v", got)
			}
			if !strings.Contains(got.Error(), tc.wantText) {
				t.Fatalf("message: got=%q want substring %q", got, tc.wantText)
			}
		})
	}
}

func TestMapStripeErrorNeverEchoesUnknownDetail(t *testing.T) {
	t.Parallel()
	g := newTestGateway(t)

	raw := errors.New("request pm_123 to api.stripe.com failed: key sk_test_abc rejected")
	got := g.mapStripeError(raw)
	if !errors.Is(got, apperr.ErrPaymentFailed) {
		t.Fatalf("classification: got %v", got)
	}
	if strings.Contains(got.Error(), "sk_test_abc") || strings.Contains(got.Error(), "pm_123") {
		t.Fatalf("raw gateway detail leaked into error: %q", got)
	}
	if !strings.Contains(got.Error(), "payment could not be processed") {
		t.Fatalf("expected fixed message, got %q", got)
	}
}
