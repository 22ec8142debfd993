package payment

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/metinatakli/stripe-checkout-gateway/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Stripe replaces this token in the success URL with the id of the session.
const sessionIDToken = "{CHECKOUT_SESSION_ID}"

type BackendConfig struct {
	// URL overrides the Stripe API base URL, mainly for tests.
	URL               string
	Timeout           time.Duration
	MaxNetworkRetries int64
	Logger            *slog.Logger
}

// NewStripeBackend returns a Stripe API backend that is not bound to any API
// key, so one backend can serve every merchant.
func NewStripeBackend(cfg BackendConfig) stripe.Backend {
	config := &stripe.BackendConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		MaxNetworkRetries: stripe.Int64(cfg.MaxNetworkRetries),
	}

	if cfg.Logger != nil {
		config.LeveledLogger = &leveledLogger{logger: cfg.Logger}
	}

	if cfg.URL != "" {
		config.URL = stripe.String(cfg.URL)
	}

	return stripe.GetBackendWithConfig(stripe.APIBackend, config)
}

type StripePaymentProvider struct {
	backend stripe.Backend
}

func NewStripePaymentProvider(backend stripe.Backend) *StripePaymentProvider {
	return &StripePaymentProvider{
		backend: backend,
	}
}

func (s *StripePaymentProvider) CreateCheckoutSession(
	ctx context.Context,
	req domain.SessionRequest) (*domain.CheckoutSession, error) {

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))

	for _, item := range req.LineItems {
		lineItem := &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(item.Currency),
				UnitAmount: stripe.Int64(item.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
			Quantity: stripe.Int64(item.Quantity),
		}

		lineItems = append(lineItems, lineItem)
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CancelURL:          optionalString(req.CancelURL),
		SuccessURL:         optionalString(withSessionID(req.SuccessURL)),
		ClientReferenceID:  stripe.String(req.ClientReferenceID),
		Metadata:           req.Metadata,
	}
	params.Context = ctx

	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	client := session.Client{B: s.backend, Key: req.APIKey}

	checkoutSession, err := client.New(params)
	if err != nil {
		return nil, toProviderError(err, req.APIKey)
	}

	return &domain.CheckoutSession{
		ID:  checkoutSession.ID,
		URL: checkoutSession.URL,
	}, nil
}

func toProviderError(err error, apiKey string) *domain.ProviderError {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		code := string(stripeErr.Code)
		if code == "" {
			code = string(stripeErr.Type)
		}

		return &domain.ProviderError{
			Code:       code,
			Message:    domain.Redact(stripeErr.Msg, apiKey),
			HTTPStatus: stripeErr.HTTPStatusCode,
			RequestID:  stripeErr.RequestID,
			Err:        err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.ProviderError{
			Code:    "timeout",
			Message: "Stripe did not respond in time",
			Err:     err,
		}
	}

	return &domain.ProviderError{
		Code:    "api_connection_error",
		Message: "could not reach Stripe",
		Err:     err,
	}
}

func withSessionID(returnURL string) string {
	if returnURL == "" {
		return ""
	}

	sep := "?"
	if strings.Contains(returnURL, "?") {
		sep = "&"
	}

	return returnURL + sep + "session_id=" + sessionIDToken
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return stripe.String(s)
}
