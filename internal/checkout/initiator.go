package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/metinatakli/stripe-checkout-gateway/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/metinatakli/stripe-checkout-gateway/internal/checkout"

const (
	outcomeSuccess = "success"
	productSuffix  = "Order"
)

var idempotencyNamespace = uuid.MustParse("6f1c2b7e-3d4a-5e8f-9a0b-1c2d3e4f5a6b")

type Options struct {
	// Timeout bounds a single call to the payment provider. Zero disables it.
	Timeout time.Duration
	// IdempotentSessions attaches an idempotency key derived from the order to
	// every session request, so a double submit reuses the same session.
	IdempotentSessions bool
}

type Initiator struct {
	provider   domain.PaymentProvider
	validator  *validator.Validate
	logger     *slog.Logger
	timeout    time.Duration
	idempotent bool
	tracer     trace.Tracer
	sessions   metric.Int64Counter
}

func NewInitiator(
	provider domain.PaymentProvider,
	validate *validator.Validate,
	logger *slog.Logger,
	opts Options) *Initiator {

	sessions, err := otel.Meter(instrumentationName).Int64Counter(
		"checkout.sessions",
		metric.WithDescription("Checkout session attempts by outcome"),
	)
	if err != nil {
		logger.Warn("failed to create checkout session counter", "error", err)
		sessions = noop.Int64Counter{}
	}

	return &Initiator{
		provider:   provider,
		validator:  validate,
		logger:     logger,
		timeout:    opts.Timeout,
		idempotent: opts.IdempotentSessions,
		tracer:     otel.Tracer(instrumentationName),
		sessions:   sessions,
	}
}

type orderInput struct {
	ID        int    `validate:"gt=0"`
	Currency  string `validate:"required,iso4217"`
	CancelURL string `validate:"omitempty,url"`
	ReturnURL string `validate:"omitempty,url"`
}

// InitiateCheckout creates a hosted checkout session for order and returns the
// URL the shopper has to be redirected to. The returned error can be classified
// with domain.Kind.
func (i *Initiator) InitiateCheckout(ctx context.Context, order domain.Order, cfg domain.MerchantConfig) (string, error) {
	req, err := i.PrepareSession(ctx, order, cfg)
	if err != nil {
		return "", err
	}

	return i.Submit(ctx, req)
}

// PrepareSession validates the order and the merchant configuration and builds
// the session request. It never contacts the payment provider.
func (i *Initiator) PrepareSession(
	ctx context.Context,
	order domain.Order,
	cfg domain.MerchantConfig) (domain.SessionRequest, error) {

	if strings.TrimSpace(cfg.APIKey) == "" {
		i.record(ctx, domain.KindMissingAPIKey)
		return domain.SessionRequest{}, domain.ErrMissingAPIKey
	}

	if !order.Total.IsPositive() {
		i.record(ctx, domain.KindInvalidOrder)
		return domain.SessionRequest{}, fmt.Errorf(
			"%w: total of order %d must be positive, got %s", domain.ErrInvalidOrder, order.ID, order.Total)
	}

	currency := strings.ToUpper(order.Currency)

	err := i.validator.Struct(orderInput{
		ID:        order.ID,
		Currency:  currency,
		CancelURL: order.CancelURL,
		ReturnURL: order.ReturnURL,
	})
	if err != nil {
		i.record(ctx, domain.KindInvalidOrder)
		return domain.SessionRequest{}, fmt.Errorf("%w: %w", domain.ErrInvalidOrder, err)
	}

	amount := MinorUnits(order.Total, currency)
	if amount < 1 {
		i.record(ctx, domain.KindInvalidOrder)
		return domain.SessionRequest{}, fmt.Errorf(
			"%w: total %s %s is below the smallest chargeable unit", domain.ErrInvalidOrder, order.Total, currency)
	}

	orderID := strconv.Itoa(order.ID)

	req := domain.SessionRequest{
		APIKey: cfg.APIKey,
		LineItems: []domain.LineItem{
			{
				Name:       productName(cfg.SiteName),
				Currency:   strings.ToLower(currency),
				UnitAmount: amount,
				Quantity:   1,
			},
		},
		SuccessURL:        order.ReturnURL,
		CancelURL:         order.CancelURL,
		ClientReferenceID: orderID,
		Metadata: map[string]string{
			"order_id": orderID,
		},
	}

	if order.Key != "" {
		req.Metadata["order_key"] = order.Key
	}

	if i.idempotent {
		req.IdempotencyKey = idempotencyKey(order.ID, amount, currency)
	}

	return req, nil
}

// Submit sends a prepared request to the payment provider. Every failure is
// returned as a *domain.ProviderError.
func (i *Initiator) Submit(ctx context.Context, req domain.SessionRequest) (string, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	ctx, span := i.tracer.Start(ctx, "checkout.create_session", trace.WithAttributes(
		attribute.String("order.id", req.ClientReferenceID),
	))
	defer span.End()

	session, err := i.provider.CreateCheckoutSession(ctx, req)
	if err == nil && (session == nil || session.URL == "") {
		err = &domain.ProviderError{
			Code:    "missing_url",
			Message: "checkout session was created without a redirect URL",
		}
	}

	if err != nil {
		err = asProviderError(err, req.APIKey)

		span.RecordError(err)
		span.SetStatus(codes.Error, "checkout session creation failed")
		i.record(ctx, domain.KindProviderError)

		return "", err
	}

	span.SetAttributes(attribute.String("checkout.session_id", session.ID))
	i.record(ctx, outcomeSuccess)

	return session.URL, nil
}

func (i *Initiator) record(ctx context.Context, outcome domain.ErrorKind) {
	i.sessions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(outcome))))
}

func asProviderError(err error, apiKey string) *domain.ProviderError {
	var providerErr *domain.ProviderError
	if errors.As(err, &providerErr) {
		providerErr.Message = domain.Redact(providerErr.Message, apiKey)
		return providerErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.ProviderError{
			Code:    "timeout",
			Message: "payment provider did not respond in time",
			Err:     err,
		}
	}

	return &domain.ProviderError{
		Code:    "provider_unavailable",
		Message: domain.Redact(err.Error(), apiKey),
		Err:     err,
	}
}

func productName(siteName string) string {
	siteName = strings.TrimSpace(siteName)
	if siteName == "" {
		return productSuffix
	}

	return siteName + " " + productSuffix
}

func idempotencyKey(orderID int, amount int64, currency string) string {
	name := fmt.Sprintf("%d:%d:%s", orderID, amount, strings.ToLower(currency))
	return "checkout-" + uuid.NewSHA1(idempotencyNamespace, []byte(name)).String()
}
