package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/stripe-checkout-gateway/api"
	"github.com/metinatakli/stripe-checkout-gateway/internal/checkout"
	"github.com/metinatakli/stripe-checkout-gateway/internal/domain"
)

// NewPaymentRegistry builds the payment methods offered at checkout. The Stripe
// gateway is the only one so far.
func NewPaymentRegistry(
	cfg Config,
	logger *slog.Logger,
	validate *validator.Validate,
	settings domain.SettingsRepository,
	orders domain.OrderRepository,
	carts domain.CartStore,
	provider domain.PaymentProvider) (*checkout.Registry, error) {

	policy, err := checkout.ParseStockPolicy(cfg.Checkout.StockPolicy)
	if err != nil {
		return nil, err
	}

	initiator := checkout.NewInitiator(provider, validate, logger, checkout.Options{
		Timeout:            cfg.Stripe.Timeout,
		IdempotentSessions: cfg.Checkout.IdempotentSessions,
	})

	gateway := checkout.NewGateway(
		checkout.GatewayConfig{
			ID:          cfg.Checkout.GatewayID,
			SiteName:    cfg.Checkout.SiteName,
			StockPolicy: policy,
		},
		settings,
		orders,
		carts,
		initiator,
		logger,
	)

	registry := checkout.NewRegistry()

	err = registry.Register(gateway)
	if err != nil {
		return nil, err
	}

	return registry, nil
}

func (app *Application) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := app.registry.Available(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.PaymentMethodsResponse{
		PaymentMethods: make([]api.PaymentMethod, 0, len(methods)),
	}

	for _, m := range methods {
		resp.PaymentMethods = append(resp.PaymentMethods, api.PaymentMethod{
			Id:          m.ID,
			Title:       m.Title,
			Description: m.Description,
		})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ProcessOrderPayment(w http.ResponseWriter, r *http.Request, orderId int) {
	logger := app.contextGetLogger(r).With("order_id", orderId)

	var input api.ProcessPaymentRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.paymentFailedResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err = app.validator.Var(input.PaymentMethod, "required,gateway_id")
	if err != nil {
		app.paymentFailedResponse(w, r, http.StatusBadRequest, ErrMsgMethodNotAllowed)
		return
	}

	gateway, ok := app.registry.Get(input.PaymentMethod)
	if !ok {
		logger.Warn("unknown payment method requested", "payment_method", input.PaymentMethod)
		app.paymentFailedResponse(w, r, http.StatusBadRequest, ErrMsgMethodNotAllowed)
		return
	}

	sessionID := app.sessionManager.Token(r.Context())

	result, err := gateway.ProcessPayment(r.Context(), orderId, sessionID)
	if err != nil {
		app.paymentErrorResponse(w, r, err)
		return
	}

	logger.Info("redirecting shopper to hosted checkout", "payment_method", gateway.ID())

	resp := api.PaymentSuccessResponse{
		Result:   api.Success,
		Redirect: result.Redirect,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func logProviderError(logger *slog.Logger, err error) {
	var providerErr *domain.ProviderError
	if !errors.As(err, &providerErr) {
		logger.Error("checkout session creation failed", "error", err)
		return
	}

	attrs := []any{
		"code", providerErr.Code,
		"provider_status", providerErr.HTTPStatus,
		"provider_request_id", providerErr.RequestID,
		"error", providerErr.Error(),
	}

	if providerErr.Err != nil {
		attrs = append(attrs, "cause", fmt.Sprintf("%T", providerErr.Err))
	}

	logger.Error("checkout session creation failed", attrs...)
}
