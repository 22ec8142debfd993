package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/metinatakli/stripe-checkout-gateway/internal/domain"
)

const SiteNameOption = "site_name"

type GatewayConfig struct {
	ID          string
	SiteName    string
	StockPolicy StockPolicy
}

// Gateway is a payment method that sends the shopper to a provider-hosted
// checkout page.
type Gateway struct {
	id        string
	siteName  string
	policy    StockPolicy
	settings  domain.SettingsRepository
	orders    domain.OrderRepository
	carts     domain.CartStore
	initiator *Initiator
	logger    *slog.Logger
}

func NewGateway(
	cfg GatewayConfig,
	settings domain.SettingsRepository,
	orders domain.OrderRepository,
	carts domain.CartStore,
	initiator *Initiator,
	logger *slog.Logger) *Gateway {

	policy := cfg.StockPolicy
	if policy == "" {
		policy = StockBeforeSession
	}

	return &Gateway{
		id:        cfg.ID,
		siteName:  cfg.SiteName,
		policy:    policy,
		settings:  settings,
		orders:    orders,
		carts:     carts,
		initiator: initiator,
		logger:    logger.With("gateway", cfg.ID),
	}
}

func (g *Gateway) ID() string {
	return g.id
}

// OptionKey returns the settings key under which field of this gateway is stored.
func (g *Gateway) OptionKey(field string) string {
	return g.id + "_" + field
}

// Config reads the merchant configuration. Options that were never saved fall
// back to their defaults.
func (g *Gateway) Config(ctx context.Context) (domain.MerchantConfig, error) {
	var cfg domain.MerchantConfig

	enabled, err := g.option(ctx, g.OptionKey("enabled"), "yes")
	if err != nil {
		return cfg, err
	}

	cfg.Enabled = isEnabled(enabled)

	cfg.Title, err = g.option(ctx, g.OptionKey("title"), domain.DefaultGatewayTitle)
	if err != nil {
		return cfg, err
	}

	cfg.Description, err = g.option(ctx, g.OptionKey("description"), domain.DefaultGatewayDescription)
	if err != nil {
		return cfg, err
	}

	cfg.APIKey, err = g.option(ctx, g.OptionKey("api_key"), "")
	if err != nil {
		return cfg, err
	}

	cfg.SiteName, err = g.option(ctx, SiteNameOption, g.siteName)
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ProcessPayment starts the hosted checkout for an order. On failure the result
// carries no redirect and the error tells why; domain.Kind classifies it.
func (g *Gateway) ProcessPayment(ctx context.Context, orderID int, sessionID string) (domain.PaymentResult, error) {
	logger := g.logger.With("order_id", orderID)

	cfg, err := g.Config(ctx)
	if err != nil {
		return domain.Failed(), fmt.Errorf("load %s settings: %w", g.id, err)
	}

	if !cfg.Enabled {
		return domain.Failed(), domain.ErrGatewayDisabled
	}

	order, err := g.orders.GetById(ctx, orderID)
	if err != nil {
		return domain.Failed(), err
	}

	order.CancelURL = g.orders.CancelURL(order)
	order.ReturnURL = g.orders.ReturnURL(order)

	req, err := g.initiator.PrepareSession(ctx, *order, cfg)
	if err != nil {
		logger.Warn("checkout rejected", "kind", domain.Kind(err), "error", err)
		return domain.Failed(), err
	}

	if g.policy == StockBeforeSession {
		err = g.reserve(ctx, logger, order, sessionID)
		if err != nil {
			return domain.Failed(), err
		}
	}

	url, err := g.initiator.Submit(ctx, req)
	if err != nil {
		logger.Error("checkout session creation failed", "error", err)
		return domain.Failed(), err
	}

	switch g.policy {
	case StockAfterSession:
		err = g.reserve(ctx, logger, order, sessionID)
		if err != nil {
			return domain.Failed(), err
		}
	case StockDeferred:
		g.emptyCart(ctx, logger, sessionID)
	}

	logger.Info("checkout session created")

	return domain.Succeeded(url), nil
}

func (g *Gateway) reserve(ctx context.Context, logger *slog.Logger, order *domain.Order, sessionID string) error {
	err := g.orders.ReduceStock(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			logger.Warn("checkout rejected", "kind", domain.KindInvalidOrder, "error", err)
			return fmt.Errorf("%w: %w", domain.ErrInvalidOrder, err)
		}

		return fmt.Errorf("reduce stock of order %d: %w", order.ID, err)
	}

	g.emptyCart(ctx, logger, sessionID)

	return nil
}

func (g *Gateway) emptyCart(ctx context.Context, logger *slog.Logger, sessionID string) {
	err := g.carts.Empty(ctx, sessionID)
	if err != nil {
		logger.Warn("failed to empty cart", "error", err)
	}
}

func (g *Gateway) option(ctx context.Context, key, def string) (string, error) {
	value, err := g.settings.GetOption(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return def, nil
		}

		return "", err
	}

	return value, nil
}

func isEnabled(value string) bool {
	if value == "yes" {
		return true
	}

	enabled, err := strconv.ParseBool(value)
	return err == nil && enabled
}
