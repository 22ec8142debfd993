package checkout

import (
	"context"
	"fmt"

	"github.com/metinatakli/stripe-checkout-gateway/internal/domain"
)

// Method describes a payment method offered to the shopper.
type Method struct {
	ID          string
	Title       string
	Description string
}

// Registry holds the payment gateways known to the application. Gateways are
// registered once during start-up; Register must not race with lookups.
type Registry struct {
	gateways map[string]domain.PaymentGateway
	ids      []string
}

func NewRegistry() *Registry {
	return &Registry{
		gateways: make(map[string]domain.PaymentGateway),
	}
}

func (r *Registry) Register(gateway domain.PaymentGateway) error {
	id := gateway.ID()
	if id == "" {
		return fmt.Errorf("payment gateway must have an id")
	}

	if _, exists := r.gateways[id]; exists {
		return fmt.Errorf("payment gateway %q is already registered", id)
	}

	r.gateways[id] = gateway
	r.ids = append(r.ids, id)

	return nil
}

func (r *Registry) Get(id string) (domain.PaymentGateway, bool) {
	gateway, ok := r.gateways[id]
	return gateway, ok
}

// Available lists the enabled gateways in registration order.
func (r *Registry) Available(ctx context.Context) ([]Method, error) {
	methods := make([]Method, 0, len(r.ids))

	for _, id := range r.ids {
		cfg, err := r.gateways[id].Config(ctx)
		if err != nil {
			return nil, fmt.Errorf("load settings of %q: %w", id, err)
		}

		if !cfg.Enabled {
			continue
		}

		methods = append(methods, Method{
			ID:          id,
			Title:       cfg.Title,
			Description: cfg.Description,
		})
	}

	return methods, nil
}
