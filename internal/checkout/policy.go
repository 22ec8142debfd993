package checkout

import "fmt"

// StockPolicy decides when an order's stock is reduced and the shopper's cart is
// emptied relative to the checkout session being created.
type StockPolicy string

const (
	// StockBeforeSession reduces stock and empties the cart before the provider
	// is called, whatever the outcome of that call.
	StockBeforeSession StockPolicy = "before_session"
	// StockAfterSession does both only once the provider returned a session.
	StockAfterSession StockPolicy = "after_session"
	// StockDeferred leaves stock to the payment confirmation path and only
	// empties the cart after a session was created.
	StockDeferred StockPolicy = "deferred"
)

func ParseStockPolicy(s string) (StockPolicy, error) {
	switch p := StockPolicy(s); p {
	case StockBeforeSession, StockAfterSession, StockDeferred:
		return p, nil
	default:
		return "", fmt.Errorf("unknown stock policy %q", s)
	}
}
