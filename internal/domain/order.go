package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID        int
	Key       string
	Total     decimal.Decimal
	Currency  string
	CancelURL string
	ReturnURL string
}

type OrderRepository interface {
	GetById(ctx context.Context, id int) (*Order, error)
	ReduceStock(ctx context.Context, order *Order) error
	CancelURL(order *Order) string
	ReturnURL(order *Order) string
}

// CartStore empties the shopper's active cart. sessionID is the shopper's session token.
type CartStore interface {
	Empty(ctx context.Context, sessionID string) error
}
