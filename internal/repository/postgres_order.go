package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/stripe-checkout-gateway/internal/domain"
)

type PostgresOrderRepository struct {
	db      *pgxpool.Pool
	shopURL string
}

// NewPostgresOrderRepository returns an order store whose cancel and return
// URLs point into the storefront served at shopURL.
func NewPostgresOrderRepository(db *pgxpool.Pool, shopURL string) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db:      db,
		shopURL: strings.TrimRight(shopURL, "/"),
	}
}

func (p *PostgresOrderRepository) GetById(ctx context.Context, id int) (*domain.Order, error) {
	query := `
		SELECT id, order_key, total, currency
		FROM orders
		WHERE id = $1
	`

	var order domain.Order

	err := p.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.Key,
		&order.Total,
		&order.Currency,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return &order, nil
}

// ReduceStock subtracts the ordered quantities from every stock-managed product
// of the order. It runs at most once per order.
func (p *PostgresOrderRepository) ReduceStock(ctx context.Context, order *domain.Order) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE orders
			SET stock_reduced = TRUE, updated_at = NOW()
			WHERE id = $1 AND NOT stock_reduced
		`

		tag, err := tx.Exec(ctx, query, order.ID)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return nil
		}

		query = `
			UPDATE products p
			SET stock = p.stock - i.quantity
			FROM (
				SELECT product_id, SUM(quantity) AS quantity
				FROM order_items
				WHERE order_id = $1
				GROUP BY product_id
			) i
			WHERE p.id = i.product_id AND p.manage_stock
		`

		_, err = tx.Exec(ctx, query, order.ID)
		return err
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
		return domain.ErrInsufficientStock
	}

	return err
}

func (p *PostgresOrderRepository) CancelURL(order *domain.Order) string {
	return p.orderURL(fmt.Sprintf("/checkout/order/%d/cancel", order.ID), order.Key)
}

func (p *PostgresOrderRepository) ReturnURL(order *domain.Order) string {
	return p.orderURL(fmt.Sprintf("/checkout/order-received/%d", order.ID), order.Key)
}

func (p *PostgresOrderRepository) orderURL(path, key string) string {
	query := url.Values{}
	query.Set("key", key)

	return p.shopURL + path + "?" + query.Encode()
}
