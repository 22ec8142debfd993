package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/stripe-checkout-gateway/internal/domain"
)

type PostgresSettingsRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSettingsRepository(db *pgxpool.Pool) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{
		db: db,
	}
}

func (p *PostgresSettingsRepository) GetOption(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM options WHERE name = $1`

	var value string

	err := p.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrRecordNotFound
		}
		return "", err
	}

	return value, nil
}

func (p *PostgresSettingsRepository) SetOption(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO options (name, value)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`

	_, err := p.db.Exec(ctx, query, key, value)
	return err
}
