package integration_test

import (
	"log/slog"
	"os"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/stripe-checkout-gateway/internal/app"
	"github.com/metinatakli/stripe-checkout-gateway/internal/payment"
	"github.com/metinatakli/stripe-checkout-gateway/internal/repository"
	appvalidator "github.com/metinatakli/stripe-checkout-gateway/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App            *app.Application
	DB             *pgxpool.Pool
	RedisClient    *redis.Client
	SessionManager *scs.SessionManager
	Settings       *repository.PostgresSettingsRepository
	Provider       *payment.MockPaymentProvider
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	settingsRepo := repository.NewPostgresSettingsRepository(db)
	orderRepo := repository.NewPostgresOrderRepository(db, cfg.Checkout.ShopURL)
	cartStore := repository.NewRedisCartStore(redisClient)

	paymentProvider := payment.NewMockPaymentProvider()

	registry, err := app.NewPaymentRegistry(
		cfg,
		logger,
		validator,
		settingsRepo,
		orderRepo,
		cartStore,
		paymentProvider,
	)
	if err != nil {
		redisClient.Close()
		db.Close()
		return nil, err
	}

	application := app.NewApp(
		cfg,
		logger,
		validator,
		sessionManager,
		registry,
	)

	return &TestApp{
		App:            application,
		DB:             db,
		RedisClient:    redisClient,
		SessionManager: sessionManager,
		Settings:       settingsRepo,
		Provider:       paymentProvider,
	}, nil
}
