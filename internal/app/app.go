package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/stripe-checkout-gateway/api"
	"github.com/metinatakli/stripe-checkout-gateway/internal/checkout"
	"github.com/metinatakli/stripe-checkout-gateway/internal/payment"
	"github.com/metinatakli/stripe-checkout-gateway/internal/repository"
	appvalidator "github.com/metinatakli/stripe-checkout-gateway/internal/validator"
	"github.com/metinatakli/stripe-checkout-gateway/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "stripe-checkout-gateway"

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	validator      *validator.Validate
	sessionManager *scs.SessionManager
	registry       *checkout.Registry
}

type Config struct {
	Port             int    `validate:"gt=0,lte=65535"`
	Env              string `validate:"oneof=dev test staging prod"`
	DB               DBConfig
	Redis            RedisConfig
	Stripe           StripeConfig
	Checkout         CheckoutConfig
	OtelCollectorUrl string
}

type DBConfig struct {
	DSN          string `validate:"required"`
	MaxOpenConns int    `validate:"gt=0"`
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string `validate:"required"`
	MaxOpenConns int    `validate:"gt=0"`
	MaxIdleConns int    `validate:"gte=0"`
	MaxIdleTime  time.Duration
}

type StripeConfig struct {
	// APIURL overrides the Stripe API base URL, e.g. for stripe-mock.
	APIURL            string        `validate:"omitempty,url"`
	Timeout           time.Duration `validate:"gt=0"`
	MaxNetworkRetries int64         `validate:"gte=0"`
}

type CheckoutConfig struct {
	GatewayID          string `validate:"gateway_id"`
	ShopURL            string `validate:"required,url"`
	SiteName           string
	StockPolicy        string `validate:"stock_policy"`
	IdempotentSessions bool
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|test|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.Stripe.APIURL, "stripe-api-url", "", "Stripe API base URL (empty for api.stripe.com)")
	flag.DurationVar(&cfg.Stripe.Timeout, "stripe-timeout", 10*time.Second, "Timeout of a single Stripe API call")
	flag.Int64Var(&cfg.Stripe.MaxNetworkRetries, "stripe-max-network-retries", 0, "Retries of failed Stripe API calls")

	flag.StringVar(&cfg.Checkout.GatewayID, "gateway-id", "stripe", "Payment method id of the Stripe gateway")
	flag.StringVar(&cfg.Checkout.ShopURL, "shop-url", "http://localhost:8080", "Public storefront URL used for return and cancel pages")
	flag.StringVar(&cfg.Checkout.SiteName, "site-name", "", "Store name shown on the checkout page, overridden by the site_name option")
	flag.StringVar(&cfg.Checkout.StockPolicy, "stock-policy", string(checkout.StockBeforeSession),
		"When stock is reduced (before_session|after_session|deferred)")
	flag.BoolVar(&cfg.Checkout.IdempotentSessions, "checkout-idempotent-sessions", true,
		"Reuse the checkout session when an order is submitted twice")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector gRPC endpoint")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	validator := appvalidator.NewValidator()

	err := validator.Struct(cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app := &Application{
		config:    cfg,
		logger:    logger,
		validator: validator,
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(logger.Handler(), otelslog.NewHandler(serviceName)))
		app.logger = logger
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	err = instrumentRedis(redisClient)
	if err != nil {
		logger.Warn("failed to instrument redis client", "error", err)
	}

	backend := payment.NewStripeBackend(payment.BackendConfig{
		URL:               cfg.Stripe.APIURL,
		Timeout:           cfg.Stripe.Timeout,
		MaxNetworkRetries: cfg.Stripe.MaxNetworkRetries,
		Logger:            logger,
	})

	registry, err := NewPaymentRegistry(
		cfg,
		logger,
		validator,
		repository.NewPostgresSettingsRepository(db),
		repository.NewPostgresOrderRepository(db, cfg.Checkout.ShopURL),
		repository.NewRedisCartStore(redisClient),
		payment.NewStripePaymentProvider(backend),
	)
	if err != nil {
		return err
	}

	app.sessionManager = NewSessionManager(redisClient)
	app.registry = registry

	return app.run()
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	validator *validator.Validate,
	sessionManager *scs.SessionManager,
	registry *checkout.Registry) *Application {

	return &Application{
		config:         cfg,
		logger:         logger,
		validator:      validator,
		sessionManager: sessionManager,
		registry:       registry,
	}
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func instrumentRedis(rdb *redis.Client) error {
	return errors.Join(
		redisotel.InstrumentTracing(rdb),
		redisotel.InstrumentMetrics(rdb),
	)
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	err = otelpgx.RecordStats(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to record database stats: %w", err)
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: app.config.Stripe.Timeout + 10*time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.validateRequest)

	return api.HandlerWithOptions(app, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: app.invalidParamResponse,
	})
}
