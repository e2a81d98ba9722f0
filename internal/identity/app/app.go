package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	httpapi "github.com/aussiebroadwan/tweetbook/internal/identity/http"
	"github.com/aussiebroadwan/tweetbook/internal/identity/service"
	"github.com/aussiebroadwan/tweetbook/internal/identity/store"
	"github.com/aussiebroadwan/tweetbook/internal/identity/store/drivers/redis"
	"github.com/aussiebroadwan/tweetbook/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/tweetbook/pkg/cryptox"
	"github.com/aussiebroadwan/tweetbook/pkg/jwtx"
	"github.com/aussiebroadwan/tweetbook/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application owns the identity service and everything it depends on.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	ledger store.RefreshTokens
	rdb    *goredis.Client // nil unless the redis ledger is in use
	codec  *jwtx.Codec

	identityService     *service.IdentityService
	postService         *service.PostService
	housekeepingService *service.HousekeepingService
	housekeepingStarted bool

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "identity-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initLedger(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		app.closeStores()
		return nil, err
	}

	app.initHTTP()
	return app, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()
	app.housekeepingStarted = true

	app.logger.Info("identity service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down identity service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeepingStarted {
		app.housekeepingService.Stop()
		app.housekeepingStarted = false
	}

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("identity service stopped")
	return nil
}

func (app *Application) closeStores() error {
	var errs []error
	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
			errs = append(errs, err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// initDatabase opens the sqlite database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initLedger picks the refresh token ledger backend.
func (app *Application) initLedger() error {
	if app.cfg.LedgerBackend != LedgerRedis {
		app.ledger = app.db.RefreshTokens()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb, err := redis.Dial(ctx, redis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
		DB:       app.cfg.RedisDB,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to redis ledger: %w", err)
	}
	app.rdb = rdb
	app.ledger = redis.NewLedger(rdb, redis.DefaultKeyPrefix)

	app.logger.Info("refresh token ledger on redis", "addr", app.cfg.RedisAddr, "db", app.cfg.RedisDB)
	return nil
}

// initServices builds the codec and the business services.
func (app *Application) initServices() error {
	key, err := LoadSigningKey(app.cfg, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize signing key: %w", err)
	}

	codec, err := jwtx.NewCodec(key)
	if err != nil {
		return fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	pepper, err := cryptox.LoadOrGeneratePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	app.identityService = &service.IdentityService{
		Credentials: &service.CredentialStore{
			Users:  app.db.Users(),
			Hasher: cryptox.NewPasswordHasher(pepper),
		},
		Ledger: app.ledger,
		Codec:  codec,
		Key:    key,
	}
	app.postService = &service.PostService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.ledger,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	var ledgerPinger httpapi.Pinger
	if app.rdb != nil {
		ledgerPinger = app.ledger.(*redis.Ledger)
	}

	router := httpapi.NewRouter(
		app.codec,
		BuildVersion,
		app.db,
		ledgerPinger,
		app.cfg.RequestTimeout,
		app.logger,
	)
	router.IdentityService = app.identityService
	router.PostService = app.postService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
