package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aussiebroadwan/tweetbook/pkg/jwtx"
)

const (
	KeyStoragePersistent = "persistent"
	KeyStorageEphemeral  = "ephemeral"

	LedgerSQLite = "sqlite"
	LedgerRedis  = "redis"
)

type Config struct {
	Port                 int           `env:"PORT" envDefault:"8080"`
	Env                  string        `env:"ENV" envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	RequestTimeout       time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	// JWTSecret takes precedence over SecretFile when set.
	JWTSecret       string        `env:"AUTH_JWT_SECRET"`
	SecretFile      string        `env:"AUTH_SECRET_FILE" envDefault:"jwt.secret"`
	KeyStorageMode  string        `env:"AUTH_KEY_STORAGE_MODE" envDefault:"persistent"`
	AccessTokenTTL  time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" envDefault:"5m"`
	RefreshTokenTTL time.Duration `env:"AUTH_REFRESH_TOKEN_TTL" envDefault:"4380h"`

	DatabaseFile string `env:"AUTH_DATABASE_FILE" envDefault:"tweetbook.db"`
	PepperFile   string `env:"AUTH_PEPPER_FILE" envDefault:"pepper"`

	LedgerBackend string `env:"AUTH_LEDGER_BACKEND" envDefault:"sqlite"`
	RedisAddr     string `env:"AUTH_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"AUTH_REDIS_PASSWORD"`
	RedisDB       int    `env:"AUTH_REDIS_DB" envDefault:"0"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (Config, error) {
	return LoadConfigWithOptions(env.Options{})
}

// LoadConfigWithOptions is LoadConfig with caller supplied env options, used
// by tests to pass a fixed environment.
func LoadConfigWithOptions(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.KeyStorageMode = strings.ToLower(strings.TrimSpace(cfg.KeyStorageMode))
	cfg.LedgerBackend = strings.ToLower(strings.TrimSpace(cfg.LedgerBackend))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be 1-65535, got %d", c.Port))
	}
	if c.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_ACCESS_TOKEN_TTL must be positive"))
	}
	if c.RefreshTokenTTL <= c.AccessTokenTTL {
		errs = append(errs, errors.New("AUTH_REFRESH_TOKEN_TTL must be longer than AUTH_ACCESS_TOKEN_TTL"))
	}
	if c.ShutdownGracePeriod < 0 || c.RequestTimeout < 0 {
		errs = append(errs, errors.New("SHUTDOWN_GRACE_PERIOD and REQUEST_TIMEOUT must not be negative"))
	}

	switch c.KeyStorageMode {
	case KeyStoragePersistent:
		if c.JWTSecret == "" && c.SecretFile == "" {
			errs = append(errs, errors.New("persistent key storage needs AUTH_JWT_SECRET or AUTH_SECRET_FILE"))
		}
	case KeyStorageEphemeral:
	default:
		errs = append(errs, fmt.Errorf("AUTH_KEY_STORAGE_MODE must be %q or %q, got %q",
			KeyStoragePersistent, KeyStorageEphemeral, c.KeyStorageMode))
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < jwtx.MinSecretLength {
		errs = append(errs, fmt.Errorf("AUTH_JWT_SECRET must be at least %d bytes", jwtx.MinSecretLength))
	}

	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("AUTH_DATABASE_FILE is required"))
	}
	if c.PepperFile == "" {
		errs = append(errs, errors.New("AUTH_PEPPER_FILE is required"))
	}

	switch c.LedgerBackend {
	case LedgerSQLite:
	case LedgerRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("AUTH_REDIS_ADDR is required for the redis ledger"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_LEDGER_BACKEND must be %q or %q, got %q",
			LedgerSQLite, LedgerRedis, c.LedgerBackend))
	}

	return errors.Join(errs...)
}
