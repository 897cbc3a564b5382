package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/caarlos0/env/v11"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	JWTSecret      string `env:"AUTH_JWT_SECRET,required,notEmpty"`     // Required: HS256 signing secret, at least 32 bytes
	EncryptionKey  string `env:"AUTH_ENCRYPTION_KEY,required,notEmpty"` // Required: envelope key for sealed payloads
	Issuer         string `env:"AUTH_ISSUER" envDefault:"storefront-auth"`
	BootstrapToken string `env:"BOOTSTRAP_TOKEN"` // Optional: token required to perform bootstrap

	SessionTTL      time.Duration `env:"AUTH_SESSION_TTL"      envDefault:"720h"`
	VerificationTTL time.Duration `env:"AUTH_VERIFICATION_TTL" envDefault:"24h"`
	ResetTTL        time.Duration `env:"AUTH_RESET_TTL"        envDefault:"1h"`

	DatabaseDriver string `env:"AUTH_DATABASE_DRIVER" envDefault:"sqlite"`  // sqlite or postgres
	DatabaseFile   string `env:"AUTH_DATABASE_FILE"   envDefault:"auth.db"` // sqlite only
	DatabaseURL    string `env:"AUTH_DATABASE_URL"`                         // postgres only
	PepperFile     string `env:"AUTH_PEPPER_FILE"     envDefault:"pepper"`

	Env                 string        `env:"ENV"                   envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig reads the configuration from the environment. A missing
// signing secret or encryption key is a startup error.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	var errs []error

	if len(c.JWTSecret) < jwtx.MinSecretLength {
		errs = append(errs, fmt.Errorf("AUTH_JWT_SECRET must be at least %d bytes", jwtx.MinSecretLength))
	}
	if c.EncryptionKey == "" {
		errs = append(errs, errors.New("AUTH_ENCRYPTION_KEY is required"))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_FILE is required for sqlite"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	if c.SessionTTL <= 0 || c.VerificationTTL <= 0 || c.ResetTTL <= 0 {
		errs = append(errs, errors.New("token TTLs must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}

	return errors.Join(errs...)
}
