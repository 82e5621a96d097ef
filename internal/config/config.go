package config

import (
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Identity resolution policies for requests without a bearer token.
const (
	AuthModeStrict  = "strict"
	AuthModeDefault = "default"
)

// Supported store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Env     string `env:"ENV" env-default:"development"`
	Port    string `env:"PORT" env-default:"5000"`
	LogFile string `env:"LOG_FILE"`

	// Database
	DBDriver   string `env:"DB_DRIVER" env-default:"sqlite"`
	SQLitePath string `env:"FIN_APP_DB" env-default:"fin_app.db"`
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"finapp"`
	DBPassword string `env:"DB_PASSWORD" env-default:"finapp"`
	DBName     string `env:"DB_NAME" env-default:"finapp"`
	DBSSLMode  string `env:"DB_SSLMODE" env-default:"disable"`

	// JWT
	JWTSecret        string        `env:"JWT_SECRET" env-default:"dev-secret"`
	JWTIssuer        string        `env:"JWT_ISSUER" env-default:"fin-app"`
	JWTExpirationDur time.Duration `env:"JWT_EXPIRES_IN" env-default:"8h"`

	// Identity
	AuthMode     string `env:"AUTH_MODE" env-default:"strict"`
	DemoEmail    string `env:"DEMO_EMAIL" env-default:"demo@finapp.local"`
	DemoPassword string `env:"DEMO_PASSWORD" env-default:"demo1234"`
	BcryptCost   int    `env:"BCRYPT_COST" env-default:"10"`

	// Auth endpoint throttling, per client IP
	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT" env-default:"5"`
	AuthRateBurst int     `env:"AUTH_RATE_BURST" env-default:"10"`

	// Proxies whose X-Forwarded-For is believed. Empty means the peer
	// address is the client IP.
	TrustedProxies []string `env:"TRUSTED_PROXIES" env-separator:","`
}

// Load loads configuration from environment variables, after merging a .env file if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q: must be a number between 1 and 65535", c.Port)
	}

	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("FIN_APP_DB cannot be empty when DB_DRIVER is %q", DriverSQLite)
		}
	case DriverPostgres:
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: must be %q or %q", c.DBDriver, DriverSQLite, DriverPostgres)
	}

	switch c.AuthMode {
	case AuthModeStrict, AuthModeDefault:
	default:
		return fmt.Errorf("invalid AUTH_MODE %q: must be %q or %q", c.AuthMode, AuthModeStrict, AuthModeDefault)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.JWTExpirationDur <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive, got %v", c.JWTExpirationDur)
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}

	if c.AuthRateLimit <= 0 || c.AuthRateBurst <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive")
	}

	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("invalid TRUSTED_PROXIES entry %q: must be an IP or CIDR", proxy)
			}
		}
	}
	return nil
}

// DefaultIdentityEnabled reports whether unauthenticated requests fall back to the demo user.
func (c *Config) DefaultIdentityEnabled() bool {
	return c.AuthMode == AuthModeDefault
}
