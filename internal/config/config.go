package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds everything the server reads from the environment.
type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	APIPort string `env:"API_PORT" envDefault:"8080"`

	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"`
	PGHost     string `env:"PG_HOST" envDefault:"localhost"`
	PGPort     string `env:"PG_PORT" envDefault:"5432"`
	PGUser     string `env:"PG_USER"`
	PGDB       string `env:"PG_DB"`
	PGPassword string `env:"PG_PASSWORD"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"airline.db"`

	RedisHost     string        `env:"REDIS_HOST"`
	RedisPort     string        `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"60s"`

	SendGridAPIKey    string `env:"SENDGRID_API_KEY"`
	SendGridBaseURL   string `env:"SENDGRID_BASE_URL" envDefault:"https://api.sendgrid.com"`
	SendGridFromEmail string `env:"SENDGRID_FROM_EMAIL" envDefault:"reservations@flightdesk.local"`

	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"20"`
	HTTPDebug      bool     `env:"HTTP_DEBUG" envDefault:"false"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://*,http://localhost:8081"`
}

// Load parses the environment into a Config and checks the few values that
// have a closed set of options.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return &cfg, nil
}

// PostgresDSN builds the connection string used by both GORM and sqlx.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PGUser, c.PGPassword),
		Host:     net.JoinHostPort(c.PGHost, c.PGPort),
		Path:     "/" + c.PGDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DebugHTTP reports whether request and response bodies may be dumped to the
// log. Never in production.
func (c *Config) DebugHTTP() bool {
	return c.HTTPDebug && !c.IsProduction()
}
