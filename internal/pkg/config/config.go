package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Supported STORE_DRIVER values.
const (
	StoreMemory   = "memory"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Supported SESSION_STORE values.
const (
	SessionsMemory = "memory"
	SessionsRedis  = "redis"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// Fixtures enables serving FixturesDir under /pruebas.
	Fixtures    bool   `env:"PRUEBAS,      default=false"`
	FixturesDir string `env:"FIXTURES_DIR, default=./pruebas"`
	PublicDir   string `env:"PUBLIC_DIR,   default=./public"`

	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:5173"`

	// AccountsFile points to a YAML account table; empty uses the built-in accounts.
	AccountsFile string `env:"ACCOUNTS_FILE"`
	StoreDriver  string `env:"STORE_DRIVER, default=memory"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	SQL     SQLConfig
}

type SessionConfig struct {
	Store  string        `env:"SESSION_STORE,  default=memory"`
	Secret string        `env:"SESSION_SECRET, default=abc123"`
	Cookie string        `env:"SESSION_COOKIE, default=decisiones.sid"`
	TTL    time.Duration `env:"SESSION_TTL,    default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=decisiones"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SQLConfig struct {
	DSN string `env:"SQL_DSN, default=file:decisiones.db?_pragma=busy_timeout(5000)"`
}

// Production reports whether the service runs with ENV=production.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// Validate rejects unknown driver names and unusable session settings.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreMongo, StorePostgres, StoreSQLite:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.Session.Store {
	case SessionsMemory, SessionsRedis:
	default:
		return fmt.Errorf("config: unknown SESSION_STORE %q", c.Session.Store)
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("config: SESSION_SECRET must not be empty")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
