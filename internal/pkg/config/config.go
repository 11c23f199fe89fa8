package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
	DriverBolt   = "bolt"
)

type Config struct {
	Port     string `env:"PORT,      default=8090"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Storage StorageConfig
	Session SessionConfig
}

// BackendConfig points at the appointment platform REST service.
type BackendConfig struct {
	APIBaseURL  string `env:"API_BASE_URL,  default=http://localhost:8080/api"`
	AuthBaseURL string `env:"AUTH_BASE_URL, default=http://localhost:8080/api/auth"`
}

type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER, default=memory"`

	RedisAddr string `env:"REDIS_ADDR, default=localhost:6379"`
	RedisDB   int    `env:"REDIS_DB,   default=0"`

	MongoURI string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB,  default=appointment_portal"`

	BoltPath string `env:"BOLT_PATH, default=portal-state.db"`
}

type SessionConfig struct {
	CookieSecure    bool          `env:"SESSION_COOKIE_SECURE, default=false"`
	TTL             time.Duration `env:"SESSION_TTL,           default=24h"`
	LoginRatePerSec float64       `env:"LOGIN_RATE_PER_SEC,    default=1"`
	LoginBurst      int           `env:"LOGIN_BURST,           default=5"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	switch cfg.Storage.Driver {
	case DriverMemory, DriverRedis, DriverMongo, DriverBolt:
	default:
		return nil, fmt.Errorf("config: unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	return &cfg, nil
}

// MustLoad is Load for main packages.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(err)
	}
	return cfg
}
