package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"

	LockLocal = "local"
	LockRedis = "redis"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	StoreBackend string `envconfig:"STORE_BACKEND" default:"memory"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	SnapshotPath          string `envconfig:"SNAPSHOT_PATH" default:"data/atelier.json"`
	SnapshotFlushSchedule string `envconfig:"SNAPSHOT_FLUSH_SCHEDULE" default:"*/30 * * * * *"`

	LockBackend   string        `envconfig:"LOCK_BACKEND" default:"local"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	LockTTL       time.Duration `envconfig:"LOCK_TTL" default:"10s"`

	OrderTransitionPolicy string `envconfig:"ORDER_TRANSITION_POLICY" default:"strict"`
	StockAuditSchedule    string `envconfig:"STOCK_AUDIT_SCHEDULE" default:"0 */10 * * * *"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads the process environment. Callers load .env first.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("STORE_BACKEND: unknown backend %q", c.StoreBackend)
	}

	switch c.LockBackend {
	case LockLocal, LockRedis:
	default:
		return fmt.Errorf("LOCK_BACKEND: unknown backend %q", c.LockBackend)
	}

	if c.LockTTL <= 0 {
		return fmt.Errorf("LOCK_TTL: must be positive, got %s", c.LockTTL)
	}
	return nil
}

// DSN is the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}
