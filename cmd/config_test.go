package cmd

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, LockLocal, cfg.LockBackend)
	assert.Equal(t, 10*time.Second, cfg.LockTTL)
	assert.Equal(t, "strict", cfg.OrderTransitionPolicy)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "atelier")
	t.Setenv("DB_NAME", "atelier")
	t.Setenv("LOCK_BACKEND", "redis")
	t.Setenv("LOCK_TTL", "3s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, 3*time.Second, cfg.LockTTL)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "host=db port=5432 user=atelier password= dbname=atelier sslmode=disable", cfg.DSN())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"store backend": {"STORE_BACKEND", "sqlite"},
		"lock backend":  {"LOCK_BACKEND", "etcd"},
		"lock ttl":      {"LOCK_TTL", "0s"},
		"ttl syntax":    {"LOCK_TTL", "soon"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
