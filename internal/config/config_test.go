package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarshaBat/object-oriented/pkg/password"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, "file://migrations", cfg.Migrations.Source)
	assert.Equal(t, password.DefaultParams(), cfg.Password)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("DB_MAX_CONNECTIONS", "20")
	t.Setenv("DB_RETRY_DELAY", "250ms")
	t.Setenv("MIGRATIONS_PATH", "/srv/migrations")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.RetryDelay)
	assert.Equal(t, "/srv/migrations", cfg.Migrations.Source)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"port", map[string]string{"DB_PORT": "postgres"}, "invalid DB_PORT"},
		{"duration", map[string]string{"DB_CONNECT_TIMEOUT": "ten"}, "invalid DB_CONNECT_TIMEOUT"},
		{"pool bounds", map[string]string{"DB_MIN_CONNECTIONS": "30"}, "exceeds DB_MAX_CONNECTIONS"},
		{"production without password", map[string]string{"APP_ENV": "production"}, "DB_PASSWORD must be set"},
		{"argon2 parallelism", map[string]string{"ARGON2_PARALLELISM": "0"}, "invalid ARGON2_PARALLELISM"},
		{"argon2 overflow", map[string]string{"ARGON2_PARALLELISM": "300"}, "invalid ARGON2_PARALLELISM"},
		{"hash length", map[string]string{"ARGON2_MEMORY": "65536"}, "argon2 parameters produce 98 character hashes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoad_SameLengthArgon2Params(t *testing.T) {
	t.Setenv("ARGON2_MEMORY", "4096")
	t.Setenv("ARGON2_ITERATIONS", "128")
	t.Setenv("ARGON2_PARALLELISM", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint32(4096), cfg.Password.Memory)
	assert.Equal(t, uint32(128), cfg.Password.Iterations)
	assert.Equal(t, uint8(4), cfg.Password.Parallelism)
}
