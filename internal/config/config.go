package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/MarshaBat/object-oriented/internal/domains/author/model"
	"github.com/MarshaBat/object-oriented/internal/infrastructure/database"
	"github.com/MarshaBat/object-oriented/pkg/password"
)

// Config holds the whole application configuration, populated from
// environment variables
type Config struct {
	App        AppConfig
	Database   *database.DBConfig
	Password   password.Params
	Migrations MigrationsConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	LogLevel    string
}

type MigrationsConfig struct {
	Source string
}

// Load reads the config from environment variables
func Load() (*Config, error) {
	db, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	params, err := loadPasswordParams()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "author-store"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: db,
		Password: params,
		Migrations: MigrationsConfig{
			Source: getEnv("MIGRATIONS_PATH", "file://migrations"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations that cannot work
func (c *Config) Validate() error {
	if c.App.Environment == "production" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD must be set in production")
	}

	if got := c.Password.EncodedLength(); got != model.CredentialHashLength {
		return fmt.Errorf("argon2 parameters produce %d character hashes, the author table stores %d",
			got, model.CredentialHashLength)
	}

	return nil
}

func loadPasswordParams() (password.Params, error) {
	params := password.DefaultParams()

	memory, err := getEnvUint("ARGON2_MEMORY", uint64(params.Memory), 32)
	if err != nil {
		return params, err
	}
	iterations, err := getEnvUint("ARGON2_ITERATIONS", uint64(params.Iterations), 32)
	if err != nil {
		return params, err
	}
	parallelism, err := getEnvUint("ARGON2_PARALLELISM", uint64(params.Parallelism), 8)
	if err != nil {
		return params, err
	}

	params.Memory = uint32(memory)
	params.Iterations = uint32(iterations)
	params.Parallelism = uint8(parallelism)
	return params, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvUint(key string, defaultValue uint64, bits int) (uint64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseUint(valueStr, 10, bits)
	if err != nil || value == 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, valueStr)
	}
	return value, nil
}
