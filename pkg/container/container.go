package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/MarshaBat/object-oriented/internal/config"
	"github.com/MarshaBat/object-oriented/internal/domains/author/repository"
	"github.com/MarshaBat/object-oriented/internal/domains/author/service"
	"github.com/MarshaBat/object-oriented/internal/infrastructure/database"
	"github.com/MarshaBat/object-oriented/pkg/password"
)

// Container is the root of the dependency graph: config, pool, repository
// and service, built in that order.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB

	AuthorRepo    repository.RepositoryInterface
	AuthorService service.ServiceInterface

	logger zerolog.Logger
}

// NewContainer connects to the database described by cfg and wires the
// author repository and service on top of the pool.
func NewContainer(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		logger: logger,
	}

	db := database.NewPostgresDB(cfg.Database, logger)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	c.initRepositories()
	c.initServices(db.Pool)

	logger.Debug().Str("environment", cfg.App.Environment).Msg("container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	c.AuthorRepo = repository.NewPostgresRepository(c.logger)
}

func (c *Container) initServices(db service.DB) {
	c.AuthorService = service.NewAuthorService(
		db,
		c.AuthorRepo,
		password.NewArgon2iHasher(c.Config.Password),
		c.logger,
	)
}

// Cleanup releases the pool
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
}
