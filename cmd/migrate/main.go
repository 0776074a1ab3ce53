package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MarshaBat/object-oriented/internal/config"
	"github.com/MarshaBat/object-oriented/internal/infrastructure/database"
	"github.com/MarshaBat/object-oriented/pkg/container"
	"github.com/MarshaBat/object-oriented/pkg/logger"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file to load before reading the environment")
	verify := flag.Bool("verify", true, "connect through the author service after migrating")
	flag.Parse()

	// Production uses the process environment
	envErr := godotenv.Load(*envFile)

	cfg, err := config.Load()
	if err != nil {
		logger.Init("development", "info")
		logger.Error("failed to load config", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envErr != nil {
		logger.Debug("no dotenv file, using system environment variables")
	}

	if err := run(cfg, *verify); err != nil {
		logger.Error("migration failed", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, verify bool) error {
	migrateLog := logger.Component("migrate")

	if err := database.RunMigrations(cfg.Database.DSN(), cfg.Migrations.Source, migrateLog); err != nil {
		return err
	}
	if !verify {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	c, err := container.NewContainer(ctx, cfg, logger.Component("author"))
	if err != nil {
		return err
	}
	defer c.Cleanup()

	authors, err := c.AuthorService.List(ctx)
	if err != nil {
		return err
	}

	logger.Info("author table is readable", map[string]interface{}{
		"authors":     len(authors),
		"environment": cfg.App.Environment,
	})
	return nil
}
