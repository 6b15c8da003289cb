package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/cache"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/config"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/repo"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/service"
	pkgcfg "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/config"
	pkgdb "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/db"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	pkgcfg.MustHave(map[string]string{"DATABASE_URL": cfg.DatabaseURL})

	logger := logging.New(cfg.LogLevel).With("service", "seed")
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("seed_failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logging.IntoContext(ctx, logger)

	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer pkgdb.Close(db)

	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("db migrate: %w", err)
	}

	store := &repo.GormRepo{DB: db}
	seed := &service.SeedService{
		Repo: store,
		Names: &service.CategoryNames{
			Repo:     store,
			Notifier: &cache.PGNotifier{DB: db, Channel: cfg.NotifyChannel},
		},
	}

	res, err := seed.Migrate(ctx)
	if errors.Is(err, service.ErrAlreadySeeded) {
		logger.Info("seed_skipped", "reason", "catalog already has products")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("seed_done", "categories", res.Categories, "products", res.Products)
	return nil
}
