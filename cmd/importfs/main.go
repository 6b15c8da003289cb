// Command importfs copies the catalog of the old Firestore-backed store into
// the relational database. Re-running it skips products that already exist.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/cache"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/config"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/legacy"
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
	pkgcfg.MustHave(map[string]string{
		"DATABASE_URL":        cfg.DatabaseURL,
		"FIREBASE_PROJECT_ID": cfg.FirebaseProjectID,
	})

	logger := logging.New(cfg.LogLevel).With("service", "importfs")
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("import_failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
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

	src, err := legacy.NewFirestoreSource(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
	if err != nil {
		return fmt.Errorf("firestore: %w", err)
	}
	defer src.Close()

	store := &repo.GormRepo{DB: db}
	imp := &service.ImportService{
		Repo: store,
		Names: &service.CategoryNames{
			Repo:     store,
			Notifier: &cache.PGNotifier{DB: db, Channel: cfg.NotifyChannel},
		},
		Source: src,
	}

	res, err := imp.Import(ctx)
	if err != nil {
		return err
	}
	logger.Info("import_done",
		"categories", res.Categories,
		"products", res.Products,
		"skipped", res.Skipped,
		"unresolved", res.Unresolved,
	)
	return nil
}
