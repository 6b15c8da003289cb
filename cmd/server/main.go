package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/cache"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/config"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/events"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/firebaseauth"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/httpserver"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/mail"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/middleware/csrf"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/repo"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/search"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/service"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/authclient"
	pkgcfg "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/config"
	pkgdb "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/db"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
	authmw "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/middleware/auth"
	loggingmw "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	pkgcfg.MustHave(map[string]string{
		"DATABASE_URL":       cfg.DatabaseURL,
		"JWT_SECRET":         string(cfg.JWTAccessSecret),
		"JWT_REFRESH_SECRET": string(cfg.JWTRefreshSecret),
	})

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := pkgdb.Open(openCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	store := &repo.GormRepo{DB: db}

	nameCache := cache.New[map[uint]string](cfg.CategoryCacheTTL)
	go nameCache.Run(ctx, time.Minute)
	names := &service.CategoryNames{
		Repo:     store,
		Cache:    nameCache,
		Notifier: &cache.PGNotifier{DB: db, Channel: cfg.NotifyChannel},
	}
	err = cache.Listen(ctx, cfg.DatabaseURL, cfg.NotifyChannel, logger, func(payload string) {
		logger.Debug("category_cache_invalidated", "payload", payload)
		names.Forget()
	})
	if err != nil {
		logger.Warn("notify_listener_failed", "reason", "category cache relies on ttl only", "error", err)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewProducer(cfg.KafkaBrokers)
	}
	defer publisher.Close()

	var index search.Index
	if cfg.ESURL != "" {
		client, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("search_disabled", "error", err)
		} else {
			index = &search.ESIndex{Client: client, Index: cfg.ESIndex}
		}
	}

	var verifier firebaseauth.Verifier
	if cfg.FirebaseProjectID != "" {
		v, err := firebaseauth.New(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Warn("firebase_disabled", "error", err)
		} else {
			verifier = v
		}
	}

	var mailer mail.Sender = mail.Nop{}
	if cfg.SendGridAPIKey != "" {
		mailer = mail.NewSendGridClient(cfg.SendGridAPIKey, cfg.MailFrom)
	}

	catalog := &service.CatalogService{Repo: store, Names: names, Events: publisher, Index: index}
	orders := &service.OrderService{Repo: store, Events: publisher}
	auth := &service.AuthService{
		Repo:          store,
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
		AdminEmails:   cfg.AdminEmails,
		Verifier:      verifier,
	}

	var refresher authmw.Refresher = auth
	if cfg.AuthHTTPURL != "" {
		refresher = authclient.NewClient(cfg.AuthHTTPURL)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpserver.NewValidator()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-CSRF-Token"},
			ExposeHeaders:    []string{"X-CSRF-Token", echo.HeaderXRequestID},
			AllowCredentials: true,
		}))
	} else {
		e.Use(echomw.CORS())
	}
	if cfg.CSRFEnabled {
		csrfCfg := csrf.DefaultConfig()
		csrfCfg.Secure = cfg.CookieSecure
		csrfCfg.TrustedOrigins = cfg.CORSOrigins
		csrfCfg.SkipPrefixes = []string{"/health"}
		e.Use(csrf.Middleware(csrfCfg))
	}

	httpserver.Register(e, &httpserver.Deps{
		Catalog:  &httpserver.CatalogHTTP{Svc: catalog},
		Cart:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: store, Events: publisher}},
		Orders:   &httpserver.OrderHTTP{Svc: orders},
		Wishlist: &httpserver.WishlistHTTP{Svc: &service.WishlistService{Repo: store}},
		Auth:     &httpserver.AuthHTTP{Svc: auth},
		Account:  &httpserver.AccountHTTP{Svc: &service.AccountService{Repo: store}},
		Contact: &httpserver.ContactHTTP{Svc: &service.ContactService{
			Repo:   store,
			Mailer: mailer,
			Inbox:  cfg.ContactInbox,
		}},
		Admin: &httpserver.AdminHTTP{
			Catalog: catalog,
			Orders:  orders,
			Seed:    &service.SeedService{Repo: store, Names: names},
		},
		JWTSecret: cfg.JWTAccessSecret,
		Refresher: refresher,
		Ready:     store.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_failed", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close_failed", "error", err)
	}

	logger.Info("server_stopped")
}
