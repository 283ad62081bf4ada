package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayush2735/claynest-web-craft/internal/analytics"
	"github.com/ayush2735/claynest-web-craft/internal/cache"
	"github.com/ayush2735/claynest-web-craft/internal/cart"
	"github.com/ayush2735/claynest-web-craft/internal/catalog"
	"github.com/ayush2735/claynest-web-craft/internal/checkout"
	h "github.com/ayush2735/claynest-web-craft/internal/http"
	"github.com/ayush2735/claynest-web-craft/internal/inquiry"
	"github.com/ayush2735/claynest-web-craft/internal/orders"
	"github.com/ayush2735/claynest-web-craft/internal/presence"
	"github.com/ayush2735/claynest-web-craft/internal/publisher"
	"github.com/ayush2735/claynest-web-craft/internal/repository"
	"github.com/ayush2735/claynest-web-craft/internal/storage"
	"github.com/ayush2735/claynest-web-craft/pkg/circuitbreaker"
	"github.com/ayush2735/claynest-web-craft/pkg/config"
	"github.com/ayush2735/claynest-web-craft/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

const sessionPruneInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database setup
	creds := &repository.Credentials{
		Driver:            cfg.DBDriver,
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		DBName:            cfg.DBName,
		SQLitePath:        cfg.SQLitePath,
		MigrationsDirPath: cfg.MigrationsPath,
	}
	repo, err := repository.NewRepository(creds)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.RunMigrations(creds); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}
	zl.Info("database migrations completed", zap.String("driver", cfg.DBDriver))

	// Redis backs session carts and visitor presence
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		zl.Fatal("failed to connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}

	mongoDB, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		zl.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer func() {
		if err := storage.DisconnectMongoDB(mongoDB, 5*time.Second); err != nil {
			zl.Warn("mongodb disconnect failed", zap.Error(err))
		}
	}()

	sessions := cart.NewSessions(cache.NewRedisCache(rdb, cfg.SessionTTL), zl.Named("cart"))
	tracker := presence.NewTracker(rdb, cfg.PresenceTTL)
	images := storage.NewImageStore(mongoDB)

	catalogSvc := catalog.NewService(repo, zl.Named("catalog"))
	checkoutSvc := checkout.NewService(repo, repo, zl.Named("checkout"))
	inquirySvc := inquiry.NewService(repo, zl.Named("inquiry"))
	ordersSvc := orders.NewService(repo, zl.Named("orders"))
	analyticsSvc := analytics.NewService(repo, repo, tracker)

	// Outbox publisher
	breaker := circuitbreaker.New(circuitbreaker.Settings{Name: "kafka-order-events"}, zl)
	poller := publisher.NewOutboxPoller(repo, breaker, zl.Named("outbox"), cfg.OrderEventsTopic, cfg.Brokers()...)
	defer poller.Close()
	go poller.Run(ctx)

	go func() {
		ticker := time.NewTicker(sessionPruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := sessions.Prune(cfg.SessionTTL); n > 0 {
					zl.Debug("pruned idle carts", zap.Int("count", n))
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	handlers := h.Handlers{
		Products:  h.NewProductHandler(catalogSvc, cfg.RequestTimeout, zl),
		Cart:      h.NewCartHandler(sessions, catalogSvc, cfg.RequestTimeout, zl),
		Checkout:  h.NewCheckoutHandler(sessions, checkoutSvc, cfg.RequestTimeout, zl),
		Inquiries: h.NewInquiryHandler(inquirySvc, cfg.RequestTimeout, zl),
		Presence:  h.NewPresenceHandler(tracker, zl),
		Images:    h.NewImageHandler(images, cfg.RequestTimeout, zl),
		Admin:     h.NewAdminHandler(catalogSvc, ordersSvc, inquirySvc, analyticsSvc, cfg.RequestTimeout, zl),
	}

	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: h.NewRouter(handlers, h.RouterConfig{
			RequestTimeout: cfg.RequestTimeout,
			SessionTTL:     cfg.SessionTTL,
			AdminSecret:    []byte(cfg.AdminJWTSecret),
			Logger:         zl.Named("http"),
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zl.Info("storefront starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	zl.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}
	zl.Info("server exited")
}
