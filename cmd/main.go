/*
Package main is the entry point for the Carrot Market API server.

It loads configuration, initializes the global logger, connects the Postgres pool,
Redis, NATS and object storage, starts the live-room hub, serves the HTTP router and
shuts everything down in order on SIGINT or SIGTERM.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"carrot/internal/app/cache"
	"carrot/internal/app/db"
	dbc "carrot/internal/app/db/sqlc"
	"carrot/internal/app/live"
	"carrot/internal/app/mail"
	"carrot/internal/app/revalidate"
	"carrot/internal/app/storage"
	"carrot/internal/configs"
	"carrot/internal/handler"
	"carrot/internal/pkg/logx"
	"carrot/internal/pkg/metrics"
	"carrot/internal/pkg/session"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	dev := cfg.IsDevelopment()
	logx.InitGlobalLogger(dev)
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("redis", cfg.RedisURL != "").
		Bool("nats", cfg.NatsURL != "").
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to connect to Postgres")
	}
	defer pool.Close()

	var (
		sessionBackend session.Backend
		pageCache      cache.Cache
		redisClient    *redis.Client
	)
	if cfg.RedisURL != "" {
		redisClient, err = db.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logx.Fatal(err, "Failed to connect to Redis")
		}
		defer redisClient.Close()

		sessionBackend = session.NewRedisBackend(redisClient)
		pageCache = cache.NewRedisCache(redisClient)
	} else {
		logx.Warn("REDIS_URL not set; sessions and page cache are kept in memory")
		sessionBackend = session.NewMemoryBackend()
		pageCache = cache.NewMemoryCache()
	}

	var publisher revalidate.Publisher
	if cfg.NatsURL != "" {
		nc, err := revalidate.Connect(cfg.NatsURL)
		if err != nil {
			logx.Fatal(err, "Failed to connect to NATS")
		}
		defer nc.Drain()
		publisher = nc
	}

	store, err := storage.NewStorageService(ctx, storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
		AssetBaseURL:      cfg.AssetBaseURL,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize object storage")
	}

	var mailer mail.Mailer = mail.LogMailer{}
	if cfg.SendGridAPIKey != "" {
		mailer = mail.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFrom)
	}

	m := metrics.New()
	hub := live.NewHub(m)

	deps := &handler.AppDeps{
		Config:      cfg,
		DB:          dbc.New(pool),
		Storage:     store,
		Mailer:      mailer,
		Cache:       pageCache,
		Revalidator: revalidate.New(pageCache, publisher),
		Hub:         hub,
		Metrics:     m,
		Sessions:    session.NewStore(sessionBackend, cfg.SessionTTL, !dev, []byte(cfg.SessionSecret)),
	}

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           handler.Router(ctx, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Carrot Market API starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	hub.Shutdown()

	logx.Info("Server gracefully stopped.")
}
