package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kelleauto/dealership-backend/internal/app"
	"github.com/kelleauto/dealership-backend/internal/auth"
	"github.com/kelleauto/dealership-backend/internal/config"
	"github.com/kelleauto/dealership-backend/internal/db"
	"github.com/kelleauto/dealership-backend/internal/logger"
	"github.com/kelleauto/dealership-backend/internal/pkg/storage"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logger.Setup(cfg.LogLevel, cfg.IsProduction())

	if cfg.DBAutoMigrate {
		if err := db.Migrate(cfg.DBDSN); err != nil {
			logrus.Fatalf("failed to migrate db: %v", err)
		}
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logrus.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	store, err := newStorage(cfg)
	if err != nil {
		logrus.Fatalf("failed to init storage: %v", err)
	}

	var revoker auth.Revoker
	if cfg.RedisURL != "" {
		redisRevoker, err := auth.NewRedisRevoker(ctx, cfg.RedisURL)
		if err != nil {
			logrus.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisRevoker.Close()
		revoker = redisRevoker
	} else {
		logrus.Warn("REDIS_URL not set, logouts are only remembered by this process")
	}

	container, err := app.NewContainer(app.Config{
		IsProduction:      cfg.IsProduction(),
		ProdOrigins:       cfg.ProdOrigins,
		DBPool:            pool,
		JWTSecret:         cfg.JWTSecret,
		JWTTTL:            cfg.JWTAccessTokenTTL,
		AdminPasswordHash: cfg.AdminPasswordHash,
		AdminPassword:     cfg.AdminPassword,
		BcryptCost:        cfg.BcryptCost,
		Revoker:           revoker,
		Storage:           store,
		ServeFiles:        cfg.StorageDriver == "local",
		MaxUploadBytes:    cfg.MaxUploadBytes,
	})
	if err != nil {
		logrus.Fatalf("failed to build app: %v", err)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		logrus.Infof("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logrus.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("server forced to shutdown: %v", err)
	}

	logrus.Info("server exited gracefully")
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageDriver == "s3" {
		return storage.NewS3Storage(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			UsePathStyle:    cfg.S3UsePathStyle,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
	}
	return storage.NewLocalStorage(cfg.StorageLocalPath, cfg.PublicFileBaseURL)
}
