package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"

	"github.com/sebuszqo/BeBetterWeb/internal/auth"
	"github.com/sebuszqo/BeBetterWeb/internal/config"
	database "github.com/sebuszqo/BeBetterWeb/internal/db"
	"github.com/sebuszqo/BeBetterWeb/internal/logging"
	"github.com/sebuszqo/BeBetterWeb/internal/reference/application"
	"github.com/sebuszqo/BeBetterWeb/internal/reference/infrastructure"
	"github.com/sebuszqo/BeBetterWeb/internal/reference/interfaces"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.WithError(err).Fatal("Server stopped with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logCloser, err := logging.InitLogger(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbService, err := database.NewDBService(ctx, database.Options{
		ConnectionString: cfg.DBConnectionString,
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetime:  cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer dbService.Close()

	if cfg.DBAutoMigrate {
		log.Info("Creating reference tables if missing")
		if err := infrastructure.EnsureSchema(ctx, dbService.DB); err != nil {
			return err
		}
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWTSecret)
	if err != nil {
		return err
	}

	referenceCache := application.NewReferenceCache(
		infrastructure.NewCategoryRepository(dbService.DB),
		infrastructure.NewTagRepository(dbService.DB),
		application.CacheConfig{
			RefreshInterval: cfg.ReferenceRefreshInterval,
			FetchTimeout:    cfg.ReferenceFetchTimeout,
		},
	)
	referenceCache.Initialize(ctx)
	defer referenceCache.Destroy()

	server := NewServer(
		interfaces.NewCategoryHandler(referenceCache, respondJSON, respondError),
		interfaces.NewTagHandler(referenceCache, respondJSON, respondError),
		interfaces.NewStatusHandler(referenceCache, respondJSON, respondError),
		jwtManager,
		cfg.RefreshAllowedRoles,
		dbService,
	)
	server.RegisterRoutes()

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}
