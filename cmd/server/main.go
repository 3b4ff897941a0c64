// @title           notig API
// @version         1.0
// @description     Note-taking backend: accounts, cookie sessions, styled notes and PDF export.
// @host            localhost:3003
// @schemes         http https
// @BasePath        /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"notig/internal/api"
	"notig/internal/config"
	"notig/internal/database"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	base, err := newLogger(cfg.Log)
	if err != nil {
		panic("cannot initialize zap logger: " + err.Error())
	}
	defer base.Sync()
	logger := base.Sugar()

	if err := cfg.Validate(); err != nil {
		logger.Fatalw("invalid config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.Open(ctx, cfg.DB.Source, cfg.DB.MaxConns)
	if err != nil {
		logger.Fatalw("cannot connect to database", "error", err)
	}
	logger.Infow("connected to database", "max_conns", cfg.DB.MaxConns)

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		logger.Fatalw("cannot apply migrations", "error", err)
	}

	store := database.NewStore(pool)
	defer store.Close()

	server := api.NewServer(cfg, store, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("starting server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			store.Close()
			logger.Fatalw("server failed", "error", err)
		}
	case <-ctx.Done():
		logger.Infow("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("graceful shutdown failed", "error", err)
	}
	logger.Infow("server stopped")
}
