package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"icebreak/internal/app"
	"icebreak/internal/config"
	"icebreak/internal/logging"
	"icebreak/internal/transport/rest"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// @title Icebreak API
// @version 1.0
// @description Opener generation and hybrid confidence scoring
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
	logger.Info("server exited")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("llm config",
		zap.String("provider", cfg.AI.Provider),
		zap.String("generation_model", cfg.AI.Models.Generation),
		zap.String("score_model", cfg.AI.Models.Score),
		zap.String("extract_model", cfg.AI.Models.Extract),
		zap.Bool("api_key_configured", cfg.AI.IsEnabled()),
	)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.Redis != nil {
		logger.Info("connected to Redis", zap.String("addr", cfg.RedisAddr()))
	} else {
		logger.Warn("REDIS_URI not set, history and library endpoints disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           rest.NewRouter(a.Container()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	// hijacked websocket connections are not closed by Shutdown
	srv.RegisterOnShutdown(a.WSHub.Shutdown)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
