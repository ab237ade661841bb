package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/tasksync/internal/config"
	"github.com/iudanet/tasksync/internal/server/derive"
	"github.com/iudanet/tasksync/internal/server/handlers"
	"github.com/iudanet/tasksync/internal/server/middleware"
	"github.com/iudanet/tasksync/internal/server/realtime"
	"github.com/iudanet/tasksync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Logging.Level,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	// Realtime hub и worker пересчета прогресса живут все время работы сервера
	hub := realtime.NewHub(logger, realtime.Config{
		MaxSessionsPerUser: cfg.Realtime.MaxSessionsPerUser,
		WriteWait:          cfg.Realtime.WriteWait,
		PongWait:           cfg.Realtime.PongWait,
		PingPeriod:         cfg.Realtime.PingPeriod,
	})
	go hub.Run()
	defer hub.Stop()

	progress := derive.NewWorker(logger, store, hub)
	go progress.Run()
	defer progress.Stop()

	jwtCfg := handlers.JWTConfig{
		Secret:         []byte(cfg.JWT.Secret),
		AccessTokenTTL: cfg.JWT.AccessTokenTTL,
	}

	syncHandler := handlers.NewSyncHandler(logger, store, hub, progress)
	resolveHandler := handlers.NewResolveHandler(logger, store, hub)
	authHandler := handlers.NewAuthHandler(logger, store, jwtCfg)
	healthHandler := handlers.NewHealthHandler(logger, Version)
	wsHandler := handlers.NewWSHandler(logger, hub)

	authMW := middleware.AuthMiddleware(logger, jwtCfg)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/health", healthHandler.Health)

	// Auth эндпоинты под rate limit, чтобы не брутфорсили пароли
	registerH := http.HandlerFunc(authHandler.HandleRegister)
	loginH := http.HandlerFunc(authHandler.HandleLogin)
	if cfg.RateLimit.Enabled {
		rl := middleware.RateLimitMiddleware(cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
		mux.Handle("/api/v1/auth/register", rl(registerH))
		mux.Handle("/api/v1/auth/login", rl(loginH))
	} else {
		mux.Handle("/api/v1/auth/register", registerH)
		mux.Handle("/api/v1/auth/login", loginH)
	}

	mux.Handle("/api/v1/sync", authMW(http.HandlerFunc(syncHandler.HandleSync)))
	mux.Handle("/api/v1/resolve", authMW(http.HandlerFunc(resolveHandler.HandleResolve)))
	mux.Handle("/api/v1/ws", authMW(http.HandlerFunc(wsHandler.HandleWS)))

	handler := middleware.RecoveryMiddleware(logger)(
		middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(mux),
	)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("TaskSync server starting", "addr", cfg.Addr(), "version", Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

func printVersion() {
	fmt.Printf("TaskSync Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
