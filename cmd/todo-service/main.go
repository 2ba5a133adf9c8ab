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

	"todo-service/adapters/db"
	"todo-service/adapters/memory"
	"todo-service/adapters/rest/handlers"
	"todo-service/adapters/rest/middleware"
	"todo-service/config"
	"todo-service/core"
)

func main() {
	// config
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "todo-service configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	// logger
	log := mustMakeLogger(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

type stores struct {
	lists  core.ListStore
	tasks  core.TaskStore
	pinger core.Pinger
	close  func() error
}

func openStorage(ctx context.Context, cfg config.Config, log *slog.Logger) (stores, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		s := memory.New()
		return stores{lists: s, tasks: s, pinger: s, close: func() error { return nil }}, nil
	}

	storage, err := db.New(ctx, log, cfg.DB.Address, db.RetryPolicy{
		Attempts: cfg.DB.ConnectRetries,
		Delay:    cfg.DB.RetryDelay,
	})
	if err != nil {
		return stores{}, fmt.Errorf("failed to connect to db: %w", err)
	}

	if err := storage.Migrate(ctx); err != nil {
		_ = storage.Close()
		return stores{}, fmt.Errorf("failed to migrate db: %w", err)
	}

	return stores{lists: storage, tasks: storage, pinger: storage, close: storage.Close}, nil
}

func run(cfg config.Config, log *slog.Logger) error {
	log.Info("starting todo-service", "storage", cfg.Storage)

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			log.Error("failed to close storage", "error", err)
		}
	}()

	// services
	deps := handlers.Deps{
		Lists:   core.NewListService(st.lists),
		Tasks:   core.NewTaskService(st.lists, st.tasks),
		Storage: st.pinger,
	}

	mux := http.NewServeMux()
	handlers.Register(mux, log, deps, cfg.HTTP.Timeout)

	server := http.Server{
		Addr:              cfg.HTTP.Address,
		ReadHeaderTimeout: cfg.HTTP.Timeout,
		Handler:           middleware.Logging(log)(mux),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("todo-service http server is running", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped unexpectedly: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func mustMakeLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
