package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"collab-escrow/internal/adapter/http"
	"collab-escrow/internal/adapter/memory"
	"collab-escrow/internal/adapter/postgres"
	"collab-escrow/internal/adapter/stream"
	"collab-escrow/internal/adapter/usecase"
	"collab-escrow/internal/config"
	"collab-escrow/internal/core/port"
	"collab-escrow/internal/db"
)

// main is the entry point of the escrow ledger service. It loads
// configuration, optionally runs database migrations, initializes the
// selected store, then starts the HTTP server and, for Postgres, the event
// listener. On receiving a termination signal it gracefully shuts down.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger := cfg.Log.New(os.Stdout, cfg.Env)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	hub := stream.NewHub()
	g, gctx := errgroup.WithContext(ctx)

	var repo port.EscrowRepository
	if cfg.Ledger.UseMemory() {
		logger.Warn("using in-memory store, state is lost on exit")
		repo = memory.NewEscrowRepository(memory.WithAppendHook(hub.Notify))
	} else {
		// Migrations run before the pool is opened.
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				logger.Error("migration error", slog.Any("error", err))
				return
			}
			logger.Info("migrations applied successfully")
		}

		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			logger.Error("database connection error", slog.Any("error", err))
			return
		}
		defer pool.Close()
		repo = postgres.NewEscrowRepository(pool)

		listener, err := postgres.NewEventListener(cfg.Psql.Addr.String(), logger)
		if err != nil {
			logger.Error("event listener error", slog.Any("error", err))
			return
		}
		g.Go(func() error { return listener.Run(gctx, hub.Notify) })
	}

	svc := usecase.NewEscrowUseCase(repo, cfg.Ledger.Treasury, logger)
	if cfg.Psql.Seed {
		if err = db.Seed(ctx, svc); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo data seeded")
		}
	}

	handler := httpadapter.NewHandler(svc, hub, logger, cfg.Ledger.StreamPoll)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	g.Go(func() error {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
			return err
		}
		logger.Info("server gracefully stopped")
		return nil
	})

	if err = g.Wait(); err != nil {
		logger.Error("server error", slog.Any("error", err))
		return
	}
	exitCode = 0
}
