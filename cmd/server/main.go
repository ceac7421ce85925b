package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/steam.works/internal/chat"
	"github.com/Simplici0/steam.works/internal/config"
	"github.com/Simplici0/steam.works/internal/contracts"
	"github.com/Simplici0/steam.works/internal/db"
	"github.com/Simplici0/steam.works/internal/logging"
	"github.com/Simplici0/steam.works/internal/migrations"
	"github.com/Simplici0/steam.works/internal/seed"
)

type server struct {
	db        *sql.DB
	contracts *contracts.Store
	chat      *chat.Service
	logger    *zap.Logger
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server stopped: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.IsDev(),
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(ctx, database); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}
	if version, err := migrations.Version(ctx, database); err != nil {
		logger.Warn("schema version unavailable", zap.Error(err))
	} else {
		logger.Info("database ready", zap.String("path", cfg.DBPath), zap.Int64("schema_version", version))
	}

	if cfg.SeedDemo {
		stats, err := seed.Run(ctx, database)
		if err != nil {
			return fmt.Errorf("failed to seed demo contracts: %w", err)
		}
		logger.Info("demo contracts seeded", zap.Int("inserts", stats.Inserts))
	}

	var gen chat.Generator
	if cfg.ChatEnabled() {
		g, err := chat.NewGenAIGenerator(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
		if err != nil {
			return fmt.Errorf("failed to create chat model client: %w", err)
		}
		logger.Info("chat enabled", zap.String("model", g.Model()))
		gen = g
	} else {
		logger.Warn("GENAI_API_KEY is not set, chat is disabled")
	}

	srv := &server{
		db:        database,
		contracts: contracts.NewStore(database),
		chat:      chat.NewService(gen, cfg.ChatMaxChars, logger.Named("chat")),
		logger:    logger,
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.AppEnv))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/price", s.handlePrice)
		r.Post("/price/text", s.handlePriceText)
		r.Post("/price/sensitivity", s.handleSensitivity)

		r.Post("/revenue-sharing", s.handleRevenueSharing)
		r.Post("/revenue-sharing/text", s.handleRevenueSharingText)
		r.Post("/revenue-sharing/savings", s.handleSavingsSplit)

		r.Get("/contracts", s.handleContractsList)
		r.Post("/contracts", s.handleContractCreate)
		r.Get("/contracts/{id}", s.handleContractGet)
		r.Put("/contracts/{id}", s.handleContractUpdate)
		r.Delete("/contracts/{id}", s.handleContractDelete)
		r.Get("/contracts/{id}/text", s.handleContractText)

		r.Post("/chat", s.handleChat)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
