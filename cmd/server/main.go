package main

import (
	"context"
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

	"github.com/rasyidf/hustleflow/internal/catalog"
	"github.com/rasyidf/hustleflow/internal/config"
	"github.com/rasyidf/hustleflow/internal/db"
	"github.com/rasyidf/hustleflow/internal/estimates"
	"github.com/rasyidf/hustleflow/internal/logging"
	"github.com/rasyidf/hustleflow/internal/migrations"
	"github.com/rasyidf/hustleflow/internal/parameter"
	"github.com/rasyidf/hustleflow/internal/seed"
	"github.com/rasyidf/hustleflow/internal/settings"
)

type server struct {
	logger     *zap.Logger
	settings   *settings.Store
	parameters parameter.Catalog
	items      *catalog.Catalog
	estimates  *estimates.Repository
}

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := migrations.Up(ctx, database); err != nil {
		return fmt.Errorf("run database migrations: %w", err)
	}
	version, err := migrations.Version(ctx, database)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	stats, err := seed.Run(ctx, database, seed.Config{
		Namespace:       cfg.SettingsNamespace,
		Currency:        cfg.DefaultCurrency,
		DefaultBaseRate: cfg.DefaultBaseRate,
	})
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	logger.Info("database ready",
		zap.String("path", cfg.DBPath),
		zap.Int64("schema_version", version),
		zap.Int("seed_inserts", stats.Inserts))

	items, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load item catalog: %w", err)
	}
	parameters := parameter.DefaultCatalog()
	if err := parameters.Validate(); err != nil {
		return fmt.Errorf("validate parameter catalog: %w", err)
	}

	store, err := settings.Open(ctx, settings.NewSQLitePersister(database, cfg.SettingsNamespace), logger.Named("settings"))
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	srv := &server{
		logger:     logger,
		settings:   store,
		parameters: parameters,
		items:      items,
		estimates:  estimates.NewRepository(database),
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.Env))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/parameters", s.handleParameters)
		r.Get("/items", s.handleItems)
		r.Post("/quote", s.handleQuote)
		r.Post("/quote/summary", s.handleQuoteSummary)
		r.Get("/settings", s.handleSettingsGet)
		r.Patch("/settings", s.handleSettingsPatch)
		r.Post("/estimates", s.handleEstimatesCreate)
		r.Get("/estimates", s.handleEstimatesList)
		r.Get("/estimates/{id}", s.handleEstimateDetail)
	})
	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request completed",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("latency", time.Since(start)))
		}()
		next.ServeHTTP(ww, r)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
