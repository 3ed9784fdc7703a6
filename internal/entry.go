// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/ansuz/internal/ai"
	"github.com/starford/ansuz/internal/api"
	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/dailylog"
	"github.com/starford/ansuz/internal/dedup"
	"github.com/starford/ansuz/internal/ledger"
	"github.com/starford/ansuz/internal/mcpserver"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/note"
	"github.com/starford/ansuz/internal/pipeline"
	"github.com/starford/ansuz/internal/selector"
	"github.com/starford/ansuz/internal/sse"
	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/watch"
)

// session holds the long-lived dependencies shared by every ingestion
// run: storage, the run ledger, and the AI services. The per-run state
// (processed set, selector, pipeline) is rebuilt on each run so that a
// run always reflects the vault's current contents.
type session struct {
	cfg         *Config
	logger      *slog.Logger
	store       *storage.FS
	db          *ledger.DB
	transcriber ai.Transcriber
	summarizer  ai.Summarizer
	broker      *sse.Broker

	// mu serializes runs; concurrent triggers wait their turn.
	mu sync.Mutex
}

func buildSession(opts ...Option) (*session, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("source_path", cfg.Source.Path),
		slog.String("ledger_path", cfg.Ledger.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Both roots must already exist; creating a vault or a memo source
	// on the user's behalf would only hide a misconfiguration.
	if info, err := os.Stat(cfg.Vault.Path); err != nil || !info.IsDir() {
		return nil, apperr.Tagf(apperr.ErrConfiguration, "vault directory does not exist: %s", cfg.Vault.Path)
	}
	if info, err := os.Stat(cfg.Source.Path); err != nil || !info.IsDir() {
		return nil, apperr.Tagf(apperr.ErrConfiguration, "voice memo directory does not exist: %s", cfg.Source.Path)
	}

	// Ensure the vault subfolders the pipeline writes into exist.
	for _, sub := range []string{cfg.Vault.AttachmentsFolder, cfg.Vault.DiaryFolder, cfg.Vault.NotesFolder} {
		if err := os.MkdirAll(filepath.Join(cfg.Vault.Path, sub), 0o755); err != nil {
			return nil, apperr.Tag(apperr.ErrConfiguration, fmt.Errorf("create vault folder %s: %w", sub, err))
		}
	}

	// Initialize storage.
	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	// Initialize run ledger.
	db, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return nil, fmt.Errorf("init ledger: %w", err)
	}

	s := &session{
		cfg:         cfg,
		logger:      logger,
		store:       store,
		db:          db,
		transcriber: app.transcriber,
		summarizer:  app.summarizer,
	}

	if s.transcriber == nil || s.summarizer == nil {
		svc := ai.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, logger,
			ai.WithTranscribeModel(cfg.OpenAI.TranscribeModel),
			ai.WithSummaryModel(cfg.OpenAI.SummaryModel))
		if s.transcriber == nil {
			s.transcriber = svc
		}
		if s.summarizer == nil {
			s.summarizer = svc
		}
	}

	return s, nil
}

func (s *session) close() {
	if err := s.db.Close(); err != nil {
		s.logger.Warn("close ledger", slog.String("error", err.Error()))
	}
}

// runOnce performs a full ingestion run: rebuild the processed set from
// the attachments folder, select new memos, and push each one through
// the pipeline. The outcome is recorded in the run ledger.
func (s *session) runOnce(ctx context.Context) (models.RunReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.cfg

	processed, err := dedup.Build(s.store, cfg.Vault.AttachmentsFolder, cfg.Source.Extension, s.logger)
	if err != nil {
		return models.RunReport{}, err
	}

	sel := selector.New(cfg.Source.Path, cfg.Source.Extension, cfg.Source.Floor(), s.logger)
	writer := note.NewWriter(s.store, cfg.Vault.AttachmentsFolder, cfg.Vault.NotesFolder, cfg.Source.Extension, time.Now)
	merger := dailylog.NewMerger(s.store, cfg.Vault.DiaryFolder)

	pipe := pipeline.New(sel, s.transcriber, s.summarizer, writer, merger, processed, s.logger)
	if s.broker != nil {
		pipe.OnOutcome = s.broker.PublishOutcome
	}

	report, runErr := pipe.Run(ctx)

	if id, err := s.db.RecordRun(report); err != nil {
		s.logger.Warn("record run", slog.String("error", err.Error()))
	} else {
		s.logger.Info("run recorded", slog.String("run_id", id))
	}

	if s.broker != nil {
		s.broker.PublishRun(report)
	}

	return report, runErr
}

// Run performs a single ingestion run and exits.
func Run(ctx context.Context, opts ...Option) error {
	s, err := buildSession(opts...)
	if err != nil {
		return err
	}
	defer s.close()

	report, err := s.runOnce(ctx)
	if err != nil {
		return err
	}

	// Per-memo failures are reported and ledgered, not fatal: the memo
	// stays unprocessed and the next run retries it.
	ingested, skipped, failed := report.Counts()
	s.logger.Info("Ingestion finished",
		slog.Int("ingested", ingested),
		slog.Int("skipped", skipped),
		slog.Int("failed", failed))

	return nil
}

// Serve runs the application in server mode: a file watcher triggers
// ingestion when new memos land in the source directory, and an HTTP
// API exposes run history, manual triggering, and an SSE event stream.
func Serve(ctx context.Context, opts ...Option) error {
	s, err := buildSession(opts...)
	if err != nil {
		return err
	}
	defer s.close()

	cfg := s.cfg
	logger := s.logger

	s.broker = sse.NewBroker()
	defer s.broker.Close()

	apiRouter := api.NewRouter(s.db, s.runOnce, cfg.Auth.AuthEnabled(), cfg.Auth.Token, s.broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the memo source and trigger an ingestion run on changes.
	g.Go(func() error {
		return watch.Watch(gCtx, cfg.Source.Path, cfg.Source.Extension, logger, func() {
			if _, err := s.runOnce(gCtx); err != nil {
				logger.Error("triggered run failed", slog.String("error", err.Error()))
			}
		})
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the ingestion pipeline over the Model Context Protocol
// on stdio.
func RunMCP(_ context.Context, opts ...Option) error {
	s, err := buildSession(opts...)
	if err != nil {
		return err
	}
	defer s.close()

	srv := mcpserver.New(s.store, s.db, s.runOnce)
	s.logger.Info("MCP server starting on stdio")
	return srv.ServeStdio()
}
