package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"curator/internal/admin"
	"curator/internal/config"
	"curator/internal/enrich"
	"curator/internal/infrastructure/feed"
	"curator/internal/infrastructure/llm"
	"curator/internal/infrastructure/loader"
	"curator/internal/infrastructure/scheduler"
	"curator/internal/infrastructure/storage"
	"curator/internal/logging"
)

// Application wires configuration to the pipeline, admin API, and scheduler.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	server    *http.Server
	scheduler *scheduler.CronScheduler
	ingester  *feed.Ingester
	trigger   *admin.Trigger
	store     *storage.SQLiteStore
	closeDB   func() error
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	store := storage.NewSQLiteStore(db)

	completions := llm.NewClient(cfg.Completion)
	if completions == nil {
		baseLogger.Warn("no completion provider configured; enrichment will stop after reading time")
	}

	pipeline := enrich.NewPipeline(enrich.PipelineDeps{
		Loader:      loader.NewWebLoader(nil),
		Store:       store,
		Completions: completions,
		Summarizer:  enrich.NewSummarizer(completions, cfg.Enrichment.ChunkRunes, cfg.Enrichment.OverlapRunes),
		Translator:  enrich.NewTranslator(completions, cfg.Enrichment.TargetLanguage),
		Categorizer: enrich.NewCategorizer(completions, store,
			cfg.Enrichment.Vocabulary, cfg.Enrichment.FallbackCategory,
			baseLogger.With("component", "categorizer")),
		Logger: baseLogger.With("component", "pipeline"),
	})

	trigger := admin.NewTrigger(store, pipeline, baseLogger.With("component", "trigger"))
	server := admin.NewServer(store, trigger, baseLogger.With("component", "admin"))

	app := &Application{
		cfg:      cfg,
		logger:   baseLogger,
		ingester: feed.NewIngester(store, cfg.Feeds, baseLogger.With("component", "ingester")),
		trigger:  trigger,
		store:    store,
		closeDB:  db.Close,
		server: &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           server.Router(),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Minute,
		},
	}

	if cfg.Scheduler.Enabled {
		app.scheduler = scheduler.NewCronScheduler(cfg.Scheduler.CronExpression,
			baseLogger.With("component", "scheduler"))
	}

	return app, nil
}

// Run serves the admin API and (when enabled) the scheduled ingest/enrich job
// until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx, a.ingestAndEnrich); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("admin server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown", "error", err)
	}
	return a.closeDB()
}

// ingestAndEnrich is the scheduled job: discover new articles from feeds,
// then enrich every article that has no summary yet.
func (a *Application) ingestAndEnrich(ctx context.Context) {
	created := a.ingester.IngestAll(ctx)
	a.logger.Info("scheduled ingest done", "created", created)

	pending, err := a.store.ListPending(ctx)
	if err != nil {
		a.logger.Error("list pending articles", "error", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	ids := make([]string, len(pending))
	for i, article := range pending {
		ids[i] = article.ID
	}

	result := a.trigger.ProcessByID(ctx, ids)
	a.logger.Info("scheduled enrichment done",
		"processed", result.Processed,
		"succeeded", result.Succeeded,
		"failed", len(result.Errors))
}
