package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"curator/internal/domain"
	"curator/internal/enrich"
	"curator/internal/ports"
)

// Runner is the slice of the enrichment pipeline the trigger needs.
type Runner interface {
	Run(ctx context.Context, article *domain.Article) enrich.Report
}

// Trigger bulk-invokes the pipeline over a selection of articles and
// aggregates the outcome for display.
type Trigger struct {
	store    ports.ArticleStore
	pipeline Runner
	logger   *slog.Logger
}

// NewTrigger wires the store and pipeline.
func NewTrigger(store ports.ArticleStore, pipeline Runner, logger *slog.Logger) *Trigger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Trigger{store: store, pipeline: pipeline, logger: logger}
}

// BulkResult aggregates per-article outcomes of one bulk run.
type BulkResult struct {
	Processed int
	Succeeded int
	// Errors holds one "<url>: <detail>" line per failed article.
	Errors  []string
	Reports []enrich.Report
}

// Message renders the aggregate outcome for display.
func (r BulkResult) Message() string {
	var parts []string
	if r.Succeeded > 0 {
		parts = append(parts, fmt.Sprintf("Successfully summarized %d article(s).", r.Succeeded))
	}
	if len(r.Errors) > 0 {
		parts = append(parts, "Errors encountered:\n"+strings.Join(r.Errors, "\n"))
	}
	if len(parts) == 0 {
		return "No articles processed."
	}
	return strings.Join(parts, "\n")
}

// ProcessByID runs the pipeline over each selected article sequentially; one
// article is fully processed before the next begins. Classification uses the
// structured report, never the rendered message.
func (t *Trigger) ProcessByID(ctx context.Context, ids []string) BulkResult {
	var result BulkResult

	for _, id := range ids {
		result.Processed++

		article, err := t.store.GetArticle(ctx, id)
		if err != nil {
			t.logger.Warn("article lookup failed", "id", id, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}

		report := t.pipeline.Run(ctx, &article)
		result.Reports = append(result.Reports, report)

		if report.Failed() {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", article.URL, report.Message()))
			continue
		}
		result.Succeeded++
	}

	return result
}
