package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"curator/internal/domain"
	"curator/internal/ports"
)

// PipelineDeps wires all collaborators into the enrichment pipeline.
// Completions may be nil when no provider is configured; the pipeline then
// still persists what the non-LLM stages produce.
type PipelineDeps struct {
	Loader      ports.ContentLoader
	Store       ports.ArticleStore
	Completions ports.CompletionClient
	Summarizer  *Summarizer
	Translator  *Translator
	Categorizer *Categorizer
	Logger      *slog.Logger
}

// Pipeline sequences the enrichment stages over one article and enforces the
// partial-save policy: every stage persists its contribution before the next
// stage gets a chance to fail.
type Pipeline struct {
	loader      ports.ContentLoader
	store       ports.ArticleStore
	completions ports.CompletionClient
	summarizer  *Summarizer
	translator  *Translator
	categorizer *Categorizer
	logger      *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		loader:      deps.Loader,
		store:       deps.Store,
		completions: deps.Completions,
		summarizer:  deps.Summarizer,
		translator:  deps.Translator,
		categorizer: deps.Categorizer,
		logger:      logger,
	}
}

// Run enriches one article. Only a missing URL or a fetch failure leaves the
// record completely untouched; every later failure keeps what earlier stages
// computed. The returned report carries the outcome of every stage.
func (p *Pipeline) Run(ctx context.Context, article *domain.Article) Report {
	report := Report{URL: article.URL}

	if strings.TrimSpace(article.URL) == "" {
		report.Failure = KindMissingInput
		report.Err = fmt.Errorf("article has no URL")
		return report
	}

	doc, err := p.loader.Load(ctx, article.URL)
	if err != nil {
		report.Failure = KindFetchFailure
		report.Err = err
		return report
	}
	if strings.TrimSpace(doc.Text) == "" {
		report.Failure = KindFetchFailure
		report.Err = fmt.Errorf("no content could be loaded from %s", article.URL)
		return report
	}

	if article.Title == "" && doc.Title != "" {
		article.Title = doc.Title
		report.TitleSet = true
	}

	// Reading time never aborts the run; an empty estimate stays nil.
	article.ReadingTimeMinutes = EstimateReadingTime(doc.Text)
	report.ReadingTimeMinutes = article.ReadingTimeMinutes

	if p.completions == nil {
		if err := p.save(ctx, article, domain.FieldTitle, domain.FieldReadingTime); err != nil {
			return p.saveFailed(report, err)
		}
		report.Failure = KindServiceUnavailable
		report.Err = fmt.Errorf("no completion provider configured")
		return report
	}

	summary, err := p.summarizer.Summarize(ctx, doc.Text)
	if err != nil || summary == "" {
		article.Summary = ""
		article.TranslatedSummary = ""
		if saveErr := p.save(ctx, article,
			domain.FieldTitle, domain.FieldSummary, domain.FieldTranslatedSummary, domain.FieldReadingTime); saveErr != nil {
			return p.saveFailed(report, saveErr)
		}
		report.Failure = KindSummaryExtractionFailure
		report.Err = err
		return report
	}
	article.Summary = summary

	catResult := p.categorizer.Assign(ctx, article)
	report.Categorization = SubReport{Attempted: true, Kind: catResult.Kind, Err: catResult.Err}
	report.Categories = catResult.Assigned
	if catResult.Err != nil {
		p.logger.Warn("categorization failed", "url", article.URL, "error", catResult.Err)
	}

	translated, terr := p.translator.Translate(ctx, summary)
	article.TranslatedSummary = translated
	if terr != nil {
		article.TranslatedSummary = ""
		report.Translation = SubReport{Attempted: true, Kind: KindTranslationFailure, Err: terr}
		p.logger.Warn("translation failed", "url", article.URL, "error", terr)
	} else {
		report.Translation = SubReport{Attempted: true}
	}
	// The translation result is durable even if the final save fails.
	if err := p.save(ctx, article, domain.FieldTranslatedSummary); err != nil {
		return p.saveFailed(report, err)
	}

	if err := p.save(ctx, article,
		domain.FieldTitle, domain.FieldSummary, domain.FieldTranslatedSummary, domain.FieldReadingTime); err != nil {
		return p.saveFailed(report, err)
	}
	report.SummarySaved = true

	p.logger.Info("article enriched",
		"url", article.URL,
		"categories", report.Categories,
		"translated", report.Translation.OK())
	return report
}

func (p *Pipeline) save(ctx context.Context, article *domain.Article, fields ...string) error {
	return p.store.SaveFields(ctx, article, fields...)
}

func (p *Pipeline) saveFailed(report Report, err error) Report {
	p.logger.Error("save failed", "url", report.URL, "error", err)
	report.Failure = KindSaveFailure
	report.Err = err
	return report
}
