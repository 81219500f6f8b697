package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"curator/internal/domain"
	"curator/internal/ports"
)

// DefaultVocabulary is the fixed set of category names used when the
// configuration provides none.
var DefaultVocabulary = []string{
	"Web Development",
	"MLOps",
	"Large Language Models",
	"Data Science",
	"AI General",
	"Software Engineering",
	"Other",
}

// DefaultFallbackCategory is assigned when the provider picks nothing valid
// but explicitly names the fallback label.
const DefaultFallbackCategory = "Other"

// Categorizer maps an article summary onto the fixed vocabulary, validates
// the provider's answer against it, and replaces the article's category
// associations with the validated set.
type Categorizer struct {
	client     ports.CompletionClient
	store      ports.ArticleStore
	vocabulary []string
	fallback   string
	logger     *slog.Logger
}

// CategoryResult is the outcome of one categorization pass. Kind is KindNone
// when at least one category was assigned.
type CategoryResult struct {
	Kind     ErrorKind
	Assigned []string
	Err      error
}

// NewCategorizer wires collaborators; empty vocabulary/fallback use defaults.
func NewCategorizer(client ports.CompletionClient, store ports.ArticleStore, vocabulary []string, fallback string, logger *slog.Logger) *Categorizer {
	if len(vocabulary) == 0 {
		vocabulary = DefaultVocabulary
	}
	if fallback == "" {
		fallback = DefaultFallbackCategory
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Categorizer{client: client, store: store, vocabulary: vocabulary, fallback: fallback, logger: logger}
}

// Assign categorizes the article from its summary. On completion-service
// failure the existing associations are left untouched; in every other
// outcome they are replaced (possibly with the empty set).
func (c *Categorizer) Assign(ctx context.Context, article *domain.Article) CategoryResult {
	if strings.TrimSpace(article.Summary) == "" {
		return CategoryResult{Kind: KindCategorizationFailure, Err: fmt.Errorf("no summary available to categorize")}
	}

	if _, err := c.store.EnsureCategories(ctx, c.vocabulary); err != nil {
		return CategoryResult{Kind: KindCategorizationFailure, Err: fmt.Errorf("ensure vocabulary: %w", err)}
	}

	response, err := c.client.Complete(ctx, c.systemPrompt(),
		"Please categorize the following article summary:\n\n"+article.Summary)
	if err != nil {
		return CategoryResult{Kind: KindCategorizationFailure, Err: fmt.Errorf("categorize: %w", err)}
	}

	suggested := parseCategoryNames(response)
	valid := c.intersectVocabulary(suggested)

	persisted, err := c.store.FindCategoriesByName(ctx, valid)
	if err != nil {
		return CategoryResult{Kind: KindCategorizationFailure, Err: fmt.Errorf("resolve categories: %w", err)}
	}

	c.logger.Debug("categorizer response parsed",
		"suggested", suggested, "validated", names(persisted))

	if len(persisted) == 0 && contains(suggested, c.fallback) {
		persisted, err = c.store.FindCategoriesByName(ctx, []string{c.fallback})
		if err != nil {
			return CategoryResult{Kind: KindCategorizationFailure, Err: fmt.Errorf("resolve fallback: %w", err)}
		}
	}

	if err := c.store.ReplaceArticleCategories(ctx, article.ID, persisted); err != nil {
		return CategoryResult{Kind: KindCategorizationFailure, Err: fmt.Errorf("replace categories: %w", err)}
	}
	article.Categories = persisted

	if len(persisted) == 0 {
		return CategoryResult{Kind: KindNoCategoryAssigned}
	}
	return CategoryResult{Assigned: names(persisted)}
}

func (c *Categorizer) systemPrompt() string {
	quoted := make([]string, len(c.vocabulary))
	for i, name := range c.vocabulary {
		quoted[i] = "'" + name + "'"
	}
	return fmt.Sprintf("You are a helpful assistant that categorizes technical articles based on their summary. "+
		"Assign one or more relevant categories from the following list: %s. "+
		"Respond with ONLY the category names, separated by commas. "+
		"If none fit well, respond with '%s'.", strings.Join(quoted, ", "), c.fallback)
}

// intersectVocabulary keeps suggested names that appear in the vocabulary,
// preserving vocabulary order. Anything else is expected provider noise and
// dropped silently.
func (c *Categorizer) intersectVocabulary(suggested []string) []string {
	var out []string
	for _, name := range c.vocabulary {
		if contains(suggested, name) {
			out = append(out, name)
		}
	}
	return out
}

func parseCategoryNames(response string) []string {
	var out []string
	for _, part := range strings.Split(response, ",") {
		part = strings.Trim(strings.TrimSpace(part), "'\".")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}

func names(categories []domain.Category) []string {
	out := make([]string, len(categories))
	for i, cat := range categories {
		out[i] = cat.Name
	}
	return out
}
