package ports

import (
	"context"

	"curator/internal/domain"
)

// ContentLoader fetches a URL and extracts its readable text plus metadata.
type ContentLoader interface {
	Load(ctx context.Context, url string) (domain.Document, error)
}

// CompletionClient sends a system+user prompt pair to a text-completion
// provider and returns the generated text.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ArticleStore persists articles, categories, and their associations.
type ArticleStore interface {
	// CreateArticle inserts a new article; duplicate URLs are rejected.
	CreateArticle(ctx context.Context, url, title string) (domain.Article, error)
	GetArticle(ctx context.Context, id string) (domain.Article, error)
	ListArticles(ctx context.Context) ([]domain.Article, error)
	// ListPending returns articles that have no summary yet.
	ListPending(ctx context.Context) ([]domain.Article, error)
	// SaveFields persists only the named fields of the article and bumps
	// its updated_at timestamp.
	SaveFields(ctx context.Context, article *domain.Article, fields ...string) error

	// EnsureCategories get-or-creates every named category, tolerating
	// concurrent creation races, and returns the persisted entities.
	EnsureCategories(ctx context.Context, names []string) ([]domain.Category, error)
	// FindCategoriesByName returns the subset of named categories that exist.
	FindCategoriesByName(ctx context.Context, names []string) ([]domain.Category, error)
	// ReplaceArticleCategories clears the article's associations and adds
	// the given set in a single transaction.
	ReplaceArticleCategories(ctx context.Context, articleID string, categories []domain.Category) error
}
