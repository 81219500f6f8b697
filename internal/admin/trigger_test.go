package admin

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"curator/internal/domain"
	"curator/internal/enrich"
)

type stubStore struct {
	articles map[string]domain.Article
	listErr  error
}

func newStubStore(articles ...domain.Article) *stubStore {
	s := &stubStore{articles: map[string]domain.Article{}}
	for _, a := range articles {
		s.articles[a.ID] = a
	}
	return s
}

func (s *stubStore) CreateArticle(ctx context.Context, url, title string) (domain.Article, error) {
	for _, a := range s.articles {
		if a.URL == url {
			return domain.Article{}, fmt.Errorf("article with url %s already exists", url)
		}
	}
	a := domain.Article{ID: fmt.Sprintf("id-%d", len(s.articles)+1), URL: url, Title: title}
	s.articles[a.ID] = a
	return a, nil
}

func (s *stubStore) GetArticle(ctx context.Context, id string) (domain.Article, error) {
	a, ok := s.articles[id]
	if !ok {
		return domain.Article{}, fmt.Errorf("article %s not found", id)
	}
	return a, nil
}

func (s *stubStore) ListArticles(ctx context.Context) ([]domain.Article, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []domain.Article
	for _, a := range s.articles {
		out = append(out, a)
	}
	return out, nil
}

func (s *stubStore) ListPending(ctx context.Context) ([]domain.Article, error) { return nil, nil }

func (s *stubStore) SaveFields(ctx context.Context, article *domain.Article, fields ...string) error {
	s.articles[article.ID] = *article
	return nil
}

func (s *stubStore) EnsureCategories(ctx context.Context, names []string) ([]domain.Category, error) {
	return nil, nil
}

func (s *stubStore) FindCategoriesByName(ctx context.Context, names []string) ([]domain.Category, error) {
	return nil, nil
}

func (s *stubStore) ReplaceArticleCategories(ctx context.Context, articleID string, categories []domain.Category) error {
	return nil
}

// stubRunner maps URLs to canned reports.
type stubRunner struct {
	reports map[string]enrich.Report
	order   []string
}

func (r *stubRunner) Run(ctx context.Context, article *domain.Article) enrich.Report {
	r.order = append(r.order, article.URL)
	report := r.reports[article.URL]
	report.URL = article.URL
	return report
}

func TestProcessByIDAggregates(t *testing.T) {
	t.Parallel()

	store := newStubStore(
		domain.Article{ID: "1", URL: "https://a.example"},
		domain.Article{ID: "2", URL: "https://b.example"},
		domain.Article{ID: "3", URL: "https://c.example"},
	)
	runner := &stubRunner{reports: map[string]enrich.Report{
		"https://a.example": {Translation: enrich.SubReport{Attempted: true}, Categorization: enrich.SubReport{Attempted: true}},
		"https://b.example": {Failure: enrich.KindFetchFailure, Err: fmt.Errorf("dns failure")},
		"https://c.example": {Translation: enrich.SubReport{Attempted: true}, Categorization: enrich.SubReport{Attempted: true}},
	}}

	trigger := NewTrigger(store, runner, nil)
	result := trigger.ProcessByID(context.Background(), []string{"1", "2", "3"})

	require.Equal(t, 3, result.Processed)
	require.Equal(t, 2, result.Succeeded)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "https://b.example")
	require.Contains(t, result.Errors[0], "Error fetching")

	// Articles are processed sequentially in selection order.
	require.Equal(t, []string{"https://a.example", "https://b.example", "https://c.example"}, runner.order)

	msg := result.Message()
	require.Contains(t, msg, "Successfully summarized 2 article(s).")
	require.Contains(t, msg, "Errors encountered:")
}

func TestProcessByIDUnknownArticle(t *testing.T) {
	t.Parallel()

	trigger := NewTrigger(newStubStore(), &stubRunner{reports: map[string]enrich.Report{}}, nil)
	result := trigger.ProcessByID(context.Background(), []string{"nope"})

	require.Equal(t, 1, result.Processed)
	require.Zero(t, result.Succeeded)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "nope")
}

func TestBulkResultMessageEmpty(t *testing.T) {
	t.Parallel()

	require.Equal(t, "No articles processed.", BulkResult{}.Message())
}

func TestBulkResultWarningOutcomesCountAsSuccess(t *testing.T) {
	t.Parallel()

	store := newStubStore(domain.Article{ID: "1", URL: "https://a.example"})
	runner := &stubRunner{reports: map[string]enrich.Report{
		"https://a.example": {
			Translation:    enrich.SubReport{Attempted: true, Kind: enrich.KindTranslationFailure, Err: fmt.Errorf("x")},
			Categorization: enrich.SubReport{Attempted: true, Kind: enrich.KindNoCategoryAssigned},
		},
	}}

	result := NewTrigger(store, runner, nil).ProcessByID(context.Background(), []string{"1"})
	require.Equal(t, 1, result.Succeeded)
	require.Empty(t, result.Errors)
}
