package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"curator/internal/config"
	"curator/internal/domain"
)

const rssXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Example Blog</title>
  <item>
    <title>First Post</title>
    <link>https://example.com/first</link>
  </item>
  <item>
    <title>Second Post</title>
    <link>https://example.com/second</link>
  </item>
  <item>
    <title>No Link Item</title>
  </item>
</channel>
</rss>`

type memStore struct {
	articles []domain.Article
}

func (m *memStore) CreateArticle(ctx context.Context, url, title string) (domain.Article, error) {
	for _, a := range m.articles {
		if a.URL == url {
			return domain.Article{}, fmt.Errorf("duplicate url %s", url)
		}
	}
	a := domain.Article{ID: fmt.Sprintf("id-%d", len(m.articles)+1), URL: url, Title: title}
	m.articles = append(m.articles, a)
	return a, nil
}

func (m *memStore) GetArticle(ctx context.Context, id string) (domain.Article, error) {
	return domain.Article{}, fmt.Errorf("not implemented")
}

func (m *memStore) ListArticles(ctx context.Context) ([]domain.Article, error) {
	return m.articles, nil
}

func (m *memStore) ListPending(ctx context.Context) ([]domain.Article, error) { return nil, nil }

func (m *memStore) SaveFields(ctx context.Context, article *domain.Article, fields ...string) error {
	return nil
}

func (m *memStore) EnsureCategories(ctx context.Context, names []string) ([]domain.Category, error) {
	return nil, nil
}

func (m *memStore) FindCategoriesByName(ctx context.Context, names []string) ([]domain.Category, error) {
	return nil, nil
}

func (m *memStore) ReplaceArticleCategories(ctx context.Context, articleID string, categories []domain.Category) error {
	return nil
}

func TestIngestAllCreatesPendingArticles(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssXML))
	}))
	defer server.Close()

	store := &memStore{}
	ingester := NewIngester(store, []config.FeedConfig{{Name: "example", URL: server.URL}}, nil)

	created := ingester.IngestAll(context.Background())
	require.Equal(t, 2, created)
	require.Len(t, store.articles, 2)
	require.Equal(t, "First Post", store.articles[0].Title)

	// Re-ingesting the same feed creates nothing new.
	created = ingester.IngestAll(context.Background())
	require.Zero(t, created)
	require.Len(t, store.articles, 2)
}

func TestIngestAllSurvivesBrokenFeed(t *testing.T) {
	t.Parallel()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer broken.Close()

	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rssXML))
	}))
	defer working.Close()

	store := &memStore{}
	ingester := NewIngester(store, []config.FeedConfig{
		{Name: "broken", URL: broken.URL},
		{Name: "working", URL: working.URL},
	}, nil)

	created := ingester.IngestAll(context.Background())
	require.Equal(t, 2, created)
}
