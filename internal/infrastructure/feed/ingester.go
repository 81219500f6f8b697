package feed

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"

	"curator/internal/config"
	"curator/internal/ports"
)

// Ingester discovers article URLs from configured RSS/Atom feeds and creates
// pending records for them. Enrichment happens later through the pipeline.
type Ingester struct {
	parser *gofeed.Parser
	store  ports.ArticleStore
	feeds  []config.FeedConfig
	logger *slog.Logger
}

// NewIngester wires the feed list and store.
func NewIngester(store ports.ArticleStore, feeds []config.FeedConfig, logger *slog.Logger) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingester{
		parser: gofeed.NewParser(),
		store:  store,
		feeds:  feeds,
		logger: logger,
	}
}

// IngestAll walks every configured feed and returns how many new articles
// were created. Items whose URL already exists are skipped; a failing feed
// is logged and does not stop the others.
func (i *Ingester) IngestAll(ctx context.Context) int {
	created := 0
	for _, feed := range i.feeds {
		n, err := i.ingestFeed(ctx, feed)
		if err != nil {
			i.logger.Warn("feed ingest failed", "feed", feed.Name, "error", err)
			continue
		}
		created += n
	}
	return created
}

func (i *Ingester) ingestFeed(ctx context.Context, feedCfg config.FeedConfig) (int, error) {
	parsed, err := i.parser.ParseURLWithContext(feedCfg.URL, ctx)
	if err != nil {
		return 0, err
	}

	existing := map[string]struct{}{}
	articles, err := i.store.ListArticles(ctx)
	if err != nil {
		return 0, err
	}
	for _, a := range articles {
		existing[a.URL] = struct{}{}
	}

	created := 0
	for _, item := range parsed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		if _, ok := existing[link]; ok {
			continue
		}

		if _, err := i.store.CreateArticle(ctx, link, strings.TrimSpace(item.Title)); err != nil {
			i.logger.Warn("create article failed", "url", link, "error", err)
			continue
		}
		existing[link] = struct{}{}
		created++
	}

	i.logger.Info("feed ingested", "feed", feedCfg.Name, "items", len(parsed.Items), "created", created)
	return created, nil
}
