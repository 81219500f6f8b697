package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"curator/internal/domain"
	"curator/internal/ports"
)

const maxBodyBytes = 8 << 20

// WebLoader fetches a page over HTTP and extracts its readable text with
// go-readability, falling back to document metadata for the title.
type WebLoader struct {
	client *http.Client
}

var _ ports.ContentLoader = (*WebLoader)(nil)

// NewWebLoader wires an HTTP client; a nil client gets a default timeout.
func NewWebLoader(client *http.Client) *WebLoader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &WebLoader{client: client}
}

// Load downloads the page and returns its extracted text plus metadata.
func (l *WebLoader) Load(ctx context.Context, rawURL string) (domain.Document, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return domain.Document{}, fmt.Errorf("invalid url %s: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return domain.Document{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "curator/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return domain.Document{}, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Document{}, fmt.Errorf("page returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.Document{}, fmt.Errorf("read page: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return domain.Document{}, fmt.Errorf("extract content: %w", err)
	}

	doc := domain.Document{
		Text:  strings.TrimSpace(article.TextContent),
		Title: strings.TrimSpace(article.Title),
	}
	if doc.Title == "" {
		doc.Title = titleFromHTML(body)
	}

	return doc, nil
}

// titleFromHTML pulls og:title or <title> when readability found none.
func titleFromHTML(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if og = strings.TrimSpace(og); og != "" {
			return og
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
