package domain

import (
	"strings"
	"time"
	"unicode"
)

// Article is the unit of curation work: a URL plus fields derived from it.
type Article struct {
	ID                string
	URL               string
	Title             string
	Summary           string
	TranslatedSummary string
	// ReadingTimeMinutes is nil when the estimate is unknown, never zero.
	ReadingTimeMinutes *int
	Categories         []Category
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Document is the extracted page content returned by a content loader.
// Text is transient enrichment input and is never persisted.
type Document struct {
	Text  string
	Title string
}

// Category is a topical label drawn from a fixed vocabulary.
type Category struct {
	ID   int64
	Name string
	Slug string
}

// Field names accepted by ArticleStore.SaveFields for partial saves.
const (
	FieldTitle             = "title"
	FieldSummary           = "summary"
	FieldTranslatedSummary = "translated_summary"
	FieldReadingTime       = "reading_time_minutes"
)

// Slugify derives a URL-friendly slug from a category name:
// lowercase, with alphanumeric runs joined by single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
