package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"curator/internal/domain"
	"curator/internal/ports"
)

// SQLiteStore persists articles, categories, and their associations.
type SQLiteStore struct {
	db *sql.DB
}

var _ ports.ArticleStore = (*SQLiteStore)(nil)

// NewSQLiteStore wires a sql.DB opened by storage.Open.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// CreateArticle inserts a new record; the unique url constraint rejects
// duplicates.
func (s *SQLiteStore) CreateArticle(ctx context.Context, url, title string) (domain.Article, error) {
	now := time.Now().UTC()
	article := domain.Article{
		ID:        uuid.NewString(),
		URL:       url,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query, args, err := sq.Insert("articles").
		Columns("id", "url", "title", "created_at", "updated_at").
		Values(article.ID, article.URL, article.Title, article.CreatedAt, article.UpdatedAt).
		ToSql()
	if err != nil {
		return domain.Article{}, fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return domain.Article{}, fmt.Errorf("insert article: %w", err)
	}
	return article, nil
}

// GetArticle loads one article with its category associations.
func (s *SQLiteStore) GetArticle(ctx context.Context, id string) (domain.Article, error) {
	query, args, err := articleSelect().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Article{}, fmt.Errorf("build select: %w", err)
	}

	article, err := scanArticle(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return domain.Article{}, err
	}

	article.Categories, err = s.articleCategories(ctx, article.ID)
	if err != nil {
		return domain.Article{}, err
	}
	return article, nil
}

// ListArticles returns all articles, newest first, without associations.
func (s *SQLiteStore) ListArticles(ctx context.Context) ([]domain.Article, error) {
	query, args, err := articleSelect().OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	return s.queryArticles(ctx, query, args)
}

// ListPending returns articles without a summary, oldest first.
func (s *SQLiteStore) ListPending(ctx context.Context) ([]domain.Article, error) {
	query, args, err := articleSelect().
		Where(sq.Eq{"summary": ""}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	return s.queryArticles(ctx, query, args)
}

// SaveFields updates only the named fields and bumps updated_at.
func (s *SQLiteStore) SaveFields(ctx context.Context, article *domain.Article, fields ...string) error {
	if len(fields) == 0 {
		return fmt.Errorf("no fields to save")
	}

	article.UpdatedAt = time.Now().UTC()
	update := sq.Update("articles").Set("updated_at", article.UpdatedAt)

	for _, field := range fields {
		switch field {
		case domain.FieldTitle:
			update = update.Set("title", article.Title)
		case domain.FieldSummary:
			update = update.Set("summary", article.Summary)
		case domain.FieldTranslatedSummary:
			update = update.Set("translated_summary", article.TranslatedSummary)
		case domain.FieldReadingTime:
			update = update.Set("reading_time_minutes", readingTimeValue(article.ReadingTimeMinutes))
		default:
			return fmt.Errorf("unknown field %q", field)
		}
	}

	query, args, err := update.Where(sq.Eq{"id": article.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("article %s not found", article.ID)
	}
	return nil
}

// EnsureCategories get-or-creates the named categories. The unique name
// constraint makes concurrent creation races resolve to a no-op insert.
func (s *SQLiteStore) EnsureCategories(ctx context.Context, names []string) ([]domain.Category, error) {
	for _, name := range names {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO categories (name, slug) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
			name, domain.Slugify(name))
		if err != nil {
			return nil, fmt.Errorf("ensure category %s: %w", name, err)
		}
	}
	return s.FindCategoriesByName(ctx, names)
}

// FindCategoriesByName returns the persisted subset of the named categories.
func (s *SQLiteStore) FindCategoriesByName(ctx context.Context, names []string) ([]domain.Category, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query, args, err := sq.Select("id", "name", "slug").
		From("categories").
		Where(sq.Eq{"name": names}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

// ReplaceArticleCategories clears and re-adds the article's associations in
// one transaction.
func (s *SQLiteStore) ReplaceArticleCategories(ctx context.Context, articleID string, categories []domain.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM article_categories WHERE article_id = ?`, articleID); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}

	for _, cat := range categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO article_categories (article_id, category_id) VALUES (?, ?)`,
			articleID, cat.ID); err != nil {
			return fmt.Errorf("add category %s: %w", cat.Name, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) articleCategories(ctx context.Context, articleID string) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.name, c.slug
		 FROM categories c
		 JOIN article_categories ac ON ac.category_id = c.id
		 WHERE ac.article_id = ?
		 ORDER BY c.name`, articleID)
	if err != nil {
		return nil, fmt.Errorf("query article categories: %w", err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) queryArticles(ctx context.Context, query string, args []any) ([]domain.Article, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var out []domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, article)
	}
	return out, rows.Err()
}

func articleSelect() sq.SelectBuilder {
	return sq.Select("id", "url", "title", "summary", "translated_summary",
		"reading_time_minutes", "created_at", "updated_at").From("articles")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (domain.Article, error) {
	var (
		article     domain.Article
		readingTime sql.NullInt64
	)
	err := row.Scan(&article.ID, &article.URL, &article.Title, &article.Summary,
		&article.TranslatedSummary, &readingTime, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		return domain.Article{}, fmt.Errorf("scan article: %w", err)
	}
	if readingTime.Valid {
		minutes := int(readingTime.Int64)
		article.ReadingTimeMinutes = &minutes
	}
	return article, nil
}

func readingTimeValue(minutes *int) any {
	if minutes == nil {
		return nil
	}
	return *minutes
}
