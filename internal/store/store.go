// Package store persists generated articles in a SQLite-backed document
// store. Structured fields are stored as JSON text columns; slug
// uniqueness is a convention enforced by callers through read-then-write
// probing, not a database constraint.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"draftforge/internal/core"
)

// Store is an explicitly constructed handle to the article database. Open
// it once at process start, pass it to collaborators, close it at exit.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the SQLite database at path. The
// parent directory is created when missing.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, path: path}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables
func (s *Store) initialize() error {
	articlesTable := `
	CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		title TEXT,
		slug TEXT,
		excerpt TEXT,
		content TEXT,
		cover_image TEXT,
		seo TEXT,
		status TEXT,
		published_at DATETIME,
		tags TEXT,
		author TEXT,
		reading_time INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	);`

	multilingualTable := `
	CREATE TABLE IF NOT EXISTS multilingual_articles (
		id TEXT PRIMARY KEY,
		title TEXT,
		excerpt TEXT,
		content TEXT,
		seo TEXT,
		slug TEXT,
		cover_image TEXT,
		status TEXT,
		published_at DATETIME,
		tags TEXT,
		author TEXT,
		reading_time INTEGER,
		source_locale TEXT,
		locales TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`

	indexes := `CREATE INDEX IF NOT EXISTS idx_articles_slug ON articles (slug);`

	for _, stmt := range []string{articlesTable, multilingualTable, indexes} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertArticle stores a new article and returns its store-assigned id.
func (s *Store) InsertArticle(article core.Article) (string, error) {
	id := article.ID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()

	seoJSON, err := json.Marshal(article.SEO)
	if err != nil {
		return "", fmt.Errorf("failed to encode seo: %w", err)
	}
	tagsJSON, err := json.Marshal(article.Tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `
	INSERT INTO articles
	(id, title, slug, excerpt, content, cover_image, seo, status, published_at, tags, author, reading_time, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.Exec(query,
		id,
		article.Title,
		article.Slug,
		article.Excerpt,
		article.Content,
		article.CoverImage,
		string(seoJSON),
		string(article.Status),
		article.PublishedAt,
		string(tagsJSON),
		article.Author,
		article.ReadingTime,
		now,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert article: %w", err)
	}

	return id, nil
}

// FindBySlug retrieves one article by slug. A missing slug is (nil, nil),
// not an error.
func (s *Store) FindBySlug(slug string) (*core.Article, error) {
	query := `
	SELECT id, title, slug, excerpt, content, cover_image, seo, status, published_at, tags, author, reading_time, created_at, updated_at
	FROM articles WHERE slug = ? LIMIT 1`

	var (
		article     core.Article
		seoJSON     string
		tagsJSON    string
		publishedAt sql.NullTime
	)

	err := s.db.QueryRow(query, slug).Scan(
		&article.ID,
		&article.Title,
		&article.Slug,
		&article.Excerpt,
		&article.Content,
		&article.CoverImage,
		&seoJSON,
		&article.Status,
		&publishedAt,
		&tagsJSON,
		&article.Author,
		&article.ReadingTime,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find article by slug: %w", err)
	}

	if err := json.Unmarshal([]byte(seoJSON), &article.SEO); err != nil {
		return nil, fmt.Errorf("failed to decode seo: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &article.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}

	return &article, nil
}

// UpdateArticle overwrites the stored fields of an existing article,
// refreshing updated_at and keeping created_at.
func (s *Store) UpdateArticle(id string, article core.Article) error {
	seoJSON, err := json.Marshal(article.SEO)
	if err != nil {
		return fmt.Errorf("failed to encode seo: %w", err)
	}
	tagsJSON, err := json.Marshal(article.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `
	UPDATE articles SET
	title = ?, slug = ?, excerpt = ?, content = ?, cover_image = ?, seo = ?,
	status = ?, published_at = ?, tags = ?, author = ?, reading_time = ?, updated_at = ?
	WHERE id = ?`

	result, err := s.db.Exec(query,
		article.Title,
		article.Slug,
		article.Excerpt,
		article.Content,
		article.CoverImage,
		string(seoJSON),
		string(article.Status),
		article.PublishedAt,
		string(tagsJSON),
		article.Author,
		article.ReadingTime,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("no article with id %s", id)
	}

	return nil
}

// InsertMultilingual stores a multilingual article and returns its id.
func (s *Store) InsertMultilingual(article core.MultilingualArticle) (string, error) {
	id := article.ID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()

	encode := func(v any, what string) (string, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", what, err)
		}
		return string(data), nil
	}

	titleJSON, err := encode(article.Title, "title")
	if err != nil {
		return "", err
	}
	excerptJSON, err := encode(article.Excerpt, "excerpt")
	if err != nil {
		return "", err
	}
	contentJSON, err := encode(article.Content, "content")
	if err != nil {
		return "", err
	}
	seoJSON, err := encode(article.SEO, "seo")
	if err != nil {
		return "", err
	}
	tagsJSON, err := encode(article.Tags, "tags")
	if err != nil {
		return "", err
	}
	localesJSON, err := encode(article.Locales, "locales")
	if err != nil {
		return "", err
	}

	query := `
	INSERT INTO multilingual_articles
	(id, title, excerpt, content, seo, slug, cover_image, status, published_at, tags, author, reading_time, source_locale, locales, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.Exec(query,
		id,
		titleJSON,
		excerptJSON,
		contentJSON,
		seoJSON,
		article.Slug,
		article.CoverImage,
		string(article.Status),
		article.PublishedAt,
		tagsJSON,
		article.Author,
		article.ReadingTime,
		article.SourceLocale,
		localesJSON,
		now,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert multilingual article: %w", err)
	}

	return id, nil
}

// FindMultilingualBySlug retrieves one multilingual article by slug, with
// (nil, nil) on a miss.
func (s *Store) FindMultilingualBySlug(slug string) (*core.MultilingualArticle, error) {
	query := `
	SELECT id, title, excerpt, content, seo, slug, cover_image, status, published_at, tags, author, reading_time, source_locale, locales, created_at, updated_at
	FROM multilingual_articles WHERE slug = ? LIMIT 1`

	var (
		article     core.MultilingualArticle
		titleJSON   string
		excerptJSON string
		contentJSON string
		seoJSON     string
		tagsJSON    string
		localesJSON string
		publishedAt sql.NullTime
	)

	err := s.db.QueryRow(query, slug).Scan(
		&article.ID,
		&titleJSON,
		&excerptJSON,
		&contentJSON,
		&seoJSON,
		&article.Slug,
		&article.CoverImage,
		&article.Status,
		&publishedAt,
		&tagsJSON,
		&article.Author,
		&article.ReadingTime,
		&article.SourceLocale,
		&localesJSON,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find multilingual article by slug: %w", err)
	}

	for _, field := range []struct {
		raw  string
		into any
		what string
	}{
		{titleJSON, &article.Title, "title"},
		{excerptJSON, &article.Excerpt, "excerpt"},
		{contentJSON, &article.Content, "content"},
		{seoJSON, &article.SEO, "seo"},
		{tagsJSON, &article.Tags, "tags"},
		{localesJSON, &article.Locales, "locales"},
	} {
		if err := json.Unmarshal([]byte(field.raw), field.into); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", field.what, err)
		}
	}
	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}

	return &article, nil
}
