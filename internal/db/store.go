package db

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ftedeschi/marxpress/internal/models"
)

const articlesTable = "guardian_articles"

// ErrFieldTooLong reports a value that exceeds its column width. The store
// rejects such rows instead of truncating them: a silently clipped comment
// or URL would corrupt the review pages downstream.
var ErrFieldTooLong = errors.New("db: field exceeds column width")

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DBTX is the slice of pgxpool.Pool the store needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store persists enriched articles. It enforces no uniqueness: deduplication
// belongs to the orchestrator's seen-set, the store only owns the rows.
type Store struct {
	db DBTX
}

func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

// columnLimit pairs a text column with its declared width.
type columnLimit struct {
	column string
	limit  int
	value  func(models.EnrichedArticle) string
}

var columnLimits = []columnLimit{
	{"section_id", 200, func(a models.EnrichedArticle) string { return a.SectionID }},
	{"section_name", 200, func(a models.EnrichedArticle) string { return a.SectionName }},
	{"title", 500, func(a models.EnrichedArticle) string { return a.Title }},
	{"author", 500, func(a models.EnrichedArticle) string { return a.Author }},
	{"subtitle", 1000, func(a models.EnrichedArticle) string { return a.Subtitle }},
	{"body", 200000, func(a models.EnrichedArticle) string { return a.Body }},
	{"img_url", 1000, func(a models.EnrichedArticle) string { return a.ImgURL }},
	{"img_descr", 1000, func(a models.EnrichedArticle) string { return a.ImgDescr }},
	{"img_cred", 1000, func(a models.EnrichedArticle) string { return a.ImgCred }},
	{"language", 10, func(a models.EnrichedArticle) string { return a.Language }},
	{"url", 1000, func(a models.EnrichedArticle) string { return a.URL }},
	{"short_url", 400, func(a models.EnrichedArticle) string { return a.ShortURL }},
	{"tags", 1000, func(a models.EnrichedArticle) string { return a.Tags }},
	{"marx_comment", 1100, func(a models.EnrichedArticle) string { return a.MarxComment }},
	{"marx_judgement", 200, func(a models.EnrichedArticle) string { return a.Judgement }},
}

func validateWidths(article models.EnrichedArticle) error {
	for _, cl := range columnLimits {
		if n := utf8.RuneCountInString(cl.value(article)); n > cl.limit {
			return fmt.Errorf("%w: column %s holds %d chars, limit %d", ErrFieldTooLong, cl.column, n, cl.limit)
		}
	}
	return nil
}

// Insert writes one enriched article. Over-length fields are rejected with
// ErrFieldTooLong before any SQL runs.
func (s *Store) Insert(ctx context.Context, article models.EnrichedArticle) error {
	if err := validateWidths(article); err != nil {
		return err
	}

	query, args, err := psql.Insert(articlesTable).
		Columns("date", "section_id", "section_name", "title", "author", "subtitle",
			"body", "img_url", "img_descr", "img_cred", "language", "url",
			"short_url", "tags", "marx_comment", "sentiment_score", "marx_judgement").
		Values(article.Date, article.SectionID, article.SectionName, article.Title,
			article.Author, article.Subtitle, article.Body, article.ImgURL,
			article.ImgDescr, article.ImgCred, article.Language, article.URL,
			article.ShortURL, article.Tags, article.MarxComment,
			article.SentimentScore, article.Judgement).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// EvictOlderThan deletes every row strictly older than now minus the window
// and reports how many went.
func (s *Store) EvictOlderThan(ctx context.Context, window time.Duration) (int64, error) {
	cutoff := time.Now().Add(-window)

	query, args, err := psql.Delete(articlesTable).
		Where(sq.Lt{"date": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("evict articles: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryRecent returns the newest rows of a section, display columns only.
func (s *Store) QueryRecent(ctx context.Context, section string, limit int) ([]models.ReviewEntry, error) {
	query, args, err := psql.Select("date", "section_name", "title", "author", "subtitle",
		"img_url", "img_descr", "img_cred", "url", "short_url",
		"marx_comment", "marx_judgement").
		From(articlesTable).
		Where(sq.Eq{"section_id": section}).
		OrderBy("date DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var entries []models.ReviewEntry
	for rows.Next() {
		var e models.ReviewEntry
		if err := rows.Scan(&e.Date, &e.SectionName, &e.Title, &e.Author, &e.Subtitle,
			&e.ImgURL, &e.ImgDescr, &e.ImgCred, &e.URL, &e.ShortURL,
			&e.MarxComment, &e.Judgement); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return entries, nil
}
