package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/fwojciec/blogsumm"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var _ blogsumm.SummaryService = (*SummaryService)(nil)

var summaryColumns = []string{
	"id", "url", "title", "summary", "urdu_summary", "key_points", "full_text",
	"word_count", "summary_word_count", "compression_ratio", "reading_time",
	"strategy", "created_at",
}

// SummaryService persists summary records into Postgres.
type SummaryService struct {
	db *DB
}

// NewSummaryService wires a SummaryService to db.
func NewSummaryService(db *DB) *SummaryService {
	return &SummaryService{db: db}
}

// CreateSummary inserts a new record, assigning ID and CreatedAt.
func (s *SummaryService) CreateSummary(ctx context.Context, rec *blogsumm.SummaryRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()

	query, args, err := insertSummaryQuery(rec).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

// FindSummaryByID returns the record with id or ENOTFOUND.
func (s *SummaryService) FindSummaryByID(ctx context.Context, id string) (*blogsumm.SummaryRecord, error) {
	query, args, err := psql.Select(summaryColumns...).
		From("summaries").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rec, err := scanSummary(s.db.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blogsumm.Errorf(blogsumm.ENOTFOUND, "summary not found")
	}
	if err != nil {
		return nil, fmt.Errorf("select summary: %w", err)
	}
	return rec, nil
}

// FindSummaries returns records matching filter, newest first.
func (s *SummaryService) FindSummaries(ctx context.Context, filter blogsumm.SummaryFilter) ([]*blogsumm.SummaryRecord, error) {
	query, args, err := findSummariesQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var recs []*blogsumm.SummaryRecord
	for rows.Next() {
		rec, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return recs, nil
}

func insertSummaryQuery(rec *blogsumm.SummaryRecord) sq.InsertBuilder {
	keyPoints := rec.KeyPoints
	if keyPoints == nil {
		keyPoints = []string{}
	}
	return psql.Insert("summaries").
		Columns(summaryColumns...).
		Values(rec.ID, rec.URL, rec.Title, rec.Summary, rec.TranslatedSummary,
			pq.StringArray(keyPoints), rec.FullText, rec.WordCount, rec.SummaryWordCount,
			rec.CompressionRatio, rec.ReadingTimeMinutes, string(rec.Strategy), rec.CreatedAt)
}

func findSummariesQuery(filter blogsumm.SummaryFilter) sq.SelectBuilder {
	b := psql.Select(summaryColumns...).
		From("summaries").
		OrderBy("created_at DESC", "id DESC")
	if filter.URL != nil {
		b = b.Where(sq.Eq{"url": *filter.URL})
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		b = b.Offset(uint64(filter.Offset))
	}
	return b
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (*blogsumm.SummaryRecord, error) {
	var rec blogsumm.SummaryRecord
	var keyPoints pq.StringArray
	var strategy string
	if err := row.Scan(&rec.ID, &rec.URL, &rec.Title, &rec.Summary, &rec.TranslatedSummary, &keyPoints,
		&rec.FullText, &rec.WordCount, &rec.SummaryWordCount, &rec.CompressionRatio,
		&rec.ReadingTimeMinutes, &strategy, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.KeyPoints = []string(keyPoints)
	rec.Strategy = blogsumm.SummaryStrategy(strategy)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}
