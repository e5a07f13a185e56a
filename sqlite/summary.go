package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/fwojciec/blogsumm"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ blogsumm.SummaryService = (*SummaryService)(nil)

var summaryColumns = []string{
	"id", "url", "title", "summary", "translated_summary", "key_points", "full_text",
	"word_count", "summary_word_count", "compression_ratio", "reading_time", "strategy", "created_at",
}

// SummaryService implements blogsumm.SummaryService using SQLite.
type SummaryService struct {
	db *DB
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(db *DB) *SummaryService {
	return &SummaryService{db: db}
}

// CreateSummary creates a new summary record.
func (s *SummaryService) CreateSummary(ctx context.Context, rec *blogsumm.SummaryRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	keyPoints, err := encodeKeyPoints(rec.KeyPoints)
	if err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC().Truncate(time.Second)

	return s.db.exec(ctx, sq.Insert("summaries").
		Columns(summaryColumns...).
		Values(rec.ID, rec.URL, rec.Title, rec.Summary, rec.TranslatedSummary, keyPoints, rec.FullText,
			rec.WordCount, rec.SummaryWordCount, rec.CompressionRatio, rec.ReadingTimeMinutes,
			string(rec.Strategy), formatTime(rec.CreatedAt)))
}

// FindSummaryByID retrieves a summary record by ID.
func (s *SummaryService) FindSummaryByID(ctx context.Context, id string) (*blogsumm.SummaryRecord, error) {
	query, args, err := sq.Select(summaryColumns...).From("summaries").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, query, args...)

	rec, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blogsumm.Errorf(blogsumm.ENOTFOUND, "summary not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindSummaries retrieves summary records matching the filter, newest first.
func (s *SummaryService) FindSummaries(ctx context.Context, filter blogsumm.SummaryFilter) ([]*blogsumm.SummaryRecord, error) {
	b := sq.Select(summaryColumns...).From("summaries")
	if filter.URL != nil {
		b = b.Where(sq.Eq{"url": *filter.URL})
	}
	b = paginate(b.OrderBy("created_at DESC", "rowid DESC"), filter.Limit, filter.Offset)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*blogsumm.SummaryRecord
	for rows.Next() {
		rec, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (*blogsumm.SummaryRecord, error) {
	var rec blogsumm.SummaryRecord
	var keyPoints, strategy, createdAt string

	if err := row.Scan(&rec.ID, &rec.URL, &rec.Title, &rec.Summary, &rec.TranslatedSummary, &keyPoints,
		&rec.FullText, &rec.WordCount, &rec.SummaryWordCount, &rec.CompressionRatio,
		&rec.ReadingTimeMinutes, &strategy, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(keyPoints), &rec.KeyPoints); err != nil {
		return nil, fmt.Errorf("failed to decode key_points: %w", err)
	}
	rec.Strategy = blogsumm.SummaryStrategy(strategy)

	var err error
	if rec.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &rec, nil
}

func encodeKeyPoints(points []string) (string, error) {
	if points == nil {
		points = []string{}
	}
	b, err := json.Marshal(points)
	if err != nil {
		return "", fmt.Errorf("failed to encode key_points: %w", err)
	}
	return string(b), nil
}
