package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blogsumm"
)

// Ensure LoggingDocumentStore implements blogsumm.DocumentStore.
var _ blogsumm.DocumentStore = (*LoggingDocumentStore)(nil)

// LoggingDocumentStore wraps a DocumentStore with logging.
type LoggingDocumentStore struct {
	next   blogsumm.DocumentStore
	logger *slog.Logger
}

// NewLoggingDocumentStore creates a new LoggingDocumentStore.
func NewLoggingDocumentStore(next blogsumm.DocumentStore, logger *slog.Logger) *LoggingDocumentStore {
	return &LoggingDocumentStore{next: next, logger: logger}
}

// CreateDocument delegates to the wrapped store and logs the operation.
func (s *LoggingDocumentStore) CreateDocument(ctx context.Context, doc *blogsumm.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create document",
			"url", doc.URL,
			"id", doc.ID,
			"bytes", len(doc.FullText),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateDocument(ctx, doc)
}

// Ensure LoggingSummaryService implements blogsumm.SummaryService.
var _ blogsumm.SummaryService = (*LoggingSummaryService)(nil)

// LoggingSummaryService wraps a SummaryService with logging.
type LoggingSummaryService struct {
	next   blogsumm.SummaryService
	logger *slog.Logger
}

// NewLoggingSummaryService creates a new LoggingSummaryService.
func NewLoggingSummaryService(next blogsumm.SummaryService, logger *slog.Logger) *LoggingSummaryService {
	return &LoggingSummaryService{next: next, logger: logger}
}

// CreateSummary delegates to the wrapped service and logs the operation.
func (s *LoggingSummaryService) CreateSummary(ctx context.Context, rec *blogsumm.SummaryRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create summary",
			"url", rec.URL,
			"id", rec.ID,
			"strategy", rec.Strategy,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSummary(ctx, rec)
}

// FindSummaryByID delegates to the wrapped service and logs the operation.
func (s *LoggingSummaryService) FindSummaryByID(ctx context.Context, id string) (rec *blogsumm.SummaryRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find summary",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSummaryByID(ctx, id)
}

// FindSummaries delegates to the wrapped service and logs the operation.
func (s *LoggingSummaryService) FindSummaries(ctx context.Context, filter blogsumm.SummaryFilter) (recs []*blogsumm.SummaryRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find summaries",
			"limit", filter.Limit,
			"offset", filter.Offset,
			"count", len(recs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSummaries(ctx, filter)
}
