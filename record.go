package blogsumm

import (
	"context"
	"time"
)

// SummaryRecord is the persisted outcome of a completed pipeline run.
type SummaryRecord struct {
	ID                 string          `json:"id"`
	URL                string          `json:"url"`
	Title              string          `json:"title"`
	Summary            string          `json:"summary"`
	TranslatedSummary  string          `json:"translatedSummary"`
	KeyPoints          []string        `json:"keyPoints"`
	FullText           string          `json:"fullText"`
	WordCount          int             `json:"wordCount"`
	SummaryWordCount   int             `json:"summaryWordCount"`
	CompressionRatio   float64         `json:"compressionRatio"`
	ReadingTimeMinutes int             `json:"readingTimeMinutes"`
	Strategy           SummaryStrategy `json:"strategy"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *SummaryRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "summary URL required")
	}
	if r.Summary == "" {
		return Errorf(EINVALID, "summary text required")
	}
	return nil
}

// SummaryService represents a service for managing summary records.
type SummaryService interface {
	// CreateSummary creates a new summary record, assigning ID and CreatedAt.
	CreateSummary(ctx context.Context, rec *SummaryRecord) error

	// FindSummaryByID retrieves a summary record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindSummaryByID(ctx context.Context, id string) (*SummaryRecord, error)

	// FindSummaries retrieves records matching the filter, newest first.
	FindSummaries(ctx context.Context, filter SummaryFilter) ([]*SummaryRecord, error)
}

// SummaryFilter represents a filter for FindSummaries.
type SummaryFilter struct {
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
