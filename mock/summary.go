package mock

import (
	"context"

	"github.com/fwojciec/blogsumm"
)

var _ blogsumm.SummaryService = (*SummaryService)(nil)

// SummaryService is a mock implementation of blogsumm.SummaryService.
type SummaryService struct {
	CreateSummaryFn   func(ctx context.Context, rec *blogsumm.SummaryRecord) error
	FindSummaryByIDFn func(ctx context.Context, id string) (*blogsumm.SummaryRecord, error)
	FindSummariesFn   func(ctx context.Context, filter blogsumm.SummaryFilter) ([]*blogsumm.SummaryRecord, error)
}

func (s *SummaryService) CreateSummary(ctx context.Context, rec *blogsumm.SummaryRecord) error {
	return s.CreateSummaryFn(ctx, rec)
}

func (s *SummaryService) FindSummaryByID(ctx context.Context, id string) (*blogsumm.SummaryRecord, error) {
	return s.FindSummaryByIDFn(ctx, id)
}

func (s *SummaryService) FindSummaries(ctx context.Context, filter blogsumm.SummaryFilter) ([]*blogsumm.SummaryRecord, error) {
	return s.FindSummariesFn(ctx, filter)
}

var _ blogsumm.Pipeline = (*Pipeline)(nil)

// Pipeline is a mock implementation of blogsumm.Pipeline.
type Pipeline struct {
	RunFn func(ctx context.Context, url string) (*blogsumm.SummaryRecord, error)
}

func (p *Pipeline) Run(ctx context.Context, url string) (*blogsumm.SummaryRecord, error) {
	return p.RunFn(ctx, url)
}
