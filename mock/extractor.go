package mock

import (
	"context"

	"github.com/fwojciec/blogsumm"
)

var _ blogsumm.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of blogsumm.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, url string) blogsumm.ExtractionResult
}

func (e *Extractor) Extract(ctx context.Context, url string) blogsumm.ExtractionResult {
	return e.ExtractFn(ctx, url)
}
