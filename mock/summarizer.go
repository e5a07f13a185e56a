package mock

import (
	"context"

	"github.com/fwojciec/blogsumm"
)

var _ blogsumm.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of blogsumm.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, text, title string) *blogsumm.SummaryResult
}

func (s *Summarizer) Summarize(ctx context.Context, text, title string) *blogsumm.SummaryResult {
	return s.SummarizeFn(ctx, text, title)
}

var _ blogsumm.Translator = (*Translator)(nil)

// Translator is a mock implementation of blogsumm.Translator.
type Translator struct {
	TranslateFn func(ctx context.Context, text string) string
}

func (t *Translator) Translate(ctx context.Context, text string) string {
	return t.TranslateFn(ctx, text)
}
