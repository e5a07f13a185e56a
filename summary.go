package blogsumm

import "context"

// ContentTooShort is returned as the summary for inputs too short to summarize.
const ContentTooShort = "Content too short to summarize."

// SummaryStrategy identifies how a summary was produced.
type SummaryStrategy string

// SummaryStrategy constants.
const (
	StrategyGenerative SummaryStrategy = "generative"
	StrategyExtractive SummaryStrategy = "extractive"
	StrategyTooShort   SummaryStrategy = "too_short"
)

// SummaryResult is the outcome of summarizing an article.
type SummaryResult struct {
	Text     string
	Strategy SummaryStrategy

	// KeyPoints are the highest ranked article sentences in document order.
	KeyPoints []string
}

// Summarizer reduces article text to a short synopsis.
type Summarizer interface {
	// Summarize always produces a result; generation failures fall back
	// to an extractive summary.
	Summarize(ctx context.Context, text, title string) *SummaryResult
}
