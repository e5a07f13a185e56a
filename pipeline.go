package blogsumm

import "context"

// Pipeline turns a blog URL into a persisted summary record.
type Pipeline interface {
	// Run extracts, summarizes, translates and persists the post at url.
	// Returns EINVALID for unusable input or content, EUNAVAILABLE when no
	// generative service is configured and EINTERNAL when the summary
	// record cannot be stored.
	Run(ctx context.Context, url string) (*SummaryRecord, error)
}
