package blogsumm

import "context"

// Extraction sentinels. Extractors never return errors; failures collapse
// into one of these texts and the pipeline treats both as terminal.
const (
	NoReadableContent    = "No readable content found."
	ErrorFetchingContent = "Error fetching blog content."
)

// Title fallbacks used by extractors.
const (
	UntitledBlog = "Untitled Blog"
	ErrorTitle   = "Error"
)

// ExtractionResult holds the readable content extracted from a blog post.
type ExtractionResult struct {
	Title string
	Text  string
}

// Failed reports whether the result carries one of the failure sentinels.
func (r ExtractionResult) Failed() bool {
	return r.Text == NoReadableContent || r.Text == ErrorFetchingContent
}

// Extractor fetches a page and extracts its title and article text.
type Extractor interface {
	// Extract never fails: fetch and parse errors are reported through
	// the sentinel texts above.
	Extract(ctx context.Context, url string) ExtractionResult
}
