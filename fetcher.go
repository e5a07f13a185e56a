package blogsumm

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch issues a GET request for the URL and returns the response body.
	// Implementations enforce their own deadline in addition to the context.
	// Non-2xx responses are reported as errors.
	Fetch(ctx context.Context, url string) (html string, err error)
}
