// Package goquery implements blog content extraction using CSS selectors.
package goquery

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blogsumm"
)

// Extraction thresholds.
const (
	// MinNodeLength is the shortest trimmed text node kept as content.
	MinNodeLength = 30

	// MinContentLength is the length the joined text of a selector must
	// exceed for the selector to be accepted.
	MinContentLength = 100

	// MaxTitleLength caps the extracted title, in characters.
	MaxTitleLength = 200
)

// ContentSelectors lists content selectors from most to least specific.
// The first selector whose filtered text exceeds MinContentLength wins.
var ContentSelectors = []string{
	"article .entry-content p",
	"article .post-content p",
	".post-content p",
	".entry-content p",
	".article-content p",
	".article-body p",
	".blog-post p",
	".post-body p",
	".markdown-body p",
	"[itemprop=\"articleBody\"] p",
	"article p",
	"main p",
	"[role=\"main\"] p",
	".content p",
	"#content p",
	"p",
}

// boilerplateRe matches text nodes that are social or navigation chrome.
var boilerplateRe = regexp.MustCompile(`(?i)^(share|follow|subscribe|click here)`)

// titleSources resolve the title in priority order.
var titleSources = []func(doc *goquery.Document) string{
	func(doc *goquery.Document) string { return doc.Find("h1").First().Text() },
	func(doc *goquery.Document) string { return doc.Find("title").First().Text() },
	func(doc *goquery.Document) string {
		content, _ := doc.Find(`meta[property="og:title"]`).First().Attr("content")
		return content
	},
}

// Ensure Extractor implements blogsumm.Extractor at compile time.
var _ blogsumm.Extractor = (*Extractor)(nil)

// Extractor fetches blog posts and extracts their title and article text.
type Extractor struct {
	fetcher   blogsumm.Fetcher
	selectors []string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSelectors replaces the content selector chain.
func WithSelectors(selectors []string) Option {
	return func(e *Extractor) {
		e.selectors = selectors
	}
}

// NewExtractor creates a new Extractor that retrieves pages with fetcher.
func NewExtractor(fetcher blogsumm.Fetcher, opts ...Option) *Extractor {
	e := &Extractor{
		fetcher:   fetcher,
		selectors: ContentSelectors,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract fetches url and extracts its content. Failures are reported
// through the blogsumm extraction sentinels.
func (e *Extractor) Extract(ctx context.Context, url string) blogsumm.ExtractionResult {
	html, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return fetchError()
	}
	return parseArticle(html, e.selectors)
}

// ParseArticle extracts the title and article text from raw HTML using
// the default selector chain.
func ParseArticle(html string) blogsumm.ExtractionResult {
	return parseArticle(html, ContentSelectors)
}

func parseArticle(html string, selectors []string) blogsumm.ExtractionResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fetchError()
	}

	title := extractTitle(doc)
	for _, selector := range selectors {
		if text := collectText(doc, selector); len(text) > MinContentLength {
			return blogsumm.ExtractionResult{Title: title, Text: text}
		}
	}

	return blogsumm.ExtractionResult{Title: title, Text: blogsumm.NoReadableContent}
}

func fetchError() blogsumm.ExtractionResult {
	return blogsumm.ExtractionResult{
		Title: blogsumm.ErrorTitle,
		Text:  blogsumm.ErrorFetchingContent,
	}
}

// extractTitle returns the first non-empty title source, truncated.
func extractTitle(doc *goquery.Document) string {
	for _, source := range titleSources {
		if title := normalizeSpace(source(doc)); title != "" {
			return truncate(title, MaxTitleLength)
		}
	}
	return blogsumm.UntitledBlog
}

// collectText joins the usable text nodes matched by selector.
func collectText(doc *goquery.Document, selector string) string {
	var parts []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		text := normalizeSpace(sel.Text())
		if len(text) < MinNodeLength || boilerplateRe.MatchString(text) {
			return
		}
		parts = append(parts, text)
	})
	return strings.Join(parts, "\n\n")
}

// normalizeSpace trims s and collapses internal whitespace runs.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
