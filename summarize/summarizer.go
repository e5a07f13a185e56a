// Package summarize implements blogsumm.Summarizer on top of a generative
// model with an extractive fallback.
package summarize

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/blogsumm"
	"github.com/fwojciec/blogsumm/retry"
)

// Defaults for Summarizer.
const (
	// MinContentLength is the shortest text that is summarized at all.
	MinContentLength = 100

	// DefaultMaxInputChars bounds the article prefix sent to the model.
	DefaultMaxInputChars = 12000

	// DefaultTargetWords is the requested summary length.
	DefaultTargetWords = 200

	// DefaultKeyPoints is the number of key points attached to a summary.
	DefaultKeyPoints = 3
)

// Ensure Summarizer implements blogsumm.Summarizer at compile time.
var _ blogsumm.Summarizer = (*Summarizer)(nil)

// Summarizer summarizes articles with a Generator, falling back to
// extractive summarization when generation fails.
type Summarizer struct {
	Generator blogsumm.Generator
	Policy    retry.Policy

	MaxInputChars int
	TargetWords   int
	MaxSentences  int
	KeyPoints     int
	Temperature   *float32
}

// NewSummarizer creates a Summarizer with default settings.
func NewSummarizer(g blogsumm.Generator) *Summarizer {
	return &Summarizer{
		Generator:     g,
		Policy:        retry.DefaultPolicy(),
		MaxInputChars: DefaultMaxInputChars,
		TargetWords:   DefaultTargetWords,
		MaxSentences:  DefaultMaxSentences,
		KeyPoints:     DefaultKeyPoints,
	}
}

// Summarize reduces text to a short synopsis.
func (s *Summarizer) Summarize(ctx context.Context, text, title string) *blogsumm.SummaryResult {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinContentLength {
		return &blogsumm.SummaryResult{
			Text:     blogsumm.ContentTooShort,
			Strategy: blogsumm.StrategyTooShort,
		}
	}

	keyPoints := KeyPoints(text, s.keyPoints())

	summary, err := s.generate(ctx, text, title)
	if err == nil {
		return &blogsumm.SummaryResult{
			Text:      summary,
			Strategy:  blogsumm.StrategyGenerative,
			KeyPoints: keyPoints,
		}
	}

	return &blogsumm.SummaryResult{
		Text:      Extractive(text, s.MaxSentences),
		Strategy:  blogsumm.StrategyExtractive,
		KeyPoints: keyPoints,
	}
}

func (s *Summarizer) generate(ctx context.Context, text, title string) (string, error) {
	if s.Generator == nil {
		return "", blogsumm.Errorf(blogsumm.EUNAVAILABLE, "no generator configured")
	}

	prompt := BuildPrompt(title, truncate(text, s.maxInputChars()), s.targetWords())
	config := blogsumm.GenerateConfig{Temperature: s.Temperature}

	return retry.Do(ctx, s.Policy, func(ctx context.Context) (string, error) {
		out, err := s.Generator.Generate(ctx, prompt, config)
		if err != nil {
			return "", err
		}
		out = strings.TrimSpace(out)
		if out == "" {
			return "", blogsumm.Errorf(blogsumm.EINTERNAL, "empty summary returned")
		}
		return out, nil
	})
}

// BuildPrompt builds the summarization prompt for an article.
func BuildPrompt(title, content string, targetWords int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Summarize the following blog post in a single flowing paragraph of about %d words.\n", targetWords)
	sb.WriteString("Write in an informative, neutral tone. Do not use bullet points, numbered lists or headings.\n")
	sb.WriteString("Capture the main argument and the most important supporting details.\n\n")
	fmt.Fprintf(&sb, "Title: %s\n\n", title)
	fmt.Fprintf(&sb, "Content:\n%s\n\n", content)
	sb.WriteString("Summary:")
	return sb.String()
}

func (s *Summarizer) maxInputChars() int {
	if s.MaxInputChars <= 0 {
		return DefaultMaxInputChars
	}
	return s.MaxInputChars
}

func (s *Summarizer) targetWords() int {
	if s.TargetWords <= 0 {
		return DefaultTargetWords
	}
	return s.TargetWords
}

func (s *Summarizer) keyPoints() int {
	if s.KeyPoints <= 0 {
		return DefaultKeyPoints
	}
	return s.KeyPoints
}

// truncate returns at most n characters of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
