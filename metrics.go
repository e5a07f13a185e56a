package blogsumm

import (
	"math"
	"strings"
	"unicode/utf8"
)

// WordsPerMinute is the reading speed used for reading time estimates.
const WordsPerMinute = 200

// Metrics describes the size of an article and its summary.
type Metrics struct {
	WordCount          int     `json:"wordCount"`
	SummaryWordCount   int     `json:"summaryWordCount"`
	CompressionRatio   float64 `json:"compressionRatio"`
	ReadingTimeMinutes int     `json:"readingTimeMinutes"`
}

// NewMetrics computes metrics for the original text and its summary.
func NewMetrics(text, summary string) Metrics {
	return Metrics{
		WordCount:          WordCount(text),
		SummaryWordCount:   WordCount(summary),
		CompressionRatio:   CompressionRatio(text, summary),
		ReadingTimeMinutes: ReadingTime(text),
	}
}

// WordCount returns the number of whitespace separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// CompressionRatio returns the summary length divided by the original
// length in characters, rounded to two decimals. Returns 0 for an empty
// original.
func CompressionRatio(original, summary string) float64 {
	n := utf8.RuneCountInString(original)
	if n == 0 {
		return 0
	}
	ratio := float64(utf8.RuneCountInString(summary)) / float64(n)
	return math.Round(ratio*100) / 100
}

// ReadingTime estimates the minutes needed to read text.
func ReadingTime(text string) int {
	return int(math.Ceil(float64(WordCount(text)) / WordsPerMinute))
}
