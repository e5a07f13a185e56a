package summarize

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Extractive scoring parameters.
const (
	// DefaultMaxSentences is the number of sentences kept by the fallback.
	DefaultMaxSentences = 5

	minSentenceLength = 20
	leadFraction      = 0.3
	leadBoost         = 1.2
	lengthBoost       = 1.1
	minBoostWords     = 10
	maxBoostWords     = 30

	// maxLeadRunes bounds the leading-text summary used when no sentence
	// is long enough to score.
	maxLeadRunes = 300
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

type sentence struct {
	text  string
	index int
	score float64
}

// Extractive returns a summary made of the n highest scoring sentences of
// text, in the order they appear. Sentences near the start of the text and
// sentences of moderate length score higher. When no sentence qualifies the
// leading text is used instead. The result is never longer than text with
// its whitespace collapsed, and is empty only for blank text.
func Extractive(text string, n int) string {
	selected, open := rankSentences(text, n)
	if len(selected) == 0 {
		return leadingText(text, maxLeadRunes)
	}
	parts := make([]string, len(selected))
	for i, s := range selected {
		parts[i] = s.text
	}
	summary := strings.Join(parts, ". ")
	// Only close sentences the source closed.
	if selected[len(selected)-1].index != open {
		summary += "."
	}
	// ". " separators can outgrow unspaced source punctuation.
	if collapsed := collapseSpace(text); utf8.RuneCountInString(summary) > utf8.RuneCountInString(collapsed) {
		return collapsed
	}
	return summary
}

// KeyPoints returns the n highest scoring sentences of text in document
// order, each terminated with a period.
func KeyPoints(text string, n int) []string {
	selected, _ := rankSentences(text, n)
	if len(selected) == 0 {
		return nil
	}
	points := make([]string, len(selected))
	for i, s := range selected {
		points[i] = s.text + "."
	}
	return points
}

// rankSentences scores the sentences of text and returns the top n in
// document order, along with the index of the trailing sentence that has no
// terminal punctuation, or -1.
func rankSentences(text string, n int) ([]sentence, int) {
	if n <= 0 {
		n = DefaultMaxSentences
	}
	texts, open := splitSentences(text)
	return selectTop(scoreSentences(texts), n), open
}

// leadingText collapses whitespace and cuts text at a word boundary within
// limit runes. A cut result ends with a period.
func leadingText(text string, limit int) string {
	collapsed := collapseSpace(text)
	runes := []rune(collapsed)
	if len(runes) <= limit {
		return collapsed
	}
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:-.!?") + "."
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitSentences splits text on terminal punctuation and drops fragments
// shorter than minSentenceLength. open is the index of the last kept
// fragment when the text ends without terminal punctuation, or -1.
func splitSentences(text string) (out []string, open int) {
	open = -1
	parts := sentenceSplitRe.Split(text, -1)
	for i, part := range parts {
		s := collapseSpace(part)
		if len(s) < minSentenceLength {
			continue
		}
		out = append(out, s)
		if i == len(parts)-1 {
			open = len(out) - 1
		}
	}
	return out, open
}

func scoreSentences(texts []string) []sentence {
	sentences := make([]sentence, len(texts))
	lead := float64(len(texts)) * leadFraction
	for i, text := range texts {
		position := 1.0
		if float64(i) < lead {
			position = leadBoost
		}
		length := 1.0
		if words := len(strings.Fields(text)); words > minBoostWords && words < maxBoostWords {
			length = lengthBoost
		}
		sentences[i] = sentence{text: text, index: i, score: position * length}
	}
	return sentences
}

// selectTop picks the n best scored sentences, earlier sentences winning
// ties, and restores document order.
func selectTop(sentences []sentence, n int) []sentence {
	if len(sentences) <= n {
		return sentences
	}

	ranked := make([]sentence, len(sentences))
	copy(ranked, sentences)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	top := ranked[:n]
	sort.Slice(top, func(i, j int) bool {
		return top[i].index < top[j].index
	})
	return top
}
