package blogsumm_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/blogsumm"
	"github.com/stretchr/testify/assert"
)

func TestWordCount(t *testing.T) {
	t.Parallel()

	t.Run("splits on whitespace runs", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 4, blogsumm.WordCount("  one two\n\nthree\tfour  "))
	})

	t.Run("empty text has no words", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0, blogsumm.WordCount(""))
		assert.Equal(t, 0, blogsumm.WordCount(" \n\t "))
	})
}

func TestCompressionRatio(t *testing.T) {
	t.Parallel()

	t.Run("rounds to two decimals", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0.33, blogsumm.CompressionRatio("abcdefghi", "abc"), 0.0001)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0.5, blogsumm.CompressionRatio("اردو", "ار"), 0.0001)
	})

	t.Run("may exceed one for verbose summaries", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 2.0, blogsumm.CompressionRatio("short", "shortshort"), 0.0001)
	})

	t.Run("empty original yields zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, blogsumm.CompressionRatio("", "summary"))
	})
}

func TestReadingTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		words int
		want  int
	}{
		{0, 0},
		{1, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}
	for _, tt := range tests {
		text := strings.TrimSpace(strings.Repeat("word ", tt.words))
		assert.Equal(t, tt.want, blogsumm.ReadingTime(text), "words=%d", tt.words)
	}
}

func TestNewMetrics_IsDeterministic(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 50)
	summary := "A fox jumps over a dog."

	first := blogsumm.NewMetrics(text, summary)
	second := blogsumm.NewMetrics(text, summary)

	assert.Equal(t, first, second)
	assert.Equal(t, 450, first.WordCount)
	assert.Equal(t, 6, first.SummaryWordCount)
	assert.Equal(t, 3, first.ReadingTimeMinutes)
	assert.Greater(t, first.CompressionRatio, 0.0)
	assert.LessOrEqual(t, first.CompressionRatio, 1.0)
}

func TestExtractionResult_Failed(t *testing.T) {
	t.Parallel()

	assert.True(t, blogsumm.ExtractionResult{Text: blogsumm.NoReadableContent}.Failed())
	assert.True(t, blogsumm.ExtractionResult{Text: blogsumm.ErrorFetchingContent}.Failed())
	assert.False(t, blogsumm.ExtractionResult{Text: "Some real article text."}.Failed())
}

func TestIsTranslationUnavailable(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		blogsumm.TranslationNothingToTranslate,
		blogsumm.TranslationTechnicalError,
		blogsumm.TranslationQuotaExhausted,
		blogsumm.TranslationRateLimited,
	} {
		assert.True(t, blogsumm.IsTranslationUnavailable(s), s)
	}
	assert.False(t, blogsumm.IsTranslationUnavailable("یہ ایک خلاصہ ہے۔"))
}

func TestHashContent(t *testing.T) {
	t.Parallel()

	a := blogsumm.HashContent("hello")
	b := blogsumm.HashContent("hello")
	c := blogsumm.HashContent("world")

	assert.Len(t, a, 16)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
