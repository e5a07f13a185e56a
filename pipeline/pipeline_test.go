package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/blogsumm"
	"github.com/fwojciec/blogsumm/mock"
	"github.com/fwojciec/blogsumm/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleText = "Go is an open source programming language that makes it simple to build secure, scalable systems. " +
	"It was designed at Google and has a growing community."

// fixture bundles mocks whose defaults describe a successful run.
type fixture struct {
	extractor  *mock.Extractor
	summarizer *mock.Summarizer
	translator *mock.Translator
	documents  *mock.DocumentStore
	summaries  *mock.SummaryService

	saved *blogsumm.SummaryRecord
	docs  []*blogsumm.Document
}

func newFixture() *fixture {
	f := &fixture{}
	f.extractor = &mock.Extractor{
		ExtractFn: func(ctx context.Context, url string) blogsumm.ExtractionResult {
			return blogsumm.ExtractionResult{Title: "Why Go", Text: articleText}
		},
	}
	f.summarizer = &mock.Summarizer{
		SummarizeFn: func(ctx context.Context, text, title string) *blogsumm.SummaryResult {
			return &blogsumm.SummaryResult{
				Text:      "Go is a simple language.",
				Strategy:  blogsumm.StrategyGenerative,
				KeyPoints: []string{"Go is open source."},
			}
		},
	}
	f.translator = &mock.Translator{
		TranslateFn: func(ctx context.Context, text string) string {
			return "گو ایک سادہ زبان ہے۔"
		},
	}
	f.documents = &mock.DocumentStore{
		CreateDocumentFn: func(ctx context.Context, doc *blogsumm.Document) error {
			f.docs = append(f.docs, doc)
			return nil
		},
	}
	f.summaries = &mock.SummaryService{
		CreateSummaryFn: func(ctx context.Context, rec *blogsumm.SummaryRecord) error {
			rec.ID = "rec-1"
			f.saved = rec
			return nil
		},
	}
	return f
}

func (f *fixture) pipeline() *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Extractor:  f.extractor,
		Summarizer: f.summarizer,
		Translator: f.translator,
		Documents:  f.documents,
		Summaries:  f.summaries,
	}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("produces and persists a record", func(t *testing.T) {
		t.Parallel()

		f := newFixture()

		rec, err := f.pipeline().Run(context.Background(), "  https://blog.example.com/post  ")

		require.NoError(t, err)
		assert.Equal(t, "rec-1", rec.ID)
		assert.Equal(t, "https://blog.example.com/post", rec.URL)
		assert.Equal(t, "Why Go", rec.Title)
		assert.Equal(t, "Go is a simple language.", rec.Summary)
		assert.Equal(t, "گو ایک سادہ زبان ہے۔", rec.TranslatedSummary)
		assert.Equal(t, []string{"Go is open source."}, rec.KeyPoints)
		assert.Equal(t, articleText, rec.FullText)
		assert.Equal(t, blogsumm.StrategyGenerative, rec.Strategy)
		assert.Equal(t, blogsumm.WordCount(articleText), rec.WordCount)
		assert.Equal(t, 5, rec.SummaryWordCount)
		assert.Equal(t, blogsumm.CompressionRatio(articleText, rec.Summary), rec.CompressionRatio)
		assert.Equal(t, 1, rec.ReadingTimeMinutes)
		assert.Same(t, f.saved, rec)

		require.Len(t, f.docs, 1)
		assert.Equal(t, "https://blog.example.com/post", f.docs[0].URL)
		assert.Equal(t, articleText, f.docs[0].FullText)
	})

	t.Run("translates the summary text", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		var translated string
		f.translator.TranslateFn = func(ctx context.Context, text string) string {
			translated = text
			return blogsumm.TranslationRateLimited
		}

		rec, err := f.pipeline().Run(context.Background(), "https://blog.example.com/post")

		require.NoError(t, err)
		assert.Equal(t, "Go is a simple language.", translated)
		assert.Equal(t, blogsumm.TranslationRateLimited, rec.TranslatedSummary)
	})

	t.Run("returns unavailable when summarizer is missing", func(t *testing.T) {
		t.Parallel()

		p := newFixture().pipeline()
		p.Summarizer = nil

		_, err := p.Run(context.Background(), "not a url")

		assert.Equal(t, blogsumm.EUNAVAILABLE, blogsumm.ErrorCode(err))
		assert.Equal(t, pipeline.MsgNotConfigured, blogsumm.ErrorMessage(err))
	})

	t.Run("returns unavailable when translator is missing", func(t *testing.T) {
		t.Parallel()

		p := newFixture().pipeline()
		p.Translator = nil

		_, err := p.Run(context.Background(), "https://blog.example.com/post")

		assert.Equal(t, blogsumm.EUNAVAILABLE, blogsumm.ErrorCode(err))
	})

	t.Run("rejects invalid urls without extracting", func(t *testing.T) {
		t.Parallel()

		for _, url := range []string{"", "   ", "not-a-url", "ftp://example.com/file", "https://localhost", "example.com/post"} {
			f := newFixture()
			f.extractor.ExtractFn = func(ctx context.Context, url string) blogsumm.ExtractionResult {
				t.Fatalf("extract called for %q", url)
				return blogsumm.ExtractionResult{}
			}

			_, err := f.pipeline().Run(context.Background(), url)

			assert.Equal(t, blogsumm.EINVALID, blogsumm.ErrorCode(err), url)
			assert.Equal(t, pipeline.MsgInvalidURL, blogsumm.ErrorMessage(err), url)
		}
	})

	t.Run("aborts on extraction sentinels without persisting", func(t *testing.T) {
		t.Parallel()

		for _, sentinel := range []string{blogsumm.NoReadableContent, blogsumm.ErrorFetchingContent} {
			f := newFixture()
			f.extractor.ExtractFn = func(ctx context.Context, url string) blogsumm.ExtractionResult {
				return blogsumm.ExtractionResult{Title: blogsumm.ErrorTitle, Text: sentinel}
			}
			f.summarizer.SummarizeFn = func(ctx context.Context, text, title string) *blogsumm.SummaryResult {
				t.Fatal("summarize should not be called")
				return nil
			}

			_, err := f.pipeline().Run(context.Background(), "https://blog.example.com/post")

			assert.Equal(t, blogsumm.EINVALID, blogsumm.ErrorCode(err))
			assert.Equal(t, pipeline.MsgExtractionFailed, blogsumm.ErrorMessage(err))
			assert.Nil(t, f.saved)
			assert.Empty(t, f.docs)
		}
	})

	t.Run("continues when the document store fails", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.documents.CreateDocumentFn = func(ctx context.Context, doc *blogsumm.Document) error {
			return errors.New("mongo unreachable")
		}

		rec, err := f.pipeline().Run(context.Background(), "https://blog.example.com/post")

		require.NoError(t, err)
		assert.Equal(t, "rec-1", rec.ID)
	})

	t.Run("runs without a document store", func(t *testing.T) {
		t.Parallel()

		p := newFixture().pipeline()
		p.Documents = nil

		_, err := p.Run(context.Background(), "https://blog.example.com/post")

		require.NoError(t, err)
	})

	t.Run("returns internal error when the summary store fails", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.summaries.CreateSummaryFn = func(ctx context.Context, rec *blogsumm.SummaryRecord) error {
			return errors.New("connection refused")
		}

		rec, err := f.pipeline().Run(context.Background(), "https://blog.example.com/post")

		assert.Nil(t, rec)
		assert.Equal(t, blogsumm.EINTERNAL, blogsumm.ErrorCode(err))
		assert.Equal(t, pipeline.MsgPersistenceFailed, blogsumm.ErrorMessage(err))
	})

	t.Run("logs state transitions at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := newFixture().pipeline()
		p.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		_, err := p.Run(context.Background(), "https://blog.example.com/post")
		require.NoError(t, err)

		out := buf.String()
		for _, to := range []string{"to=extracting", "to=summarizing", "to=translating", "to=persisting", "to=done"} {
			assert.Contains(t, out, to)
		}
		assert.Less(t, strings.Index(out, "to=extracting"), strings.Index(out, "to=done"))
	})
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", pipeline.StateIdle.String())
	assert.Equal(t, "persisting", pipeline.StatePersisting.String())
	assert.Equal(t, "aborted", pipeline.StateAborted.String())
	assert.Equal(t, "unknown", pipeline.State(99).String())
}
