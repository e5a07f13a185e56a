package pipeline_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/blogsumm"
	"github.com/fwojciec/blogsumm/goquery"
	blogsummhttp "github.com/fwojciec/blogsumm/http"
	"github.com/fwojciec/blogsumm/mock"
	"github.com/fwojciec/blogsumm/pipeline"
	"github.com/fwojciec/blogsumm/sqlite"
	"github.com/fwojciec/blogsumm/summarize"
	"github.com/fwojciec/blogsumm/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogHTML = `<!DOCTYPE html>
<html>
<head><title>Concurrency in Go | Example Blog</title></head>
<body>
<nav><p>Share this post with everyone you know on the internet today.</p></nav>
<article>
<h1>Concurrency in Go</h1>
<div class="post-content">
<p>Goroutines are lightweight threads managed by the Go runtime rather than the operating system.</p>
<p>Channels let goroutines communicate safely without sharing memory through explicit locks.</p>
<p>The select statement waits on several channel operations and proceeds with whichever is ready.</p>
<p>Context values carry deadlines and cancellation signals across API boundaries and goroutines.</p>
<p>Together these primitives make concurrent programs easier to write, read, and reason about.</p>
</div>
</article>
</body>
</html>`

// e2ePipeline wires the real fetcher, extractor, summarizer and translator
// against gen, with an in-memory summary store.
func e2ePipeline(gen blogsumm.Generator) *pipeline.Pipeline {
	fetcher := blogsummhttp.NewFetcher(blogsummhttp.WithTimeout(2 * time.Second))

	summarizer := summarize.NewSummarizer(gen)
	summarizer.Policy.BaseDelay = time.Millisecond
	translator := translate.NewTranslator(gen)
	translator.Policy.BaseDelay = time.Millisecond

	return &pipeline.Pipeline{
		Extractor:  goquery.NewExtractor(fetcher),
		Summarizer: summarizer,
		Translator: translator,
		Summaries: &mock.SummaryService{
			CreateSummaryFn: func(ctx context.Context, rec *blogsumm.SummaryRecord) error {
				rec.ID = "e2e"
				return nil
			},
		},
	}
}

const terseHTML = `<html><head><title>Terse</title></head><body><article>
<p>Yes. No. Maybe so. Sure thing. Go now. Okay then.</p>
<p>Yes. No. Maybe so. Sure thing. Go now. Okay then.</p>
<p>Yes. No. Maybe so. Sure thing. Go now. Okay then.</p>
</article></body></html>`

// blogServer serves blogHTML at /post and terseHTML at /terse.
func blogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, page := range map[string]string{"/post": blogHTML, "/terse": terseHTML} {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(page))
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPipeline_EndToEnd(t *testing.T) {
	t.Parallel()

	t.Run("falls back to extractive summary when generation is down", func(t *testing.T) {
		t.Parallel()

		srv := blogServer(t)
		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string, config blogsumm.GenerateConfig) (string, error) {
				return "", errors.New("service unavailable")
			},
		}

		rec, err := e2ePipeline(gen).Run(context.Background(), srv.URL+"/post")

		require.NoError(t, err)
		assert.Equal(t, "Concurrency in Go", rec.Title)
		assert.Equal(t, blogsumm.StrategyExtractive, rec.Strategy)
		assert.NotEmpty(t, rec.Summary)
		assert.NotContains(t, rec.FullText, "Share this post")
		assert.Equal(t, blogsumm.TranslationTechnicalError, rec.TranslatedSummary)
		assert.Greater(t, rec.CompressionRatio, 0.0)
		assert.LessOrEqual(t, rec.CompressionRatio, 1.0)
		assert.Len(t, rec.KeyPoints, 3)
	})

	t.Run("still summarizes a page of only short sentences when generation is down", func(t *testing.T) {
		t.Parallel()

		srv := blogServer(t)
		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string, config blogsumm.GenerateConfig) (string, error) {
				return "", errors.New("service unavailable")
			},
		}
		db := sqlite.NewDB(sqlite.MemoryPath)
		require.NoError(t, db.Open())
		t.Cleanup(func() { db.Close() })
		p := e2ePipeline(gen)
		p.Summaries = sqlite.NewSummaryService(db)

		rec, err := p.Run(context.Background(), srv.URL+"/terse")

		require.NoError(t, err)
		assert.Equal(t, blogsumm.StrategyExtractive, rec.Strategy)
		assert.NotEmpty(t, rec.Summary)
		assert.True(t, strings.HasPrefix(rec.Summary, "Yes. No. Maybe so."))
		assert.Greater(t, rec.CompressionRatio, 0.0)
		assert.LessOrEqual(t, rec.CompressionRatio, 1.0)
		assert.NotEmpty(t, rec.ID)
	})

	t.Run("uses generated summary and translation", func(t *testing.T) {
		t.Parallel()

		srv := blogServer(t)
		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string, config blogsumm.GenerateConfig) (string, error) {
				if strings.HasPrefix(prompt, "Translate") {
					return "گو میں ہم آہنگی", nil
				}
				return "Go offers goroutines, channels and select for concurrency.", nil
			},
		}

		rec, err := e2ePipeline(gen).Run(context.Background(), srv.URL+"/post")

		require.NoError(t, err)
		assert.Equal(t, blogsumm.StrategyGenerative, rec.Strategy)
		assert.Equal(t, "Go offers goroutines, channels and select for concurrency.", rec.Summary)
		assert.Equal(t, "گو میں ہم آہنگی", rec.TranslatedSummary)
	})

	t.Run("returns invalid for a missing page", func(t *testing.T) {
		t.Parallel()

		srv := blogServer(t)
		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string, config blogsumm.GenerateConfig) (string, error) {
				t.Fatal("generator should not be called")
				return "", nil
			},
		}

		_, err := e2ePipeline(gen).Run(context.Background(), srv.URL+"/missing")

		assert.Equal(t, blogsumm.EINVALID, blogsumm.ErrorCode(err))
		assert.Equal(t, pipeline.MsgExtractionFailed, blogsumm.ErrorMessage(err))
	})
}
