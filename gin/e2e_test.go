package gin_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/blogsumm"
	bloggin "github.com/fwojciec/blogsumm/gin"
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

const postHTML = `<html><head><title>Testing in Go</title></head><body>
<article class="post">
<h1>Testing in Go</h1>
<div class="entry-content">
<p>The testing package ships with the standard distribution and needs no extra setup.</p>
<p>Table driven tests keep many related cases compact, readable, and easy to extend.</p>
<p>Subtests created with t.Run can run in parallel and be selected from the command line.</p>
<p>The httptest package makes it easy to exercise handlers without opening real sockets.</p>
</div>
</article>
</body></html>`

// newE2EServer wires the real pipeline behind the API with an in-memory
// SQLite store. The generator always fails so summaries are extractive.
func newE2EServer(t *testing.T) (*bloggin.Server, *sqlite.DB) {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	gen := &mock.Generator{
		GenerateFn: func(ctx context.Context, prompt string, config blogsumm.GenerateConfig) (string, error) {
			return "", errors.New("service down")
		},
	}
	summarizer := summarize.NewSummarizer(gen)
	summarizer.Policy.BaseDelay = time.Millisecond
	translator := translate.NewTranslator(gen)
	translator.Policy.BaseDelay = time.Millisecond

	summaries := sqlite.NewSummaryService(db)
	p := &pipeline.Pipeline{
		Extractor:  goquery.NewExtractor(blogsummhttp.NewFetcher(blogsummhttp.WithTimeout(2 * time.Second))),
		Summarizer: summarizer,
		Translator: translator,
		Documents:  sqlite.NewDocumentStore(db),
		Summaries:  summaries,
	}
	return bloggin.NewServer(p, summaries), db
}

func TestEndToEnd(t *testing.T) {
	t.Parallel()

	blog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts/testing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postHTML))
	}))
	t.Cleanup(blog.Close)

	t.Run("not a url returns 400", func(t *testing.T) {
		t.Parallel()

		srv, _ := newE2EServer(t)

		rec, body := doRequest(t, srv, http.MethodPost, "/api/summarize", `{"url":"not a url"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid or missing URL", body["error"])
	})

	t.Run("missing page returns 400", func(t *testing.T) {
		t.Parallel()

		srv, _ := newE2EServer(t)

		rec, body := doRequest(t, srv, http.MethodPost, "/api/summarize", `{"url":"`+blog.URL+`/posts/missing"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Could not extract blog content from the provided URL", body["error"])
	})

	t.Run("generator down still returns extractive summary", func(t *testing.T) {
		t.Parallel()

		srv, db := newE2EServer(t)

		rec, body := doRequest(t, srv, http.MethodPost, "/api/summarize", `{"url":"`+blog.URL+`/posts/testing"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Testing in Go", body["title"])
		assert.NotEmpty(t, body["summary"])
		assert.Equal(t, blogsumm.TranslationTechnicalError, body["urdu_summary"])
		assert.Len(t, body["key_points"], 3)
		ratio, ok := body["compression_ratio"].(float64)
		require.True(t, ok)
		assert.Greater(t, ratio, 0.0)
		assert.LessOrEqual(t, ratio, 1.0)

		var docs int
		require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM documents").Scan(&docs))
		assert.Equal(t, 1, docs)

		rec, body = doRequest(t, srv, http.MethodGet, "/api/summaries", "")
		require.Equal(t, http.StatusOK, rec.Code)
		items := body["summaries"].([]any)
		require.Len(t, items, 1)
		item := items[0].(map[string]any)
		assert.Equal(t, "extractive", item["strategy"])

		rec, body = doRequest(t, srv, http.MethodGet, "/api/summaries/"+item["id"].(string), "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Testing in Go", body["title"])
	})
}
