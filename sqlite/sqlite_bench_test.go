package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/blogsumm"
	"github.com/fwojciec/blogsumm/sqlite"
	"github.com/stretchr/testify/require"
)

func openBenchDB(b *testing.B) *sqlite.DB {
	b.Helper()
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	b.Cleanup(func() { db.Close() })
	return db
}

func benchRecord(i int) *blogsumm.SummaryRecord {
	return &blogsumm.SummaryRecord{
		URL:               fmt.Sprintf("https://blog.example.com/post-%d", i%10),
		Title:             fmt.Sprintf("Post %d", i),
		Summary:           "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor.",
		TranslatedSummary: "Translation unavailable: a technical error occurred while translating the summary.",
		KeyPoints:         []string{"Lorem ipsum dolor sit amet.", "Consectetur adipiscing elit."},
		FullText:          fmt.Sprintf("Post %d body. Lorem ipsum dolor sit amet, consectetur adipiscing elit.", i),
		WordCount:         12,
		SummaryWordCount:  11,
		CompressionRatio:  0.9,
		Strategy:          blogsumm.StrategyExtractive,
	}
}

func BenchmarkCreateSummary(b *testing.B) {
	svc := sqlite.NewSummaryService(openBenchDB(b))
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := svc.CreateSummary(ctx, benchRecord(i)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFindSummaries(b *testing.B) {
	svc := sqlite.NewSummaryService(openBenchDB(b))
	ctx := context.Background()
	for i := 0; i < 500; i++ {
		require.NoError(b, svc.CreateSummary(ctx, benchRecord(i)))
	}
	url := "https://blog.example.com/post-3"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.FindSummaries(ctx, blogsumm.SummaryFilter{URL: &url, Limit: 20}); err != nil {
			b.Fatal(err)
		}
	}
}
