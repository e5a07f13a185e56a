package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/blogsumm"
	"github.com/fwojciec/blogsumm/config"
	"github.com/fwojciec/blogsumm/fs"
	"github.com/fwojciec/blogsumm/gemini"
	"github.com/fwojciec/blogsumm/goquery"
	blogsummhttp "github.com/fwojciec/blogsumm/http"
	blogmongo "github.com/fwojciec/blogsumm/mongo"
	"github.com/fwojciec/blogsumm/postgres"
	"github.com/fwojciec/blogsumm/retry"
	blogs3 "github.com/fwojciec/blogsumm/s3"
	blogslog "github.com/fwojciec/blogsumm/slog"
	"github.com/fwojciec/blogsumm/sqlite"
	"github.com/fwojciec/blogsumm/summarize"
	"github.com/fwojciec/blogsumm/translate"
	"google.golang.org/genai"
)

// sqliteDB opens the shared SQLite database on first use.
func (m *Main) sqliteDB(cfg config.Config) (*sqlite.DB, error) {
	if m.db != nil {
		return m.db, nil
	}
	db := sqlite.NewDB(cfg.Storage.SQLitePath)
	if err := db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database at %q: %w", cfg.Storage.SQLitePath, err)
	}
	m.onClose(func(context.Context) error { return db.Close() })
	m.db = db
	return db, nil
}

func (m *Main) openSummaryService(ctx context.Context, cfg config.Config, logger *slog.Logger) (blogsumm.SummaryService, error) {
	var summaries blogsumm.SummaryService
	switch cfg.Storage.Summaries {
	case config.SummariesPostgres:
		db := postgres.NewDB(cfg.Storage.PostgresDSN)
		if err := db.Open(ctx); err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		m.onClose(func(context.Context) error { return db.Close() })
		summaries = postgres.NewSummaryService(db)
	default:
		db, err := m.sqliteDB(cfg)
		if err != nil {
			return nil, err
		}
		summaries = sqlite.NewSummaryService(db)
	}
	return blogslog.NewLoggingSummaryService(summaries, logger), nil
}

// openDocumentStore returns nil when archiving is disabled.
func (m *Main) openDocumentStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (blogsumm.DocumentStore, error) {
	var documents blogsumm.DocumentStore
	switch cfg.Storage.Documents {
	case config.DocumentsNone:
		return nil, nil
	case config.DocumentsFS:
		documents = fs.NewDocumentStore(cfg.Storage.FSDir)
	case config.DocumentsS3:
		store, err := blogs3.NewDocumentStore(ctx, blogs3.Config{
			Bucket:       cfg.Storage.S3.Bucket,
			Prefix:       cfg.Storage.S3.Prefix,
			Region:       cfg.Storage.S3.Region,
			Endpoint:     cfg.Storage.S3.Endpoint,
			UsePathStyle: cfg.Storage.S3.UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to configure s3: %w", err)
		}
		documents = store
	case config.DocumentsMongo:
		store, err := blogmongo.Open(ctx, cfg.Storage.Mongo.URI, cfg.Storage.Mongo.Database, cfg.Storage.Mongo.Collection)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		m.onClose(store.Close)
		documents = store
	default:
		db, err := m.sqliteDB(cfg)
		if err != nil {
			return nil, err
		}
		documents = sqlite.NewDocumentStore(db)
	}
	return blogslog.NewLoggingDocumentStore(documents, logger), nil
}

func newExtractor(cfg config.Config, logger *slog.Logger) blogsumm.Extractor {
	opts := []blogsummhttp.Option{blogsummhttp.WithTimeout(cfg.Fetch.Timeout)}
	if cfg.Fetch.UserAgent != "" {
		opts = append(opts, blogsummhttp.WithUserAgent(cfg.Fetch.UserAgent))
	}
	fetcher := blogslog.NewLoggingFetcher(blogsummhttp.NewFetcher(opts...), logger)
	return goquery.NewExtractor(fetcher)
}

func newGenerator(ctx context.Context, cfg config.Config, logger *slog.Logger) (blogsumm.Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	g := gemini.NewGenerator(client,
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithRateLimit(cfg.Gemini.RateLimit, cfg.Gemini.Burst),
	)
	return blogslog.NewLoggingGenerator(g, logger), nil
}

func retryPolicy(cfg config.Config, logger *slog.Logger, op string) retry.Policy {
	p := retry.DefaultPolicy()
	p.MaxAttempts = cfg.Retry.MaxAttempts
	p.BaseDelay = cfg.Retry.BaseDelay
	p.OnRetry = func(attempt int, delay time.Duration, err error) {
		logger.Warn("retrying", "op", op, "attempt", attempt, "delay", delay, "error", err)
	}
	return p
}

func newSummarizer(cfg config.Config, g blogsumm.Generator, logger *slog.Logger) *summarize.Summarizer {
	s := summarize.NewSummarizer(g)
	s.Policy = retryPolicy(cfg, logger, "summarize")
	s.MaxInputChars = cfg.Summary.MaxInputChars
	s.TargetWords = cfg.Summary.TargetWords
	s.MaxSentences = cfg.Summary.MaxSentences
	s.KeyPoints = cfg.Summary.KeyPoints
	return s
}

func newTranslator(cfg config.Config, g blogsumm.Generator, logger *slog.Logger) *translate.Translator {
	t := translate.NewTranslator(g)
	t.Policy = retryPolicy(cfg, logger, "translate")
	t.Language = cfg.Translation.Language
	return t
}
