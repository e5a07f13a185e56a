// Package pipeline sequences extraction, summarization, translation and
// persistence for a single blog URL.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/fwojciec/blogsumm"
)

// Error messages returned to callers.
const (
	MsgNotConfigured     = "AI service not configured"
	MsgInvalidURL        = "Invalid or missing URL"
	MsgExtractionFailed  = "Could not extract blog content from the provided URL"
	MsgPersistenceFailed = "Database insert failed"
)

// urlRe accepts http(s) URLs with at least one dot after the scheme.
var urlRe = regexp.MustCompile(`^https?://.+\..+`)

// State is a stage of a pipeline run.
type State int

// Pipeline states in the order a successful run visits them.
const (
	StateIdle State = iota
	StateExtracting
	StateSummarizing
	StateTranslating
	StatePersisting
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExtracting:
		return "extracting"
	case StateSummarizing:
		return "summarizing"
	case StateTranslating:
		return "translating"
	case StatePersisting:
		return "persisting"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Ensure Pipeline implements blogsumm.Pipeline at compile time.
var _ blogsumm.Pipeline = (*Pipeline)(nil)

// Pipeline turns a URL into a persisted SummaryRecord.
//
// Documents is optional; when set, raw article text is archived before the
// summary record is written and archive failures are only logged.
type Pipeline struct {
	Extractor  blogsumm.Extractor
	Summarizer blogsumm.Summarizer
	Translator blogsumm.Translator
	Documents  blogsumm.DocumentStore
	Summaries  blogsumm.SummaryService
	Logger     *slog.Logger
}

// Run executes the pipeline for url.
func (p *Pipeline) Run(ctx context.Context, url string) (*blogsumm.SummaryRecord, error) {
	run := &run{logger: p.logger().With("url", url)}

	if p.Summarizer == nil || p.Translator == nil {
		run.transition(StateAborted, "reason", "not configured")
		return nil, blogsumm.Errorf(blogsumm.EUNAVAILABLE, MsgNotConfigured)
	}

	url = strings.TrimSpace(url)
	if !urlRe.MatchString(url) {
		run.transition(StateAborted, "reason", "invalid url")
		return nil, blogsumm.Errorf(blogsumm.EINVALID, MsgInvalidURL)
	}

	run.transition(StateExtracting)
	extracted := p.Extractor.Extract(ctx, url)
	if extracted.Failed() {
		run.transition(StateAborted, "reason", extracted.Text)
		return nil, blogsumm.Errorf(blogsumm.EINVALID, MsgExtractionFailed)
	}

	run.transition(StateSummarizing, "chars", len(extracted.Text))
	summary := p.Summarizer.Summarize(ctx, extracted.Text, extracted.Title)

	run.transition(StateTranslating, "strategy", summary.Strategy)
	translated := p.Translator.Translate(ctx, summary.Text)

	metrics := blogsumm.NewMetrics(extracted.Text, summary.Text)
	rec := &blogsumm.SummaryRecord{
		URL:                url,
		Title:              extracted.Title,
		Summary:            summary.Text,
		TranslatedSummary:  translated,
		KeyPoints:          summary.KeyPoints,
		FullText:           extracted.Text,
		WordCount:          metrics.WordCount,
		SummaryWordCount:   metrics.SummaryWordCount,
		CompressionRatio:   metrics.CompressionRatio,
		ReadingTimeMinutes: metrics.ReadingTimeMinutes,
		Strategy:           summary.Strategy,
	}

	run.transition(StatePersisting)
	p.archive(ctx, run.logger, url, extracted)

	if err := p.Summaries.CreateSummary(ctx, rec); err != nil {
		run.logger.Error("summary insert failed", "err", err)
		run.transition(StateAborted, "reason", "persist")
		return nil, blogsumm.Errorf(blogsumm.EINTERNAL, MsgPersistenceFailed)
	}

	run.transition(StateDone, "id", rec.ID)
	return rec, nil
}

// archive stores the raw document. Failures do not abort the run.
func (p *Pipeline) archive(ctx context.Context, logger *slog.Logger, url string, extracted blogsumm.ExtractionResult) {
	if p.Documents == nil {
		return
	}
	doc := &blogsumm.Document{
		URL:      url,
		Title:    extracted.Title,
		FullText: extracted.Text,
	}
	if err := p.Documents.CreateDocument(ctx, doc); err != nil {
		logger.Warn("document archive failed", "err", err)
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p.Logger
}

// run tracks the state of a single Run call.
type run struct {
	logger *slog.Logger
	state  State
}

func (r *run) transition(to State, args ...any) {
	args = append([]any{"from", r.state.String(), "to", to.String()}, args...)
	r.logger.Debug("pipeline transition", args...)
	r.state = to
}
