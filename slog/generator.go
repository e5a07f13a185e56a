package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blogsumm"
)

// Ensure LoggingGenerator implements blogsumm.Generator.
var _ blogsumm.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging. Prompts and outputs are
// logged by size only.
type LoggingGenerator struct {
	next   blogsumm.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next blogsumm.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the operation.
func (g *LoggingGenerator) Generate(ctx context.Context, prompt string, config blogsumm.GenerateConfig) (out string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"prompt_chars", len(prompt),
			"output_chars", len(out),
			"duration", time.Since(begin),
			"code", errorCode(err),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, prompt, config)
}

// errorCode returns the application error code of err, or "" for nil.
func errorCode(err error) string {
	if err == nil {
		return ""
	}
	return blogsumm.ErrorCode(err)
}
