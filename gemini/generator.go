// Package gemini implements blogsumm.Generator using Google Gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fwojciec/blogsumm"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements blogsumm.Generator at compile time.
var _ blogsumm.Generator = (*Generator)(nil)

// Generator implements blogsumm.Generator using Google Gemini.
type Generator struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithRateLimit paces outgoing requests to rps requests per second.
// A non-positive rps disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(g *Generator) {
		if rps <= 0 {
			g.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client, opts ...Option) *Generator {
	g := &Generator{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}

// Generate returns the model output for prompt.
func (g *Generator) Generate(ctx context.Context, prompt string, config blogsumm.GenerateConfig) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", blogsumm.Errorf(blogsumm.EINVALID, "prompt required")
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(config),
	)
	if err != nil {
		return "", MapError(err)
	}
	if result == nil {
		return "", blogsumm.Errorf(blogsumm.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig converts a blogsumm.GenerateConfig into a GenerateContentConfig.
func BuildConfig(config blogsumm.GenerateConfig) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{
		Temperature:     config.Temperature,
		MaxOutputTokens: config.MaxOutputTokens,
	}
	if config.SystemInstruction != "" {
		out.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: config.SystemInstruction}},
		}
	}
	return out
}

// MapError converts Gemini API errors into coded blogsumm errors so that
// callers can tell quota exhaustion and rate limiting apart from other
// failures. Errors that are not API errors are returned unchanged.
func MapError(err error) error {
	apiErr, ok := asAPIError(err)
	if !ok {
		return err
	}

	switch code := apiErr.Code; {
	case code == http.StatusTooManyRequests:
		if isDailyQuota(apiErr) {
			return blogsumm.Errorf(blogsumm.EQUOTA, "gemini quota exhausted: %s", apiErr.Message)
		}
		return blogsumm.Errorf(blogsumm.ERATELIMIT, "gemini rate limit: %s", apiErr.Message)
	case code == http.StatusBadRequest:
		return blogsumm.Errorf(blogsumm.EINVALID, "gemini rejected request: %s", apiErr.Message)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return blogsumm.Errorf(blogsumm.EUNAUTHORIZED, "gemini credentials rejected: %s", apiErr.Message)
	case code >= http.StatusInternalServerError:
		return blogsumm.Errorf(blogsumm.EUNAVAILABLE, "gemini unavailable (%d): %s", code, apiErr.Message)
	default:
		return blogsumm.Errorf(blogsumm.EINTERNAL, "gemini error (%d): %s", code, apiErr.Message)
	}
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var ptr *genai.APIError
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	return genai.APIError{}, false
}

// isDailyQuota reports whether a 429 response refers to a long-window
// quota rather than a per-minute limit. Gemini reports both as
// RESOURCE_EXHAUSTED and names the violated quota in the details.
func isDailyQuota(apiErr genai.APIError) bool {
	details := fmt.Sprint(apiErr.Details)
	switch {
	case strings.Contains(details, "PerDay"):
		return true
	case strings.Contains(details, "PerMinute"):
		return false
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "quota") && !strings.Contains(msg, "per minute")
}
