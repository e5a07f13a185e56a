// Package retry provides a retry-with-exponential-backoff wrapper for calls
// to rate-limited services.
package retry

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/blogsumm"
)

// Default policy values.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 1 * time.Second
)

// Policy configures Do.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Defaults to DefaultMaxAttempts when not positive.
	MaxAttempts int

	// BaseDelay is the wait after the first failed attempt. Each further
	// retry doubles it. Zero means no wait.
	BaseDelay time.Duration

	// Retryable decides whether an error is worth retrying.
	// Defaults to IsTransient.
	Retryable func(error) bool

	// OnRetry, if set, is called before each wait with the 1-indexed
	// attempt that failed.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// DefaultPolicy returns the policy used for generative service calls:
// 3 attempts with 1s and 2s waits between them.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
	}
}

// Delay returns the wait after the given 1-indexed failed attempt:
// BaseDelay, 2×BaseDelay, 4×BaseDelay, ...
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return p.BaseDelay << (attempt - 1)
}

// Do calls op until it succeeds, returns a non-retryable error, or the
// attempts are exhausted. The last error is returned as is.
// Waits are interrupted by context cancellation.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsTransient
	}

	var zero T
	for attempt := 1; ; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if attempt >= maxAttempts || !retryable(err) {
			return zero, err
		}

		delay := p.Delay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

// rateLimitMarkers are message fragments that identify rate limit failures
// from services that do not return coded errors.
var rateLimitMarkers = []string{
	"rate limit",
	"rate-limit",
	"ratelimit",
	"too many requests",
	"resource exhausted",
	"resource_exhausted",
}

// statusTooManyRequestsRe matches a 429 status only where it reads as a
// status code, so byte counts and URL paths containing 429 do not.
var statusTooManyRequestsRe = regexp.MustCompile(`(?i)\b(?:http(?:/[0-9.]+)?|status(?:\s*code)?|code|error)[\s:=(]*429\b|^429\s*[:-]`)

// IsTransient reports whether err signals quota exhaustion or rate limiting.
func IsTransient(err error) bool {
	return IsQuotaExhausted(err) || IsRateLimited(err)
}

// IsQuotaExhausted reports whether err signals an exhausted quota.
func IsQuotaExhausted(err error) bool {
	if err == nil {
		return false
	}
	if blogsumm.ErrorCode(err) == blogsumm.EQUOTA {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "quota")
}

// IsRateLimited reports whether err signals rate limiting.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if blogsumm.ErrorCode(err) == blogsumm.ERATELIMIT {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range rateLimitMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return statusTooManyRequestsRe.MatchString(msg)
}
