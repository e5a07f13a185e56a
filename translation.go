package blogsumm

import (
	"context"
	"strings"
)

// TranslationUnavailable is the leading phrase shared by all translation
// sentinels. Real translations never start with it.
const TranslationUnavailable = "Translation unavailable"

// Translation sentinels.
const (
	TranslationNothingToTranslate = TranslationUnavailable + ": there is no summary to translate."
	TranslationTechnicalError     = TranslationUnavailable + ": a technical error occurred while translating the summary."
	TranslationQuotaExhausted     = TranslationUnavailable + ": the AI service quota has been exhausted. Please try again later."
	TranslationRateLimited        = TranslationUnavailable + ": the AI service is receiving too many requests. Please try again in a moment."
)

// IsTranslationUnavailable reports whether s is a translation sentinel.
func IsTranslationUnavailable(s string) bool {
	return strings.HasPrefix(s, TranslationUnavailable)
}

// Translator converts a summary into the configured target language.
type Translator interface {
	// Translate never fails: errors are reported as translation sentinels.
	Translate(ctx context.Context, text string) string
}
