// Package translate implements blogsumm.Translator on top of a generative
// model.
package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/blogsumm"
	"github.com/fwojciec/blogsumm/retry"
)

// DefaultLanguage is the default translation target.
const DefaultLanguage = "Urdu"

// failureRule maps a class of generation errors to a translation sentinel.
type failureRule struct {
	match    func(error) bool
	sentinel string
}

// failureRules are evaluated in order; the first match wins.
var failureRules = []failureRule{
	{match: retry.IsQuotaExhausted, sentinel: blogsumm.TranslationQuotaExhausted},
	{match: retry.IsRateLimited, sentinel: blogsumm.TranslationRateLimited},
}

// Ensure Translator implements blogsumm.Translator at compile time.
var _ blogsumm.Translator = (*Translator)(nil)

// Translator translates summaries with a Generator.
type Translator struct {
	Generator blogsumm.Generator
	Policy    retry.Policy
	Language  string
}

// NewTranslator creates a Translator targeting DefaultLanguage.
func NewTranslator(g blogsumm.Generator) *Translator {
	return &Translator{
		Generator: g,
		Policy:    retry.DefaultPolicy(),
		Language:  DefaultLanguage,
	}
}

// Translate returns the translation of text or a translation sentinel.
func (t *Translator) Translate(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return blogsumm.TranslationNothingToTranslate
	}
	if t.Generator == nil {
		return blogsumm.TranslationTechnicalError
	}

	prompt := BuildPrompt(t.language(), text)
	out, err := retry.Do(ctx, t.Policy, func(ctx context.Context) (string, error) {
		out, err := t.Generator.Generate(ctx, prompt, blogsumm.GenerateConfig{})
		if err != nil {
			return "", err
		}
		out = strings.TrimSpace(out)
		if out == "" {
			return "", blogsumm.Errorf(blogsumm.EINTERNAL, "empty translation returned")
		}
		return out, nil
	})
	if err != nil {
		return sentinelFor(err)
	}
	return out
}

func (t *Translator) language() string {
	if t.Language == "" {
		return DefaultLanguage
	}
	return t.Language
}

// sentinelFor returns the sentinel for a failed translation.
func sentinelFor(err error) string {
	for _, rule := range failureRules {
		if rule.match(err) {
			return rule.sentinel
		}
	}
	return blogsumm.TranslationTechnicalError
}

// BuildPrompt builds the translation prompt.
func BuildPrompt(language, text string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Translate the following text into %s.\n", language)
	sb.WriteString("Keep the meaning faithful and the tone natural. ")
	sb.WriteString("Return only the translated text, without notes or explanations.\n\n")
	fmt.Fprintf(&sb, "Text:\n%s", text)
	return sb.String()
}
