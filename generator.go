package blogsumm

import "context"

// GenerateConfig tunes a single generation request.
type GenerateConfig struct {
	// SystemInstruction is sent separately from the user prompt when set.
	SystemInstruction string

	// Temperature overrides the model default when non-nil.
	Temperature *float32

	// MaxOutputTokens caps the response length when positive.
	MaxOutputTokens int32
}

// Generator produces text from a prompt using a generative model.
type Generator interface {
	// Generate returns the model output for the prompt.
	// Quota exhaustion and rate limiting are reported as EQUOTA and
	// ERATELIMIT errors respectively.
	Generate(ctx context.Context, prompt string, config GenerateConfig) (string, error)
}
