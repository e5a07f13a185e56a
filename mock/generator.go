package mock

import (
	"context"

	"github.com/fwojciec/blogsumm"
)

var _ blogsumm.Generator = (*Generator)(nil)

// Generator is a mock implementation of blogsumm.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, prompt string, config blogsumm.GenerateConfig) (string, error)
}

func (g *Generator) Generate(ctx context.Context, prompt string, config blogsumm.GenerateConfig) (string, error) {
	return g.GenerateFn(ctx, prompt, config)
}
