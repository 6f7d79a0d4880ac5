package generators

import (
	"context"

	"github.com/kerbaras/storytime/pkg/story"
)

// Generator turns a complete prompt into an ordered sequence of pages.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt story.Prompt) (*Result, error)
}

type Result struct {
	Title string
	Pages []story.Page
}
