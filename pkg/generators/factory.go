package generators

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kerbaras/storytime/pkg/config"
)

// New returns the generator selected by cfg.Generator.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (Generator, error) {
	switch cfg.Generator {
	case config.GeneratorBuiltin, "":
		return NewBuiltin(cfg.Pages), nil
	case config.GeneratorOpenAI:
		return NewOpenAI(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, cfg.AITimeout, cfg.Pages, log), nil
	case config.GeneratorOllama:
		return NewOllama(cfg.AIBaseURL, cfg.AIModel, cfg.AITimeout, cfg.Pages, log)
	case config.GeneratorGemini:
		return NewGemini(ctx, cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, cfg.AITimeout, cfg.Pages, log)
	}
	return nil, fmt.Errorf("unknown generator %q", cfg.Generator)
}
