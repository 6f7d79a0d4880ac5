package generators

import (
	"context"
	"testing"
	"time"

	"github.com/kerbaras/storytime/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		generator string
		want      string
	}{
		{config.GeneratorBuiltin, "builtin"},
		{config.GeneratorOpenAI, "openai"},
		{config.GeneratorOllama, "ollama"},
	}

	for _, tt := range tests {
		t.Run(tt.generator, func(t *testing.T) {
			cfg := &config.Config{Generator: tt.generator, AIAPIKey: "k", AIModel: "m", AITimeout: time.Second, Pages: 5}
			g, err := New(context.Background(), cfg, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.Name())
		})
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New(context.Background(), &config.Config{Generator: "markov"}, zap.NewNop())
	assert.Error(t, err)
}
