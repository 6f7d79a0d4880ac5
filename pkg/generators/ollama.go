package generators

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"

	"github.com/kerbaras/storytime/pkg/story"
)

const defaultOllamaURL = "http://localhost:11434"

// Ollama uses the native chat API of a local Ollama server.
type Ollama struct {
	client *api.Client
	model  string
	pages  int
	log    *zap.Logger
}

func NewOllama(baseURL, model string, timeout time.Duration, pages int, log *zap.Logger) (*Ollama, error) {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	baseURL = strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), "/v1")

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %q: %w", baseURL, err)
	}

	return &Ollama{
		client: api.NewClient(parsed, &http.Client{Timeout: timeout}),
		model:  model,
		pages:  pages,
		log:    log,
	}, nil
}

func (g *Ollama) Name() string { return "ollama" }

func (g *Ollama) Generate(ctx context.Context, prompt story.Prompt) (*Result, error) {
	if !prompt.Complete() {
		return nil, fmt.Errorf("%w: prompt is incomplete", story.ErrIncompleteSelection)
	}

	stream := false
	req := &api.ChatRequest{
		Model: g.model,
		Messages: []api.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(prompt, g.pages)},
		},
		Stream: &stream,
		Format: json.RawMessage(`"json"`),
	}

	start := time.Now()
	var content strings.Builder
	err := g.client.Chat(ctx, req, func(r api.ChatResponse) error {
		content.WriteString(r.Message.Content)
		return nil
	})
	if err != nil {
		g.log.Warn("ollama request failed", zap.String("model", g.model), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", story.ErrGeneration, err)
	}
	if content.Len() == 0 {
		return nil, fmt.Errorf("%w: empty response", story.ErrGeneration)
	}

	g.log.Info("ollama story generated", zap.String("model", g.model), zap.Duration("elapsed", time.Since(start)))
	return parseResult(content.String(), prompt)
}
