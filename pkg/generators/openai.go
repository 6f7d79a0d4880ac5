package generators

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kerbaras/storytime/pkg/story"
)

// OpenAI talks to any OpenAI compatible chat completion endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
	pages  int
	log    *zap.Logger
}

func NewOpenAI(apiKey, baseURL, model string, timeout time.Duration, pages int, log *zap.Logger) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		pages:  pages,
		log:    log,
	}
}

func (g *OpenAI) Name() string { return "openai" }

func (g *OpenAI) Generate(ctx context.Context, prompt story.Prompt) (*Result, error) {
	if !prompt.Complete() {
		return nil, fmt.Errorf("%w: prompt is incomplete", story.ErrIncompleteSelection)
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(prompt, g.pages)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		g.log.Warn("openai request failed", zap.String("model", g.model), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", story.ErrGeneration, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: empty response", story.ErrGeneration)
	}

	g.log.Info("openai story generated",
		zap.String("model", g.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return parseResult(resp.Choices[0].Message.Content, prompt)
}
