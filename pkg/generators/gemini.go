package generators

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kerbaras/storytime/pkg/story"
)

// Gemini generates stories with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
	pages  int
	log    *zap.Logger
}

func NewGemini(ctx context.Context, apiKey, baseURL, model string, timeout time.Duration, pages int, log *zap.Logger) (*Gemini, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gemini{client: client, model: model, pages: pages, log: log}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Generate(ctx context.Context, prompt story.Prompt) (*Result, error) {
	if !prompt.Complete() {
		return nil, fmt.Errorf("%w: prompt is incomplete", story.ErrIncompleteSelection)
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(userPrompt(prompt, g.pages)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		g.log.Warn("gemini request failed", zap.String("model", g.model), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", story.ErrGeneration, err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", story.ErrGeneration)
	}

	g.log.Info("gemini story generated", zap.String("model", g.model), zap.Duration("elapsed", time.Since(start)))
	return parseResult(text, prompt)
}
