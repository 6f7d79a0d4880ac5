package services

import (
	"context"

	"github.com/kerbaras/storytime/pkg/generators"
	"github.com/kerbaras/storytime/pkg/integrations"
	"github.com/kerbaras/storytime/pkg/story"
)

type mockGenerator struct {
	generateFunc func(ctx context.Context, prompt story.Prompt) (*generators.Result, error)
}

func (m *mockGenerator) Name() string { return "mock" }

func (m *mockGenerator) Generate(ctx context.Context, prompt story.Prompt) (*generators.Result, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt)
	}
	return nil, nil
}

type mockRepository struct {
	saveStoryFunc   func(ctx context.Context, s *story.Story) error
	getStoryFunc    func(ctx context.Context, id string) (*story.Story, error)
	listStoriesFunc func(ctx context.Context, userID string) ([]*story.Story, error)
	rateStoryFunc   func(ctx context.Context, id string, rating int) error
	deleteStoryFunc func(ctx context.Context, id string) error
}

func (m *mockRepository) SaveStory(ctx context.Context, s *story.Story) error {
	if m.saveStoryFunc != nil {
		return m.saveStoryFunc(ctx, s)
	}
	return nil
}

func (m *mockRepository) GetStory(ctx context.Context, id string) (*story.Story, error) {
	if m.getStoryFunc != nil {
		return m.getStoryFunc(ctx, id)
	}
	return nil, story.ErrNotFound
}

func (m *mockRepository) ListStories(ctx context.Context, userID string) ([]*story.Story, error) {
	if m.listStoriesFunc != nil {
		return m.listStoriesFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockRepository) RateStory(ctx context.Context, id string, rating int) error {
	if m.rateStoryFunc != nil {
		return m.rateStoryFunc(ctx, id, rating)
	}
	return nil
}

func (m *mockRepository) DeleteStory(ctx context.Context, id string) error {
	if m.deleteStoryFunc != nil {
		return m.deleteStoryFunc(ctx, id)
	}
	return nil
}

type mockIllustrator struct {
	renderFunc func(ctx context.Context, ref string) (integrations.ImageData, error)
}

func (m *mockIllustrator) Render(ctx context.Context, ref string) (integrations.ImageData, error) {
	if m.renderFunc != nil {
		return m.renderFunc(ctx, ref)
	}
	return integrations.ImageData{}, nil
}

type mockBuilder struct {
	buildFunc func(s *story.Story, images []integrations.ImageData) (string, error)
}

func (m *mockBuilder) Build(s *story.Story, images []integrations.ImageData) (string, error) {
	if m.buildFunc != nil {
		return m.buildFunc(s, images)
	}
	return "", nil
}

func fivePages() []story.Page {
	pages := make([]story.Page, 5)
	for i := range pages {
		pages[i] = story.Page{
			Number: i + 1,
			Text:   "Page text. Turn the page.",
			Illustration: story.Placeholder{
				Width: 40, Height: 30, Background: "87CEEB", Foreground: "FFFFFF", Text: "Forest",
			}.String(),
		}
	}
	pages[4].Text = "The End."
	return pages
}

func bedtimePrompt() story.Prompt {
	return story.Prompt{Theme: "Bedtime", Mood: "Calm", Setting: "Forest", Characters: []string{"Dog"}}
}
