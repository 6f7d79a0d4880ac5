package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kerbaras/storytime/pkg/generators"
	"github.com/kerbaras/storytime/pkg/story"
)

func newTestController(gen generators.Generator, repo Repository) *StoryController {
	c := NewStoryController(gen, repo, NewExporter(&mockIllustrator{}, &mockBuilder{}, zap.NewNop()), "sam", zap.NewNop())
	c.now = func() time.Time { return time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC) }
	return c
}

func TestControllerGenerate(t *testing.T) {
	var got story.Prompt
	gen := &mockGenerator{
		generateFunc: func(ctx context.Context, prompt story.Prompt) (*generators.Result, error) {
			got = prompt
			return &generators.Result{Title: "Max's Bedtime Story", Pages: fivePages()}, nil
		},
	}
	c := newTestController(gen, &mockRepository{})

	s, err := c.Generate(context.Background(), bedtimePrompt())
	require.NoError(t, err)

	assert.Equal(t, bedtimePrompt(), got)
	assert.Equal(t, "Max's Bedtime Story", s.Title)
	assert.Equal(t, "sam", s.UserID)
	assert.Len(t, s.Pages, 5)
	assert.Equal(t, time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC), s.CreatedAt)
	assert.Zero(t, s.Rating)
	_, err = uuid.Parse(s.ID)
	assert.NoError(t, err)
}

func TestControllerGenerateRenumbersPages(t *testing.T) {
	gen := &mockGenerator{
		generateFunc: func(ctx context.Context, prompt story.Prompt) (*generators.Result, error) {
			return &generators.Result{Title: "T", Pages: []story.Page{{Number: 7, Text: "a"}, {Number: 3, Text: "b"}}}, nil
		},
	}

	s, err := newTestController(gen, &mockRepository{}).Generate(context.Background(), bedtimePrompt())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Pages[0].Number)
	assert.Equal(t, 2, s.Pages[1].Number)
}

func TestControllerGenerateErrors(t *testing.T) {
	t.Run("incomplete prompt never reaches the generator", func(t *testing.T) {
		called := false
		gen := &mockGenerator{generateFunc: func(context.Context, story.Prompt) (*generators.Result, error) {
			called = true
			return nil, nil
		}}

		_, err := newTestController(gen, &mockRepository{}).Generate(context.Background(), story.Prompt{Theme: "Bedtime"})
		assert.ErrorIs(t, err, story.ErrIncompleteSelection)
		assert.False(t, called)
	})

	t.Run("generator failure", func(t *testing.T) {
		gen := &mockGenerator{generateFunc: func(context.Context, story.Prompt) (*generators.Result, error) {
			return nil, errors.New("connection refused")
		}}

		_, err := newTestController(gen, &mockRepository{}).Generate(context.Background(), bedtimePrompt())
		assert.ErrorIs(t, err, story.ErrGeneration)
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("no pages", func(t *testing.T) {
		gen := &mockGenerator{generateFunc: func(context.Context, story.Prompt) (*generators.Result, error) {
			return &generators.Result{Title: "Empty"}, nil
		}}

		_, err := newTestController(gen, &mockRepository{}).Generate(context.Background(), bedtimePrompt())
		assert.ErrorIs(t, err, story.ErrGeneration)
		assert.ErrorIs(t, err, story.ErrEmptyStory)
	})
}

func TestControllerSave(t *testing.T) {
	var saved *story.Story
	repo := &mockRepository{saveStoryFunc: func(ctx context.Context, s *story.Story) error {
		saved = s
		return nil
	}}
	c := newTestController(&mockGenerator{}, repo)

	s := &story.Story{Title: "Untitled", Pages: fivePages()}
	id, err := c.Save(context.Background(), s)
	require.NoError(t, err)

	assert.NotEmpty(t, id)
	assert.Equal(t, id, saved.ID)
	assert.Equal(t, "sam", saved.UserID)
	assert.False(t, saved.CreatedAt.IsZero())

	t.Run("keeps existing id", func(t *testing.T) {
		again, err := c.Save(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, id, again)
	})

	t.Run("store failure", func(t *testing.T) {
		repo.saveStoryFunc = func(context.Context, *story.Story) error {
			return story.ErrPersistence
		}
		_, err := c.Save(context.Background(), s)
		assert.ErrorIs(t, err, story.ErrPersistence)
	})

	t.Run("empty story", func(t *testing.T) {
		_, err := c.Save(context.Background(), &story.Story{})
		assert.ErrorIs(t, err, story.ErrEmptyStory)
	})
}

func TestControllerRate(t *testing.T) {
	var rated []int
	repo := &mockRepository{rateStoryFunc: func(ctx context.Context, id string, rating int) error {
		if id != "known" {
			return story.ErrNotFound
		}
		rated = append(rated, rating)
		return nil
	}}
	c := newTestController(&mockGenerator{}, repo)

	assert.NoError(t, c.Rate(context.Background(), "known", 3))

	for _, r := range []int{0, 6, -1} {
		err := c.Rate(context.Background(), "known", r)
		assert.ErrorIs(t, err, story.ErrValidation, "rating %d", r)
	}

	err := c.Rate(context.Background(), "unknown", 4)
	assert.ErrorIs(t, err, story.ErrNotFound)
	assert.ErrorIs(t, err, story.ErrPersistence)

	assert.Equal(t, []int{3}, rated, "invalid ratings never reach the store")
}

func TestControllerStoriesUsesCurrentUser(t *testing.T) {
	repo := &mockRepository{listStoriesFunc: func(ctx context.Context, userID string) ([]*story.Story, error) {
		assert.Equal(t, "sam", userID)
		return []*story.Story{{ID: "a"}, {ID: "b"}}, nil
	}}

	stories, err := newTestController(&mockGenerator{}, repo).Stories(context.Background())
	require.NoError(t, err)
	assert.Len(t, stories, 2)
}

func TestControllerDelete(t *testing.T) {
	repo := &mockRepository{deleteStoryFunc: func(ctx context.Context, id string) error {
		return story.ErrNotFound
	}}

	err := newTestController(&mockGenerator{}, repo).Delete(context.Background(), "gone")
	assert.ErrorIs(t, err, story.ErrNotFound)
}

func TestControllerCloseWithoutCloser(t *testing.T) {
	assert.NoError(t, newTestController(&mockGenerator{}, &mockRepository{}).Close())
}
