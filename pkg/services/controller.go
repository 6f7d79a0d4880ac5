package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kerbaras/storytime/pkg/config"
	"github.com/kerbaras/storytime/pkg/data"
	"github.com/kerbaras/storytime/pkg/generators"
	"github.com/kerbaras/storytime/pkg/integrations"
	"github.com/kerbaras/storytime/pkg/story"
)

// Repository is the story store used by the controller.
type Repository interface {
	SaveStory(ctx context.Context, s *story.Story) error
	GetStory(ctx context.Context, id string) (*story.Story, error)
	ListStories(ctx context.Context, userID string) ([]*story.Story, error)
	RateStory(ctx context.Context, id string, rating int) error
	DeleteStory(ctx context.Context, id string) error
}

// StoryController is the single entry point used by the TUI and the CLI.
type StoryController struct {
	generator generators.Generator
	repo      Repository
	exporter  *Exporter
	user      string
	log       *zap.Logger
	now       func() time.Time
}

func NewStoryController(generator generators.Generator, repo Repository, exporter *Exporter, user string, log *zap.Logger) *StoryController {
	return &StoryController{
		generator: generator,
		repo:      repo,
		exporter:  exporter,
		user:      user,
		log:       log,
		now:       time.Now,
	}
}

// NewStoryControllerFromConfig opens the store and builds the configured
// generator and exporter.
func NewStoryControllerFromConfig(ctx context.Context, cfg *config.Config, log *zap.Logger) (*StoryController, error) {
	generator, err := generators.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	repo, err := data.NewDuckDBRepository(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	exporter := NewExporter(
		integrations.NewRenderer(cfg.AITimeout, log),
		integrations.NewEPubBuilder(cfg.ExportDir),
		log,
	)

	log.Info("controller ready",
		zap.String("generator", generator.Name()),
		zap.String("db", cfg.DBPath),
		zap.String("user", cfg.User),
	)
	return NewStoryController(generator, repo, exporter, cfg.User, log), nil
}

func (c *StoryController) User() string { return c.user }

func (c *StoryController) GeneratorName() string { return c.generator.Name() }

// Generate asks the generator for a story and assembles an unsaved Story.
func (c *StoryController) Generate(ctx context.Context, prompt story.Prompt) (*story.Story, error) {
	if !prompt.Complete() {
		return nil, fmt.Errorf("%w: prompt is incomplete", story.ErrIncompleteSelection)
	}

	start := c.now()
	result, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		if !errors.Is(err, story.ErrGeneration) && !errors.Is(err, story.ErrIncompleteSelection) {
			err = fmt.Errorf("%w: %w", story.ErrGeneration, err)
		}
		c.log.Warn("generation failed", zap.String("generator", c.generator.Name()), zap.Error(err))
		return nil, err
	}
	if result == nil || len(result.Pages) == 0 {
		return nil, fmt.Errorf("%w: %w", story.ErrGeneration, story.ErrEmptyStory)
	}

	pages := make([]story.Page, len(result.Pages))
	for i, p := range result.Pages {
		p.Number = i + 1
		pages[i] = p
	}

	s := &story.Story{
		ID:        uuid.NewString(),
		UserID:    c.user,
		Title:     result.Title,
		Prompt:    prompt,
		Pages:     pages,
		CreatedAt: c.now().UTC(),
	}
	c.log.Info("story generated",
		zap.String("story_id", s.ID),
		zap.String("generator", c.generator.Name()),
		zap.Int("pages", len(pages)),
		zap.Duration("elapsed", c.now().Sub(start)),
	)
	return s, nil
}

// Save persists s and returns its id.
func (c *StoryController) Save(ctx context.Context, s *story.Story) (string, error) {
	if s == nil || len(s.Pages) == 0 {
		return "", story.ErrEmptyStory
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.UserID == "" {
		s.UserID = c.user
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = c.now().UTC()
	}

	if err := c.repo.SaveStory(ctx, s); err != nil {
		c.log.Error("save failed", zap.String("story_id", s.ID), zap.Error(err))
		return "", err
	}
	c.log.Info("story saved", zap.String("story_id", s.ID))
	return s.ID, nil
}

// Rate records a 1..5 rating for a saved story.
func (c *StoryController) Rate(ctx context.Context, id string, rating int) error {
	if err := story.ValidateRating(rating); err != nil {
		return err
	}
	if err := c.repo.RateStory(ctx, id, rating); err != nil {
		return err
	}
	c.log.Info("story rated", zap.String("story_id", id), zap.Int("rating", rating))
	return nil
}

// Stories lists the current user's saved stories, newest first.
func (c *StoryController) Stories(ctx context.Context) ([]*story.Story, error) {
	return c.repo.ListStories(ctx, c.user)
}

func (c *StoryController) Story(ctx context.Context, id string) (*story.Story, error) {
	return c.repo.GetStory(ctx, id)
}

func (c *StoryController) Delete(ctx context.Context, id string) error {
	if err := c.repo.DeleteStory(ctx, id); err != nil {
		return err
	}
	c.log.Info("story deleted", zap.String("story_id", id))
	return nil
}

// Export writes the story as an EPUB prepared for the given reader profile.
func (c *StoryController) Export(ctx context.Context, s *story.Story, profile string) (string, error) {
	return c.exporter.Export(ctx, s, profile)
}

// ExportProgress returns the exporter's progress channel.
func (c *StoryController) ExportProgress() <-chan ExportProgress {
	return c.exporter.Progress()
}

// Close releases the store when it holds resources.
func (c *StoryController) Close() error {
	if closer, ok := c.repo.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
