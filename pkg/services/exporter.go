package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kerbaras/storytime/pkg/integrations"
	"github.com/kerbaras/storytime/pkg/story"
)

const maxConcurrentRenders = 3

// Export progress states.
const (
	ExportRendering = "rendering"
	ExportComposing = "composing"
	ExportComplete  = "complete"
	ExportFailed    = "error"
)

// ExportProgress reports the state of an export operation.
type ExportProgress struct {
	StoryID    string
	Rendered   int
	TotalPages int
	Status     string
	Path       string
	Error      error
}

// Illustrator renders an illustration reference into an image.
type Illustrator interface {
	Render(ctx context.Context, ref string) (integrations.ImageData, error)
}

// BookBuilder composes a story and its rendered illustrations into a file.
type BookBuilder interface {
	Build(s *story.Story, images []integrations.ImageData) (string, error)
}

// Exporter renders every page illustration concurrently and hands the
// results to a BookBuilder.
type Exporter struct {
	illustrator  Illustrator
	builder      BookBuilder
	log          *zap.Logger
	progressChan chan ExportProgress
}

func NewExporter(illustrator Illustrator, builder BookBuilder, log *zap.Logger) *Exporter {
	return &Exporter{
		illustrator:  illustrator,
		builder:      builder,
		log:          log,
		progressChan: make(chan ExportProgress, 100),
	}
}

// Progress returns the channel receiving export progress updates.
func (e *Exporter) Progress() <-chan ExportProgress {
	return e.progressChan
}

// Export writes s for the reader profile profileID and returns the file path.
func (e *Exporter) Export(ctx context.Context, s *story.Story, profileID string) (string, error) {
	if s == nil || len(s.Pages) == 0 {
		return "", story.ErrEmptyStory
	}
	profile, ok := integrations.GetProfile(profileID)
	if !ok {
		return "", &story.ValidationError{Field: "profile", Value: profileID, Reason: "unknown reader profile"}
	}
	processor := integrations.NewImageProcessor(profile.Settings())

	total := len(s.Pages)
	images := make([]integrations.ImageData, total)
	var rendered atomic.Int32

	e.sendProgress(ExportProgress{StoryID: s.ID, TotalPages: total, Status: ExportRendering})

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentRenders)
	errorChan := make(chan error, total)

	for i, page := range s.Pages {
		wg.Add(1)
		go func(i int, page story.Page) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := ctx.Err(); err != nil {
				errorChan <- err
				return
			}

			img, err := e.illustrator.Render(ctx, page.Illustration)
			if err == nil {
				img.Index = i
				img, err = processor.Process(img)
			}
			if err != nil {
				errorChan <- fmt.Errorf("page %d: %w", page.Number, err)
				return
			}
			images[i] = img

			e.sendProgress(ExportProgress{
				StoryID:    s.ID,
				Rendered:   int(rendered.Add(1)),
				TotalPages: total,
				Status:     ExportRendering,
			})
		}(i, page)
	}

	wg.Wait()
	close(errorChan)

	var renderErrors []error
	for err := range errorChan {
		renderErrors = append(renderErrors, err)
	}
	if len(renderErrors) > 0 {
		err := fmt.Errorf("failed to render illustrations: %w", errors.Join(renderErrors...))
		e.sendProgress(ExportProgress{StoryID: s.ID, TotalPages: total, Status: ExportFailed, Error: err})
		return "", err
	}

	e.sendProgress(ExportProgress{StoryID: s.ID, Rendered: total, TotalPages: total, Status: ExportComposing})

	path, err := e.builder.Build(s, images)
	if err != nil {
		err = fmt.Errorf("failed to compose book: %w", err)
		e.sendProgress(ExportProgress{StoryID: s.ID, TotalPages: total, Status: ExportFailed, Error: err})
		return "", err
	}

	e.log.Info("story exported", zap.String("story_id", s.ID), zap.String("profile", profileID), zap.String("path", path))
	e.sendProgress(ExportProgress{StoryID: s.ID, Rendered: total, TotalPages: total, Status: ExportComplete, Path: path})
	return path, nil
}

// sendProgress sends a progress update (non-blocking)
func (e *Exporter) sendProgress(progress ExportProgress) {
	select {
	case e.progressChan <- progress:
	default:
	}
}
