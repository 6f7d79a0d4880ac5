package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/storytime/pkg/app/styles"
	"github.com/kerbaras/storytime/pkg/services"
)

// ProgressTracker follows running exports keyed by story id.
type ProgressTracker struct {
	exports map[string]*services.ExportProgress
	width   int
}

func NewProgressTracker(width int) *ProgressTracker {
	return &ProgressTracker{
		exports: make(map[string]*services.ExportProgress),
		width:   width,
	}
}

func (p *ProgressTracker) SetWidth(width int) {
	p.width = width
}

// Update records progress. Finished exports are dropped.
func (p *ProgressTracker) Update(progress services.ExportProgress) {
	if progress.Status == services.ExportComplete {
		delete(p.exports, progress.StoryID)
		return
	}
	prog := progress
	p.exports[progress.StoryID] = &prog
}

func (p *ProgressTracker) Clear() {
	p.exports = make(map[string]*services.ExportProgress)
}

func (p *ProgressTracker) HasActive() bool {
	return len(p.exports) > 0
}

func (p *ProgressTracker) View() string {
	if len(p.exports) == 0 {
		return ""
	}

	var b strings.Builder
	for _, progress := range p.exports {
		statusText := progress.Status
		if progress.TotalPages > 0 {
			statusText = fmt.Sprintf("Exporting: %s illustrations (%d/%d)",
				progress.Status, progress.Rendered, progress.TotalPages)
			b.WriteString(renderProgressBar(progress.Rendered, progress.TotalPages, p.width-4))
			b.WriteString("\n")
		}
		b.WriteString(styles.StatusStyle(progress.Status).Render(statusText))
		b.WriteString("\n")

		if progress.Error != nil {
			b.WriteString(styles.StatusError.Render(fmt.Sprintf("Error: %s", progress.Error)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}

	filled := min(width, int(float64(current)/float64(total)*float64(width)))
	return styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// SimpleProgress renders a bare progress bar, used for the page position.
func SimpleProgress(current, total, width int) string {
	return renderProgressBar(current, total, width)
}
