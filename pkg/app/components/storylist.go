package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/storytime/pkg/app/styles"
	"github.com/kerbaras/storytime/pkg/story"
)

// StoryList shows saved stories as cards with a wrapping cursor.
type StoryList struct {
	Items         []*story.Story
	SelectedIndex int
	Width         int
	Height        int
}

func NewStoryList() *StoryList {
	return &StoryList{
		Items:  []*story.Story{},
		Width:  80,
		Height: 20,
	}
}

func (l *StoryList) SetItems(items []*story.Story) {
	l.Items = items
	if l.SelectedIndex >= len(items) && len(items) > 0 {
		l.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		l.SelectedIndex = 0
	}
}

func (l *StoryList) Next() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex = (l.SelectedIndex + 1) % len(l.Items)
}

func (l *StoryList) Prev() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex = (l.SelectedIndex - 1 + len(l.Items)) % len(l.Items)
}

func (l *StoryList) Selected() *story.Story {
	if len(l.Items) == 0 || l.SelectedIndex >= len(l.Items) {
		return nil
	}
	return l.Items[l.SelectedIndex]
}

// visibleRange keeps the cursor on screen when the list is taller than the
// available height.
func (l *StoryList) visibleRange() (int, int) {
	const cardHeight = 7
	perPage := max(1, l.Height/cardHeight)
	if len(l.Items) <= perPage {
		return 0, len(l.Items)
	}
	start := max(0, l.SelectedIndex-perPage/2)
	end := min(len(l.Items), start+perPage)
	return end - perPage, end
}

func (l *StoryList) View() string {
	if len(l.Items) == 0 {
		empty := styles.MutedStyle.Render("No saved stories yet. Create one on the Story Time tab!")
		return lipgloss.Place(l.Width, min(l.Height, 5), lipgloss.Center, lipgloss.Center, empty)
	}

	var b strings.Builder
	start, end := l.visibleRange()
	for i := start; i < end; i++ {
		s := l.Items[i]
		cardStyle := styles.CardStyle
		if i == l.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := styles.TitleStyle.UnsetMarginBottom().Render(s.Title)
		prompt := styles.TextStyle.Render(fmt.Sprintf("%s • %s • %s • %s",
			s.Prompt.Theme, s.Prompt.Mood, s.Prompt.Setting, strings.Join(s.Prompt.Characters, ", ")))
		meta := styles.MutedStyle.Render(fmt.Sprintf("%d pages • created %s",
			len(s.Pages), s.CreatedAt.Local().Format("Jan 2, 2006 15:04")))

		card := cardStyle.Width(max(20, l.Width-4)).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, prompt, meta, Stars(s.Rating)),
		)
		b.WriteString(card)
		b.WriteString("\n")
	}

	if start > 0 || end < len(l.Items) {
		b.WriteString(styles.MutedStyle.Render(
			fmt.Sprintf("Showing %d-%d of %d stories", start+1, end, len(l.Items)),
		))
	}
	return b.String()
}
