package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/storytime/pkg/app/styles"
	"github.com/kerbaras/storytime/pkg/story"
)

var pickerLabels = map[story.Field]string{
	story.FieldTheme:      "Choose a Theme",
	story.FieldMood:       "Pick a Mood",
	story.FieldSetting:    "Select a Setting",
	story.FieldCharacters: "Add Characters",
}

// OptionPicker renders one field of the story form as a row of chips with a
// cursor.
type OptionPicker struct {
	Field   story.Field
	Options []string
	Cursor  int
}

func NewOptionPicker(f story.Field, opts story.Options) *OptionPicker {
	return &OptionPicker{Field: f, Options: opts.For(f)}
}

func (p *OptionPicker) Next() {
	if len(p.Options) == 0 {
		return
	}
	p.Cursor = (p.Cursor + 1) % len(p.Options)
}

func (p *OptionPicker) Prev() {
	if len(p.Options) == 0 {
		return
	}
	p.Cursor = (p.Cursor - 1 + len(p.Options)) % len(p.Options)
}

// Current returns the option under the cursor.
func (p *OptionPicker) Current() string {
	if len(p.Options) == 0 {
		return ""
	}
	return p.Options[p.Cursor]
}

func (p *OptionPicker) Label() string {
	label := pickerLabels[p.Field]
	if p.Field == story.FieldCharacters {
		label += " (pick one or more)"
	}
	return label
}

// View renders the chips, wrapping rows to width.
func (p *OptionPicker) View(sel *story.Selection, focused bool, width int) string {
	label := styles.MutedStyle.Render(p.Label())
	if focused {
		label = styles.SubtitleStyle.Render("› " + p.Label())
	}

	var rows []string
	var row []string
	rowWidth := 0
	for i, opt := range p.Options {
		style := styles.ChipStyle
		selected := sel.Selected(p.Field, opt)
		cursor := focused && i == p.Cursor
		switch {
		case selected && cursor:
			style = styles.ChipSelectedCursorStyle
		case selected:
			style = styles.ChipSelectedStyle
		case cursor:
			style = styles.ChipCursorStyle
		}
		chip := style.Render(opt)

		w := lipgloss.Width(chip)
		if width > 0 && rowWidth+w > width && len(row) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, chip)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return label + "\n" + strings.Join(rows, "\n")
}
