package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kerbaras/storytime/pkg/story"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved stories",
	Long:  "Display your saved stories in a formatted table",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctrl, log, err := setup(cmd.Context())
		cobra.CheckErr(err)
		defer closeAll(ctrl, log)

		stories, err := ctrl.Stories(cmd.Context())
		if err != nil {
			cobra.CheckErr(err)
		}

		if len(stories) == 0 {
			fmt.Println("📚 No saved stories yet. Use 'storytime generate --save' or the TUI to create one.")
			return
		}

		columns := []table.Column{
			{Title: "ID", Width: 8},
			{Title: "Title", Width: 36},
			{Title: "Characters", Width: 22},
			{Title: "Pages", Width: 6},
			{Title: "Rating", Width: 8},
			{Title: "Created", Width: 16},
		}

		rows := []table.Row{}
		for _, s := range stories {
			rows = append(rows, table.Row{
				shortID(s.ID),
				truncateString(s.Title, 34),
				truncateString(strings.Join(s.Prompt.Characters, ", "), 20),
				fmt.Sprintf("%d", len(s.Pages)),
				plainStars(s.Rating),
				s.CreatedAt.Local().Format("2006-01-02 15:04"),
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n📚 Saved stories (%d)\n\n", len(stories))
		fmt.Println(t.View())
		fmt.Println()
	},
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func plainStars(rating int) string {
	if rating < story.MinRating {
		return "-"
	}
	rating = min(rating, story.MaxRating)
	return strings.Repeat("★", rating) + strings.Repeat("☆", story.MaxRating-rating)
}
