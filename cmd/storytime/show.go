package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kerbaras/storytime/pkg/services"
	"github.com/kerbaras/storytime/pkg/story"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pageStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
)

var showCmd = &cobra.Command{
	Use:   "show [story-id]",
	Short: "Print a saved story",
	Long:  "Print a saved story page by page. The id may be the full id or its first characters as shown by 'storytime list'.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		page, _ := cmd.Flags().GetInt("page")

		ctrl, log, err := setup(cmd.Context())
		cobra.CheckErr(err)
		defer closeAll(ctrl, log)

		s, err := findStory(cmd, ctrl, args[0])
		cobra.CheckErr(err)

		if page > 0 {
			if page > len(s.Pages) {
				cobra.CheckErr(&story.ValidationError{
					Field:  "page",
					Value:  page,
					Reason: fmt.Sprintf("story has %d pages", len(s.Pages)),
				})
			}
			printPage(s.Pages[page-1], len(s.Pages))
			return
		}
		printStory(s)
	},
}

func init() {
	showCmd.Flags().IntP("page", "p", 0, "Print only this page")
}

// findStory resolves a full id, or a unique id prefix among saved stories.
func findStory(cmd *cobra.Command, ctrl *services.StoryController, id string) (*story.Story, error) {
	if s, err := ctrl.Story(cmd.Context(), id); err == nil {
		return s, nil
	} else if len(id) >= 36 {
		return nil, err
	}

	stories, err := ctrl.Stories(cmd.Context())
	if err != nil {
		return nil, err
	}
	var match *story.Story
	for _, s := range stories {
		if strings.HasPrefix(s.ID, id) {
			if match != nil {
				return nil, &story.ValidationError{Field: "story id", Value: id, Reason: "matches more than one story"}
			}
			match = s
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", story.ErrNotFound, id)
	}
	return ctrl.Story(cmd.Context(), match.ID)
}

func printStory(s *story.Story) {
	fmt.Println(titleStyle.Render("📖 " + s.Title))
	meta := []string{
		fmt.Sprintf("%s · %s · %s", s.Prompt.Theme, s.Prompt.Mood, s.Prompt.Setting),
		strings.Join(s.Prompt.Characters, ", "),
	}
	if s.Rating > 0 {
		meta = append(meta, plainStars(s.Rating))
	}
	fmt.Println(mutedStyle.Render(strings.Join(meta, "  |  ")))
	fmt.Println()

	for _, p := range s.Pages {
		printPage(p, len(s.Pages))
	}
}

func printPage(p story.Page, total int) {
	fmt.Println(pageStyle.Render(fmt.Sprintf("Page %d of %d", p.Number, total)))
	fmt.Println(p.Text)
	fmt.Println()
}
