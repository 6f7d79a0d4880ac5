package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerbaras/storytime/pkg/story"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new story",
	Long:  "Generate a story from a theme, mood, setting and one or more characters",
	Example: `  storytime generate --theme Bedtime --mood Calm --setting Forest --character Dog --character Cat
  storytime generate -t "Road Trip" -m Funny -s City -c Dino --save`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		theme, _ := cmd.Flags().GetString("theme")
		mood, _ := cmd.Flags().GetString("mood")
		setting, _ := cmd.Flags().GetString("setting")
		characters, _ := cmd.Flags().GetStringSlice("character")
		save, _ := cmd.Flags().GetBool("save")

		sel, err := buildSelection(theme, mood, setting, characters)
		cobra.CheckErr(err)

		ctrl, log, err := setup(cmd.Context())
		cobra.CheckErr(err)
		defer closeAll(ctrl, log)

		prompt := sel.Prompt()
		fmt.Printf("✨ Creating a %s %s story with %s in the %s (%s)...\n\n",
			strings.ToLower(prompt.Mood), strings.ToLower(prompt.Theme),
			strings.Join(prompt.Characters, ", "), strings.ToLower(prompt.Setting),
			ctrl.GeneratorName())

		s, err := ctrl.Generate(cmd.Context(), prompt)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("generation failed: %w", err))
		}
		printStory(s)

		if save {
			id, err := ctrl.Save(cmd.Context(), s)
			if err != nil {
				cobra.CheckErr(fmt.Errorf("save failed: %w", err))
			}
			fmt.Printf("\n💾 Saved as %s\n", id)
		}
	},
}

func init() {
	generateCmd.Flags().StringP("theme", "t", "", "Story theme (e.g., Bedtime, Adventure)")
	generateCmd.Flags().StringP("mood", "m", "", "Story mood (e.g., Calm, Funny)")
	generateCmd.Flags().StringP("setting", "s", "", "Story setting (e.g., Forest, Space)")
	generateCmd.Flags().StringSliceP("character", "c", nil, "Character to include (repeatable)")
	generateCmd.Flags().Bool("save", false, "Save the story after generating it")
}

// buildSelection fills a selection from flag values, matching options
// case-insensitively.
func buildSelection(theme, mood, setting string, characters []string) (*story.Selection, error) {
	opts := story.DefaultOptions()
	sel := story.NewSelection(opts)

	singles := []struct {
		field story.Field
		value string
	}{
		{story.FieldTheme, theme},
		{story.FieldMood, mood},
		{story.FieldSetting, setting},
	}
	for _, f := range singles {
		if f.value == "" {
			continue
		}
		v, ok := matchOption(opts, f.field, f.value)
		if !ok {
			return nil, unknownOption(opts, f.field, f.value)
		}
		sel.SetSingle(f.field, v)
	}

	for _, c := range characters {
		v, ok := matchOption(opts, story.FieldCharacters, c)
		if !ok {
			return nil, unknownOption(opts, story.FieldCharacters, c)
		}
		if !sel.Selected(story.FieldCharacters, v) {
			sel.ToggleCharacter(v)
		}
	}

	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return sel, nil
}

func matchOption(opts story.Options, f story.Field, value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, o := range opts.For(f) {
		if strings.EqualFold(o, value) {
			return o, true
		}
	}
	return "", false
}

func unknownOption(opts story.Options, f story.Field, value string) error {
	return &story.ValidationError{
		Field:  f.String(),
		Value:  value,
		Reason: "must be one of " + strings.Join(opts.For(f), ", "),
	}
}
