package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kerbaras/storytime/pkg/story"
)

var rateCmd = &cobra.Command{
	Use:   "rate [story-id] [1-5]",
	Short: "Rate a saved story",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		rating, err := strconv.Atoi(args[1])
		if err != nil {
			cobra.CheckErr(&story.ValidationError{Field: "rating", Value: args[1], Reason: "must be a number from 1 to 5"})
		}
		cobra.CheckErr(story.ValidateRating(rating))

		ctrl, log, err := setup(cmd.Context())
		cobra.CheckErr(err)
		defer closeAll(ctrl, log)

		s, err := findStory(cmd, ctrl, args[0])
		cobra.CheckErr(err)

		if err := ctrl.Rate(cmd.Context(), s.ID, rating); err != nil {
			cobra.CheckErr(fmt.Errorf("rating failed: %w", err))
		}
		fmt.Printf("⭐ Rated '%s' %s\n", s.Title, plainStars(rating))
	},
}
