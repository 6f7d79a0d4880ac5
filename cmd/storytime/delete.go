package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [story-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a saved story",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctrl, log, err := setup(cmd.Context())
		cobra.CheckErr(err)
		defer closeAll(ctrl, log)

		s, err := findStory(cmd, ctrl, args[0])
		cobra.CheckErr(err)

		if err := ctrl.Delete(cmd.Context(), s.ID); err != nil {
			cobra.CheckErr(fmt.Errorf("delete failed: %w", err))
		}
		fmt.Printf("🗑️  Deleted '%s'\n", s.Title)
	},
}
