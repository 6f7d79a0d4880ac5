package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerbaras/storytime/pkg/integrations"
	"github.com/kerbaras/storytime/pkg/services"
)

var exportCmd = &cobra.Command{
	Use:   "export [story-id]",
	Short: "Export a saved story as EPUB",
	Long: "Render the illustrations of a saved story and compose an EPUB in the export directory.\n" +
		"Profiles: " + strings.Join(integrations.ProfileIDs(), ", "),
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profile, _ := cmd.Flags().GetString("profile")

		ctrl, log, err := setup(cmd.Context())
		cobra.CheckErr(err)
		defer closeAll(ctrl, log)

		s, err := findStory(cmd, ctrl, args[0])
		cobra.CheckErr(err)

		fmt.Printf("📥 Exporting '%s' (%d pages, profile: %s)\n", s.Title, len(s.Pages), profile)

		// Listen for progress
		go func() {
			for progress := range ctrl.ExportProgress() {
				if progress.StoryID != s.ID {
					continue
				}
				switch progress.Status {
				case services.ExportRendering:
					fmt.Printf("  Illustrations: %d/%d\n", progress.Rendered, progress.TotalPages)
				case services.ExportComposing:
					fmt.Println("  Composing EPUB...")
				}
			}
		}()

		path, err := ctrl.Export(cmd.Context(), s, profile)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("export failed: %w", err))
		}
		fmt.Printf("📖 EPUB created: %s\n", path)
	},
}

func init() {
	exportCmd.Flags().StringP("profile", "p", integrations.DefaultProfile, "Reader profile for illustrations")
}
