package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AnyUserName/pixform-cli/internal/pipeline"
)

var qualityCmd = &cobra.Command{
	Use:   "quality <input>",
	Short: "Re-encode images at a different quality",
	Long: `Re-encodes images at the given --quality without changing their format
or pixel geometry. Shorthand for "convert --quality".`,
	Args: cobra.ExactArgs(1),
	RunE: runQuality,
}

func init() {
	addOutputFlags(qualityCmd)
	qualityCmd.MarkFlagRequired("quality")
	rootCmd.AddCommand(qualityCmd)
}

func runQuality(_ *cobra.Command, args []string) error {
	return runTask(args[0], pipeline.Task{Op: "quality"})
}
