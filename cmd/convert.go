package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/pixform-cli/internal/pipeline"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Re-encode images in another format and/or quality",
	Long: `Re-encodes images without touching their pixel geometry. At least one
of --format or --quality must be given.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	addOutputFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, args []string) error {
	if opFormat == "" && opQuality == 0 {
		return fmt.Errorf("convert needs --format and/or --quality")
	}
	return runTask(args[0], pipeline.Task{Op: "convert"})
}
