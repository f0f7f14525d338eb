package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AnyUserName/pixform-cli/internal/geometry"
	"github.com/AnyUserName/pixform-cli/internal/pipeline"
)

var (
	fitWidth  int
	fitHeight int
)

var fitCmd = &cobra.Command{
	Use:   "fit <input>",
	Short: "Resize to the largest size that fits inside a box",
	Long: `Scales each image, preserving aspect ratio, to the largest size that
fits entirely inside the WxH box. Small images are enlarged.`,
	Args: cobra.ExactArgs(1),
	RunE: runFit,
}

func init() {
	fitCmd.Flags().IntVarP(&fitWidth, "width", "W", 0, "box width in pixels")
	fitCmd.Flags().IntVarP(&fitHeight, "height", "H", 0, "box height in pixels")
	fitCmd.MarkFlagRequired("width")
	fitCmd.MarkFlagRequired("height")
	addOutputFlags(fitCmd)
	rootCmd.AddCommand(fitCmd)
}

func runFit(_ *cobra.Command, args []string) error {
	spec := geometry.Spec{
		Mode: geometry.Fit,
		Box:  geometry.Size{W: fitWidth, H: fitHeight},
	}
	return runTask(args[0], pipeline.Task{Op: "fit", Spec: &spec})
}
