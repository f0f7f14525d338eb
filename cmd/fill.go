package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AnyUserName/pixform-cli/internal/geometry"
	"github.com/AnyUserName/pixform-cli/internal/pipeline"
)

var (
	fillWidth   int
	fillHeight  int
	fillGravity string
)

var fillCmd = &cobra.Command{
	Use:   "fill <input>",
	Short: "Cover a box completely, cropping the overflow",
	Long: `Scales each image, preserving aspect ratio, to the smallest size that
covers the WxH box, then crops the overflow. --gravity picks which part
of the image survives the crop.`,
	Args: cobra.ExactArgs(1),
	RunE: runFill,
}

func init() {
	fillCmd.Flags().IntVarP(&fillWidth, "width", "W", 0, "box width in pixels")
	fillCmd.Flags().IntVarP(&fillHeight, "height", "H", 0, "box height in pixels")
	fillCmd.Flags().StringVarP(&fillGravity, "gravity", "g", "center",
		"crop anchor: center, north, south, east, west, northeast, northwest, southeast, southwest")
	fillCmd.MarkFlagRequired("width")
	fillCmd.MarkFlagRequired("height")
	addOutputFlags(fillCmd)
	rootCmd.AddCommand(fillCmd)
}

func runFill(_ *cobra.Command, args []string) error {
	g, err := geometry.ParseGravity(fillGravity)
	if err != nil {
		return err
	}
	spec := geometry.Spec{
		Mode:    geometry.Fill,
		Box:     geometry.Size{W: fillWidth, H: fillHeight},
		Gravity: g,
	}
	return runTask(args[0], pipeline.Task{Op: "fill", Spec: &spec})
}
