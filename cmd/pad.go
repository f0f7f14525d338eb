package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AnyUserName/pixform-cli/internal/geometry"
	"github.com/AnyUserName/pixform-cli/internal/pipeline"
)

var (
	padWidth      int
	padHeight     int
	padGravity    string
	padBackground string
)

var padCmd = &cobra.Command{
	Use:   "pad <input>",
	Short: "Fit inside a box and pad the remainder with a background",
	Long: `Scales each image, preserving aspect ratio, to fit inside the WxH box,
then extends the canvas to the exact box size. --gravity places the
image on the canvas and --background fills the border. Transparent
backgrounds fall back to --fallback-background when the output format
has no alpha channel.`,
	Args: cobra.ExactArgs(1),
	RunE: runPad,
}

func init() {
	padCmd.Flags().IntVarP(&padWidth, "width", "W", 0, "box width in pixels")
	padCmd.Flags().IntVarP(&padHeight, "height", "H", 0, "box height in pixels")
	padCmd.Flags().StringVarP(&padGravity, "gravity", "g", "center",
		"image anchor: center, north, south, east, west, northeast, northwest, southeast, southwest")
	padCmd.Flags().StringVarP(&padBackground, "background", "b", "transparent",
		"pad color: a name (white, black, ...), #rgb, #rrggbb, or transparent")
	padCmd.MarkFlagRequired("width")
	padCmd.MarkFlagRequired("height")
	addOutputFlags(padCmd)
	rootCmd.AddCommand(padCmd)
}

func runPad(_ *cobra.Command, args []string) error {
	g, err := geometry.ParseGravity(padGravity)
	if err != nil {
		return err
	}
	bg, err := geometry.ParseBackground(padBackground)
	if err != nil {
		return err
	}
	spec := geometry.Spec{
		Mode:       geometry.Pad,
		Box:        geometry.Size{W: padWidth, H: padHeight},
		Gravity:    g,
		Background: bg,
	}
	return runTask(args[0], pipeline.Task{Op: "pad", Spec: &spec})
}
