package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AnyUserName/pixform-cli/internal/geometry"
	"github.com/AnyUserName/pixform-cli/internal/pipeline"
)

var limitCmd = &cobra.Command{
	Use:   "limit <input> <geometry>",
	Short: "Shrink images to fit within bounds, never enlarging",
	Long: `Clamps images to a geometry of the form WxH. Either axis may be left
empty to leave it unconstrained ("400x", "x400"), and a trailing '!'
forces that axis exactly even when it means enlarging ("300x1000!").`,
	Args: cobra.ExactArgs(2),
	RunE: runLimit,
}

func init() {
	addOutputFlags(limitCmd)
	rootCmd.AddCommand(limitCmd)
}

func runLimit(_ *cobra.Command, args []string) error {
	w, h, err := geometry.ParseGeometry(args[1])
	if err != nil {
		return err
	}
	spec := geometry.Spec{Mode: geometry.Limit, Width: w, Height: h}
	return runTask(args[0], pipeline.Task{Op: "limit", Spec: &spec})
}
