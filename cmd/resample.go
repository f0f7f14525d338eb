package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/pixform-cli/internal/geometry"
	"github.com/AnyUserName/pixform-cli/internal/pipeline"
)

var resampleDensity string

var resampleCmd = &cobra.Command{
	Use:   "resample <input>",
	Short: "Set the stored pixel density without resizing",
	Long: `Rewrites the density metadata (JPEG JFIF header, PNG pHYs chunk) to the
given DPI. Pixel dimensions are untouched; only how large the image
prints changes. --density takes a single value ("300") or separate
horizontal and vertical values ("300x600").`,
	Args: cobra.ExactArgs(1),
	RunE: runResample,
}

func init() {
	resampleCmd.Flags().StringVarP(&resampleDensity, "density", "d", "", "target density in DPI, e.g. 300 or 300x600")
	resampleCmd.MarkFlagRequired("density")
	addOutputFlags(resampleCmd)
	rootCmd.AddCommand(resampleCmd)
}

func runResample(_ *cobra.Command, args []string) error {
	d, err := parseDensity(resampleDensity)
	if err != nil {
		return err
	}
	spec := geometry.Spec{Mode: geometry.Resample, Density: d}
	return runTask(args[0], pipeline.Task{Op: "resample", Spec: &spec})
}

func parseDensity(s string) (geometry.Size, error) {
	xs, ys, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		ys = xs
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return geometry.Size{}, fmt.Errorf("invalid density %q", s)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return geometry.Size{}, fmt.Errorf("invalid density %q", s)
	}
	if x <= 0 || y <= 0 {
		return geometry.Size{}, fmt.Errorf("density must be positive, got %q", s)
	}
	return geometry.Size{W: x, H: y}, nil
}
