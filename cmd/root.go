package cmd

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pixform",
	Short: "Geometry-driven image transformation CLI",
	Long: `pixform — applies deterministic resize geometry (limit, fit, fill, pad)
plus format conversion, quality and density control to single files or
whole directories.

Output filenames are content-addressed: <key>.<w>.<h>.<hash>.ext`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"pixform %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// newLogger builds the CLI logger; --verbose enables debug output.
func newLogger() hclog.Logger {
	level := hclog.Info
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:  "pixform",
		Level: level,
	})
}
