package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/pixform-cli/internal/pipeline"
	"github.com/AnyUserName/pixform-cli/internal/preset"
)

var presetFile string

var presetCmd = &cobra.Command{
	Use:   "preset <name> <input>",
	Short: "Apply a named preset (built-in or from a YAML file)",
	Long: `Runs one of the named presets: thumbnail, avatar, banner, og, web, or
any preset defined in a --presets-file YAML file. Explicit --format and
--quality flags override the preset's values.`,
	Args: cobra.ExactArgs(2),
	RunE: runPreset,
}

func init() {
	presetCmd.Flags().StringVar(&presetFile, "presets-file", "", "YAML file with additional presets")
	addOutputFlags(presetCmd)
	rootCmd.AddCommand(presetCmd)
}

func runPreset(_ *cobra.Command, args []string) error {
	table := preset.NewTable()
	if presetFile != "" {
		if err := table.LoadFile(presetFile); err != nil {
			return err
		}
	}

	p, ok := table.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown preset %q (available: %s)",
			args[0], strings.Join(table.Names(), ", "))
	}
	spec, err := p.Spec()
	if err != nil {
		return err
	}

	task := pipeline.Task{Op: p.Op, Spec: &spec}
	if opFormat == "" {
		task.Format = p.Format
	}
	if opQuality == 0 {
		task.Quality = p.Quality
	}
	return runTask(args[1], task)
}
