package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/pixform-cli/internal/geometry"
	"github.com/AnyUserName/pixform-cli/internal/manifest"
	"github.com/AnyUserName/pixform-cli/internal/pipeline"
)

var (
	opOutDir     string
	opFormat     string
	opQuality    int
	opWorkers    int
	opManifest   bool
	opWatch      bool
	opFallbackBG string
)

// addOutputFlags registers the flags shared by every transformation verb.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&opOutDir, "out", "o", "./pixform_out", "output directory")
	cmd.Flags().StringVarP(&opFormat, "format", "f", "", "output format: jpeg, png, gif, webp (default: keep source format)")
	cmd.Flags().IntVarP(&opQuality, "quality", "q", 0, "encoder quality 1-100 (0 = default)")
	cmd.Flags().IntVarP(&opWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	cmd.Flags().BoolVar(&opManifest, "manifest", false, "write pixform.manifest.json to the output directory")
	cmd.Flags().BoolVar(&opWatch, "watch", false, "keep running and re-process files as they change")
	cmd.Flags().StringVar(&opFallbackBG, "fallback-background", "white",
		"opaque color replacing a transparent background when the output format has no alpha")
}

// runTask executes one verb over the input path.
func runTask(input string, task pipeline.Task) error {
	start := time.Now()

	absInput, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(opOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fallback, err := geometry.ParseBackground(opFallbackBG)
	if err != nil {
		return err
	}
	if fallback.Transparent {
		return fmt.Errorf("--fallback-background must be an opaque color")
	}
	task.FallbackBackground = fallback.Color
	if task.Format == "" {
		task.Format = opFormat
	}
	if task.Quality == 0 {
		task.Quality = opQuality
	}

	p := pipeline.New(pipeline.Config{
		Input:     absInput,
		OutputDir: absOutput,
		Task:      task,
		Workers:   opWorkers,
		Logger:    newLogger(),
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if opManifest {
		manifestPath := filepath.Join(absOutput, "pixform.manifest.json")
		if err := manifest.WriteJSON(m, manifestPath); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
	}

	printRunReport(m, time.Since(start))

	if opWatch {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		done := make(chan struct{})
		go func() {
			<-sig
			close(done)
		}()
		return p.Watch(done)
	}
	return nil
}

func printRunReport(m *manifest.Manifest, elapsed time.Duration) {
	op := m.Operation
	if m.Geometry != "" {
		op += " " + m.Geometry
	}
	fmt.Println()
	fmt.Printf("  %s: %d file(s) processed\n", op, m.Stats.TotalOutputs)
	fmt.Printf("  Input size:  %s\n", formatBytes(m.Stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(m.Stats.TotalOutputBytes))
	if m.Stats.TotalInputBytes > 0 {
		ratio := float64(m.Stats.TotalOutputBytes) / float64(m.Stats.TotalInputBytes) * 100
		fmt.Printf("  Ratio:       %.1f%% of original\n", ratio)
	}
	if m.Stats.Failed > 0 {
		fmt.Printf("  Failed:      %d file(s)\n", m.Stats.Failed)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
