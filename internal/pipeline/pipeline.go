// Package pipeline scans for images and applies one transformation task
// to each of them with a bounded worker pool.
package pipeline

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/AnyUserName/pixform-cli/internal/encoder"
	"github.com/AnyUserName/pixform-cli/internal/manifest"
)

// Config holds all parameters for a pipeline run.
type Config struct {
	// Input is a source file or directory.
	Input string
	// OutputDir receives the processed files.
	OutputDir string
	// Task is the transformation applied to every image.
	Task Task
	// Workers bounds the parallelism (0 = NumCPU).
	Workers int
	// Logger receives progress and per-file errors.
	Logger hclog.Logger
}

// Pipeline orchestrates image processing.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
	log      hclog.Logger
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
		log:      cfg.Logger,
	}
}

// Run executes the task over all scanned images and returns the run
// manifest. Individual file failures are logged and counted; Run fails
// outright only when nothing could be processed.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	p.log.Debug(p.registry.String())

	sources, err := ScanImages(p.cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.Input)
	}
	p.log.Debug("scan complete", "images", len(sources))

	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			p.log.Debug("processing", "op", p.cfg.Task.Op, "source", s.RelPath)
			results[idx] = processImage(s, p.cfg, p.registry)
		}(i, src)
	}
	wg.Wait()

	m := manifest.New(p.cfg.Task.Op, p.cfg.Task.GeometryString())

	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			p.log.Error("processing failed", "error", r.err)
			continue
		}
		m.Outputs = append(m.Outputs, r.output)
	}

	if failed == len(sources) {
		return nil, fmt.Errorf("all %d images failed to process", failed)
	}
	if failed > 0 {
		p.log.Warn("partial failure", "failed", failed, "total", len(sources))
	}

	m.Stats.Failed = failed
	m.ComputeStats()
	return m, nil
}
