package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of write events most editors and
// sync clients emit for a single file change.
const debounceDelay = 500 * time.Millisecond

// Watch keeps the pipeline running, re-processing images as they are
// created or modified under the input path. It blocks until stop is
// closed.
func (p *Pipeline) Watch(stop <-chan struct{}) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	root := p.cfg.Input
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if info.IsDir() {
		if err := addDirs(w, root); err != nil {
			return err
		}
	} else {
		// Watching a single file: watch its directory, filter below.
		if err := w.Add(filepath.Dir(root)); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
	}
	p.log.Info("watching for changes", "path", root)

	debounce := make(map[string]*time.Timer)
	defer func() {
		for _, t := range debounce {
			t.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			// New subdirectories join the watch set.
			if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
				if info.IsDir() && !strings.HasPrefix(fi.Name(), ".") {
					addDirs(w, ev.Name)
				}
				continue
			}

			if !info.IsDir() && ev.Name != root {
				continue
			}
			if !imageExtensions[strings.ToLower(filepath.Ext(ev.Name))] {
				continue
			}
			if strings.HasPrefix(filepath.Base(ev.Name), ".") {
				continue
			}

			if t, exists := debounce[ev.Name]; exists {
				t.Stop()
			}
			name := ev.Name
			debounce[name] = time.AfterFunc(debounceDelay, func() {
				p.processOne(name)
			})

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.log.Error("watch error", "error", err)

		case <-stop:
			return nil
		}
	}
}

// processOne re-runs the task for a single changed file.
func (p *Pipeline) processOne(path string) {
	root := p.cfg.Input
	if fi, err := os.Stat(root); err == nil && !fi.IsDir() {
		root = filepath.Dir(root)
	}
	fi, err := os.Stat(path)
	if err != nil {
		p.log.Error("stat changed file", "path", path, "error", err)
		return
	}
	src, ok := newSource(root, path, fi.Size())
	if !ok {
		return
	}

	p.log.Debug("reprocessing", "op", p.cfg.Task.Op, "source", src.RelPath)
	r := processImage(src, p.cfg, p.registry)
	if r.err != nil {
		p.log.Error("reprocessing failed", "error", r.err)
		return
	}
	p.log.Info("updated", "source", src.RelPath, "output", r.output.Path,
		"size", fmt.Sprintf("%dx%d", r.output.Width, r.output.Height))
}

// addDirs adds dir and all non-hidden subdirectories to the watcher.
func addDirs(w *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return nil
		}
		if strings.HasPrefix(fi.Name(), ".") && path != dir {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
