package pipeline

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/pixform-cli/internal/density"
	"github.com/AnyUserName/pixform-cli/internal/geometry"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0x80, G: 0x40, B: 0x20, A: 0xff})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return cfg.Width, cfg.Height
}

func TestRunFill(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(in, "photo.png"), 600, 800)

	spec := geometry.Spec{Mode: geometry.Fill, Box: geometry.Size{W: 400, H: 400}}
	p := New(Config{
		Input:     in,
		OutputDir: out,
		Task:      Task{Op: "fill", Spec: &spec},
		Workers:   2,
	})

	m, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(m.Outputs) != 1 {
		t.Fatalf("outputs: got %d", len(m.Outputs))
	}

	o := m.Outputs[0]
	if o.Width != 400 || o.Height != 400 {
		t.Errorf("manifest size %dx%d, want 400x400", o.Width, o.Height)
	}
	if !strings.HasPrefix(filepath.Base(o.Path), "photo.400.400.") {
		t.Errorf("output name %q lacks key.w.h prefix", o.Path)
	}
	if w, h := decodeSize(t, filepath.Join(out, o.Path)); w != 400 || h != 400 {
		t.Errorf("output file %dx%d, want 400x400", w, h)
	}
	if m.Operation != "fill" || m.Geometry != "400x400" {
		t.Errorf("manifest header: %q %q", m.Operation, m.Geometry)
	}
}

func TestRunConvert(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(in, "icon.png"), 64, 64)

	p := New(Config{
		Input:     in,
		OutputDir: out,
		Task:      Task{Op: "convert", Format: "jpeg", Quality: 90},
	})

	m, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	o := m.Outputs[0]
	if o.Format != "jpeg" {
		t.Errorf("format: got %q, want jpeg", o.Format)
	}
	if !strings.HasSuffix(o.Path, ".jpeg") {
		t.Errorf("extension: %q", o.Path)
	}
	if w, h := decodeSize(t, filepath.Join(out, o.Path)); w != 64 || h != 64 {
		t.Errorf("convert changed pixel size: %dx%d", w, h)
	}

	f, err := os.Open(filepath.Join(out, o.Path))
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	if _, err := jpeg.Decode(f); err != nil {
		t.Errorf("output is not valid jpeg: %v", err)
	}
}

func TestRunResample(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(in, "print.png"), 120, 90)

	spec := geometry.Spec{Mode: geometry.Resample, Density: geometry.Size{W: 300, H: 300}}
	p := New(Config{
		Input:     in,
		OutputDir: out,
		Task:      Task{Op: "resample", Spec: &spec},
	})

	m, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	o := m.Outputs[0]
	if o.Width != 120 || o.Height != 90 {
		t.Errorf("resample changed pixel size: %dx%d", o.Width, o.Height)
	}
	if o.Density != "300x300" {
		t.Errorf("manifest density: %q", o.Density)
	}

	data, err := os.ReadFile(filepath.Join(out, o.Path))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	dpi, ok := density.Read(data, "png")
	if !ok || dpi != (geometry.Size{W: 300, H: 300}) {
		t.Errorf("stored density: %v (ok=%v)", dpi, ok)
	}
}

func TestRunSingleFileInput(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	file := filepath.Join(in, "one.png")
	writePNG(t, file, 200, 100)
	writePNG(t, filepath.Join(in, "other.png"), 50, 50)

	spec := geometry.Spec{Mode: geometry.Fit, Box: geometry.Size{W: 100, H: 100}}
	p := New(Config{
		Input:     file,
		OutputDir: out,
		Task:      Task{Op: "fit", Spec: &spec},
	})

	m, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(m.Outputs) != 1 {
		t.Fatalf("single-file input processed %d outputs", len(m.Outputs))
	}
	if m.Outputs[0].Width != 100 || m.Outputs[0].Height != 50 {
		t.Errorf("fit output %dx%d, want 100x50", m.Outputs[0].Width, m.Outputs[0].Height)
	}
}

func TestRunNoImages(t *testing.T) {
	in := t.TempDir()
	os.WriteFile(filepath.Join(in, "notes.txt"), []byte("hi"), 0o644)

	p := New(Config{Input: in, OutputDir: t.TempDir(), Task: Task{Op: "convert"}})
	if _, err := p.Run(); err == nil {
		t.Error("expected error for directory without images")
	}
}

func TestRunBadFileCounted(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(in, "good.png"), 64, 64)
	os.WriteFile(filepath.Join(in, "broken.png"), []byte("not a png"), 0o644)

	spec := geometry.Spec{Mode: geometry.Fit, Box: geometry.Size{W: 32, H: 32}}
	p := New(Config{Input: in, OutputDir: out, Task: Task{Op: "fit", Spec: &spec}})

	m, err := p.Run()
	if err != nil {
		t.Fatalf("Run should survive one bad file: %v", err)
	}
	if len(m.Outputs) != 1 {
		t.Errorf("outputs: got %d, want 1", len(m.Outputs))
	}
	if m.Stats.Failed != 1 {
		t.Errorf("failed count: got %d, want 1", m.Stats.Failed)
	}
}
