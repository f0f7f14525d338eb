package pipeline

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/pixform-cli/internal/density"
	"github.com/AnyUserName/pixform-cli/internal/encoder"
	"github.com/AnyUserName/pixform-cli/internal/geometry"
	"github.com/AnyUserName/pixform-cli/internal/hasher"
	"github.com/AnyUserName/pixform-cli/internal/manifest"
	"github.com/AnyUserName/pixform-cli/internal/transform"
)

// Task is one transformation applied to every scanned image: the
// resolver spec (nil for a pure format/quality conversion) plus the
// encode parameters.
type Task struct {
	// Op is the verb name, used for logging and the manifest.
	Op string
	// Spec drives the geometry resolver; nil means convert-only.
	Spec *geometry.Spec
	// Format overrides the output format; empty keeps the source format.
	Format string
	// Quality is the encoder quality 1-100 (0 = encoder default).
	Quality int
	// FallbackBackground replaces a transparent pad background when the
	// output format has no alpha channel.
	FallbackBackground color.NRGBA
}

// GeometryString renders the task's requested geometry for reports.
func (t Task) GeometryString() string {
	if t.Spec == nil {
		return ""
	}
	switch t.Spec.Mode {
	case geometry.Limit:
		return t.Spec.Width.String() + "x" + t.Spec.Height.String()
	case geometry.Resample:
		return t.Spec.Density.String()
	default:
		return t.Spec.Box.String()
	}
}

// processResult holds the result of processing a single source image.
type processResult struct {
	output manifest.Output
	err    error
}

// processImage handles one source: decode, resolve geometry, transform,
// encode, write a content-addressed output file.
func processImage(src Source, cfg Config, registry *encoder.Registry) processResult {
	f, err := os.Open(src.AbsPath)
	if err != nil {
		return processResult{err: fmt.Errorf("open %s: %w", src.RelPath, err)}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return processResult{err: fmt.Errorf("decode %s: %w", src.RelPath, err)}
	}

	bounds := img.Bounds()
	srcSize := geometry.Size{W: bounds.Dx(), H: bounds.Dy()}

	resolved := geometry.Resolved{Size: srcSize, Scaled: srcSize}
	if cfg.Task.Spec != nil {
		resolved, err = geometry.Resolve(srcSize, *cfg.Task.Spec)
		if err != nil {
			return processResult{err: fmt.Errorf("resolve %s: %w", src.RelPath, err)}
		}
	}

	enc, err := registry.Resolve(cfg.Task.Format, src.Format)
	if err != nil {
		return processResult{err: fmt.Errorf("%s: %w", src.RelPath, err)}
	}

	// Resample leaves pixels alone; everything else renders the geometry.
	out := image.Image(img)
	if resolved.Density == nil {
		bg := transform.BackgroundColor(resolved.Background, enc.SupportsAlpha(), cfg.Task.FallbackBackground)
		out = transform.Apply(img, resolved, bg)
	}

	data, err := enc.Encode(out, cfg.Task.Quality)
	if err != nil {
		return processResult{err: fmt.Errorf("encode %s as %s: %w", src.RelPath, enc.Format(), err)}
	}

	var densityStr string
	if resolved.Density != nil {
		data, err = density.Set(data, enc.Format(), *resolved.Density)
		if err != nil {
			return processResult{err: fmt.Errorf("set density on %s: %w", src.RelPath, err)}
		}
		densityStr = resolved.Density.String()
	}

	// Content hash for the filename: key.w.h.hash.ext
	contentHash := hasher.ContentHash(data, 16)
	fileName := fmt.Sprintf("%s.%d.%d.%s.%s",
		filepath.Base(src.Key), resolved.Size.W, resolved.Size.H, contentHash[:8], enc.Extension())

	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755); err != nil {
			return processResult{err: fmt.Errorf("create output dir for %s: %w", src.RelPath, err)}
		}
	}
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

	outPath := filepath.Join(cfg.OutputDir, relPath)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return processResult{err: fmt.Errorf("write %s: %w", relPath, err)}
	}

	return processResult{output: manifest.Output{
		Source:     src.RelPath,
		SourceSize: src.Size,
		Path:       relPath,
		Width:      resolved.Size.W,
		Height:     resolved.Size.H,
		Format:     enc.Format(),
		Size:       int64(len(data)),
		Hash:       contentHash,
		Density:    densityStr,
	}}
}
