package encoder

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"
)

func TestRegistryStdlibFormats(t *testing.T) {
	r := NewRegistry()
	for _, f := range []string{"jpeg", "png", "gif"} {
		if r.Get(f) == nil {
			t.Errorf("encoder %q should always be available", f)
		}
	}
	if r.Get("jpg") == nil {
		t.Error("jpg should normalize to jpeg")
	}
	if r.Get("tiff") != nil {
		t.Error("tiff has no encoder")
	}
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()

	enc, err := r.Resolve("png", "jpeg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if enc.Format() != "png" {
		t.Errorf("requested format ignored: got %q", enc.Format())
	}

	enc, err = r.Resolve("", "jpeg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if enc.Format() != "jpeg" {
		t.Errorf("source format fallback: got %q", enc.Format())
	}

	if _, err := r.Resolve("", "bmp"); err == nil {
		t.Error("expected error for unencodable source format")
	}
}

func TestJPEGEncodeQualityClamp(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	enc := &JPEGEncoder{}

	data, err := enc.Encode(img, 0) // out of range, clamps to default
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 8 || cfg.Height != 8 {
		t.Errorf("decoded %dx%d, want 8x8", cfg.Width, cfg.Height)
	}
}

func TestAlphaSupport(t *testing.T) {
	if (&JPEGEncoder{}).SupportsAlpha() {
		t.Error("jpeg must not report alpha support")
	}
	for _, e := range []Encoder{&PNGEncoder{}, &GIFEncoder{}, &WebPEncoder{}} {
		if !e.SupportsAlpha() {
			t.Errorf("%s should report alpha support", e.Format())
		}
	}
}
