package density

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/AnyUserName/pixform-cli/internal/geometry"
)

func encode(t *testing.T, format string) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	var buf bytes.Buffer
	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "png":
		err = png.Encode(&buf, img)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", format, err)
	}
	return buf.Bytes()
}

func TestSetJPEG(t *testing.T) {
	data := encode(t, "jpeg")
	want := geometry.Size{W: 300, H: 150}

	out, err := Set(data, "jpeg", want)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := Read(out, "jpeg")
	if !ok {
		t.Fatal("Read found no density after Set")
	}
	if got != want {
		t.Errorf("density: got %v, want %v", got, want)
	}

	// Pixels must be untouched and the stream still decodable.
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("DecodeConfig after Set: %v", err)
	}
	if cfg.Width != 16 || cfg.Height != 16 {
		t.Errorf("pixel size changed: %dx%d", cfg.Width, cfg.Height)
	}
}

func TestSetJPEGRewritesExisting(t *testing.T) {
	data := encode(t, "jpeg")

	out, err := Set(data, "jpeg", geometry.Size{W: 72, H: 72})
	if err != nil {
		t.Fatalf("first Set: %v", err)
	}
	out2, err := Set(out, "jpeg", geometry.Size{W: 600, H: 600})
	if err != nil {
		t.Fatalf("second Set: %v", err)
	}
	if len(out2) != len(out) {
		t.Errorf("rewrite grew the stream: %d -> %d bytes", len(out), len(out2))
	}
	if got, _ := Read(out2, "jpeg"); got != (geometry.Size{W: 600, H: 600}) {
		t.Errorf("density after rewrite: %v", got)
	}
}

func TestSetPNG(t *testing.T) {
	data := encode(t, "png")
	want := geometry.Size{W: 300, H: 300}

	out, err := Set(data, "png", want)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := Read(out, "png")
	if !ok {
		t.Fatal("Read found no pHYs after Set")
	}
	if got != want {
		t.Errorf("density: got %v, want %v", got, want)
	}

	// CRC of the inserted chunk must hold up under a real decoder.
	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("DecodeConfig after Set: %v", err)
	}
	if cfg.Width != 16 || cfg.Height != 16 {
		t.Errorf("pixel size changed: %dx%d", cfg.Width, cfg.Height)
	}
	if _, err := png.Decode(bytes.NewReader(out)); err != nil {
		t.Fatalf("Decode after Set: %v", err)
	}
}

func TestSetPNGReplacesExisting(t *testing.T) {
	data := encode(t, "png")

	out, err := Set(data, "png", geometry.Size{W: 72, H: 72})
	if err != nil {
		t.Fatalf("first Set: %v", err)
	}
	out2, err := Set(out, "png", geometry.Size{W: 144, H: 144})
	if err != nil {
		t.Fatalf("second Set: %v", err)
	}
	if len(out2) != len(out) {
		t.Errorf("replace grew the stream: %d -> %d bytes", len(out), len(out2))
	}
	if got, _ := Read(out2, "png"); got != (geometry.Size{W: 144, H: 144}) {
		t.Errorf("density after replace: %v", got)
	}
}

func TestSetErrors(t *testing.T) {
	jpegData := encode(t, "jpeg")

	if _, err := Set(jpegData, "gif", geometry.Size{W: 72, H: 72}); err == nil {
		t.Error("gif: expected unsupported format error")
	}
	if _, err := Set(jpegData, "jpeg", geometry.Size{W: 0, H: 72}); err == nil {
		t.Error("zero dpi: expected error")
	}
	if _, err := Set(jpegData, "jpeg", geometry.Size{W: 72, H: 70000}); err == nil {
		t.Error("dpi over uint16: expected error")
	}
	if _, err := Set([]byte("not an image"), "jpeg", geometry.Size{W: 72, H: 72}); err == nil {
		t.Error("garbage input: expected error")
	}
	if _, err := Set([]byte("not an image"), "png", geometry.Size{W: 72, H: 72}); err == nil {
		t.Error("garbage png input: expected error")
	}
}

func TestDPIRoundTrip(t *testing.T) {
	// 300 dpi -> 11811 ppm -> 300 dpi; the metric round trip must be exact
	// for common print densities.
	for _, dpi := range []int{72, 96, 150, 300, 600} {
		if got := ppmToDPI(dpiToPPM(dpi)); got != dpi {
			t.Errorf("round trip %d dpi: got %d", dpi, got)
		}
	}
}
