package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestScanImagesFiltersAndKeys(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.png"))
	touch(t, filepath.Join(dir, "b.JPG"))
	touch(t, filepath.Join(dir, "sub", "c.webp"))
	touch(t, filepath.Join(dir, "readme.md"))
	touch(t, filepath.Join(dir, ".cache", "d.png"))

	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatalf("ScanImages: %v", err)
	}

	got := map[string]string{}
	for _, s := range sources {
		got[s.Key] = s.Format
	}
	want := map[string]string{
		"a":     "png",
		"b":     "jpeg",
		"sub/c": "webp",
	}
	if len(got) != len(want) {
		t.Fatalf("scanned %v, want %v", got, want)
	}
	for k, f := range want {
		if got[k] != f {
			t.Errorf("key %q: format %q, want %q", k, got[k], f)
		}
	}
}

func TestScanImagesSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpeg")
	touch(t, path)

	sources, err := ScanImages(path)
	if err != nil {
		t.Fatalf("ScanImages: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("sources: got %d", len(sources))
	}
	if sources[0].Key != "photo" || sources[0].Format != "jpeg" {
		t.Errorf("source: %+v", sources[0])
	}
}

func TestScanImagesRejectsNonImageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	touch(t, path)

	if _, err := ScanImages(path); err == nil {
		t.Error("expected error for non-image file input")
	}
}
