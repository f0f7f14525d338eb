package encoder

import (
	"bytes"
	"image"
	"image/gif"
)

// GIFEncoder encodes single-frame GIF output using Go's standard library.
// Animated sources are flattened to their composed first frame upstream.
type GIFEncoder struct{}

func (e *GIFEncoder) Format() string      { return "gif" }
func (e *GIFEncoder) Extension() string   { return "gif" }
func (e *GIFEncoder) Available() bool     { return true }
func (e *GIFEncoder) SupportsAlpha() bool { return true }

func (e *GIFEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
