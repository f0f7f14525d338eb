// Package transform applies a resolved geometry to decoded pixels.
package transform

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/pixform-cli/internal/geometry"
)

// Apply renders a resolved geometry: resize for limit/fit, resize+crop
// for fill, resize+paste onto a background canvas for pad. bg is the
// already-resolved canvas color (see BackgroundColor). The input image is
// never mutated.
func Apply(img image.Image, g geometry.Resolved, bg color.NRGBA) *image.NRGBA {
	switch {
	case g.Crop != nil:
		resized := imaging.Resize(img, g.Scaled.W, g.Scaled.H, imaging.Lanczos)
		r := image.Rect(g.Crop.X, g.Crop.Y, g.Crop.X+g.Crop.W, g.Crop.Y+g.Crop.H)
		return imaging.Crop(resized, r)

	case g.Offset != nil:
		resized := imaging.Resize(img, g.Scaled.W, g.Scaled.H, imaging.Lanczos)
		canvas := imaging.New(g.Size.W, g.Size.H, bg)
		return imaging.Paste(canvas, resized, image.Pt(g.Offset.X, g.Offset.Y))

	default:
		b := img.Bounds()
		if b.Dx() == g.Size.W && b.Dy() == g.Size.H {
			return imaging.Clone(img)
		}
		return imaging.Resize(img, g.Size.W, g.Size.H, imaging.Lanczos)
	}
}

// BackgroundColor resolves a pad background against the output format's
// alpha support: a transparent background on an alpha-less target falls
// back to the caller-supplied opaque default.
func BackgroundColor(bg *geometry.Background, alphaOK bool, fallback color.NRGBA) color.NRGBA {
	if bg == nil {
		return color.NRGBA{}
	}
	if bg.Transparent {
		if alphaOK {
			return color.NRGBA{}
		}
		return fallback
	}
	return bg.Color
}
