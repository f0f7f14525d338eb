// Package geometry computes output dimensions and crop/placement
// rectangles for the resize verbs. Resolution is pure arithmetic over a
// known source pixel size; decoding, resampling and encoding are the
// caller's business.
package geometry

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

var (
	// ErrInvalidDimension reports a non-positive requested width or height.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrMissingDimension reports an absent axis on a mode requiring both.
	ErrMissingDimension = errors.New("missing dimension")
	// ErrUnknownGravity reports an unrecognized anchor.
	ErrUnknownGravity = errors.New("unknown gravity")
)

func errInvalidValue(n int) error {
	return fmt.Errorf("%d: %w", n, ErrInvalidDimension)
}

// Size is a width/height pair in pixels (or in dots per inch for a
// resample density).
type Size struct {
	W int
	H int
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

func (s Size) positive() bool { return s.W > 0 && s.H > 0 }

// Point is an offset within a canvas, top-left origin.
type Point struct {
	X int
	Y int
}

// Rect is a crop window within an intermediate scaled image.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Gravity selects which part of the source survives a fill crop, or
// where the scaled source lands on a pad canvas.
type Gravity int

const (
	Center Gravity = iota
	North
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

var gravityNames = map[Gravity]string{
	Center:    "center",
	North:     "north",
	South:     "south",
	East:      "east",
	West:      "west",
	NorthEast: "northeast",
	NorthWest: "northwest",
	SouthEast: "southeast",
	SouthWest: "southwest",
}

func (g Gravity) String() string {
	if n, ok := gravityNames[g]; ok {
		return n
	}
	return fmt.Sprintf("gravity(%d)", int(g))
}

// Mode is the closed set of resize operations.
type Mode int

const (
	Limit Mode = iota
	Fit
	Fill
	Pad
	Resample
)

var modeNames = map[Mode]string{
	Limit:    "limit",
	Fit:      "fit",
	Fill:     "fill",
	Pad:      "pad",
	Resample: "resample",
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Background describes the fill for pad canvas area left uncovered by the
// scaled source. The zero value is opaque black; use Transparent for the
// default pad background.
type Background struct {
	Transparent bool
	Color       color.NRGBA
	Name        string
}

// Transparent is the default pad background. Callers targeting a format
// without an alpha channel must substitute an opaque color.
var Transparent = Background{Transparent: true, Name: "transparent"}

func (b Background) String() string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("#%02x%02x%02x", b.Color.R, b.Color.G, b.Color.B)
}

// Spec is a resize request: a mode tag plus the parameters that mode
// reads. Limit reads Width/Height, Fit/Fill/Pad read Box (and Gravity,
// Background for Fill/Pad), Resample reads Density.
type Spec struct {
	Mode       Mode
	Width      Axis
	Height     Axis
	Box        Size
	Gravity    Gravity
	Background Background
	Density    Size
}

// Resolved is the output of Resolve. Size is the final canvas. For Fill,
// Crop is the window to cut from the source scaled to Scaled. For Pad,
// Offset places the source scaled to Scaled on the canvas and Background
// fills the rest. For Resample, Density carries the new DPI and the pixel
// size is unchanged.
type Resolved struct {
	Size       Size
	Scaled     Size
	Crop       *Rect
	Offset     *Point
	Background *Background
	Density    *Size
}

// Resolve computes the geometry for one resize request. It is a pure
// function of its arguments and is safe for concurrent use.
func Resolve(src Size, spec Spec) (Resolved, error) {
	if !src.positive() {
		return Resolved{}, fmt.Errorf("source %s: %w", src, ErrInvalidDimension)
	}

	switch spec.Mode {
	case Limit:
		if err := spec.Width.validate(); err != nil {
			return Resolved{}, fmt.Errorf("width: %w", err)
		}
		if err := spec.Height.validate(); err != nil {
			return Resolved{}, fmt.Errorf("height: %w", err)
		}
		out := resolveLimit(src, spec.Width, spec.Height)
		return Resolved{Size: out, Scaled: out}, nil

	case Fit:
		if err := checkBox(spec.Box); err != nil {
			return Resolved{}, err
		}
		out := resolveFit(src, spec.Box)
		return Resolved{Size: out, Scaled: out}, nil

	case Fill:
		if err := checkBox(spec.Box); err != nil {
			return Resolved{}, err
		}
		if err := checkGravity(spec.Gravity); err != nil {
			return Resolved{}, err
		}
		return resolveFill(src, spec.Box, spec.Gravity), nil

	case Pad:
		if err := checkBox(spec.Box); err != nil {
			return Resolved{}, err
		}
		if err := checkGravity(spec.Gravity); err != nil {
			return Resolved{}, err
		}
		return resolvePad(src, spec.Box, spec.Gravity, spec.Background), nil

	case Resample:
		if err := checkDensity(spec.Density); err != nil {
			return Resolved{}, err
		}
		d := spec.Density
		return Resolved{Size: src, Scaled: src, Density: &d}, nil

	default:
		return Resolved{}, fmt.Errorf("unknown resize mode %d", int(spec.Mode))
	}
}

func checkBox(box Size) error {
	if box.W == 0 {
		return fmt.Errorf("width: %w", ErrMissingDimension)
	}
	if box.H == 0 {
		return fmt.Errorf("height: %w", ErrMissingDimension)
	}
	if box.W < 0 {
		return fmt.Errorf("width: %w", errInvalidValue(box.W))
	}
	if box.H < 0 {
		return fmt.Errorf("height: %w", errInvalidValue(box.H))
	}
	return nil
}

func checkDensity(d Size) error {
	if d.W == 0 || d.H == 0 {
		return fmt.Errorf("density: %w", ErrMissingDimension)
	}
	if d.W < 0 || d.H < 0 {
		return fmt.Errorf("density %s: %w", d, ErrInvalidDimension)
	}
	return nil
}

func checkGravity(g Gravity) error {
	if _, ok := gravityNames[g]; !ok {
		return fmt.Errorf("%d: %w", int(g), ErrUnknownGravity)
	}
	return nil
}

// scaleDim scales a dimension rounding half away from zero, with a floor
// of one pixel so extreme aspect ratios never collapse an axis to zero.
func scaleDim(n int, s float64) int {
	v := int(math.Floor(float64(n)*s + 0.5))
	if v < 1 {
		v = 1
	}
	return v
}

// fitScale is the largest uniform scale keeping src inside box.
func fitScale(src, box Size) float64 {
	return math.Min(float64(box.W)/float64(src.W), float64(box.H)/float64(src.H))
}

// fillScale is the smallest uniform scale making src cover box.
func fillScale(src, box Size) float64 {
	return math.Max(float64(box.W)/float64(src.W), float64(box.H)/float64(src.H))
}

// resolveLimit clamps each axis independently: a lone bound caps its own
// dimension and leaves the other at source. Only when both axes are
// bounds is a shared fit scale used, preserving the aspect ratio.
func resolveLimit(src Size, w, h Axis) Size {
	if w.IsExact() || h.IsExact() {
		return limitExact(src, w, h)
	}
	switch {
	case w.kind == axisBound && h.kind == axisBound:
		s := fitScale(src, Size{W: w.n, H: h.n})
		if s >= 1 {
			return src
		}
		return Size{W: scaleDim(src.W, s), H: scaleDim(src.H, s)}
	case w.kind == axisBound:
		return Size{W: min(src.W, w.n), H: src.H}
	case h.kind == axisBound:
		return Size{W: src.W, H: min(src.H, h.n)}
	default:
		return src
	}
}

// limitExact handles limits with at least one hard-exact axis. An exact
// axis is forced outright; a lone exact leaves the other axis at source.
// When the other axis is a bound, the exact axis's scale factor is
// applied to it too (aspect preserved around the exact axis, enlarging
// if necessary) and the result must stay within the bound. If it would
// not, the bound wins: each axis is clamped independently (bound axis to
// min(source, bound), exact axis to min(exact, source)), so the conflict
// case never enlarges and may distort.
func limitExact(src Size, w, h Axis) Size {
	if w.IsExact() && h.IsExact() {
		return Size{W: w.n, H: h.n}
	}
	if w.IsExact() {
		if h.kind == axisUnconstrained {
			return Size{W: w.n, H: src.H}
		}
		s := float64(w.n) / float64(src.W)
		if sh := scaleDim(src.H, s); sh <= h.n {
			return Size{W: w.n, H: sh}
		}
		return Size{W: min(w.n, src.W), H: min(h.n, src.H)}
	}
	if w.kind == axisUnconstrained {
		return Size{W: src.W, H: h.n}
	}
	s := float64(h.n) / float64(src.H)
	if sw := scaleDim(src.W, s); sw <= w.n {
		return Size{W: sw, H: h.n}
	}
	return Size{W: min(w.n, src.W), H: min(h.n, src.H)}
}

func resolveFit(src, box Size) Size {
	s := fitScale(src, box)
	return Size{W: scaleDim(src.W, s), H: scaleDim(src.H, s)}
}

func resolveFill(src, box Size, g Gravity) Resolved {
	s := fillScale(src, box)
	scaled := Size{W: scaleDim(src.W, s), H: scaleDim(src.H, s)}

	// Rounding must not leave the intermediate smaller than the box.
	if scaled.W < box.W {
		scaled.W = box.W
	}
	if scaled.H < box.H {
		scaled.H = box.H
	}

	off := anchorOffset(g, scaled.W-box.W, scaled.H-box.H)
	return Resolved{
		Size:   box,
		Scaled: scaled,
		Crop:   &Rect{X: off.X, Y: off.Y, W: box.W, H: box.H},
	}
}

func resolvePad(src, box Size, g Gravity, bg Background) Resolved {
	s := fitScale(src, box)
	scaled := Size{W: scaleDim(src.W, s), H: scaleDim(src.H, s)}

	// Rounding must not push the scaled image past the canvas.
	if scaled.W > box.W {
		scaled.W = box.W
	}
	if scaled.H > box.H {
		scaled.H = box.H
	}

	off := anchorOffset(g, box.W-scaled.W, box.H-scaled.H)
	return Resolved{
		Size:       box,
		Scaled:     scaled,
		Offset:     &off,
		Background: &bg,
	}
}

// anchorOffset distributes the spare pixels on each axis according to the
// anchor: crop excess for fill, canvas deficit for pad. Center halves the
// spare (odd spare leaves the extra pixel south/east), edges and corners
// pin the relevant axes to zero or the full spare.
func anchorOffset(g Gravity, dx, dy int) Point {
	p := Point{X: dx / 2, Y: dy / 2}
	switch g {
	case North:
		p.Y = 0
	case South:
		p.Y = dy
	case West:
		p.X = 0
	case East:
		p.X = dx
	case NorthWest:
		p.X, p.Y = 0, 0
	case NorthEast:
		p.X, p.Y = dx, 0
	case SouthWest:
		p.X, p.Y = 0, dy
	case SouthEast:
		p.X, p.Y = dx, dy
	}
	return p
}
