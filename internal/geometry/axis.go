package geometry

import "strconv"

type axisKind int

const (
	axisUnconstrained axisKind = iota
	axisBound
	axisExact
)

// Axis is one requested dimension of a limit operation. It is either
// unconstrained (the axis is left alone), a bound (shrink-only upper
// limit), or exact (forced value, overriding aspect ratio if needed).
type Axis struct {
	kind axisKind
	n    int
}

// Unconstrained returns an axis that places no constraint on its dimension.
func Unconstrained() Axis { return Axis{} }

// Bound returns a shrink-only upper limit for a dimension.
func Bound(n int) Axis { return Axis{kind: axisBound, n: n} }

// Exact returns a hard-exact dimension that must be matched even if the
// aspect ratio cannot be preserved.
func Exact(n int) Axis { return Axis{kind: axisExact, n: n} }

func (a Axis) IsUnconstrained() bool { return a.kind == axisUnconstrained }
func (a Axis) IsExact() bool         { return a.kind == axisExact }

// Value returns the requested dimension, 0 for an unconstrained axis.
func (a Axis) Value() int { return a.n }

func (a Axis) String() string {
	switch a.kind {
	case axisBound:
		return strconv.Itoa(a.n)
	case axisExact:
		return strconv.Itoa(a.n) + "!"
	default:
		return ""
	}
}

func (a Axis) validate() error {
	if a.kind != axisUnconstrained && a.n <= 0 {
		return errInvalidValue(a.n)
	}
	return nil
}
