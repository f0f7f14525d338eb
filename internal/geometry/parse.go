package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseGeometry parses a limit geometry string of the form "WxH". Either
// axis may be empty (unconstrained) or carry a trailing '!' (hard-exact):
// "400x400", "400x", "x400", "300x1000!". A bare number constrains the
// width only.
func ParseGeometry(s string) (w, h Axis, err error) {
	s = strings.TrimSpace(s)
	ws, hs := s, ""
	if i := strings.IndexAny(s, "xX"); i >= 0 {
		ws, hs = s[:i], s[i+1:]
	}
	if w, err = ParseAxis(ws); err != nil {
		return Axis{}, Axis{}, fmt.Errorf("width: %w", err)
	}
	if h, err = ParseAxis(hs); err != nil {
		return Axis{}, Axis{}, fmt.Errorf("height: %w", err)
	}
	return w, h, nil
}

// ParseAxis parses a single limit axis: "" (unconstrained), "400"
// (bound), or "400!" (hard-exact).
func ParseAxis(s string) (Axis, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unconstrained(), nil
	}
	exact := strings.HasSuffix(s, "!")
	if exact {
		s = s[:len(s)-1]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Axis{}, fmt.Errorf("%q: %w", s, ErrInvalidDimension)
	}
	if n <= 0 {
		return Axis{}, errInvalidValue(n)
	}
	if exact {
		return Exact(n), nil
	}
	return Bound(n), nil
}

var gravityTokens = map[string]Gravity{
	"center":    Center,
	"centre":    Center,
	"north":     North,
	"south":     South,
	"east":      East,
	"west":      West,
	"northeast": NorthEast,
	"northwest": NorthWest,
	"southeast": SouthEast,
	"southwest": SouthWest,
}

// ParseGravity parses an anchor token. The empty string means Center.
func ParseGravity(s string) (Gravity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Center, nil
	}
	g, ok := gravityTokens[s]
	if !ok {
		return Center, fmt.Errorf("%q: %w", s, ErrUnknownGravity)
	}
	return g, nil
}

var namedColors = map[string][3]uint8{
	"black":   {0x00, 0x00, 0x00},
	"white":   {0xff, 0xff, 0xff},
	"red":     {0xff, 0x00, 0x00},
	"green":   {0x00, 0x80, 0x00},
	"blue":    {0x00, 0x00, 0xff},
	"yellow":  {0xff, 0xff, 0x00},
	"cyan":    {0x00, 0xff, 0xff},
	"magenta": {0xff, 0x00, 0xff},
	"gray":    {0x80, 0x80, 0x80},
	"grey":    {0x80, 0x80, 0x80},
	"orange":  {0xff, 0xa5, 0x00},
	"purple":  {0x80, 0x00, 0x80},
}

// ParseBackground parses a pad background: "transparent" (also "" and
// "none"), a named color, or "#rgb"/"#rrggbb" hex.
func ParseBackground(s string) (Background, error) {
	tok := strings.ToLower(strings.TrimSpace(s))
	switch tok {
	case "", "transparent", "none":
		return Transparent, nil
	}
	if rgb, ok := namedColors[tok]; ok {
		b := Background{Name: tok}
		b.Color.R, b.Color.G, b.Color.B, b.Color.A = rgb[0], rgb[1], rgb[2], 0xff
		return b, nil
	}
	if strings.HasPrefix(tok, "#") {
		return parseHexColor(tok)
	}
	return Background{}, fmt.Errorf("unknown background color %q", s)
}

func parseHexColor(tok string) (Background, error) {
	hex := tok[1:]
	var r, g, b uint64
	var err error
	switch len(hex) {
	case 3:
		if r, err = strconv.ParseUint(strings.Repeat(hex[0:1], 2), 16, 8); err == nil {
			if g, err = strconv.ParseUint(strings.Repeat(hex[1:2], 2), 16, 8); err == nil {
				b, err = strconv.ParseUint(strings.Repeat(hex[2:3], 2), 16, 8)
			}
		}
	case 6:
		if r, err = strconv.ParseUint(hex[0:2], 16, 8); err == nil {
			if g, err = strconv.ParseUint(hex[2:4], 16, 8); err == nil {
				b, err = strconv.ParseUint(hex[4:6], 16, 8)
			}
		}
	default:
		err = fmt.Errorf("bad length %d", len(hex))
	}
	if err != nil {
		return Background{}, fmt.Errorf("invalid hex color %q", tok)
	}
	bg := Background{Name: tok}
	bg.Color.R, bg.Color.G, bg.Color.B, bg.Color.A = uint8(r), uint8(g), uint8(b), 0xff
	return bg, nil
}
