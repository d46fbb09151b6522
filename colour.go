package textmate

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Colour is a canonicalized "#RRGGBB" colour string. The zero value ""
// means unset: callers never need a separate boolean alongside a Colour
// to know whether it was specified.
type Colour string

// IsSet reports whether c carries a concrete colour.
func (c Colour) IsSet() bool {
	return c != ""
}

func (c Colour) String() string {
	return string(c)
}

// ParseColour canonicalizes a theme-supplied colour string to upper-case
// "#RRGGBB". Accepted input forms are "#RGB" and "#RRGGBB". Anything that
// does not parse as a colour is returned unchanged rather than rejected:
// malformed colours are preserved as-given so a downstream ColorMap can
// still intern them, and no error ever has to propagate out of rule
// parsing.
func ParseColour(raw string) Colour {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	c, err := colorful.Hex(expandShortHex(trimmed))
	if err != nil {
		return Colour(trimmed)
	}
	r, g, b := c.RGB255()
	return Colour(hexRGB(r, g, b))
}

// expandShortHex turns "#RGB" into "#RRGGBB" so go-colorful's Hex parser,
// which only understands the six-digit form, can validate three-digit
// theme colours too.
func expandShortHex(s string) string {
	if len(s) != 4 || s[0] != '#' {
		return s
	}
	out := make([]byte, 0, 7)
	out = append(out, '#')
	for _, r := range s[1:] {
		out = append(out, byte(r), byte(r))
	}
	return string(out)
}

func hexRGB(r, g, b uint8) string {
	const hexDigits = "0123456789ABCDEF"
	buf := [7]byte{'#'}
	put := func(off int, v uint8) {
		buf[off] = hexDigits[v>>4]
		buf[off+1] = hexDigits[v&0xF]
	}
	put(1, r)
	put(3, g)
	put(5, b)
	return string(buf[:])
}
