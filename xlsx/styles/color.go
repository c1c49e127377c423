package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/sheetkit/pkg/types"
)

// Color is an ARGB color. The zero Color means automatic (not set).
type Color uint32

var namedColors = map[string]Color{
	"black":   0xFF000000,
	"white":   0xFFFFFFFF,
	"red":     0xFFFF0000,
	"green":   0xFF00FF00,
	"blue":    0xFF0000FF,
	"yellow":  0xFFFFFF00,
	"magenta": 0xFFFF00FF,
	"cyan":    0xFF00FFFF,
	"gray":    0xFF808080,
	"grey":    0xFF808080,
	"orange":  0xFFFFA500,
	"purple":  0xFF800080,
	"navy":    0xFF000080,
	"maroon":  0xFF800000,
	"olive":   0xFF808000,
	"teal":    0xFF008080,
	"silver":  0xFFC0C0C0,
}

// ParseColor decodes a color name, or a hex value in the forms RGB, RRGGBB
// or AARRGGBB with an optional leading '#'. Colors without an alpha channel
// are opaque.
func ParseColor(s string) (Color, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		fallthrough
	case 6:
		h = "FF" + h
	case 8:
	default:
		return 0, types.Stylef("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, &types.Error{Kind: types.ErrKindStyle, Msg: fmt.Sprintf("invalid color %q", s), Err: err}
	}
	return Color(v), nil
}

// IsSet reports whether the color is not automatic.
func (c Color) IsSet() bool { return c != 0 }

// String returns the color as AARRGGBB, the form written to rgb attributes.
func (c Color) String() string { return fmt.Sprintf("%08X", uint32(c)) }
