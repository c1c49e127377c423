package styles

import (
	"strings"

	"github.com/joshuapare/sheetkit/pkg/types"
)

// BorderStyle is an edge line style.
type BorderStyle uint8

const (
	BorderNone BorderStyle = iota
	BorderThin
	BorderMedium
	BorderDashed
	BorderDotted
	BorderThick
	BorderDouble
	BorderHair
	BorderMediumDashed
	BorderDashDot
	BorderMediumDashDot
	BorderDashDotDot
	BorderMediumDashDotDot
	BorderSlantDashDot
)

var borderStyleNames = [...]string{
	"none",
	"thin",
	"medium",
	"dashed",
	"dotted",
	"thick",
	"double",
	"hair",
	"mediumDashed",
	"dashDot",
	"mediumDashDot",
	"dashDotDot",
	"mediumDashDotDot",
	"slantDashDot",
}

func (b BorderStyle) String() string {
	if int(b) < len(borderStyleNames) {
		return borderStyleNames[b]
	}
	return "invalid"
}

// ParseBorderStyle decodes a style name, case-insensitively.
func ParseBorderStyle(s string) (BorderStyle, bool) {
	for i, n := range borderStyleNames {
		if strings.EqualFold(n, s) {
			return BorderStyle(i), true
		}
	}
	return 0, false
}

// Edge is one side of a border. An edge whose Style is BorderNone is absent.
type Edge struct {
	Style BorderStyle
	Color Color
}

// IsZero reports whether the edge is absent.
func (e Edge) IsZero() bool { return e.Style == BorderNone }

// Border is a border catalog entry.
type Border struct {
	Left         Edge
	Right        Edge
	Top          Edge
	Bottom       Edge
	DiagonalDown Edge
	DiagonalUp   Edge
}

// IsZero reports whether no edge is present.
func (b Border) IsZero() bool { return b == Border{} }

// edgeOrder names the edges in the order unnamed styles fill them.
var edgeOrder = [...]string{"left", "right", "top", "bottom", "diagonalDown", "diagonalUp"}

func (b *Border) positional() [len(edgeOrder)]*Edge {
	return [...]*Edge{&b.Left, &b.Right, &b.Top, &b.Bottom, &b.DiagonalDown, &b.DiagonalUp}
}

func (b *Border) normalize() {
	for _, e := range b.positional() {
		if e.Style == BorderNone {
			*e = Edge{}
		}
	}
}

// edge returns the edge addressed by a direction keyword.
func (b *Border) edge(dir string) *Edge {
	for i, name := range edgeOrder {
		if strings.EqualFold(name, dir) {
			return b.positional()[i]
		}
	}
	return nil
}

// ParseBorder decodes the compact border grammar.
//
// Tokens are space separated and alternate <style> [<color>]. A token that
// is not a style name is the color of the style before it. A style without
// an explicit color takes the last color seen, so "thin red thin" draws two
// red edges.
//
// Without direction keywords a single style applies to all four straight
// sides. Two or more styles fill the edges in order: left, right, top,
// bottom, diagonalDown, diagonalUp. Edges past the last style are absent.
//
// A direction keyword (left, right, top, bottom, diagonalDown, diagonalUp)
// names the edge for the style that follows, as in "left thin bottom thick
// blue". Keywords and positional styles cannot be mixed.
func ParseBorder(s string) (Border, error) {
	type entry struct {
		dir      string
		edge     Edge
		explicit bool
	}
	var (
		entries  []entry
		last     Color
		pending  string
		keywords bool
	)
	var b Border
	for _, tok := range strings.Fields(s) {
		if b.edge(tok) != nil {
			if pending != "" {
				return Border{}, types.Stylef("border %q: direction %q has no style", s, pending)
			}
			if len(entries) > 0 && !keywords {
				return Border{}, types.Stylef("border %q mixes positional and directional edges", s)
			}
			pending, keywords = tok, true
			continue
		}
		if st, ok := ParseBorderStyle(tok); ok {
			if keywords && pending == "" {
				return Border{}, types.Stylef("border %q: style %q has no direction", s, tok)
			}
			entries = append(entries, entry{dir: pending, edge: Edge{Style: st, Color: last}})
			pending = ""
			continue
		}
		c, err := ParseColor(tok)
		if err != nil {
			return Border{}, types.Stylef("border %q: %q is neither a style nor a color", s, tok)
		}
		if len(entries) == 0 || pending != "" {
			return Border{}, types.Stylef("border %q: color %q without a style", s, tok)
		}
		e := &entries[len(entries)-1]
		if e.explicit {
			return Border{}, types.Stylef("border %q: style %s has two colors", s, e.edge.Style)
		}
		e.edge.Color, e.explicit = c, true
		last = c
	}
	if pending != "" {
		return Border{}, types.Stylef("border %q: direction %q has no style", s, pending)
	}

	if keywords {
		for _, e := range entries {
			*b.edge(e.dir) = e.edge
		}
		b.normalize()
		return b, nil
	}

	switch n := len(entries); {
	case n == 1:
		e := entries[0].edge
		b.Left, b.Right, b.Top, b.Bottom = e, e, e, e
	case n > len(edgeOrder):
		return Border{}, types.Stylef("border %q has %d edges; at most %d allowed", s, n, len(edgeOrder))
	default:
		slots := b.positional()
		for i, e := range entries {
			*slots[i] = e.edge
		}
	}
	b.normalize()
	return b, nil
}
