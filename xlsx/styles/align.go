package styles

import (
	"strings"

	"github.com/joshuapare/sheetkit/pkg/types"
)

// VAlign is a vertical alignment code. Zero leaves the default.
type VAlign uint8

const (
	VAlignDefault VAlign = iota
	VAlignTop
	VAlignCenter
	VAlignBottom
	VAlignJustify
	VAlignDistributed
)

var vAlignNames = [...]string{"", "top", "center", "bottom", "justify", "distributed"}

func (v VAlign) String() string {
	if int(v) < len(vAlignNames) {
		return vAlignNames[v]
	}
	return "invalid"
}

// HAlign is a horizontal alignment code. Zero leaves the default (general).
type HAlign uint8

const (
	HAlignDefault HAlign = iota
	HAlignLeft
	HAlignCenter
	HAlignRight
	HAlignFill
	HAlignJustify
	HAlignCenterContinuous
	HAlignDistributed
)

var hAlignNames = [...]string{"", "left", "center", "right", "fill", "justify", "centerContinuous", "distributed"}

func (h HAlign) String() string {
	if int(h) < len(hAlignNames) {
		return hAlignNames[h]
	}
	return "invalid"
}

func lookupVAlign(s string) (VAlign, bool) {
	for i, n := range vAlignNames {
		if i > 0 && n == s {
			return VAlign(i), true
		}
	}
	return 0, false
}

func lookupHAlign(s string) (HAlign, bool) {
	for i, n := range hAlignNames {
		if i > 0 && n == s {
			return HAlign(i), true
		}
	}
	return 0, false
}

// ParseAlign decodes up to two space-separated alignment keywords.
//
// Keywords are matched case-insensitively. left, right, fill,
// centerContinuous and general are horizontal; top, bottom and middle are
// vertical. center, justify and distributed apply to the horizontal axis the
// first time they appear and to the vertical axis the second time, so
// "center center" centers both ways. A "v:" or "h:" prefix selects the axis
// explicitly, as in "v:justify".
func ParseAlign(s string) (VAlign, HAlign, error) {
	var (
		v          VAlign
		h          HAlign
		vSet, hSet bool
	)
	for _, tok := range strings.Fields(s) {
		word := strings.ToLower(tok)
		axis := byte(0)
		if len(word) > 2 && word[1] == ':' && (word[0] == 'v' || word[0] == 'h') {
			axis, word = word[0], word[2:]
		}
		if word == "middle" {
			word, axis = "center", 'v'
		}
		if word == "centercontinuous" {
			word = "centerContinuous"
		}
		if word == "general" && axis != 'v' {
			if hSet {
				return 0, 0, types.Stylef("alignment %q sets horizontal twice", s)
			}
			hSet = true
			continue
		}

		hv, hok := lookupHAlign(word)
		vv, vok := lookupVAlign(word)
		switch {
		case axis == 'h' && !hok, axis == 'v' && !vok, !hok && !vok:
			return 0, 0, types.Stylef("unknown alignment %q", tok)
		}

		useH := hok && axis != 'v' && (axis == 'h' || !vok || !hSet)
		if useH {
			if hSet {
				return 0, 0, types.Stylef("alignment %q sets horizontal twice", s)
			}
			h, hSet = hv, true
			continue
		}
		if vSet {
			return 0, 0, types.Stylef("alignment %q sets vertical twice", s)
		}
		v, vSet = vv, true
	}
	return v, h, nil
}
