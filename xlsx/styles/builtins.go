package styles

import "github.com/joshuapare/sheetkit/pkg/types"

// Builtins is the immutable table of predefined number formats. Built-in ids
// are referenced by cell formats but never written to the numFmts list.
type Builtins struct {
	codes map[int]string
	ids   map[string]int
}

// builtinCodes lists the locale-independent predefined formats.
var builtinCodes = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[Red](#,##0)",
	39: "#,##0.00;(#,##0.00)",
	40: "#,##0.00;[Red](#,##0.00)",
	41: `_(* #,##0_);_(* \(#,##0\);_(* "-"_);_(@_)`,
	42: `_("$"* #,##0_);_("$"* \(#,##0\);_("$"* "-"_);_(@_)`,
	43: `_(* #,##0.00_);_(* \(#,##0.00\);_(* "-"??_);_(@_)`,
	44: `_("$"* #,##0.00_);_("$"* \(#,##0.00\);_("$"* "-"??_);_(@_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mmss.0",
	48: "##0.0E+0",
	49: "@",
}

// NewBuiltins builds the predefined number format table.
func NewBuiltins() *Builtins {
	b := &Builtins{
		codes: make(map[int]string, len(builtinCodes)),
		ids:   make(map[string]int, len(builtinCodes)),
	}
	for id, code := range builtinCodes {
		b.codes[id] = code
		b.ids[code] = id
	}
	return b
}

// Code returns the format code of a built-in id.
func (b *Builtins) Code(id int) (string, bool) {
	code, ok := b.codes[id]
	return code, ok
}

// ID returns the built-in id for code.
func (b *Builtins) ID(code string) (int, bool) {
	id, ok := b.ids[code]
	return id, ok
}

// IsReserved reports whether id lies in the built-in range. Ids in the range
// without a code are locale-specific formats.
func (b *Builtins) IsReserved(id int) bool {
	return id >= 0 && id < types.ReservedNumFmtLimit
}

// IsDateID reports whether a built-in id renders a date or time.
func IsDateID(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58,
		id == 81:
		return true
	}
	return false
}
