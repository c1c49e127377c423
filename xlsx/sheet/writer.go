package sheet

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/joshuapare/sheetkit/internal/format"
	"github.com/joshuapare/sheetkit/pkg/types"
)

// Interner assigns shared string ids.
type Interner interface {
	Add(text string) (id int, added bool)
}

type valueKind uint8

const (
	kindBlank valueKind = iota
	kindInt
	kindFloat
	kindBool
	kindShared
	kindInline
	kindTime
)

// Value is one cell to write.
type Value struct {
	kind   valueKind
	i      int64
	f      float64
	s      string
	t      time.Time
	style  int
	styled bool
}

// Int is an integer cell.
func Int(v int64) Value { return Value{kind: kindInt, i: v} }

// Float is a numeric cell.
func Float(v float64) Value { return Value{kind: kindFloat, f: v} }

// Bool is a boolean cell.
func Bool(v bool) Value {
	if v {
		return Value{kind: kindBool, i: 1}
	}
	return Value{kind: kindBool}
}

// String is a text cell stored in the shared string table.
func String(s string) Value { return Value{kind: kindShared, s: s} }

// Inline is a text cell stored in the sheet itself.
func Inline(s string) Value { return Value{kind: kindInline, s: s} }

// Time is a date cell written as a serial number. It should be styled with a
// date format to display as a date.
func Time(t time.Time) Value { return Value{kind: kindTime, t: t} }

// Blank is an empty cell; it is written only when styled.
func Blank() Value { return Value{} }

// Styled returns v with cell-format index xf.
func (v Value) Styled(xf int) Value {
	v.style, v.styled = xf, true
	return v
}

// Style returns the cell-format index and whether one was set.
func (v Value) Style() (int, bool) { return v.style, v.styled }

// IsBlank reports whether v is a Blank value.
func (v Value) IsBlank() bool { return v.kind == kindBlank }

// Writer emits a worksheet fragment.
type Writer struct {
	w        io.Writer
	strings  Interner
	date1904 bool

	body   []byte
	row    int
	maxCol int
	closed bool
}

// NewWriter creates a writer. strings interns String values and may be nil
// when only inline text is written.
func NewWriter(w io.Writer, strings Interner, opts *Options) *Writer {
	o := opts.withDefaults()
	return &Writer{w: w, strings: strings, date1904: o.Date1904}
}

// Rows returns the number of rows written.
func (w *Writer) Rows() int { return w.row }

// WriteRow appends the next row, filling columns from A.
func (w *Writer) WriteRow(values ...Value) error {
	if w.closed {
		return types.ErrClosed
	}
	if w.row >= types.MaxRows {
		return types.Boundsf("sheet: row %d beyond limit %d", w.row+1, types.MaxRows)
	}
	if len(values) > types.MaxColumns {
		return types.Boundsf("sheet: %d columns beyond limit %d", len(values), types.MaxColumns)
	}

	rowNum := w.row + 1
	mark := len(w.body)
	w.body = append(w.body, `<row r="`...)
	w.body = strconv.AppendInt(w.body, int64(rowNum), 10)
	if len(values) > 0 {
		w.body = append(w.body, `" spans="1:`...)
		w.body = strconv.AppendInt(w.body, int64(len(values)), 10)
	}
	w.body = append(w.body, `">`...)

	for i, v := range values {
		var err error
		w.body, err = w.appendCell(w.body, i+1, rowNum, v)
		if err != nil {
			w.body = w.body[:mark]
			return err
		}
	}
	w.body = append(w.body, `</row>`...)

	w.row = rowNum
	w.maxCol = max(w.maxCol, len(values))
	return nil
}

func (w *Writer) appendCell(b []byte, col, row int, v Value) ([]byte, error) {
	if v.kind == kindBlank && !v.styled {
		return b, nil
	}
	b = append(b, `<c r="`...)
	b = format.AppendCellRef(b, col, row)
	b = append(b, '"')
	if v.styled && v.style != 0 {
		b = append(b, ` s="`...)
		b = strconv.AppendInt(b, int64(v.style), 10)
		b = append(b, '"')
	}

	switch v.kind {
	case kindBlank:
		return append(b, `/>`...), nil
	case kindInt:
		b = append(b, `><v>`...)
		b = strconv.AppendInt(b, v.i, 10)
	case kindFloat, kindTime:
		f := v.f
		if v.kind == kindTime {
			f = FromTime(v.t, w.date1904)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return b, &types.ConversionError{Value: strconv.FormatFloat(f, 'g', -1, 64), Target: "cell number"}
		}
		b = append(b, `><v>`...)
		b = strconv.AppendFloat(b, f, 'g', -1, 64)
	case kindBool:
		b = append(b, ` t="b"><v>`...)
		b = strconv.AppendInt(b, v.i, 10)
	case kindShared:
		if err := checkText(v.s); err != nil {
			return b, err
		}
		if w.strings == nil {
			return b, &types.Error{Kind: types.ErrKindState, Msg: fmt.Sprintf("sheet: cell %s: string value without a string table", format.CellRef(col, row))}
		}
		id, _ := w.strings.Add(v.s)
		b = append(b, ` t="s"><v>`...)
		b = strconv.AppendInt(b, int64(id), 10)
	case kindInline:
		if err := checkText(v.s); err != nil {
			return b, err
		}
		b = append(b, ` t="inlineStr"><is>`...)
		if format.NeedsPreserve(v.s) {
			b = append(b, `<t xml:space="preserve">`...)
		} else {
			b = append(b, `<t>`...)
		}
		b = format.AppendEscapedText(b, v.s)
		return append(b, `</t></is></c>`...), nil
	}
	return append(b, `</v></c>`...), nil
}

func checkText(s string) error {
	if len(s) > types.MaxCellText && utf8.RuneCountInString(s) > types.MaxCellText {
		return types.Boundsf("sheet: text of %d characters beyond limit %d", utf8.RuneCountInString(s), types.MaxCellText)
	}
	return nil
}

// Close writes the fragment. The Writer cannot be used afterwards.
func (w *Writer) Close() error {
	if w.closed {
		return types.ErrClosed
	}
	w.closed = true

	out := make([]byte, 0, len(w.body)+512)
	out = append(out, format.XMLHeader...)
	out = append(out, `<worksheet xmlns="`...)
	out = append(out, format.NamespaceMain...)
	out = append(out, `" xmlns:r="`...)
	out = append(out, format.NamespaceRelationships...)
	out = append(out, `"><dimension ref="A1`...)
	if w.row > 0 && w.maxCol > 0 && (w.row > 1 || w.maxCol > 1) {
		out = append(out, ':')
		out = format.AppendCellRef(out, w.maxCol, w.row)
	}
	out = append(out, `"/>`...)
	if w.row == 0 {
		out = append(out, `<sheetData/>`...)
	} else {
		out = append(out, `<sheetData>`...)
		out = append(out, w.body...)
		out = append(out, `</sheetData>`...)
	}
	out = append(out, `</worksheet>`...)
	w.body = nil

	if _, err := w.w.Write(out); err != nil {
		return fmt.Errorf("sheet: write: %w", err)
	}
	return nil
}
