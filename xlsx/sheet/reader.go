package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/joshuapare/sheetkit/internal/buf"
	"github.com/joshuapare/sheetkit/internal/format"
	"github.com/joshuapare/sheetkit/pkg/types"
)

// StringTable resolves shared string indices.
type StringTable interface {
	Get(index int) (string, error)
}

// Row is one decoded row. It is borrowed from the Reader.
type Row struct {
	Index  int // 1-based row number
	First  int // column of Cells[0]; 0 when the row has no cells
	Last   int // column of Cells[len(Cells)-1]
	Hidden bool
	Cells  []Cell
}

// Cell returns the cell for 1-based column col, or nil when col lies
// outside the row.
func (r *Row) Cell(col int) *Cell {
	if len(r.Cells) == 0 || col < r.First || col > r.Last {
		return nil
	}
	return &r.Cells[col-r.First]
}

// Reader iterates the rows of a worksheet fragment.
type Reader struct {
	win     *buf.Window
	strings StringTable
	opts    Options
	log     *slog.Logger

	started   bool
	done      bool
	err       error
	dimension string

	row     Row
	cells   []Cell
	lastRow int
	scratch []byte
}

// NewReader creates a reader over a worksheet fragment. strings resolves
// shared string cells and may be nil for sheets without them.
func NewReader(r io.Reader, strings StringTable, opts *Options) *Reader {
	o := opts.withDefaults()
	return &Reader{
		win:     buf.NewWindow(format.NewDecoder(r), o.BufferSize, o.MaxBufferSize),
		strings: strings,
		opts:    o,
		log:     o.Logger,
		cells:   make([]Cell, 0, o.DefaultCells),
	}
}

// Next advances to the next row. It returns false at the end of the sheet
// data or on error; check Err afterwards.
func (r *Reader) Next() bool {
	if r.err != nil || r.done {
		return false
	}
	if !r.started {
		r.started = true
		if err := r.advanceToSheetData(); err != nil {
			r.err = err
			return false
		}
		if r.done {
			return false
		}
	}
	ok, err := r.nextRow()
	if err != nil {
		r.err = err
		return false
	}
	return ok
}

// Row returns the current row.
func (r *Reader) Row() *Row { return &r.row }

// Err returns the first error encountered.
func (r *Reader) Err() error { return r.err }

// Dimension returns the raw ref of the <dimension> element, if the sheet
// has one before its data. It is populated by the first Next.
func (r *Reader) Dimension() string { return r.dimension }

// Extent returns the column and row counts covered by Dimension. ok is
// false when the sheet declares no dimension or it does not parse.
func (r *Reader) Extent() (cols, rows int, ok bool) {
	if r.dimension == "" {
		return 0, 0, false
	}
	c1, r1, c2, r2, err := format.ParseRange([]byte(r.dimension))
	if err != nil {
		return 0, 0, false
	}
	return c2 - c1 + 1, r2 - r1 + 1, true
}

// fill refills the window, mapping buffer exhaustion to a structural error.
func (r *Reader) fill(what string) (bool, error) {
	grows := r.win.Grows()
	more, err := r.win.Fill()
	if r.win.Grows() != grows {
		r.log.Debug("sheet buffer grown", "size", r.win.Cap(), "offset", r.win.Offset())
	}
	if errors.Is(err, buf.ErrWindowFull) {
		return false, &types.Error{
			Kind: types.ErrKindStructure,
			Msg:  fmt.Sprintf("sheet: %s exceeds %d byte buffer", what, r.opts.MaxBufferSize),
			Err:  format.ErrRowTooLarge,
		}
	}
	if err != nil {
		return false, fmt.Errorf("sheet: read: %w", err)
	}
	return more, nil
}

// advanceToSheetData consumes everything up to and including the
// <sheetData> start tag, recording <dimension ref> on the way.
func (r *Reader) advanceToSheetData() error {
	for {
		b := r.win.Bytes()
		keep := -1

		if r.dimension == "" {
			if d := format.IndexOpenTag(b, 0, format.DimensionOpen); d >= 0 {
				if gt := bytes.IndexByte(b[d:], '>'); gt >= 0 {
					if ref, ok := format.FindAttr(b[d+len(format.DimensionOpen):d+gt], format.AttrRef); ok {
						r.dimension = string(ref)
					}
				} else {
					keep = d
				}
			}
		}

		if i := format.IndexOpenTag(b, 0, format.SheetDataOpen); i >= 0 {
			if gt := bytes.IndexByte(b[i:], '>'); gt >= 0 {
				gt += i
				if b[gt-1] == '/' {
					r.done = true
				}
				r.win.Advance(gt + 1)
				return nil
			}
			if keep < 0 || i < keep {
				keep = i
			}
		}

		switch {
		case keep >= 0:
			r.win.Advance(keep)
		case len(b) > len(format.SheetDataOpen):
			r.win.Advance(len(b) - len(format.SheetDataOpen))
		}
		more, err := r.fill("sheet header")
		if err != nil {
			return err
		}
		if !more {
			return &types.Error{Kind: types.ErrKindStructure, Msg: "sheet: no <sheetData>", Err: format.ErrNoSheetData}
		}
	}
}

// nextRow locates and decodes the next row. It returns false at the end of
// the sheet data; a truncated stream also ends the data.
func (r *Reader) nextRow() (bool, error) {
	for {
		b := r.win.Bytes()
		start := format.IndexOpenTag(b, 0, format.RowOpen)

		head := b
		if start >= 0 {
			head = b[:start]
		}
		if bytes.Contains(head, format.SheetDataClose) {
			r.done = true
			return false, nil
		}

		if start >= 0 {
			if gt := bytes.IndexByte(b[start:], '>'); gt >= 0 {
				gt += start
				tag := b[start+len(format.RowOpen) : gt]
				if b[gt-1] == '/' {
					if err := r.decodeRow(tag[:len(tag)-1], nil); err != nil {
						return false, err
					}
					r.win.Advance(gt + 1)
					return true, nil
				}
				if end := bytes.Index(b[gt+1:], format.RowClose); end >= 0 {
					end += gt + 1
					if err := r.decodeRow(tag, b[gt+1:end]); err != nil {
						return false, err
					}
					r.win.Advance(end + len(format.RowClose))
					return true, nil
				}
			}
			r.win.Advance(start)
		} else if keep := len(format.SheetDataClose); len(b) > keep {
			r.win.Advance(len(b) - keep)
		}

		more, err := r.fill(fmt.Sprintf("row after %d", r.lastRow))
		if err != nil {
			return false, err
		}
		if !more {
			r.done = true
			return false, nil
		}
	}
}

// decodeRow fills r.row from the row's start tag attributes and body.
func (r *Reader) decodeRow(tag, body []byte) error {
	row := &r.row
	row.Index = r.lastRow + 1
	row.First, row.Last = 0, 0
	row.Hidden = false
	r.cells = r.cells[:0]

	pos := 0
	for {
		a, next, ok := format.NextAttr(tag, pos)
		if !ok {
			break
		}
		pos = next
		switch {
		case bytes.Equal(a.Name, format.AttrRef):
			if n, ok := format.ParseUint(a.Value); ok && n > 0 && n <= types.MaxRows {
				row.Index = n
			}
		case bytes.Equal(a.Name, format.AttrSpans):
			if first, last, ok := parseSpans(a.Value); ok {
				row.First, row.Last = first, last
				for col := first; col <= last; col++ {
					r.cells = append(r.cells, Cell{})
					r.cells[len(r.cells)-1].clear(col)
				}
			}
		case bytes.Equal(a.Name, format.AttrHidden):
			row.Hidden = format.IsTrue(a.Value)
		}
	}
	r.lastRow = row.Index
	row.Cells = r.cells

	// Unescaped text is never longer than its markup, so one grow keeps
	// every borrowed slice of this row stable.
	r.scratch = slices.Grow(r.scratch[:0], len(body))

	prevCol := max(row.First-1, 0)
	for at := 0; ; {
		c := format.IndexOpenTag(body, at, format.CellOpen)
		if c < 0 {
			break
		}
		gt := bytes.IndexByte(body[c:], '>')
		if gt < 0 {
			return r.unclosed("c")
		}
		gt += c
		ctag := body[c+len(format.CellOpen) : gt]
		var inner []byte
		if body[gt-1] == '/' {
			ctag = ctag[:len(ctag)-1]
			at = gt + 1
		} else {
			end := bytes.Index(body[gt+1:], format.CellClose)
			if end < 0 {
				return r.unclosed("c")
			}
			inner = body[gt+1 : gt+1+end]
			at = gt + 1 + end + len(format.CellClose)
		}

		col, err := r.decodeCell(ctag, inner, prevCol)
		if err != nil {
			return err
		}
		prevCol = col
	}
	row.Cells = r.cells
	return nil
}

func (r *Reader) unclosed(elem string) error {
	return &types.Error{
		Kind: types.ErrKindStructure,
		Msg:  fmt.Sprintf("sheet: row %d: <%s> not closed", r.row.Index, elem),
		Err:  format.ErrUnclosed,
	}
}

// parseSpans decodes "first:last", taking the union of space-separated
// ranges.
func parseSpans(v []byte) (int, int, bool) {
	first, last := 0, 0
	for _, part := range bytes.Fields(v) {
		a, b, ok := bytes.Cut(part, []byte{':'})
		if !ok {
			return 0, 0, false
		}
		lo, ok1 := format.ParseUint(a)
		hi, ok2 := format.ParseUint(b)
		if !ok1 || !ok2 || lo < 1 || hi < lo || hi > types.MaxColumns {
			return 0, 0, false
		}
		if first == 0 || lo < first {
			first = lo
		}
		if hi > last {
			last = hi
		}
	}
	return first, last, first > 0
}

// cellAt returns the reused cell for col, extending the row as needed.
func (r *Reader) cellAt(col int) *Cell {
	row := &r.row
	switch {
	case len(r.cells) == 0:
		r.cells = append(r.cells, Cell{})
		row.First, row.Last = col, col
	case col < row.First:
		pad := make([]Cell, row.First-col)
		for i := range pad {
			pad[i].Col = col + i
		}
		r.cells = slices.Insert(r.cells, 0, pad...)
		row.First = col
	case col > row.Last:
		for c := row.Last + 1; c <= col; c++ {
			r.cells = append(r.cells, Cell{})
			r.cells[len(r.cells)-1].clear(c)
		}
		row.Last = col
	}
	cell := &r.cells[col-row.First]
	cell.clear(col)
	return cell
}

// appendText unescapes src into scratch and returns the borrowed result.
func (r *Reader) appendText(src []byte) []byte {
	start := len(r.scratch)
	r.scratch = format.AppendUnescaped(r.scratch, src)
	return r.scratch[start:len(r.scratch):len(r.scratch)]
}

// element returns the content of the first child opened with open and
// closed with close.
func element(b, open, close []byte) ([]byte, bool) {
	i := format.IndexOpenTag(b, 0, open)
	if i < 0 {
		return nil, false
	}
	gt := bytes.IndexByte(b[i:], '>')
	if gt < 0 {
		return nil, false
	}
	gt += i
	if b[gt-1] == '/' {
		return buf.Slice(b, gt+1, 0)
	}
	end := bytes.Index(b[gt+1:], close)
	if end < 0 {
		return nil, false
	}
	return buf.Slice(b, gt+1, end)
}

// inlineText concatenates the <t> runs of an <is> body, skipping phonetic
// runs.
func (r *Reader) inlineText(is []byte) []byte {
	start := len(r.scratch)
	for pos := 0; pos < len(is); {
		t := format.IndexOpenTag(is, pos, format.TextOpen)
		if t < 0 {
			break
		}
		if ph := format.IndexOpenTag(is, pos, format.PhoneticOpen); ph >= 0 && ph < t {
			end := bytes.Index(is[ph:], format.PhoneticClose)
			if end < 0 {
				break
			}
			pos = ph + end + len(format.PhoneticClose)
			continue
		}
		gt := bytes.IndexByte(is[t:], '>')
		if gt < 0 {
			break
		}
		gt += t
		if is[gt-1] == '/' {
			pos = gt + 1
			continue
		}
		end := bytes.Index(is[gt+1:], format.TextClose)
		if end < 0 {
			break
		}
		end += gt + 1
		r.scratch = format.AppendUnescaped(r.scratch, is[gt+1:end])
		pos = end + len(format.TextClose)
	}
	return r.scratch[start:len(r.scratch):len(r.scratch)]
}

// decodeCell decodes one <c> element and returns its column.
func (r *Reader) decodeCell(tag, inner []byte, prevCol int) (int, error) {
	col := prevCol + 1
	var typ, style []byte
	for pos := 0; ; {
		a, next, ok := format.NextAttr(tag, pos)
		if !ok {
			break
		}
		pos = next
		switch {
		case bytes.Equal(a.Name, format.AttrRef):
			if c, _, err := format.ParseCellRef(a.Value); err == nil {
				col = c
			}
		case bytes.Equal(a.Name, format.AttrType):
			typ = a.Value
		case bytes.Equal(a.Name, format.AttrStyle):
			style = a.Value
		}
	}
	if col > types.MaxColumns {
		return 0, types.Structuref("sheet: row %d: column %d beyond limit", r.row.Index, col)
	}

	cell := r.cellAt(col)
	if n, ok := format.ParseUint(style); ok {
		cell.Style = n
	}
	if f, ok := element(inner, format.FormulaOpen, format.FormulaClose); ok {
		cell.formula = r.appendText(f)
	}

	if bytes.Equal(typ, format.TypeInline) {
		if is, ok := element(inner, format.InlineOpen, format.InlineClose); ok {
			cell.Type = types.InlineText
			cell.raw = r.inlineText(is)
		}
		return col, nil
	}

	v, ok := element(inner, format.ValueOpen, format.ValueClose)
	if !ok {
		return col, nil
	}
	switch {
	case bytes.Equal(typ, format.TypeShared):
		idx, ok := format.ParseUint(bytes.TrimSpace(v))
		if !ok {
			return 0, types.Structuref("sheet: cell %s: bad shared string index %q", cell.Ref(r.row.Index), v)
		}
		if r.strings == nil {
			return 0, types.Boundsf("sheet: cell %s: shared string %d without a string table", cell.Ref(r.row.Index), idx)
		}
		s, err := r.strings.Get(idx)
		if err != nil {
			return 0, fmt.Errorf("sheet: cell %s: %w", cell.Ref(r.row.Index), err)
		}
		cell.Type = types.SharedText
		cell.shared = s
	case bytes.Equal(typ, format.TypeBool):
		cell.Type = types.Bool
		if format.IsTrue(bytes.TrimSpace(v)) {
			cell.num = 1
		}
	case bytes.Equal(typ, format.TypeFormula):
		cell.Type = types.FormulaText
		cell.raw = r.appendText(v)
	case bytes.Equal(typ, format.TypeError):
		cell.Type = types.ErrorText
		cell.raw = r.appendText(v)
	case bytes.Equal(typ, format.TypeDate):
		cell.Type = types.Text
		cell.raw = r.appendText(v)
	default:
		cell.classifyNumber(r.appendText(bytes.TrimSpace(v)))
	}
	return col, nil
}
