package xlsx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/joshuapare/sheetkit/internal/format"
	"github.com/joshuapare/sheetkit/internal/writer"
	"github.com/joshuapare/sheetkit/pkg/types"
	"github.com/joshuapare/sheetkit/xlsx/sheet"
	"github.com/joshuapare/sheetkit/xlsx/sst"
	"github.com/joshuapare/sheetkit/xlsx/styles"
)

// maxSheetName is the longest sheet name spreadsheet applications accept.
const maxSheetName = 31

// defaultDateFormat is applied to time values in columns without a format.
const defaultDateFormat = 22 // m/d/yy h:mm

// Column declares one column of a sheet schema.
type Column struct {
	// Name is written to the header row. When every column name is empty
	// no header row is written.
	Name string

	// Style applies to every value of the column.
	Style styles.Style
}

// Styled overrides the column style of a single value. Non-default facets
// of Style replace the column's; the rest are kept.
type Styled struct {
	Value any
	Style styles.Style
}

// Builder assembles a workbook package.
type Builder struct {
	opts    BuilderOptions
	styles  *styles.Styles
	strings *sst.Table
	sheets  []*SheetBuilder
	names   map[string]bool
}

// NewBuilder creates an empty workbook.
func NewBuilder(opts *BuilderOptions) *Builder {
	var o BuilderOptions
	if opts != nil {
		o = *opts
	}
	if o.StringCapacity <= 0 {
		o.StringCapacity = 256
	}
	return &Builder{
		opts:    o,
		styles:  styles.New(o.Builtins),
		strings: sst.NewTable(o.StringCapacity),
		names:   make(map[string]bool),
	}
}

// Styles returns the catalog shared by all sheets.
func (b *Builder) Styles() *styles.Styles { return b.styles }

// Strings returns the shared string table.
func (b *Builder) Strings() *sst.Table { return b.strings }

// SheetBuilder appends rows to one worksheet.
type SheetBuilder struct {
	name    string
	columns []Column
	keys    []styles.Key
	body    bytes.Buffer
	w       *sheet.Writer
	b       *Builder
	row     []sheet.Value
}

// AddSheet appends a worksheet with the given column schema and writes its
// header row.
func (b *Builder) AddSheet(name string, columns ...Column) (*SheetBuilder, error) {
	if err := checkSheetName(name); err != nil {
		return nil, err
	}
	if b.names[strings.ToLower(name)] {
		return nil, types.Stylef("duplicate sheet name %q", name)
	}

	s := &SheetBuilder{name: name, columns: columns, b: b}
	s.keys = make([]styles.Key, len(columns))
	for i, c := range columns {
		k, err := b.styles.Key(c.Style)
		if err != nil {
			return nil, fmt.Errorf("xlsx: column %d style: %w", i+1, err)
		}
		s.keys[i] = k
	}
	s.w = sheet.NewWriter(&s.body, b.strings, &sheet.Options{Date1904: b.opts.Date1904})

	header := false
	for _, c := range columns {
		if c.Name != "" {
			header = true
			break
		}
	}
	if header {
		vals := make([]sheet.Value, len(columns))
		for i, c := range columns {
			vals[i] = sheet.String(c.Name)
		}
		if err := s.w.WriteRow(vals...); err != nil {
			return nil, err
		}
	}

	b.names[strings.ToLower(name)] = true
	b.sheets = append(b.sheets, s)
	return s, nil
}

func checkSheetName(name string) error {
	if name == "" || len([]rune(name)) > maxSheetName {
		return types.Stylef("sheet name %q must be 1-%d characters", name, maxSheetName)
	}
	if strings.ContainsAny(name, `[]:*?/\`) {
		return types.Stylef("sheet name %q contains one of []:*?/\\", name)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return types.Stylef("sheet name %q starts or ends with an apostrophe", name)
	}
	return nil
}

// Name returns the sheet name.
func (s *SheetBuilder) Name() string { return s.name }

// Rows returns the number of rows written, including the header.
func (s *SheetBuilder) Rows() int { return s.w.Rows() }

// AddRow appends one row. Values map to columns by position; a row may be
// shorter than the schema but not longer. Supported values are nil, the Go
// integer and float types, bool, string, []byte, time.Time, fmt.Stringer,
// sheet.Value and Styled wrapping any of these.
func (s *SheetBuilder) AddRow(values ...any) error {
	if len(s.columns) > 0 && len(values) > len(s.columns) {
		return types.Boundsf("sheet %q: row has %d values for %d columns", s.name, len(values), len(s.columns))
	}
	s.row = s.row[:0]
	for i, v := range values {
		var base styles.Key
		if i < len(s.keys) {
			base = s.keys[i]
		}
		cell, err := s.cellValue(v, base)
		if err != nil {
			return fmt.Errorf("xlsx: sheet %q column %d: %w", s.name, i+1, err)
		}
		s.row = append(s.row, cell)
	}
	return s.w.WriteRow(s.row...)
}

func (s *SheetBuilder) cellValue(v any, key styles.Key) (sheet.Value, error) {
	if st, ok := v.(Styled); ok {
		over, err := s.b.styles.Key(st.Style)
		if err != nil {
			return sheet.Value{}, err
		}
		key = styles.Reset(key, over)
		v = st.Value
	}

	val, err := toValue(v)
	if err != nil {
		return sheet.Value{}, err
	}
	if _, isTime := v.(time.Time); isTime && key.Get(styles.FieldNumFmt) == 0 {
		key, err = key.With(styles.FieldNumFmt, defaultDateFormat)
		if err != nil {
			return sheet.Value{}, err
		}
	}
	if key == 0 {
		return val, nil
	}
	xf, err := s.b.styles.XfIndex(key)
	if err != nil {
		return sheet.Value{}, err
	}
	return val.Styled(xf), nil
}

func toValue(v any) (sheet.Value, error) {
	switch x := v.(type) {
	case nil:
		return sheet.Blank(), nil
	case sheet.Value:
		return x, nil
	case int:
		return sheet.Int(int64(x)), nil
	case int8:
		return sheet.Int(int64(x)), nil
	case int16:
		return sheet.Int(int64(x)), nil
	case int32:
		return sheet.Int(int64(x)), nil
	case int64:
		return sheet.Int(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return sheet.Int(int64(x)), nil
	case uint16:
		return sheet.Int(int64(x)), nil
	case uint32:
		return sheet.Int(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return sheet.Float(float64(x)), nil
	case float64:
		return sheet.Float(x), nil
	case bool:
		return sheet.Bool(x), nil
	case string:
		return sheet.String(x), nil
	case []byte:
		return sheet.String(string(x)), nil
	case time.Time:
		return sheet.Time(x), nil
	case fmt.Stringer:
		return sheet.String(x.String()), nil
	}
	return sheet.Value{}, &types.ConversionError{Value: fmt.Sprintf("%v", v), Target: fmt.Sprintf("cell value (%T)", v)}
}

func fromUint(u uint64) sheet.Value {
	if u > math.MaxInt64 {
		return sheet.Float(float64(u))
	}
	return sheet.Int(int64(u))
}

// WriteTo writes the package as a zip archive. Sheets cannot be extended
// afterwards.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := b.emit(cw); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// Save writes the package to path atomically.
func (b *Builder) Save(path string) error {
	sink := &writer.FileWriter{Path: path, FullSync: b.opts.FullSync}
	return sink.WritePackage(b.emit)
}

// Bytes returns the package as a byte slice.
func (b *Builder) Bytes() ([]byte, error) {
	var sink writer.MemWriter
	if err := sink.WritePackage(b.emit); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

func (b *Builder) emit(w io.Writer) error {
	if len(b.sheets) == 0 {
		return types.Structuref("xlsx: workbook has no sheets")
	}
	for _, s := range b.sheets {
		if err := s.w.Close(); err != nil && !errors.Is(err, types.ErrClosed) {
			return fmt.Errorf("xlsx: sheet %q: %w", s.name, err)
		}
	}

	zw := zip.NewWriter(w)
	parts := []packagePart{
		{partContentTypes, b.writeContentTypes},
		{partRootRels, writeRootRels},
		{partWorkbook, b.writeWorkbook},
		{partWorkbookRels, b.writeWorkbookRels},
		{partStyles, func(w io.Writer) error { _, err := b.styles.WriteTo(w); return err }},
		{partSharedStrings, func(w io.Writer) error { _, err := b.strings.WriteTo(w); return err }},
	}
	for i, s := range b.sheets {
		body := s.body.Bytes()
		parts = append(parts, packagePart{sheetPart(i), func(w io.Writer) error { return writeString(w, body) }})
	}

	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("xlsx: create %s: %w", p.name, err)
		}
		if err := p.write(fw); err != nil {
			return fmt.Errorf("xlsx: write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("xlsx: finish package: %w", err)
	}
	return nil
}

type packagePart struct {
	name  string
	write func(io.Writer) error
}

func sheetPart(i int) string { return "xl/worksheets/sheet" + strconv.Itoa(i+1) + ".xml" }

func writeString(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}

func (b *Builder) writeContentTypes(w io.Writer) error {
	out := []byte(format.XMLHeader)
	out = append(out, `<Types xmlns="`+nsContentTypes+`">`...)
	out = append(out, `<Default Extension="rels" ContentType="`+ctRels+`"/>`...)
	out = append(out, `<Default Extension="xml" ContentType="`+ctXML+`"/>`...)
	out = appendOverride(out, partWorkbook, ctWorkbook)
	for i := range b.sheets {
		out = appendOverride(out, sheetPart(i), ctWorksheet)
	}
	out = appendOverride(out, partStyles, ctStyles)
	out = appendOverride(out, partSharedStrings, ctSharedStrings)
	out = append(out, `</Types>`...)
	return writeString(w, out)
}

func appendOverride(b []byte, part, contentType string) []byte {
	b = append(b, `<Override PartName="/`...)
	b = append(b, part...)
	b = append(b, `" ContentType="`...)
	b = append(b, contentType...)
	return append(b, `"/>`...)
}

func appendRel(b []byte, id int, typ, target string) []byte {
	b = append(b, `<Relationship Id="rId`...)
	b = strconv.AppendInt(b, int64(id), 10)
	b = append(b, `" Type="`...)
	b = append(b, typ...)
	b = append(b, `" Target="`...)
	b = format.AppendEscapedAttr(b, target)
	return append(b, `"/>`...)
}

func writeRootRels(w io.Writer) error {
	out := []byte(format.XMLHeader)
	out = append(out, `<Relationships xmlns="`+nsPackageRels+`">`...)
	out = appendRel(out, 1, relOfficeDoc, partWorkbook)
	out = append(out, `</Relationships>`...)
	return writeString(w, out)
}

func (b *Builder) writeWorkbook(w io.Writer) error {
	out := []byte(format.XMLHeader)
	out = append(out, `<workbook xmlns="`+format.NamespaceMain+`" xmlns:r="`+format.NamespaceRelationships+`">`...)
	if b.opts.Date1904 {
		out = append(out, `<workbookPr date1904="1"/>`...)
	}
	out = append(out, `<sheets>`...)
	for i, s := range b.sheets {
		out = append(out, `<sheet name="`...)
		out = format.AppendEscapedAttr(out, s.name)
		out = append(out, `" sheetId="`...)
		out = strconv.AppendInt(out, int64(i+1), 10)
		out = append(out, `" r:id="rId`...)
		out = strconv.AppendInt(out, int64(i+1), 10)
		out = append(out, `"/>`...)
	}
	out = append(out, `</sheets></workbook>`...)
	return writeString(w, out)
}

func (b *Builder) writeWorkbookRels(w io.Writer) error {
	out := []byte(format.XMLHeader)
	out = append(out, `<Relationships xmlns="`+nsPackageRels+`">`...)
	for i := range b.sheets {
		out = appendRel(out, i+1, relWorksheet, strings.TrimPrefix(sheetPart(i), "xl/"))
	}
	n := len(b.sheets)
	out = appendRel(out, n+1, relStyles, "styles.xml")
	out = appendRel(out, n+2, relSharedStrings, "sharedStrings.xml")
	out = append(out, `</Relationships>`...)
	return writeString(w, out)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
