package xlsx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/joshuapare/sheetkit/internal/format"
	"github.com/joshuapare/sheetkit/internal/mmfile"
	"github.com/joshuapare/sheetkit/pkg/types"
	"github.com/joshuapare/sheetkit/xlsx/sheet"
	"github.com/joshuapare/sheetkit/xlsx/sst"
	"github.com/joshuapare/sheetkit/xlsx/styles"
)

// SheetInfo describes one worksheet of a workbook.
type SheetInfo struct {
	Name   string `json:"name"`
	ID     int    `json:"id"`     // sheetId attribute
	Part   string `json:"part"`   // part name, e.g. "xl/worksheets/sheet1.xml"
	Hidden bool   `json:"hidden"` // state is hidden or veryHidden
}

// Workbook is an open package. Its shared string reader is owned by one
// goroutine at a time, like the sheet readers it serves.
type Workbook struct {
	src     PartSource
	cleanup func() error
	opts    Options
	log     *slog.Logger

	sheets   []SheetInfo
	styles   *styles.Styles
	strings  *sst.Reader
	date1904 bool
	closed   bool
}

// Open maps the package at path and reads its workbook part.
func Open(filePath string, opts *Options) (*Workbook, error) {
	data, cleanup, err := mmfile.Map(filePath)
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	src, err := newZipSource(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		_ = cleanup()
		return nil, err
	}
	wb, err := New(src, opts)
	if err != nil {
		_ = cleanup()
		return nil, err
	}
	wb.cleanup = cleanup
	return wb, nil
}

// OpenReader reads a package from ra.
func OpenReader(ra io.ReaderAt, size int64, opts *Options) (*Workbook, error) {
	src, err := newZipSource(ra, size)
	if err != nil {
		return nil, err
	}
	return New(src, opts)
}

// New reads the workbook, relationship and styles parts of src. The
// shared string part is scanned lazily.
func New(src PartSource, opts *Options) (*Workbook, error) {
	o := opts.withDefaults()
	wb := &Workbook{src: src, opts: o, log: o.Logger}

	rels, err := readRels(src, partWorkbookRels)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err := wb.readWorkbook(rels); err != nil {
		return nil, err
	}

	stylesPart, stringsPart := partStyles, partSharedStrings
	for _, rel := range rels {
		switch rel.Type {
		case relStyles:
			stylesPart = resolveTarget("xl", rel.Target)
		case relSharedStrings:
			stringsPart = resolveTarget("xl", rel.Target)
		}
	}

	if err := wb.readStyles(stylesPart); err != nil {
		return nil, err
	}
	if rc, err := src.Open(stringsPart); err == nil {
		_ = rc.Close()
		wb.strings = sst.NewReader(func() (io.ReadCloser, error) {
			return src.Open(stringsPart)
		}, o.stringOptions())
	}

	wb.log.Debug("workbook opened", "sheets", len(wb.sheets), "date1904", wb.date1904,
		"sharedStrings", wb.strings != nil)
	return wb, nil
}

type xlsxRelationships struct {
	Relationships []xlsxRelationship `xml:"Relationship"`
}

type xlsxRelationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type xlsxWorkbook struct {
	WorkbookPr struct {
		Date1904 string `xml:"date1904,attr"`
	} `xml:"workbookPr"`
	Sheets []xlsxSheet `xml:"sheets>sheet"`
}

type xlsxSheet struct {
	Name    string `xml:"name,attr"`
	SheetID int    `xml:"sheetId,attr"`
	State   string `xml:"state,attr"`
	RelID   string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

func decodePart(src PartSource, name string, v any) error {
	rc, err := src.Open(name)
	if err != nil {
		return err
	}
	defer rc.Close()

	dec := xml.NewDecoder(format.NewDecoder(rc))
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }
	if err := dec.Decode(v); err != nil {
		return types.Structuref("xlsx: %s: %v", name, err)
	}
	return nil
}

func readRels(src PartSource, name string) ([]xlsxRelationship, error) {
	var rels xlsxRelationships
	if err := decodePart(src, name, &rels); err != nil {
		return nil, err
	}
	return rels.Relationships, nil
}

func (wb *Workbook) readWorkbook(rels []xlsxRelationship) error {
	var doc xlsxWorkbook
	if err := decodePart(wb.src, partWorkbook, &doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Structuref("xlsx: package has no %s", partWorkbook)
		}
		return err
	}
	wb.date1904 = format.IsTrue([]byte(doc.WorkbookPr.Date1904))

	targets := make(map[string]string, len(rels))
	for _, rel := range rels {
		if rel.Type == relWorksheet {
			targets[rel.ID] = resolveTarget("xl", rel.Target)
		}
	}
	for i, s := range doc.Sheets {
		part, ok := targets[s.RelID]
		if !ok {
			// Packages without rels use the conventional names.
			part = path.Join("xl", "worksheets", fmt.Sprintf("sheet%d.xml", i+1))
		}
		wb.sheets = append(wb.sheets, SheetInfo{
			Name:   s.Name,
			ID:     s.SheetID,
			Part:   part,
			Hidden: s.State == "hidden" || s.State == "veryHidden",
		})
	}
	return nil
}

func (wb *Workbook) readStyles(name string) error {
	rc, err := wb.src.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		wb.styles = styles.New(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("xlsx: %s: %w", name, err)
	}
	defer rc.Close()

	st, err := styles.Decode(rc, nil)
	if err != nil {
		return fmt.Errorf("xlsx: %s: %w", name, err)
	}
	wb.styles = st
	return nil
}

// Sheets returns the worksheets in workbook order.
func (wb *Workbook) Sheets() []SheetInfo { return wb.sheets }

// Styles returns the decoded style catalog.
func (wb *Workbook) Styles() *styles.Styles { return wb.styles }

// Strings returns the shared string reader, or nil when the package has no
// shared string part.
func (wb *Workbook) Strings() *sst.Reader { return wb.strings }

// Date1904 reports whether the workbook uses the 1904 date system.
func (wb *Workbook) Date1904() bool { return wb.date1904 }

// SheetReader streams the rows of one worksheet.
type SheetReader struct {
	*sheet.Reader
	Info SheetInfo
	rc   io.ReadCloser
}

// Close releases the underlying part stream.
func (sr *SheetReader) Close() error { return sr.rc.Close() }

// Sheet opens worksheet i for streaming.
func (wb *Workbook) Sheet(i int) (*SheetReader, error) {
	if wb.closed {
		return nil, types.ErrClosed
	}
	if i < 0 || i >= len(wb.sheets) {
		return nil, types.Boundsf("sheet %d out of range [0,%d)", i, len(wb.sheets))
	}
	info := wb.sheets[i]
	rc, err := wb.src.Open(info.Part)
	if err != nil {
		return nil, fmt.Errorf("xlsx: sheet %q: %w", info.Name, err)
	}
	var strs sheet.StringTable
	if wb.strings != nil {
		strs = wb.strings
	}
	wb.log.Debug("sheet opened", "name", info.Name, "part", info.Part)
	return &SheetReader{
		Reader: sheet.NewReader(rc, strs, wb.opts.sheetOptions(wb.date1904)),
		Info:   info,
		rc:     rc,
	}, nil
}

// SheetByName opens the worksheet named name, ignoring case.
func (wb *Workbook) SheetByName(name string) (*SheetReader, error) {
	for i, s := range wb.sheets {
		if strings.EqualFold(s.Name, name) {
			return wb.Sheet(i)
		}
	}
	return nil, types.Boundsf("no sheet named %q", name)
}

// IsDate reports whether c is a number styled with a date format.
func (wb *Workbook) IsDate(c *sheet.Cell) bool {
	if !c.Type.IsNumeric() {
		return false
	}
	ok, err := wb.styles.IsDate(c.Style)
	return err == nil && ok
}

// Value converts c to a Go value: nil, int64, float64, bool, string, or
// time.Time for date-styled numbers.
func (wb *Workbook) Value(c *sheet.Cell) (any, error) {
	switch {
	case c.Type == types.Blank:
		return nil, nil
	case wb.IsDate(c):
		return c.Time(wb.date1904)
	case c.Type == types.Int || c.Type == types.Long:
		return c.Int()
	case c.Type == types.Double:
		return c.Float()
	case c.Type == types.Bool:
		return c.Bool()
	}
	return c.String(), nil
}

// FormatValue renders c for display; dates use layout.
func (wb *Workbook) FormatValue(c *sheet.Cell, layout string) string {
	v, err := wb.Value(c)
	if err != nil {
		return c.String()
	}
	if t, ok := v.(time.Time); ok {
		return t.Format(layout)
	}
	return c.String()
}

// Close releases the shared string reader and the package mapping.
func (wb *Workbook) Close() error {
	if wb.closed {
		return nil
	}
	wb.closed = true
	var errs []error
	if wb.strings != nil {
		errs = append(errs, wb.strings.Close())
	}
	if wb.cleanup != nil {
		errs = append(errs, wb.cleanup())
	}
	return errors.Join(errs...)
}
