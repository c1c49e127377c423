package xlsx

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/sheetkit/pkg/types"
	"github.com/joshuapare/sheetkit/xlsx/styles"
)

func buildPeople(t *testing.T, opts *BuilderOptions) *Builder {
	t.Helper()
	b := NewBuilder(opts)
	people, err := b.AddSheet("People",
		Column{Name: "Name"},
		Column{Name: "Age"},
		Column{Name: "Born", Style: styles.Style{NumFmt: "yyyy-mm-dd"}},
		Column{Name: "Score", Style: styles.Style{NumFmt: "0.00", Font: styles.Font{Bold: true}}},
	)
	require.NoError(t, err)
	require.NoError(t, people.AddRow("Ada", 36, time.Date(1985, 12, 10, 0, 0, 0, 0, time.UTC), 9.5))
	require.NoError(t, people.AddRow("Grace", uint8(85),
		Styled{Value: time.Date(1906, 12, 9, 0, 0, 0, 0, time.UTC), Style: styles.Style{Font: styles.Font{Italic: true}}},
		Styled{Value: 7.25, Style: styles.Style{NumFmt: "0.0"}},
	))
	assert.Equal(t, 3, people.Rows())

	log, err := b.AddSheet("Log")
	require.NoError(t, err)
	require.NoError(t, log.AddRow(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), true, nil, "x"))
	return b
}

// readAll collects the Go values of every row of sheet i.
func readAll(t *testing.T, wb *Workbook, i int) [][]any {
	t.Helper()
	sr, err := wb.Sheet(i)
	require.NoError(t, err)
	defer sr.Close()

	var rows [][]any
	for sr.Next() {
		var vals []any
		for c := range sr.Row().Cells {
			v, err := wb.Value(&sr.Row().Cells[c])
			require.NoError(t, err)
			vals = append(vals, v)
		}
		rows = append(rows, vals)
	}
	require.NoError(t, sr.Err())
	return rows
}

func TestBuilder_RoundTrip(t *testing.T) {
	data, err := buildPeople(t, nil).Bytes()
	require.NoError(t, err)

	wb, err := OpenReader(bytes.NewReader(data), int64(len(data)), nil)
	require.NoError(t, err)
	defer wb.Close()

	assert.False(t, wb.Date1904())
	assert.Equal(t, []SheetInfo{
		{Name: "People", ID: 1, Part: "xl/worksheets/sheet1.xml"},
		{Name: "Log", ID: 2, Part: "xl/worksheets/sheet2.xml"},
	}, wb.Sheets())

	assert.Equal(t, [][]any{
		{"Name", "Age", "Born", "Score"},
		{"Ada", int64(36), time.Date(1985, 12, 10, 0, 0, 0, 0, time.UTC), 9.5},
		{"Grace", int64(85), time.Date(1906, 12, 9, 0, 0, 0, 0, time.UTC), 7.25},
	}, readAll(t, wb, 0))

	assert.Equal(t, [][]any{
		{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), true, nil, "x"},
	}, readAll(t, wb, 1))

	require.NotNil(t, wb.Strings())
	assert.Equal(t, 7, wb.Strings().UniqueCount())
}

func TestBuilder_StylesMergeColumnAndCell(t *testing.T) {
	b := buildPeople(t, nil)
	data, err := b.Bytes()
	require.NoError(t, err)

	wb, err := OpenReader(bytes.NewReader(data), int64(len(data)), nil)
	require.NoError(t, err)
	defer wb.Close()

	sr, err := wb.Sheet(0)
	require.NoError(t, err)
	defer sr.Close()
	require.True(t, sr.Next())
	require.True(t, sr.Next())
	require.True(t, sr.Next())
	row := sr.Row()

	born, err := wb.Styles().XF(row.Cells[2].Style)
	require.NoError(t, err)
	code, ok := wb.Styles().NumFmtCode(born.NumFmtID)
	require.True(t, ok)
	assert.Equal(t, "yyyy-mm-dd", code, "column format kept under a font override")
	font, err := wb.Styles().Font(born.FontID)
	require.NoError(t, err)
	assert.True(t, font.Italic)

	score, err := wb.Styles().XF(row.Cells[3].Style)
	require.NoError(t, err)
	code, _ = wb.Styles().NumFmtCode(score.NumFmtID)
	assert.Equal(t, "0.0", code)
	font, err = wb.Styles().Font(score.FontID)
	require.NoError(t, err)
	assert.True(t, font.Bold, "column font kept under a format override")
	assert.False(t, wb.IsDate(&row.Cells[3]))
}

func TestBuilder_SaveAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.xlsx")
	require.NoError(t, buildPeople(t, &BuilderOptions{Date1904: true}).Save(path))

	wb, err := Open(path, &Options{StringPageSize: 2, BufferSize: 32})
	require.NoError(t, err)
	assert.True(t, wb.Date1904())

	sr, err := wb.SheetByName("people")
	require.NoError(t, err)
	assert.Equal(t, "People", sr.Info.Name)
	require.NoError(t, sr.Close())

	rows := readAll(t, wb, 0)
	require.Len(t, rows, 3)
	assert.Equal(t, time.Date(1985, 12, 10, 0, 0, 0, 0, time.UTC), rows[1][2])

	require.NoError(t, wb.Close())
	require.NoError(t, wb.Close())
	_, err = wb.Sheet(0)
	assert.ErrorIs(t, err, types.ErrClosed)
}

func TestBuilder_WriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := buildPeople(t, nil).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"[Content_Types].xml", "_rels/.rels", "xl/workbook.xml", "xl/_rels/workbook.xml.rels",
		"xl/styles.xml", "xl/sharedStrings.xml", "xl/worksheets/sheet1.xml", "xl/worksheets/sheet2.xml",
	}, names)
}

func TestBuilder_Errors(t *testing.T) {
	b := NewBuilder(nil)
	_, err := b.Bytes()
	assert.ErrorIs(t, err, types.ErrStructure)

	s, err := b.AddSheet("Data", Column{Name: "A"})
	require.NoError(t, err)

	_, err = b.AddSheet("DATA")
	assert.ErrorIs(t, err, types.ErrStyle)
	_, err = b.AddSheet("a/b")
	assert.ErrorIs(t, err, types.ErrStyle)
	_, err = b.AddSheet(strings.Repeat("x", 32))
	assert.ErrorIs(t, err, types.ErrStyle)
	_, err = b.AddSheet("")
	assert.ErrorIs(t, err, types.ErrStyle)
	_, err = b.AddSheet("Bad", Column{Style: styles.Style{Vertical: styles.VAlign(8)}})
	assert.Error(t, err)

	assert.ErrorIs(t, s.AddRow(1, 2), types.ErrBounds)
	assert.ErrorIs(t, s.AddRow(struct{}{}), types.ErrConversion)
	assert.Equal(t, 1, s.Rows(), "failed rows are not written")
}

func TestToValue(t *testing.T) {
	v, err := toValue(uint64(1) << 63)
	require.NoError(t, err)
	assert.False(t, v.IsBlank())

	v, err = toValue(nil)
	require.NoError(t, err)
	assert.True(t, v.IsBlank())

	_, err = toValue(map[string]int{})
	assert.ErrorIs(t, err, types.ErrConversion)
}

type mapSource map[string]string

func (m mapSource) Open(name string) (io.ReadCloser, error) {
	s, ok := m[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return io.NopCloser(strings.NewReader(s)), nil
}

func TestNew_MinimalPackage(t *testing.T) {
	src := mapSource{
		"xl/workbook.xml":          `<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><workbookPr date1904="true"/><sheets><sheet name="Only" sheetId="3" state="hidden"/></sheets></workbook>`,
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData><row r="1"><c r="A1" t="inlineStr"><is><t>hi</t></is></c><c r="B1"><v>2</v></c></row></sheetData></worksheet>`,
	}
	wb, err := New(src, nil)
	require.NoError(t, err)
	defer wb.Close()

	assert.True(t, wb.Date1904())
	assert.Nil(t, wb.Strings())
	assert.Equal(t, []SheetInfo{{Name: "Only", ID: 3, Part: "xl/worksheets/sheet1.xml", Hidden: true}}, wb.Sheets())
	assert.Equal(t, [][]any{{"hi", int64(2)}}, readAll(t, wb, 0))

	_, err = wb.Sheet(1)
	assert.ErrorIs(t, err, types.ErrBounds)
	_, err = wb.SheetByName("missing")
	assert.ErrorIs(t, err, types.ErrBounds)
}

func TestNew_SharedStringWithoutTable(t *testing.T) {
	src := mapSource{
		"xl/workbook.xml":          `<workbook><sheets><sheet name="S" sheetId="1"/></sheets></workbook>`,
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData><row r="1"><c r="A1" t="s"><v>0</v></c></row></sheetData></worksheet>`,
	}
	wb, err := New(src, nil)
	require.NoError(t, err)
	sr, err := wb.Sheet(0)
	require.NoError(t, err)
	assert.False(t, sr.Next())
	assert.ErrorIs(t, sr.Err(), types.ErrBounds)
}

func TestNew_RelationshipTargets(t *testing.T) {
	src := mapSource{
		"xl/workbook.xml": `<workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets><sheet name="S" sheetId="1" r:id="rId7"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId7" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="/xl/worksheets/data.xml"/>` +
			`<Relationship Id="rId8" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="strings.xml"/>` +
			`</Relationships>`,
		"xl/worksheets/data.xml": `<worksheet><sheetData><row r="2"><c r="C2" t="s"><v>1</v></c></row></sheetData></worksheet>`,
		"xl/strings.xml":         `<sst count="2" uniqueCount="2"><si><t>zero</t></si><si><t>one</t></si></sst>`,
	}
	wb, err := New(src, nil)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, "xl/worksheets/data.xml", wb.Sheets()[0].Part)
	assert.Equal(t, [][]any{{"one"}}, readAll(t, wb, 0))
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.xlsx"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = OpenReader(strings.NewReader("not a zip"), 9, nil)
	assert.Error(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err = zw.Create("readme.txt")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	_, err = OpenReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()), nil)
	assert.ErrorIs(t, err, types.ErrStructure)

	_, err = New(mapSource{"xl/workbook.xml": `<workbook><sheets>`}, nil)
	assert.ErrorIs(t, err, types.ErrStructure)
}
