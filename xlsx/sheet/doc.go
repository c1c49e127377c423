// Package sheet reads and writes worksheet fragments.
//
// Reader scans the <sheetData> of a worksheet one row at a time without
// building a document tree. Each call to Next locates the next <row> and its
// closing </row> in a refillable buffer, then decodes the row's cells into a
// reused slice. Row and cell data are borrowed: they stay valid only until
// the following call to Next.
//
//	r := sheet.NewReader(part, sharedStrings, nil)
//	for r.Next() {
//	    row := r.Row()
//	    for _, c := range row.Cells {
//	        fmt.Println(c.Ref(row.Index), c.String())
//	    }
//	}
//	if err := r.Err(); err != nil {
//	    return err
//	}
//
// Row.Cells[i] holds column Row.First+i. Cells missing from the markup, for
// example when a row's spans attribute declares more columns than it has <c>
// elements, are Blank.
//
// Writer produces the fragment for a new sheet. Shared strings are interned
// through the caller's table; the sheet body is buffered so the <dimension>
// element can be written first on Close.
package sheet
