// Package xlsx is the workbook facade over the codec packages in xlsx/.
//
// Reading:
//
//	wb, err := xlsx.Open("book.xlsx", nil)
//	if err != nil {
//		return err
//	}
//	defer wb.Close()
//
//	sr, err := wb.Sheet(0)
//	if err != nil {
//		return err
//	}
//	defer sr.Close()
//	for sr.Next() {
//		for i := range sr.Row().Cells {
//			v, err := wb.Value(&sr.Row().Cells[i])
//			...
//		}
//	}
//	if err := sr.Err(); err != nil {
//		return err
//	}
//
// Writing uses an explicit column schema:
//
//	b := xlsx.NewBuilder(nil)
//	s, _ := b.AddSheet("People",
//		xlsx.Column{Name: "Name"},
//		xlsx.Column{Name: "Born", Style: styles.Style{NumFmt: "yyyy-mm-dd"}},
//	)
//	_ = s.AddRow("Ada", time.Date(1815, 12, 10, 0, 0, 0, 0, time.UTC))
//	err := b.Save("people.xlsx")
//
// The package reader is a zip archive opened through a memory map; any
// PartSource can stand in for it.
package xlsx
