package format

import (
	"fmt"
	"strconv"
)

// maxColumn is the largest column number ("XFD").
const maxColumn = 16384

// ColumnIndex decodes column letters as a base-26 positional number where
// 'A' is 1. Lowercase letters are accepted. It returns false for empty input,
// non-letters, or columns beyond XFD.
func ColumnIndex(letters []byte) (int, bool) {
	if len(letters) == 0 || len(letters) > 3 {
		return 0, false
	}
	col := 0
	for _, c := range letters {
		switch {
		case c >= 'A' && c <= 'Z':
			col = col*26 + int(c-'A') + 1
		case c >= 'a' && c <= 'z':
			col = col*26 + int(c-'a') + 1
		default:
			return 0, false
		}
	}
	if col > maxColumn {
		return 0, false
	}
	return col, true
}

// ParseCellRef splits an A1-style reference into its 1-based column and row.
// A reference without digits ("C") yields row 0; one without letters ("7")
// yields column 0. "$" absolute markers are skipped.
func ParseCellRef(ref []byte) (col, row int, err error) {
	i := 0
	if i < len(ref) && ref[i] == '$' {
		i++
	}
	start := i
	for i < len(ref) && isLetter(ref[i]) {
		i++
	}
	if i > start {
		var ok bool
		if col, ok = ColumnIndex(ref[start:i]); !ok {
			return 0, 0, fmt.Errorf("%w: %q", ErrBadReference, ref)
		}
	}
	if i < len(ref) && ref[i] == '$' {
		i++
	}
	if i < len(ref) {
		var ok bool
		if row, ok = ParseUint(ref[i:]); !ok || row == 0 {
			return 0, 0, fmt.Errorf("%w: %q", ErrBadReference, ref)
		}
	}
	if col == 0 && row == 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadReference, ref)
	}
	return col, row, nil
}

// ParseRange decodes "A1:C10" (or a single "B2") into corner coordinates.
func ParseRange(ref []byte) (c1, r1, c2, r2 int, err error) {
	for i, c := range ref {
		if c != ':' {
			continue
		}
		if c1, r1, err = ParseCellRef(ref[:i]); err != nil {
			return 0, 0, 0, 0, err
		}
		if c2, r2, err = ParseCellRef(ref[i+1:]); err != nil {
			return 0, 0, 0, 0, err
		}
		return c1, r1, c2, r2, nil
	}
	c1, r1, err = ParseCellRef(ref)
	return c1, r1, c1, r1, err
}

func isLetter(c byte) bool { return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') }

// AppendColumnName appends the letters of the 1-based column col.
func AppendColumnName(dst []byte, col int) []byte {
	if col <= 0 {
		return dst
	}
	var tmp [4]byte
	i := len(tmp)
	for col > 0 {
		col--
		i--
		tmp[i] = byte('A' + col%26)
		col /= 26
	}
	return append(dst, tmp[i:]...)
}

// AppendCellRef appends an A1-style reference.
func AppendCellRef(dst []byte, col, row int) []byte {
	dst = AppendColumnName(dst, col)
	return strconv.AppendInt(dst, int64(row), 10)
}

// CellRef returns an A1-style reference.
func CellRef(col, row int) string {
	return string(AppendCellRef(nil, col, row))
}
