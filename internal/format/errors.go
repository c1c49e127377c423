package format

import "errors"

var (
	// ErrNoSheetData indicates a worksheet fragment without a <sheetData> element.
	ErrNoSheetData = errors.New("format: sheetData element not found")
	// ErrUnclosed indicates an element whose closing marker never appeared.
	ErrUnclosed = errors.New("format: element not closed")
	// ErrBadReference indicates an A1-style reference that could not be decoded.
	ErrBadReference = errors.New("format: bad cell reference")
	// ErrRowTooLarge indicates a single row exceeded the maximum scan buffer.
	ErrRowTooLarge = errors.New("format: row exceeds scan buffer limit")
)
