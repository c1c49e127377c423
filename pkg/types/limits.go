package types

// ============================================================================
// Spreadsheet Format Limits
// ============================================================================
// These constants define the limits imposed by the SpreadsheetML format as
// implemented by common office suites.

const (
	// MaxRows is the largest 1-based row number a worksheet may address.
	MaxRows = 1 << 20 // 1,048,576

	// MaxColumns is the largest 1-based column number ("XFD").
	MaxColumns = 1 << 14 // 16,384

	// MaxCellText is the maximum number of characters in a single cell.
	MaxCellText = 32767

	// FirstCustomNumFmt is the first id handed out to custom number formats.
	// Ids below 164 are reserved for built-in formats.
	FirstCustomNumFmt = 176

	// ReservedNumFmtLimit is the exclusive upper bound of built-in format ids.
	ReservedNumFmtLimit = 164
)
