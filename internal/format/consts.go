// Package format houses the low-level SpreadsheetML vocabulary used by the
// codec packages: byte markers the tokenizers search for, attribute and
// reference decoding, XML text escaping, and source decoding. The goal is to
// keep scanning focused, allocation-free where possible, and independent
// from the public API so higher-level packages can orchestrate the data in a
// more ergonomic form.
package format

// Namespaces and document prologue.
const (
	// NamespaceMain is the SpreadsheetML main namespace.
	NamespaceMain = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"

	// NamespaceRelationships is the officeDocument relationships namespace.
	NamespaceRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	// XMLHeader is emitted at the top of every fragment.
	XMLHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

// Markers searched for by the sheet tokenizer. Open-tag markers omit the
// closing '>' so attributes may follow.
var (
	SheetDataOpen  = []byte("<sheetData")
	SheetDataClose = []byte("</sheetData>")
	DimensionOpen  = []byte("<dimension")
	RowOpen        = []byte("<row")
	RowClose       = []byte("</row>")
	CellOpen       = []byte("<c")
	CellClose      = []byte("</c>")
	ValueOpen      = []byte("<v")
	ValueClose     = []byte("</v>")
	FormulaOpen    = []byte("<f")
	FormulaClose   = []byte("</f>")
	InlineOpen     = []byte("<is")
	InlineClose    = []byte("</is>")
)

// Markers searched for by the shared-string scanner.
var (
	SSTOpen       = []byte("<sst")
	SIOpen        = []byte("<si")
	SIClose       = []byte("</si>")
	TextOpen      = []byte("<t")
	TextClose     = []byte("</t>")
	PhoneticOpen  = []byte("<rPh")
	PhoneticClose = []byte("</rPh>")
)

// Attribute names.
var (
	AttrRef         = []byte("r")
	AttrType        = []byte("t")
	AttrStyle       = []byte("s")
	AttrSpans       = []byte("spans")
	AttrHidden      = []byte("hidden")
	AttrCount       = []byte("count")
	AttrUniqueCount = []byte("uniqueCount")
)

// Cell type attribute values.
var (
	TypeShared  = []byte("s")
	TypeBool    = []byte("b")
	TypeFormula = []byte("str")
	TypeInline  = []byte("inlineStr")
	TypeError   = []byte("e")
	TypeNumber  = []byte("n")
	TypeDate    = []byte("d")
)
