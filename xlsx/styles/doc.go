// Package styles maintains the cell formatting catalog of a workbook.
//
// A cell style is split into six independent facets: number format, font,
// fill, border, vertical alignment and horizontal alignment. Fonts, fills,
// borders and custom number formats are interned into append-only catalogs;
// a facet's position in its catalog (or, for number formats, its numFmtId)
// is packed into a 32-bit Key:
//
//	bits 31..24  number format id   (8 bits)
//	bits 23..18  font index         (6 bits)
//	bits 17..12  fill index         (6 bits)
//	bits 11..6   border index       (6 bits)
//	bits  5..3   vertical align     (3 bits)
//	bits  2..0   horizontal align   (3 bits)
//
// Each distinct Key is assigned a sequential cell-format index (the
// worksheet's s attribute) the first time it is requested. The Key to index
// cache is an inthash.Map, so repeated requests cost one probe and never
// emit a duplicate record.
//
// # Date detection
//
// IsDateFormat decides whether a number format renders a date or time.
// Built-in ids use a fixed table; custom codes are scored by counting date
// and time letters. Styles caches the verdict per cell-format index.
//
// # Grammars
//
// ParseBorder, ParseColor and ParseAlign accept the compact strings used by
// build configurations, e.g. "thin red", "#FF8800", "center top".
//
// # Thread Safety
//
// Styles serializes its methods with a mutex. Builtins is immutable after
// construction and may be shared.
package styles
