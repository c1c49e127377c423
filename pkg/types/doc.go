// Package types defines the small, dependency-free vocabulary shared by the
// sheetkit codec packages: typed errors with stable categories, cell value
// kinds, and the hard limits of the spreadsheet format.
//
// Design goals:
//   - Typed errors so callers can branch on intent rather than text.
//   - Small value types (CellType) instead of interfaces on the hot read path.
//   - No dependencies beyond the standard library.
package types
