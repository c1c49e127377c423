// Package sst implements the shared string table of a workbook.
//
// The write side, Table, interns text values: each distinct string is stored
// once in an append-only arena and identified by its insertion order. A
// dedup index keyed by a 32-bit FNV-1a hash finds existing entries without
// allocating.
//
// The read side, Reader, never materializes the whole table. It keeps one
// page of decoded entries and scans the sharedStrings fragment to refill it
// when a requested index falls outside the page. Moving forward continues
// the live scan; moving backward reopens the part and scans from the start,
// so increasing access order (what the sheet tokenizer produces) is cheap and
// random access costs a re-scan.
package sst
