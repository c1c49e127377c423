// Package mmfile provides read-only memory mapping of workbook packages.
//
// On unix the file is mapped with mmap(2) and the returned cleanup func
// unmaps it; calling cleanup twice is a no-op. Elsewhere the file is read
// into memory and cleanup does nothing. The returned bytes must not be
// used after cleanup.
package mmfile
