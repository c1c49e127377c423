package xlsx

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"
)

// PartSource opens the parts of a package by name, e.g. "xl/workbook.xml".
type PartSource interface {
	Open(name string) (io.ReadCloser, error)
}

// Well-known part names.
const (
	partContentTypes  = "[Content_Types].xml"
	partRootRels      = "_rels/.rels"
	partWorkbook      = "xl/workbook.xml"
	partWorkbookRels  = "xl/_rels/workbook.xml.rels"
	partStyles        = "xl/styles.xml"
	partSharedStrings = "xl/sharedStrings.xml"
)

// Relationship types.
const (
	relBase          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	relOfficeDoc     = relBase + "officeDocument"
	relWorksheet     = relBase + "worksheet"
	relStyles        = relBase + "styles"
	relSharedStrings = relBase + "sharedStrings"
)

// Content types.
const (
	ctRels          = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML           = "application/xml"
	ctWorkbook      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ctWorksheet     = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ctStyles        = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	ctSharedStrings = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// zipSource serves parts from a zip archive.
type zipSource struct {
	files map[string]*zip.File
}

func newZipSource(ra io.ReaderAt, size int64) (*zipSource, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open package: %w", err)
	}
	src := &zipSource{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		src.files[strings.TrimPrefix(f.Name, "/")] = f
	}
	return src, nil
}

// Open implements PartSource. Names match case-insensitively as a fallback,
// since some producers vary part name case.
func (z *zipSource) Open(name string) (io.ReadCloser, error) {
	name = strings.TrimPrefix(name, "/")
	f, ok := z.files[name]
	if !ok {
		for n, cand := range z.files {
			if strings.EqualFold(n, name) {
				f, ok = cand, true
				break
			}
		}
	}
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return f.Open()
}

// resolveTarget turns a relationship target into a part name relative to
// the package root. base is the directory of the part owning the rels.
func resolveTarget(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(target[1:])
	}
	return path.Clean(path.Join(base, target))
}
