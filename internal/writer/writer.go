// Package writer exposes sinks for finished workbook packages.
package writer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink receives a package produced by emit.
type Sink interface {
	WritePackage(emit func(io.Writer) error) error
}

// FileWriter writes a package to a filesystem path atomically.
type FileWriter struct {
	Path string
	// FullSync asks for F_FULLFSYNC on darwin; elsewhere it is ignored.
	FullSync bool
}

// WritePackage streams emit into a temp file in the target directory, syncs
// it, and renames it over Path. On failure Path is left untouched.
func (w *FileWriter) WritePackage(emit func(io.Writer) error) error {
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".sheetkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if emitErr := emit(tmpFile); emitErr != nil {
		return emitErr
	}
	if syncErr := fdatasync(tmpFile, w.FullSync); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}
	if chmodErr := tmpFile.Chmod(0o644); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}
	return nil
}

// MemWriter captures a package in memory.
type MemWriter struct {
	Buf bytes.Buffer
}

// WritePackage replaces the buffer contents with the emitted package.
func (w *MemWriter) WritePackage(emit func(io.Writer) error) error {
	w.Buf.Reset()
	if err := emit(&w.Buf); err != nil {
		w.Buf.Reset()
		return err
	}
	return nil
}

// Bytes returns the captured package.
func (w *MemWriter) Bytes() []byte { return w.Buf.Bytes() }
