package writer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emitString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func TestFileWriter_ReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	w := &FileWriter{Path: path}
	require.NoError(t, w.WritePackage(emitString("new")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file removed")
}

func TestFileWriter_EmitFailureKeepsTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	boom := errors.New("boom")
	w := &FileWriter{Path: path}
	err := w.WritePackage(func(io.Writer) error { return boom })
	require.ErrorIs(t, err, boom)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileWriter_MissingDir(t *testing.T) {
	w := &FileWriter{Path: filepath.Join(t.TempDir(), "nope", "out.xlsx")}
	assert.Error(t, w.WritePackage(emitString("x")))
}

func TestMemWriter(t *testing.T) {
	var w MemWriter
	require.NoError(t, w.WritePackage(emitString("first")))
	require.NoError(t, w.WritePackage(emitString("second")))
	assert.Equal(t, "second", string(w.Bytes()))

	require.Error(t, w.WritePackage(func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("fail")
	}))
	assert.Empty(t, w.Bytes())
}
