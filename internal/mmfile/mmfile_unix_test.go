//go:build unix

package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_ReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	want := []byte("PK\x03\x04 payload")
	require.NoError(t, os.WriteFile(path, want, 0o644))

	data, cleanup, err := Map(path)
	require.NoError(t, err)
	assert.Equal(t, want, data)
	require.NoError(t, cleanup())
	require.NoError(t, cleanup(), "second cleanup is a no-op")
}

func TestMap_ZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	data, cleanup, err := Map(path)
	require.NoError(t, err)
	assert.Empty(t, data)
	require.NotNil(t, cleanup)
	assert.NoError(t, cleanup())
}

func TestMap_Errors(t *testing.T) {
	_, _, err := Map(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = Map(t.TempDir())
	assert.Error(t, err)
}
