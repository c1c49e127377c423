package sst

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/sheetkit/pkg/types"
)

func TestTable_AddDedups(t *testing.T) {
	tbl := NewTable(4)

	id, added := tbl.Add("abc")
	require.True(t, added)
	require.Equal(t, 0, id)

	again, added := tbl.Add("abc")
	assert.False(t, added)
	assert.Equal(t, id, again)

	other, added := tbl.Add("xyz")
	assert.True(t, added)
	assert.Greater(t, other, id)

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 3, tbl.Refs())
}

func TestTable_GrowthKeepsIds(t *testing.T) {
	tbl := NewTable(1)
	for i := range 5000 {
		id, added := tbl.Add(fmt.Sprintf("value-%d", i))
		require.True(t, added)
		require.Equal(t, i, id)
	}
	for i := range 5000 {
		id, ok := tbl.Lookup(fmt.Sprintf("value-%d", i))
		require.True(t, ok)
		require.Equal(t, i, id)

		s, err := tbl.Get(i)
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("value-%d", i), s)
	}
	assert.Equal(t, 5000, tbl.Len())
}

func TestTable_EmptyStringIsAValue(t *testing.T) {
	tbl := NewTable(4)
	id, added := tbl.Add("")
	require.True(t, added)
	s, err := tbl.Get(id)
	require.NoError(t, err)
	assert.Empty(t, s)

	again, added := tbl.Add("")
	assert.False(t, added)
	assert.Equal(t, id, again)
}

func TestTable_GetOutOfRange(t *testing.T) {
	tbl := NewTable(4)
	tbl.Add("a")

	_, err := tbl.Get(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrBounds)

	_, err = tbl.Get(-1)
	assert.ErrorIs(t, err, types.ErrBounds)
}

func TestTable_WriteTo(t *testing.T) {
	tbl := NewTable(4)
	tbl.Add("plain")
	tbl.Add(" padded ")
	tbl.Add("a<b & c")
	tbl.Add("plain")

	var out bytes.Buffer
	n, err := tbl.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(out.Len()), n)

	s := out.String()
	assert.Contains(t, s, `count="4" uniqueCount="3"`)
	assert.Contains(t, s, `<si><t>plain</t></si><si><t xml:space="preserve"> padded </t></si><si><t>a&lt;b &amp; c</t></si></sst>`)
}
