package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/sheetkit/pkg/types"
)

func TestKey_ComposeDecomposeRoundTrip(t *testing.T) {
	cases := []Facets{
		{},
		{NumFmt: 14},
		{NumFmt: 255, Font: 63, Fill: 63, Border: 63, Vertical: 7, Horizontal: 7},
		{NumFmt: 176, Font: 1, Fill: 2, Border: 3, Vertical: VAlignCenter, Horizontal: HAlignRight},
		{Font: 5, Horizontal: HAlignDistributed},
	}
	for _, fs := range cases {
		k, err := Compose(fs)
		require.NoError(t, err)
		assert.Equal(t, fs, Decompose(k), "key %08x", uint32(k))
	}
}

func TestKey_Layout(t *testing.T) {
	k, err := Compose(Facets{NumFmt: 1, Font: 1, Fill: 1, Border: 1, Vertical: 1, Horizontal: 1})
	require.NoError(t, err)
	assert.Equal(t, Key(1<<24|1<<18|1<<12|1<<6|1<<3|1), k)
}

func TestKey_Overflow(t *testing.T) {
	_, err := Compose(Facets{Font: 64})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrStyle)

	_, err = Compose(Facets{NumFmt: 256})
	assert.ErrorIs(t, err, types.ErrStyle)

	_, err = FieldBorder.Shift(-1)
	assert.ErrorIs(t, err, types.ErrStyle)
}

func TestKey_ClearWithReset(t *testing.T) {
	base, err := Compose(Facets{NumFmt: 14, Font: 2, Fill: 3, Border: 4, Vertical: 1, Horizontal: 2})
	require.NoError(t, err)

	cleared := base.Clear(FieldFill)
	assert.Equal(t, Facets{NumFmt: 14, Font: 2, Border: 4, Vertical: 1, Horizontal: 2}, cleared.Facets())

	changed, err := base.With(FieldFont, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, changed.Get(FieldFont))
	assert.Equal(t, 3, changed.Get(FieldFill))

	_, err = base.With(FieldFont, 99)
	assert.ErrorIs(t, err, types.ErrStyle)

	override, err := Compose(Facets{Fill: 7, Horizontal: HAlignCenter})
	require.NoError(t, err)
	merged := Reset(base, override)
	assert.Equal(t, Facets{NumFmt: 14, Font: 2, Fill: 7, Border: 4, Vertical: 1, Horizontal: HAlignCenter}, merged.Facets())

	assert.Equal(t, base, Reset(base, 0))
}
