package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/sheetkit/pkg/types"
)

func number(s string) *Cell {
	c := &Cell{Col: 1}
	c.classifyNumber([]byte(s))
	return c
}

func TestCell_Int(t *testing.T) {
	n, err := number("12.0").Int()
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	_, err = number("12.5").Int()
	assert.ErrorIs(t, err, types.ErrConversion)

	n, err = (&Cell{}).Int()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCell_Bool(t *testing.T) {
	b, err := number("0").Bool()
	require.NoError(t, err)
	assert.False(t, b)

	b, err = number("2.5").Bool()
	require.NoError(t, err)
	assert.True(t, b)

	c := &Cell{Type: types.InlineText, raw: []byte("maybe")}
	_, err = c.Bool()
	var ce *types.ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "bool", ce.Target)
}

func TestCell_String(t *testing.T) {
	assert.Equal(t, "-7", number("-7").String())
	assert.Equal(t, "0.125", number("0.125").String())
	assert.Equal(t, "FALSE", (&Cell{Type: types.Bool}).String())
	assert.Equal(t, "", (&Cell{}).String())
	assert.Equal(t, "x", (&Cell{Type: types.SharedText, shared: "x"}).String())
}

func TestCell_TimeBlank(t *testing.T) {
	_, err := (&Cell{}).Time(false)
	assert.ErrorIs(t, err, types.ErrConversion)
}

func TestCell_Ref(t *testing.T) {
	assert.Equal(t, "AA10", (&Cell{Col: 27}).Ref(10))
}
