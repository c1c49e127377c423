package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/sheetkit/pkg/types"
)

const red Color = 0xFFFF0000

func TestParseBorder_SingleStyleBroadcasts(t *testing.T) {
	b, err := ParseBorder("thin red")
	require.NoError(t, err)

	want := Edge{Style: BorderThin, Color: red}
	assert.Equal(t, want, b.Top)
	assert.Equal(t, want, b.Right)
	assert.Equal(t, want, b.Bottom)
	assert.Equal(t, want, b.Left)
	assert.True(t, b.DiagonalDown.IsZero())
	assert.True(t, b.DiagonalUp.IsZero())
}

func TestParseBorder_ColorCarriesForward(t *testing.T) {
	b, err := ParseBorder("thin red thin dashed dashed")
	require.NoError(t, err)

	assert.Equal(t, Edge{Style: BorderThin, Color: red}, b.Left)
	assert.Equal(t, Edge{Style: BorderThin, Color: red}, b.Right)
	assert.Equal(t, Edge{Style: BorderDashed, Color: red}, b.Top)
	assert.Equal(t, b.Top, b.Bottom, "dashed color carries to the following dashed edge")
}

func TestParseBorder_Positional(t *testing.T) {
	thin := Edge{Style: BorderThin, Color: red}
	thick := Edge{Style: BorderThick, Color: red}

	tests := []struct {
		in   string
		want Border
	}{
		{"thin red thick", Border{Left: thin, Right: thick}},
		{"thin red thick thin", Border{Left: thin, Right: thick, Top: thin}},
		{"thin red thick thin thick", Border{Left: thin, Right: thick, Top: thin, Bottom: thick}},
		{"none thin red", Border{Right: thin}},
	}
	for _, tt := range tests {
		b, err := ParseBorder(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, b, tt.in)
	}

	b, err := ParseBorder("thin medium thick double hair dotted")
	require.NoError(t, err)
	assert.Equal(t, BorderThin, b.Left.Style)
	assert.Equal(t, BorderMedium, b.Right.Style)
	assert.Equal(t, BorderThick, b.Top.Style)
	assert.Equal(t, BorderDouble, b.Bottom.Style)
	assert.Equal(t, BorderHair, b.DiagonalDown.Style)
	assert.Equal(t, BorderDotted, b.DiagonalUp.Style)
}

func TestParseBorder_Directions(t *testing.T) {
	b, err := ParseBorder("left thin bottom thick blue diagonalUp mediumDashDot")
	require.NoError(t, err)
	assert.Equal(t, Edge{Style: BorderThin}, b.Left)
	assert.Equal(t, Edge{Style: BorderThick, Color: 0xFF0000FF}, b.Bottom)
	assert.Equal(t, Edge{Style: BorderMediumDashDot, Color: 0xFF0000FF}, b.DiagonalUp)
	assert.True(t, b.Top.IsZero())
	assert.True(t, b.Right.IsZero())
}

func TestParseBorder_NoneAndEmpty(t *testing.T) {
	b, err := ParseBorder("none")
	require.NoError(t, err)
	assert.True(t, b.IsZero())

	b, err = ParseBorder("")
	require.NoError(t, err)
	assert.True(t, b.IsZero())
}

func TestParseBorder_Errors(t *testing.T) {
	for _, s := range []string{
		"red",
		"thin bogus",
		"thin red blue",
		"left",
		"thin left thick",
		"left thin thick",
		"thin thin thin thin thin thin thin",
	} {
		_, err := ParseBorder(s)
		require.Error(t, err, s)
		assert.ErrorIs(t, err, types.ErrStyle, s)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"red", red},
		{"Black", 0xFF000000},
		{"#F80", 0xFFFF8800},
		{"00FF00", 0xFF00FF00},
		{"#80112233", 0x80112233},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"xyz", "#12345", "", "GGGGGG"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, types.ErrStyle, bad)
	}

	assert.Equal(t, "FFFF8800", Color(0xFFFF8800).String())
}

func TestParseAlign(t *testing.T) {
	tests := []struct {
		in string
		v  VAlign
		h  HAlign
	}{
		{"", VAlignDefault, HAlignDefault},
		{"left", VAlignDefault, HAlignLeft},
		{"top", VAlignTop, HAlignDefault},
		{"center top", VAlignTop, HAlignCenter},
		{"top center", VAlignTop, HAlignCenter},
		{"center center", VAlignCenter, HAlignCenter},
		{"Middle Right", VAlignCenter, HAlignRight},
		{"v:justify h:distributed", VAlignJustify, HAlignDistributed},
		{"centerContinuous", VAlignDefault, HAlignCenterContinuous},
		{"general bottom", VAlignBottom, HAlignDefault},
	}
	for _, tt := range tests {
		v, h, err := ParseAlign(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.v, v, tt.in)
		assert.Equal(t, tt.h, h, tt.in)
	}

	for _, bad := range []string{"sideways", "left right", "top bottom", "h:top", "center center center"} {
		_, _, err := ParseAlign(bad)
		assert.ErrorIs(t, err, types.ErrStyle, bad)
	}
}
