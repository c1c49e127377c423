package types

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellType_String(t *testing.T) {
	tests := []struct {
		name     string
		cellType CellType
		expected string
	}{
		{name: "blank", cellType: Blank, expected: "blank"},
		{name: "int", cellType: Int, expected: "int"},
		{name: "long", cellType: Long, expected: "long"},
		{name: "double", cellType: Double, expected: "double"},
		{name: "bool", cellType: Bool, expected: "bool"},
		{name: "shared", cellType: SharedText, expected: "shared"},
		{name: "inline", cellType: InlineText, expected: "inline"},
		{name: "formula", cellType: FormulaText, expected: "formula"},
		{name: "error", cellType: ErrorText, expected: "error"},
		{name: "text", cellType: Text, expected: "text"},
		{name: "unknown", cellType: CellType(200), expected: "UNKNOWN_CELL_TYPE_200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cellType.String())
		})
	}
}

func TestCellType_Classes(t *testing.T) {
	assert.True(t, Int.IsNumeric())
	assert.True(t, Long.IsNumeric())
	assert.True(t, Double.IsNumeric())
	assert.False(t, Text.IsNumeric())
	assert.True(t, Text.IsText())
	assert.True(t, SharedText.IsText())
	assert.False(t, Bool.IsText())
	assert.False(t, Blank.IsText())
}

func TestError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("sheet1: %w", Structuref("row %d: missing </c>", 7))
	require.ErrorIs(t, err, ErrStructure)
	assert.NotErrorIs(t, err, ErrBounds)
	assert.Equal(t, "sheet1: row 7: missing </c>", err.Error())

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindStructure, kind)
}

func TestError_UnwrapCause(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Kind: ErrKindState, Msg: "writer", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, "writer: boom", err.Error())
}

func TestConversionError(t *testing.T) {
	_, perr := strconv.ParseFloat("abc", 64)
	err := fmt.Errorf("B3: %w", &ConversionError{Value: "abc", Target: "float64", Err: perr})

	require.ErrorIs(t, err, ErrConversion)
	var ce *ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "abc", ce.Value)
	assert.Equal(t, "float64", ce.Target)
	assert.Contains(t, err.Error(), `cannot convert "abc" to float64`)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindConversion, kind)
}

func TestKindOf_Untyped(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.Equal(t, "bounds", ErrKindBounds.String())
	assert.Equal(t, "kind(42)", ErrKind(42).String())
}
