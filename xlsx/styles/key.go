package styles

import (
	"fmt"

	"github.com/joshuapare/sheetkit/pkg/types"
)

// Key is a packed cell style. The zero Key is the default style.
type Key uint32

// Field names one facet of a Key.
type Field uint8

const (
	FieldNumFmt Field = iota
	FieldFont
	FieldFill
	FieldBorder
	FieldVertical
	FieldHorizontal

	numFields = int(FieldHorizontal) + 1
)

var fieldLayout = [numFields]struct {
	offset uint
	width  uint
	name   string
}{
	FieldNumFmt:     {24, 8, "numFmt"},
	FieldFont:       {18, 6, "font"},
	FieldFill:       {12, 6, "fill"},
	FieldBorder:     {6, 6, "border"},
	FieldVertical:   {3, 3, "vertical"},
	FieldHorizontal: {0, 3, "horizontal"},
}

func (f Field) String() string {
	if int(f) < numFields {
		return fieldLayout[f].name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Max returns the largest value the field can hold.
func (f Field) Max() int { return int(f.mask()) }

func (f Field) mask() uint32 { return 1<<fieldLayout[f].width - 1 }

// Shift places v into the field's bit position. It fails when v does not
// fit the field width.
func (f Field) Shift(v int) (Key, error) {
	if int(f) >= numFields {
		return 0, types.Stylef("unknown style field %d", int(f))
	}
	if v < 0 || uint32(v) > f.mask() {
		return 0, types.Stylef("%s value %d exceeds %d-bit field", f, v, fieldLayout[f].width)
	}
	return Key(uint32(v) << fieldLayout[f].offset), nil
}

// Get extracts one field.
func (k Key) Get(f Field) int {
	return int(uint32(k) >> fieldLayout[f].offset & f.mask())
}

// Clear zeroes one field, leaving the others intact.
func (k Key) Clear(f Field) Key {
	return k &^ Key(f.mask()<<fieldLayout[f].offset)
}

// With replaces one field.
func (k Key) With(f Field, v int) (Key, error) {
	shifted, err := f.Shift(v)
	if err != nil {
		return k, err
	}
	return k.Clear(f) | shifted, nil
}

// Facets holds the unpacked fields of a Key.
type Facets struct {
	NumFmt     int // numFmtId
	Font       int
	Fill       int
	Border     int
	Vertical   VAlign
	Horizontal HAlign
}

func (fs Facets) values() [numFields]int {
	return [numFields]int{fs.NumFmt, fs.Font, fs.Fill, fs.Border, int(fs.Vertical), int(fs.Horizontal)}
}

// Compose packs facets into a Key.
func Compose(fs Facets) (Key, error) {
	var k Key
	for i, v := range fs.values() {
		shifted, err := Field(i).Shift(v)
		if err != nil {
			return 0, err
		}
		k |= shifted
	}
	return k, nil
}

// Facets unpacks the key.
func (k Key) Facets() Facets {
	return Facets{
		NumFmt:     k.Get(FieldNumFmt),
		Font:       k.Get(FieldFont),
		Fill:       k.Get(FieldFill),
		Border:     k.Get(FieldBorder),
		Vertical:   VAlign(k.Get(FieldVertical)),
		Horizontal: HAlign(k.Get(FieldHorizontal)),
	}
}

// Decompose is shorthand for k.Facets().
func Decompose(k Key) Facets { return k.Facets() }

// Reset overlays override on base: every field that is non-zero in override
// replaces the corresponding field of base. It merges a cell-level style
// into its column style.
func Reset(base, override Key) Key {
	for f := Field(0); int(f) < numFields; f++ {
		if v := override.Get(f); v != 0 {
			base = base.Clear(f) | Key(uint32(v)<<fieldLayout[f].offset)
		}
	}
	return base
}

func (k Key) String() string {
	fs := k.Facets()
	return fmt.Sprintf("numFmt=%d font=%d fill=%d border=%d v=%s h=%s",
		fs.NumFmt, fs.Font, fs.Fill, fs.Border, fs.Vertical, fs.Horizontal)
}
