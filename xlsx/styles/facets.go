package styles

// Font is a font catalog entry. The zero Font stands for the workbook
// default font.
type Font struct {
	Name      string
	Size      float64
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Color     Color
}

// DefaultFont is font 0 of every new catalog.
var DefaultFont = Font{Name: "Calibri", Size: 11}

// IsZero reports whether f is the zero Font.
func (f Font) IsZero() bool { return f == Font{} }

// Fill pattern types.
const (
	PatternNone    = "none"
	PatternSolid   = "solid"
	PatternGray125 = "gray125"
)

// Fill is a fill catalog entry.
type Fill struct {
	Pattern string // patternType, e.g. "solid"
	Fg      Color
	Bg      Color
}

// SolidFill returns a solid fill in c.
func SolidFill(c Color) Fill {
	return Fill{Pattern: PatternSolid, Fg: c}
}

// IsZero reports whether f is the zero Fill.
func (f Fill) IsZero() bool { return f == Fill{} }

// NumFmt is a custom number format catalog entry.
type NumFmt struct {
	ID   int
	Code string
}

// XF is one cell-format record. Records created through a Styles catalog
// always carry a valid Key; records decoded from an existing document whose
// ids do not fit the Key layout have Packed set to false.
type XF struct {
	NumFmtID   int
	FontID     int
	FillID     int
	BorderID   int
	Vertical   VAlign
	Horizontal HAlign
	Key        Key
	Packed     bool
}

func xfFromKey(k Key) XF {
	fs := k.Facets()
	return XF{
		NumFmtID:   fs.NumFmt,
		FontID:     fs.Font,
		FillID:     fs.Fill,
		BorderID:   fs.Border,
		Vertical:   fs.Vertical,
		Horizontal: fs.Horizontal,
		Key:        k,
		Packed:     true,
	}
}
