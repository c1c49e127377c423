package styles

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/joshuapare/sheetkit/internal/format"
	"github.com/joshuapare/sheetkit/pkg/types"
)

// xlsxStyleSheet mirrors the parts of styles.xml the catalog understands.
type xlsxStyleSheet struct {
	XMLName xml.Name `xml:"styleSheet"`
	NumFmts struct {
		NumFmt []struct {
			ID   int    `xml:"numFmtId,attr"`
			Code string `xml:"formatCode,attr"`
		} `xml:"numFmt"`
	} `xml:"numFmts"`
	Fonts struct {
		Font []xlsxFont `xml:"font"`
	} `xml:"fonts"`
	Fills struct {
		Fill []xlsxFill `xml:"fill"`
	} `xml:"fills"`
	Borders struct {
		Border []xlsxBorder `xml:"border"`
	} `xml:"borders"`
	CellXfs struct {
		Xf []xlsxXf `xml:"xf"`
	} `xml:"cellXfs"`
}

type xlsxVal struct {
	Val string `xml:"val,attr"`
}

type xlsxColor struct {
	RGB string `xml:"rgb,attr"`
}

type xlsxFont struct {
	B      *xlsxVal   `xml:"b"`
	I      *xlsxVal   `xml:"i"`
	Strike *xlsxVal   `xml:"strike"`
	U      *xlsxVal   `xml:"u"`
	Sz     *xlsxVal   `xml:"sz"`
	Color  *xlsxColor `xml:"color"`
	Name   *xlsxVal   `xml:"name"`
}

type xlsxFill struct {
	PatternFill struct {
		PatternType string     `xml:"patternType,attr"`
		FgColor     *xlsxColor `xml:"fgColor"`
		BgColor     *xlsxColor `xml:"bgColor"`
	} `xml:"patternFill"`
}

type xlsxEdge struct {
	Style string     `xml:"style,attr"`
	Color *xlsxColor `xml:"color"`
}

type xlsxBorder struct {
	DiagonalUp   string    `xml:"diagonalUp,attr"`
	DiagonalDown string    `xml:"diagonalDown,attr"`
	Left         *xlsxEdge `xml:"left"`
	Right        *xlsxEdge `xml:"right"`
	Top          *xlsxEdge `xml:"top"`
	Bottom       *xlsxEdge `xml:"bottom"`
	Diagonal     *xlsxEdge `xml:"diagonal"`
}

type xlsxXf struct {
	NumFmtID  int `xml:"numFmtId,attr"`
	FontID    int `xml:"fontId,attr"`
	FillID    int `xml:"fillId,attr"`
	BorderID  int `xml:"borderId,attr"`
	Alignment *struct {
		Horizontal string `xml:"horizontal,attr"`
		Vertical   string `xml:"vertical,attr"`
	} `xml:"alignment"`
}

// Decode reads an existing styles fragment. Catalog entries keep their
// document positions; cell formats whose ids do not fit the Key layout are
// kept with Packed set to false and are not reachable through XfIndex.
func Decode(r io.Reader, builtins *Builtins) (*Styles, error) {
	var sheet xlsxStyleSheet
	dec := xml.NewDecoder(format.NewDecoder(r))
	// format.NewDecoder has already transcoded to UTF-8.
	dec.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) { return in, nil }
	if err := dec.Decode(&sheet); err != nil {
		return nil, &types.Error{Kind: types.ErrKindStructure, Msg: "styles: decode", Err: err}
	}

	s := newEmpty(builtins)
	for _, nf := range sheet.NumFmts.NumFmt {
		s.numFmts = append(s.numFmts, NumFmt{ID: nf.ID, Code: nf.Code})
		if _, dup := s.numFmtIDs[nf.Code]; !dup {
			s.numFmtIDs[nf.Code] = nf.ID
		}
		s.numFmtCode[nf.ID] = nf.Code
		if nf.ID >= s.nextNumFmt {
			s.nextNumFmt = nf.ID + 1
		}
	}
	for _, xf := range sheet.Fonts.Font {
		f := decodeFont(xf)
		if _, dup := s.fontIdx[f]; !dup {
			s.fontIdx[f] = len(s.fonts)
		}
		s.fonts = append(s.fonts, f)
	}
	for _, xf := range sheet.Fills.Fill {
		f := Fill{
			Pattern: xf.PatternFill.PatternType,
			Fg:      decodeColor(xf.PatternFill.FgColor),
			Bg:      decodeColor(xf.PatternFill.BgColor),
		}
		if _, dup := s.fillIdx[f]; !dup {
			s.fillIdx[f] = len(s.fills)
		}
		s.fills = append(s.fills, f)
	}
	for _, xb := range sheet.Borders.Border {
		b := decodeBorder(xb)
		if _, dup := s.borderIdx[b]; !dup {
			s.borderIdx[b] = len(s.borders)
		}
		s.borders = append(s.borders, b)
	}
	for i, x := range sheet.CellXfs.Xf {
		rec := XF{NumFmtID: x.NumFmtID, FontID: x.FontID, FillID: x.FillID, BorderID: x.BorderID}
		if x.Alignment != nil {
			rec.Vertical, _ = lookupVAlign(x.Alignment.Vertical)
			rec.Horizontal, _ = lookupHAlign(x.Alignment.Horizontal)
		}
		k, err := Compose(Facets{
			NumFmt:     rec.NumFmtID,
			Font:       rec.FontID,
			Fill:       rec.FillID,
			Border:     rec.BorderID,
			Vertical:   rec.Vertical,
			Horizontal: rec.Horizontal,
		})
		if err == nil {
			rec.Key, rec.Packed = k, true
			if slot := s.xfIndex.InsertKey(int32(k)); slot >= 0 {
				s.xfIndex.SetAt(slot, int32(i))
			}
		}
		s.xfs = append(s.xfs, rec)
		s.dates = append(s.dates, dateUnknown)
	}
	return s, nil
}

func decodeColor(c *xlsxColor) Color {
	if c == nil || c.RGB == "" {
		return 0
	}
	v, err := ParseColor(c.RGB)
	if err != nil {
		return 0
	}
	return v
}

// flag decodes an optional boolean element such as <b/> or <b val="0"/>.
func flag(v *xlsxVal) bool {
	if v == nil {
		return false
	}
	return v.Val == "" || format.IsTrue([]byte(v.Val)) || v.Val == "single" || v.Val == "double"
}

func decodeFont(x xlsxFont) Font {
	f := Font{
		Bold:      flag(x.B),
		Italic:    flag(x.I),
		Strike:    flag(x.Strike),
		Underline: flag(x.U),
		Color:     decodeColor(x.Color),
	}
	if x.Name != nil {
		f.Name = x.Name.Val
	}
	if x.Sz != nil {
		if sz, err := strconv.ParseFloat(x.Sz.Val, 64); err == nil {
			f.Size = sz
		}
	}
	return f
}

func decodeEdge(x *xlsxEdge) Edge {
	if x == nil {
		return Edge{}
	}
	st, ok := ParseBorderStyle(x.Style)
	if !ok || st == BorderNone {
		return Edge{}
	}
	return Edge{Style: st, Color: decodeColor(x.Color)}
}

func decodeBorder(x xlsxBorder) Border {
	b := Border{
		Left:   decodeEdge(x.Left),
		Right:  decodeEdge(x.Right),
		Top:    decodeEdge(x.Top),
		Bottom: decodeEdge(x.Bottom),
	}
	diagonal := decodeEdge(x.Diagonal)
	if format.IsTrue([]byte(x.DiagonalUp)) {
		b.DiagonalUp = diagonal
	}
	if format.IsTrue([]byte(x.DiagonalDown)) {
		b.DiagonalDown = diagonal
	}
	return b
}

// String describes the record for listings.
func (x XF) String() string {
	return fmt.Sprintf("numFmt=%d font=%d fill=%d border=%d v=%s h=%s",
		x.NumFmtID, x.FontID, x.FillID, x.BorderID, x.Vertical, x.Horizontal)
}
