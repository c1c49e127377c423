package styles

import (
	"io"
	"strconv"

	"github.com/joshuapare/sheetkit/internal/format"
)

// WriteTo writes the styles fragment.
func (s *Styles) WriteTo(w io.Writer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := make([]byte, 0, 1024+len(s.xfs)*96)
	b = append(b, format.XMLHeader...)
	b = append(b, `<styleSheet xmlns="`...)
	b = append(b, format.NamespaceMain...)
	b = append(b, `">`...)

	if len(s.numFmts) > 0 {
		b = appendCountOpen(b, "numFmts", len(s.numFmts))
		for _, nf := range s.numFmts {
			b = append(b, `<numFmt numFmtId="`...)
			b = strconv.AppendInt(b, int64(nf.ID), 10)
			b = append(b, `" formatCode="`...)
			b = format.AppendEscapedAttr(b, nf.Code)
			b = append(b, `"/>`...)
		}
		b = append(b, `</numFmts>`...)
	}

	b = appendCountOpen(b, "fonts", len(s.fonts))
	for _, f := range s.fonts {
		b = appendFont(b, f)
	}
	b = append(b, `</fonts>`...)

	b = appendCountOpen(b, "fills", len(s.fills))
	for _, f := range s.fills {
		b = appendFill(b, f)
	}
	b = append(b, `</fills>`...)

	b = appendCountOpen(b, "borders", len(s.borders))
	for _, bd := range s.borders {
		b = appendBorder(b, bd)
	}
	b = append(b, `</borders>`...)

	b = append(b, `<cellStyleXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0"/></cellStyleXfs>`...)

	b = appendCountOpen(b, "cellXfs", len(s.xfs))
	for _, xf := range s.xfs {
		b = appendXF(b, xf)
	}
	b = append(b, `</cellXfs>`...)

	b = append(b, `<cellStyles count="1"><cellStyle name="Normal" xfId="0" builtinId="0"/></cellStyles>`...)
	b = append(b, `</styleSheet>`...)

	n, err := w.Write(b)
	return int64(n), err
}

func appendCountOpen(b []byte, name string, n int) []byte {
	b = append(b, '<')
	b = append(b, name...)
	b = append(b, ` count="`...)
	b = strconv.AppendInt(b, int64(n), 10)
	return append(b, `">`...)
}

func appendIntAttr(b []byte, name string, v int) []byte {
	b = append(b, ' ')
	b = append(b, name...)
	b = append(b, `="`...)
	b = strconv.AppendInt(b, int64(v), 10)
	return append(b, '"')
}

func appendColor(b []byte, elem string, c Color) []byte {
	b = append(b, '<')
	b = append(b, elem...)
	b = append(b, ` rgb="`...)
	b = append(b, c.String()...)
	return append(b, `"/>`...)
}

func appendFont(b []byte, f Font) []byte {
	b = append(b, `<font>`...)
	if f.Bold {
		b = append(b, `<b/>`...)
	}
	if f.Italic {
		b = append(b, `<i/>`...)
	}
	if f.Strike {
		b = append(b, `<strike/>`...)
	}
	if f.Underline {
		b = append(b, `<u/>`...)
	}
	if f.Size > 0 {
		b = append(b, `<sz val="`...)
		b = strconv.AppendFloat(b, f.Size, 'g', -1, 64)
		b = append(b, `"/>`...)
	}
	if f.Color.IsSet() {
		b = appendColor(b, "color", f.Color)
	}
	if f.Name != "" {
		b = append(b, `<name val="`...)
		b = format.AppendEscapedAttr(b, f.Name)
		b = append(b, `"/>`...)
	}
	return append(b, `</font>`...)
}

func appendFill(b []byte, f Fill) []byte {
	pattern := f.Pattern
	if pattern == "" {
		pattern = PatternNone
	}
	b = append(b, `<fill><patternFill patternType="`...)
	b = format.AppendEscapedAttr(b, pattern)
	if !f.Fg.IsSet() && !f.Bg.IsSet() {
		return append(b, `"/></fill>`...)
	}
	b = append(b, `">`...)
	if f.Fg.IsSet() {
		b = appendColor(b, "fgColor", f.Fg)
	}
	if f.Bg.IsSet() {
		b = appendColor(b, "bgColor", f.Bg)
	}
	return append(b, `</patternFill></fill>`...)
}

func appendEdge(b []byte, elem string, e Edge) []byte {
	b = append(b, '<')
	b = append(b, elem...)
	if e.IsZero() {
		return append(b, `/>`...)
	}
	b = append(b, ` style="`...)
	b = append(b, e.Style.String()...)
	if !e.Color.IsSet() {
		return append(b, `"/>`...)
	}
	b = append(b, `">`...)
	b = appendColor(b, "color", e.Color)
	b = append(b, `</`...)
	b = append(b, elem...)
	return append(b, '>')
}

func appendBorder(b []byte, bd Border) []byte {
	b = append(b, `<border`...)
	if !bd.DiagonalUp.IsZero() {
		b = append(b, ` diagonalUp="1"`...)
	}
	if !bd.DiagonalDown.IsZero() {
		b = append(b, ` diagonalDown="1"`...)
	}
	b = append(b, '>')
	b = appendEdge(b, "left", bd.Left)
	b = appendEdge(b, "right", bd.Right)
	b = appendEdge(b, "top", bd.Top)
	b = appendEdge(b, "bottom", bd.Bottom)
	// One diagonal element serves both directions.
	diagonal := bd.DiagonalUp
	if diagonal.IsZero() {
		diagonal = bd.DiagonalDown
	}
	b = appendEdge(b, "diagonal", diagonal)
	return append(b, `</border>`...)
}

func appendXF(b []byte, xf XF) []byte {
	b = append(b, `<xf`...)
	b = appendIntAttr(b, "numFmtId", xf.NumFmtID)
	b = appendIntAttr(b, "fontId", xf.FontID)
	b = appendIntAttr(b, "fillId", xf.FillID)
	b = appendIntAttr(b, "borderId", xf.BorderID)
	b = append(b, ` xfId="0"`...)
	if xf.NumFmtID != 0 {
		b = append(b, ` applyNumberFormat="1"`...)
	}
	if xf.FontID != 0 {
		b = append(b, ` applyFont="1"`...)
	}
	if xf.FillID != 0 {
		b = append(b, ` applyFill="1"`...)
	}
	if xf.BorderID != 0 {
		b = append(b, ` applyBorder="1"`...)
	}
	if xf.Vertical == VAlignDefault && xf.Horizontal == HAlignDefault {
		return append(b, `/>`...)
	}
	b = append(b, ` applyAlignment="1"><alignment`...)
	if xf.Horizontal != HAlignDefault {
		b = append(b, ` horizontal="`...)
		b = append(b, xf.Horizontal.String()...)
		b = append(b, '"')
	}
	if xf.Vertical != VAlignDefault {
		b = append(b, ` vertical="`...)
		b = append(b, xf.Vertical.String()...)
		b = append(b, '"')
	}
	return append(b, `/></xf>`...)
}
