package styles

import (
	"sync"

	"github.com/joshuapare/sheetkit/pkg/types"
	"github.com/joshuapare/sheetkit/xlsx/inthash"
)

type dateState uint8

const (
	dateUnknown dateState = iota
	dateYes
	dateNo
)

// Style is a logical cell style. Zero-valued facets select the defaults.
type Style struct {
	NumFmt     string // format code; "" or "General" is the default
	Font       Font
	Fill       Fill
	Border     Border
	Vertical   VAlign
	Horizontal HAlign
}

// Styles is the formatting catalog of one workbook.
type Styles struct {
	mu       sync.Mutex
	builtins *Builtins

	numFmts    []NumFmt // custom formats in insertion order
	numFmtIDs  map[string]int
	numFmtCode map[int]string
	nextNumFmt int

	fonts     []Font
	fontIdx   map[Font]int
	fills     []Fill
	fillIdx   map[Fill]int
	borders   []Border
	borderIdx map[Border]int

	xfs     []XF
	xfIndex *inthash.Map
	dates   []dateState
}

// New creates a catalog holding the mandatory defaults: font 0, the none and
// gray125 fills, the empty border and cell format 0. A nil builtins uses
// NewBuiltins().
func New(builtins *Builtins) *Styles {
	s := newEmpty(builtins)
	s.fonts = append(s.fonts, DefaultFont)
	s.fontIdx[DefaultFont] = 0
	for _, f := range []Fill{{Pattern: PatternNone}, {Pattern: PatternGray125}} {
		s.fillIdx[f] = len(s.fills)
		s.fills = append(s.fills, f)
	}
	s.borders = append(s.borders, Border{})
	s.borderIdx[Border{}] = 0
	_, _ = s.xfIndexLocked(0)
	return s
}

func newEmpty(builtins *Builtins) *Styles {
	if builtins == nil {
		builtins = NewBuiltins()
	}
	return &Styles{
		builtins:   builtins,
		numFmtIDs:  make(map[string]int),
		numFmtCode: make(map[int]string),
		nextNumFmt: types.FirstCustomNumFmt,
		fontIdx:    make(map[Font]int),
		fillIdx:    make(map[Fill]int),
		borderIdx:  make(map[Border]int),
		xfIndex:    inthash.New(64, -1),
	}
}

// Builtins returns the built-in format table.
func (s *Styles) Builtins() *Builtins { return s.builtins }

// AddNumFmt interns a number format code and returns its id as a Key.
// Built-in codes resolve to their reserved id and are not added.
func (s *Styles) AddNumFmt(code string) (Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addNumFmt(code)
}

func (s *Styles) addNumFmt(code string) (Key, error) {
	if code == "" {
		return 0, nil
	}
	if id, ok := s.numFmtIDs[code]; ok {
		return FieldNumFmt.Shift(id)
	}
	if id, ok := s.builtins.ID(code); ok {
		return FieldNumFmt.Shift(id)
	}
	id := s.nextNumFmt
	k, err := FieldNumFmt.Shift(id)
	if err != nil {
		return 0, types.Stylef("too many number formats: cannot add %q", code)
	}
	s.nextNumFmt++
	s.numFmts = append(s.numFmts, NumFmt{ID: id, Code: code})
	s.numFmtIDs[code] = id
	s.numFmtCode[id] = code
	return k, nil
}

// intern finds v in idx or appends it, returning its shifted position.
func intern[T comparable](list *[]T, idx map[T]int, v T, f Field) (Key, error) {
	if i, ok := idx[v]; ok {
		return f.Shift(i)
	}
	k, err := f.Shift(len(*list))
	if err != nil {
		return 0, types.Stylef("too many %ss: catalog holds %d", f, len(*list))
	}
	idx[v] = len(*list)
	*list = append(*list, v)
	return k, nil
}

// AddFont interns a font. The zero Font resolves to font 0.
func (s *Styles) AddFont(f Font) (Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addFont(f)
}

func (s *Styles) addFont(f Font) (Key, error) {
	if f.IsZero() {
		return 0, nil
	}
	return intern(&s.fonts, s.fontIdx, f, FieldFont)
}

// AddFill interns a fill. The zero Fill resolves to fill 0.
func (s *Styles) AddFill(f Fill) (Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addFill(f)
}

func (s *Styles) addFill(f Fill) (Key, error) {
	if f.IsZero() {
		return 0, nil
	}
	if f.Pattern == "" {
		f.Pattern = PatternSolid
	}
	return intern(&s.fills, s.fillIdx, f, FieldFill)
}

// AddBorder interns a border.
func (s *Styles) AddBorder(b Border) (Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addBorder(b)
}

func (s *Styles) addBorder(b Border) (Key, error) {
	b.normalize()
	return intern(&s.borders, s.borderIdx, b, FieldBorder)
}

// Key interns every facet of st and packs them.
func (s *Styles) Key(st Style) (Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keyLocked(st)
}

func (s *Styles) keyLocked(st Style) (Key, error) {
	var k Key
	for _, add := range []func() (Key, error){
		func() (Key, error) { return s.addNumFmt(st.NumFmt) },
		func() (Key, error) { return s.addFont(st.Font) },
		func() (Key, error) { return s.addFill(st.Fill) },
		func() (Key, error) { return s.addBorder(st.Border) },
		func() (Key, error) { return FieldVertical.Shift(int(st.Vertical)) },
		func() (Key, error) { return FieldHorizontal.Shift(int(st.Horizontal)) },
	} {
		part, err := add()
		if err != nil {
			return 0, err
		}
		k |= part
	}
	return k, nil
}

// Of interns st and returns its cell-format index.
func (s *Styles) Of(st Style) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k, err := s.keyLocked(st)
	if err != nil {
		return 0, err
	}
	return s.xfIndexLocked(k)
}

// XfIndex returns the cell-format index for k, appending a record the first
// time k is seen. Facets must refer to catalog entries.
func (s *Styles) XfIndex(k Key) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.xfIndexLocked(k)
}

func (s *Styles) xfIndexLocked(k Key) (int, error) {
	if err := s.checkKey(k); err != nil {
		return 0, err
	}
	slot := s.xfIndex.InsertKey(int32(k))
	if slot < 0 {
		return int(s.xfIndex.ValueAt(-slot - 1)), nil
	}
	idx := len(s.xfs)
	s.xfIndex.SetAt(slot, int32(idx))
	s.xfs = append(s.xfs, xfFromKey(k))
	s.dates = append(s.dates, dateUnknown)
	return idx, nil
}

func (s *Styles) checkKey(k Key) error {
	fs := k.Facets()
	if _, ok := s.numFmtCode[fs.NumFmt]; !ok && !s.builtins.IsReserved(fs.NumFmt) {
		return types.Boundsf("number format %d is not in the catalog", fs.NumFmt)
	}
	switch {
	case fs.Font >= len(s.fonts):
		return types.Boundsf("font %d out of range [0,%d)", fs.Font, len(s.fonts))
	case fs.Fill >= len(s.fills):
		return types.Boundsf("fill %d out of range [0,%d)", fs.Fill, len(s.fills))
	case fs.Border >= len(s.borders):
		return types.Boundsf("border %d out of range [0,%d)", fs.Border, len(s.borders))
	case int(fs.Vertical) >= len(vAlignNames):
		return types.Stylef("vertical alignment code %d is undefined", fs.Vertical)
	case int(fs.Horizontal) >= len(hAlignNames):
		return types.Stylef("horizontal alignment code %d is undefined", fs.Horizontal)
	}
	return nil
}

// NumFmtCode returns the code of a number format id, custom or built-in.
func (s *Styles) NumFmtCode(id int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numFmtCodeLocked(id)
}

func (s *Styles) numFmtCodeLocked(id int) (string, bool) {
	if code, ok := s.numFmtCode[id]; ok {
		return code, true
	}
	return s.builtins.Code(id)
}

// IsDate reports whether cell format xf renders dates. The verdict is cached
// per index.
func (s *Styles) IsDate(xf int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if xf < 0 || xf >= len(s.xfs) {
		return false, types.Boundsf("cell format %d out of range [0,%d)", xf, len(s.xfs))
	}
	switch s.dates[xf] {
	case dateYes:
		return true, nil
	case dateNo:
		return false, nil
	}
	id := s.xfs[xf].NumFmtID
	isDate := IsDateFormat(id, s.numFmtCode[id])
	if isDate {
		s.dates[xf] = dateYes
	} else {
		s.dates[xf] = dateNo
	}
	return isDate, nil
}

// XF returns cell-format record i.
func (s *Styles) XF(i int) (XF, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.xfs) {
		return XF{}, types.Boundsf("cell format %d out of range [0,%d)", i, len(s.xfs))
	}
	return s.xfs[i], nil
}

// Font returns font i.
func (s *Styles) Font(i int) (Font, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.fonts) {
		return Font{}, types.Boundsf("font %d out of range [0,%d)", i, len(s.fonts))
	}
	return s.fonts[i], nil
}

// Fill returns fill i.
func (s *Styles) Fill(i int) (Fill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.fills) {
		return Fill{}, types.Boundsf("fill %d out of range [0,%d)", i, len(s.fills))
	}
	return s.fills[i], nil
}

// Border returns border i.
func (s *Styles) Border(i int) (Border, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.borders) {
		return Border{}, types.Boundsf("border %d out of range [0,%d)", i, len(s.borders))
	}
	return s.borders[i], nil
}

// Counts returns the catalog sizes.
func (s *Styles) Counts() (numFmts, fonts, fills, borders, xfs int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.numFmts), len(s.fonts), len(s.fills), len(s.borders), len(s.xfs)
}

// NumFmts returns a copy of the custom number formats.
func (s *Styles) NumFmts() []NumFmt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]NumFmt(nil), s.numFmts...)
}
