package sheet

import (
	"math"
	"strconv"
	"time"

	"github.com/joshuapare/sheetkit/internal/format"
	"github.com/joshuapare/sheetkit/pkg/types"
)

// Cell is one decoded cell. Text payloads borrow the reader's scratch
// buffer and are valid until the next Reader.Next.
type Cell struct {
	Col   int // 1-based column
	Type  types.CellType
	Style int // cell-format index (the s attribute)

	num     int64
	flt     float64
	shared  string
	raw     []byte
	formula []byte
}

func (c *Cell) clear(col int) {
	*c = Cell{Col: col}
}

// Ref returns the A1 reference of the cell in row.
func (c *Cell) Ref(row int) string { return format.CellRef(c.Col, row) }

// Raw returns the decoded value text: the numeric text of number cells, the
// literal of inline, formula and error cells. It is nil for shared strings,
// booleans and blanks.
func (c *Cell) Raw() []byte { return c.raw }

// Formula returns the cell's formula text, if any.
func (c *Cell) Formula() []byte { return c.formula }

func (c *Cell) text() string {
	if c.Type == types.SharedText {
		return c.shared
	}
	return string(c.raw)
}

func (c *Cell) convErr(target string, err error) error {
	return &types.ConversionError{Value: c.String(), Target: target, Err: err}
}

// Int returns the cell as an integer. Doubles must be integral; text is
// parsed.
func (c *Cell) Int() (int64, error) {
	switch c.Type {
	case types.Blank:
		return 0, nil
	case types.Int, types.Long:
		return c.num, nil
	case types.Double:
		if c.flt != math.Trunc(c.flt) || c.flt > math.MaxInt64 || c.flt < math.MinInt64 {
			return 0, c.convErr("int64", nil)
		}
		return int64(c.flt), nil
	case types.Bool:
		return c.num, nil
	}
	v, err := strconv.ParseInt(c.text(), 10, 64)
	if err != nil {
		return 0, c.convErr("int64", err)
	}
	return v, nil
}

// Float returns the cell as a float64.
func (c *Cell) Float() (float64, error) {
	switch c.Type {
	case types.Blank:
		return 0, nil
	case types.Int, types.Long, types.Bool:
		return float64(c.num), nil
	case types.Double:
		return c.flt, nil
	}
	v, err := strconv.ParseFloat(c.text(), 64)
	if err != nil {
		return 0, c.convErr("float64", err)
	}
	return v, nil
}

// Bool returns the cell as a bool. Numbers are true when non-zero.
func (c *Cell) Bool() (bool, error) {
	switch c.Type {
	case types.Blank:
		return false, nil
	case types.Bool, types.Int, types.Long:
		return c.num != 0, nil
	case types.Double:
		return c.flt != 0, nil
	}
	v, err := strconv.ParseBool(c.text())
	if err != nil {
		return false, c.convErr("bool", err)
	}
	return v, nil
}

// String renders the cell as text. Numbers keep their markup spelling.
func (c *Cell) String() string {
	switch c.Type {
	case types.Blank:
		return ""
	case types.Bool:
		if c.num != 0 {
			return "TRUE"
		}
		return "FALSE"
	}
	return c.text()
}

// isoLayouts are accepted for t="d" cells and text holding dates.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Time interprets the cell as a serial date in the given date system, or
// as an ISO 8601 timestamp for text cells.
func (c *Cell) Time(date1904 bool) (time.Time, error) {
	switch c.Type {
	case types.Int, types.Long:
		return ToTime(float64(c.num), date1904), nil
	case types.Double:
		return ToTime(c.flt, date1904), nil
	case types.Blank:
		return time.Time{}, c.convErr("time.Time", nil)
	}
	s := c.text()
	var lastErr error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, c.convErr("time.Time", lastErr)
}

// classifyNumber decodes numeric cell text into c. Text of only digits with
// an optional leading '-' is integral; text with a single '.' is a double;
// anything else stays opaque text.
func (c *Cell) classifyNumber(raw []byte) {
	c.raw = raw
	if len(raw) == 0 {
		c.Type = types.Blank
		return
	}

	digits := raw
	neg := raw[0] == '-'
	if neg {
		digits = raw[1:]
	}
	dots, others := 0, 0
	for _, ch := range digits {
		switch {
		case ch >= '0' && ch <= '9':
		case ch == '.':
			dots++
		default:
			others++
		}
	}

	switch {
	case len(digits) > 0 && dots == 0 && others == 0:
		if v, ok := parseInt64(digits, neg); ok {
			c.num = v
			if v >= math.MinInt32 && v <= math.MaxInt32 {
				c.Type = types.Int
			} else {
				c.Type = types.Long
			}
			return
		}
		// Wider than int64.
		fallthrough
	case dots == 1:
		if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
			c.flt = f
			c.Type = types.Double
			return
		}
	}
	c.Type = types.Text
}

// parseInt64 accumulates a digit run, reporting false on overflow.
func parseInt64(digits []byte, neg bool) (int64, bool) {
	var u uint64
	for _, ch := range digits {
		d := uint64(ch - '0')
		if u > (math.MaxUint64-d)/10 {
			return 0, false
		}
		u = u*10 + d
	}
	if neg {
		if u > 1<<63 {
			return 0, false
		}
		return -int64(u), true
	}
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}
