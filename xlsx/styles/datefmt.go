package styles

import (
	"strings"

	"github.com/joshuapare/sheetkit/pkg/types"
)

// dateThreshold is the minimum score for a code to be treated as a date.
const dateThreshold = 70

// IsDateFormat reports whether number format id with the given code renders
// dates or times. Built-in date ids are always dates. Otherwise a non-empty
// code is scored by isDateCode; a built-in id without a code is not a date.
func IsDateFormat(id int, code string) bool {
	if id >= 0 && id < types.ReservedNumFmtLimit && IsDateID(id) {
		return true
	}
	if code == "" {
		return false
	}
	return isDateCode(code)
}

// dateCounts tallies the date and time letters of a format code.
type dateCounts struct {
	y, m, d, h, s int
	am, pm        int
	localeBonus   bool
}

// scanDateCode counts letters; ok is false when the code is rejected
// outright.
func scanDateCode(code string) (c dateCounts, ok bool) {
	lower := strings.ToLower(code)
	for i := 0; i < len(lower); {
		ch := lower[i]
		switch ch {
		case '\\':
			// escaped literal
			i += 2
			continue
		case '[':
			end := strings.IndexByte(lower[i:], ']')
			if end < 0 {
				i = len(lower)
				continue
			}
			body := lower[i+1 : i+end]
			switch {
			case strings.HasPrefix(body, "dbnum1"), strings.HasPrefix(body, "dbnum2"), strings.HasPrefix(body, "dbnum3"):
				// numeral system marker, not scored
			case strings.HasPrefix(body, "$-"):
				c.localeBonus = true
			}
			i += end + 1
			continue
		case 'a':
			if strings.HasPrefix(lower[i:], "am") {
				c.am++
				if c.am > 1 {
					return c, false
				}
				i += 2
				continue
			}
		case 'p':
			if strings.HasPrefix(lower[i:], "pm") {
				c.pm++
				if c.pm > 1 {
					return c, false
				}
				i += 2
				continue
			}
		case 'y', 'm', 'd', 'h', 's':
			run := 1
			for i+run < len(lower) && lower[i+run] == ch {
				run++
			}
			switch ch {
			case 'y':
				if run > 4 {
					return c, false
				}
				c.y += run
			case 'm':
				c.m += run
			case 'd':
				c.d += run
			case 'h':
				if run > 4 {
					return c, false
				}
				c.h += run
			case 's':
				if run > 4 {
					return c, false
				}
				c.s += run
			}
			i += run
			continue
		}
		i++
	}
	return c, true
}

// dateScore scores a format code. A rejected code scores zero.
func dateScore(code string) int {
	c, ok := scanDateCode(code)
	if !ok {
		return 0
	}
	score := 5 * (c.y + c.m + c.d + c.h + c.s)

	switch {
	case c.y > 0 && c.m > 0 && c.d > 0 && c.y+c.m+c.d >= 4:
		score += 70
	case (c.y > 0 && c.m > 0 && c.y+c.m >= 3) || (c.m > 0 && c.d > 0) || onlyYears(code):
		score += 60
	}

	switch {
	case c.h > 0 && c.m > 0 && c.s > 0 && c.h+c.m+c.s > 3:
		score += 70
	case (c.h > 0 && c.m > 0) || (c.m > 0 && c.s > 0):
		score += 60
	}

	if c.am > 0 && c.pm > 0 {
		score += 50
	}
	if c.localeBonus {
		score += 50
	}
	return score
}

// onlyYears reports whether code consists of year letters alone.
func onlyYears(code string) bool {
	if code == "" {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] != 'y' && code[i] != 'Y' {
			return false
		}
	}
	return true
}

func isDateCode(code string) bool {
	return dateScore(code) >= dateThreshold
}
