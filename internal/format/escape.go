package format

import (
	"bytes"
	"unicode/utf8"
)

const hexDigits = "0123456789ABCDEF"

// AppendEscapedText appends s escaped for element content. Control characters
// that XML 1.0 cannot carry are written as _xHHHH_ escapes, and a literal
// "_xHHHH_" sequence in s gets its underscore escaped so it survives a
// round trip.
func AppendEscapedText(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '&':
			dst = append(dst, "&amp;"...)
		case c == '<':
			dst = append(dst, "&lt;"...)
		case c == '>':
			dst = append(dst, "&gt;"...)
		case c < 0x20 && c != '\t' && c != '\n' && c != '\r':
			dst = appendHexEscape(dst, rune(c))
		case c == '_' && isHexEscape(s, i):
			dst = append(dst, "_x005F_"...)
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

// AppendEscapedAttr appends s escaped for a double-quoted attribute value.
// Control characters other than tab, newline and carriage return are dropped.
func AppendEscapedAttr(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '&':
			dst = append(dst, "&amp;"...)
		case '<':
			dst = append(dst, "&lt;"...)
		case '>':
			dst = append(dst, "&gt;"...)
		case '"':
			dst = append(dst, "&quot;"...)
		case '\t':
			dst = append(dst, "&#9;"...)
		case '\n':
			dst = append(dst, "&#10;"...)
		case '\r':
			dst = append(dst, "&#13;"...)
		default:
			if c >= 0x20 {
				dst = append(dst, c)
			}
		}
	}
	return dst
}

// NeedsPreserve reports whether s has leading or trailing whitespace that
// requires xml:space="preserve".
func NeedsPreserve(s string) bool {
	if s == "" {
		return false
	}
	return isSpace(s[0]) || isSpace(s[len(s)-1])
}

func appendHexEscape(dst []byte, r rune) []byte {
	return append(dst, '_', 'x',
		hexDigits[(r>>12)&0xF], hexDigits[(r>>8)&0xF],
		hexDigits[(r>>4)&0xF], hexDigits[r&0xF], '_')
}

// isHexEscape reports whether s[i:] starts with _xHHHH_.
func isHexEscape[T string | []byte](s T, i int) bool {
	if i+6 >= len(s) || s[i] != '_' || s[i+1] != 'x' || s[i+6] != '_' {
		return false
	}
	for j := i + 2; j < i+6; j++ {
		if hexVal(s[j]) < 0 {
			return false
		}
	}
	return true
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// AppendUnescaped appends src with XML entities, numeric character
// references and _xHHHH_ escapes decoded. Unknown entities are copied as is.
func AppendUnescaped(dst, src []byte) []byte {
	if bytes.IndexByte(src, '&') < 0 && bytes.IndexByte(src, '_') < 0 {
		return append(dst, src...)
	}
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '&':
			r, n := decodeEntity(src[i:])
			if n == 0 {
				dst = append(dst, c)
				i++
				continue
			}
			dst = utf8.AppendRune(dst, r)
			i += n
		case c == '_' && isHexEscape(src, i):
			r := rune(hexVal(src[i+2])<<12 | hexVal(src[i+3])<<8 | hexVal(src[i+4])<<4 | hexVal(src[i+5]))
			dst = utf8.AppendRune(dst, r)
			i += 7
		default:
			dst = append(dst, c)
			i++
		}
	}
	return dst
}

// decodeEntity decodes the entity at the start of b and returns the rune and
// the number of bytes consumed, or 0 when b does not start with a known entity.
func decodeEntity(b []byte) (rune, int) {
	end := bytes.IndexByte(b, ';')
	if end < 2 || end > 10 {
		return 0, 0
	}
	name := b[1:end]
	switch string(name) {
	case "amp":
		return '&', end + 1
	case "lt":
		return '<', end + 1
	case "gt":
		return '>', end + 1
	case "quot":
		return '"', end + 1
	case "apos":
		return '\'', end + 1
	}
	if name[0] != '#' || len(name) < 2 {
		return 0, 0
	}
	var r rune
	if name[1] == 'x' || name[1] == 'X' {
		if len(name) < 3 {
			return 0, 0
		}
		for _, c := range name[2:] {
			v := hexVal(c)
			if v < 0 {
				return 0, 0
			}
			r = r<<4 | rune(v)
		}
	} else {
		for _, c := range name[1:] {
			if c < '0' || c > '9' {
				return 0, 0
			}
			r = r*10 + rune(c-'0')
		}
	}
	if !utf8.ValidRune(r) {
		return 0, 0
	}
	return r, end + 1
}
