package format

import "bytes"

// Attr is a name/value pair borrowed from tag bytes. Value is the raw,
// still-escaped attribute text.
type Attr struct {
	Name  []byte
	Value []byte
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

// NextAttr decodes the attribute at or after pos in tag, where tag holds the
// bytes between the element name and the closing '>' (a trailing '/' is
// tolerated). It returns the attribute, the position after it, and false
// when no further attribute can be decoded.
func NextAttr(tag []byte, pos int) (Attr, int, bool) {
	i := pos
	for i < len(tag) && isSpace(tag[i]) {
		i++
	}
	if i >= len(tag) || tag[i] == '/' || tag[i] == '>' {
		return Attr{}, len(tag), false
	}
	nameStart := i
	for i < len(tag) && tag[i] != '=' && !isSpace(tag[i]) && tag[i] != '/' && tag[i] != '>' {
		i++
	}
	name := tag[nameStart:i]
	for i < len(tag) && isSpace(tag[i]) {
		i++
	}
	if i >= len(tag) || tag[i] != '=' {
		return Attr{}, len(tag), false
	}
	i++
	for i < len(tag) && isSpace(tag[i]) {
		i++
	}
	if i >= len(tag) || (tag[i] != '"' && tag[i] != '\'') {
		return Attr{}, len(tag), false
	}
	quote := tag[i]
	i++
	end := bytes.IndexByte(tag[i:], quote)
	if end < 0 {
		return Attr{}, len(tag), false
	}
	value := tag[i : i+end]
	return Attr{Name: name, Value: value}, i + end + 1, true
}

// FindAttr returns the raw value of the named attribute in tag.
func FindAttr(tag, name []byte) ([]byte, bool) {
	pos := 0
	for {
		a, next, ok := NextAttr(tag, pos)
		if !ok {
			return nil, false
		}
		if bytes.Equal(a.Name, name) {
			return a.Value, true
		}
		pos = next
	}
}

// IsOpenTag reports whether b[i:] starts with marker followed by a character
// that terminates an element name. This keeps "<c" from matching "<cols".
func IsOpenTag(b []byte, i int, marker []byte) bool {
	if !bytes.HasPrefix(b[i:], marker) {
		return false
	}
	j := i + len(marker)
	if j >= len(b) {
		return false
	}
	c := b[j]
	return isSpace(c) || c == '>' || c == '/'
}

// IndexOpenTag returns the index of the next element opened with marker at or
// after from, or -1. A match at the very end of b (where the terminating
// character is not yet buffered) is reported as -1 so callers refill.
func IndexOpenTag(b []byte, from int, marker []byte) int {
	for from <= len(b) {
		i := bytes.Index(b[from:], marker)
		if i < 0 {
			return -1
		}
		i += from
		if IsOpenTag(b, i, marker) {
			return i
		}
		if i+len(marker) >= len(b) {
			return -1
		}
		from = i + 1
	}
	return -1
}

// ParseUint decodes a non-negative decimal integer. It rejects empty input,
// non-digits and values that overflow int.
func ParseUint(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		d := int(c - '0')
		if n > (maxInt-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}

const maxInt = int(^uint(0) >> 1)

// IsTrue decodes an xsd:boolean attribute value.
func IsTrue(b []byte) bool {
	return (len(b) == 1 && b[0] == '1') || string(b) == "true"
}
