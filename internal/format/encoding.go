package format

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// prologPeek is how many bytes are inspected for a BOM and XML declaration.
const prologPeek = 512

// NewDecoder wraps r so that it yields UTF-8 markup.
//
// Office suites write UTF-8, but fragments produced by other tools may start
// with a UTF-16 byte-order mark or declare a legacy encoding in the XML
// declaration (encoding="windows-1252"). Both are transcoded here so the
// tokenizers only ever scan UTF-8. An unknown encoding name falls back to the
// raw bytes.
func NewDecoder(r io.Reader) io.Reader {
	br := bufio.NewReaderSize(r, 4096)
	head, _ := br.Peek(prologPeek)

	switch {
	case bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}):
		_, _ = br.Discard(3)
		return br
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	}

	name := DeclaredEncoding(head)
	if name == "" || isUTF8(name) {
		return br
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return br
	}
	return transform.NewReader(br, enc.NewDecoder())
}

// DeclaredEncoding returns the encoding named by the XML declaration at the
// start of head, or "" when there is none.
func DeclaredEncoding(head []byte) string {
	if !bytes.HasPrefix(head, []byte("<?xml")) {
		return ""
	}
	end := bytes.Index(head, []byte("?>"))
	if end < 0 {
		return ""
	}
	v, ok := FindAttr(head[len("<?xml"):end], []byte("encoding"))
	if !ok {
		return ""
	}
	return string(v)
}

func isUTF8(name string) bool {
	n := strings.ToLower(name)
	return n == "utf-8" || n == "utf8"
}
