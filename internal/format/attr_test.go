package format

import "testing"

func TestNextAttr(t *testing.T) {
	tag := []byte(` r="B7" s = '3'  t="inlineStr"/`)
	var got []string
	pos := 0
	for {
		a, next, ok := NextAttr(tag, pos)
		if !ok {
			break
		}
		got = append(got, string(a.Name)+"="+string(a.Value))
		pos = next
	}
	want := []string{"r=B7", "s=3", "t=inlineStr"}
	if len(got) != len(want) {
		t.Fatalf("attrs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("attr %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNextAttrMalformed(t *testing.T) {
	for _, tag := range []string{` r`, ` r=B7`, ` r="B7`, ``, ` /`} {
		if _, _, ok := NextAttr([]byte(tag), 0); ok {
			t.Fatalf("NextAttr(%q) should fail", tag)
		}
	}
}

func TestFindAttr(t *testing.T) {
	tag := []byte(` r="3" spans="1:5" x14ac:dyDescent="0.25"`)
	if v, ok := FindAttr(tag, AttrSpans); !ok || string(v) != "1:5" {
		t.Fatalf("spans = %q,%v", v, ok)
	}
	if _, ok := FindAttr(tag, AttrType); ok {
		t.Fatalf("t should be absent")
	}
}

func TestIndexOpenTag(t *testing.T) {
	b := []byte(`<cols><col min="1"/></cols><c r="A1">`)
	if i := IndexOpenTag(b, 0, CellOpen); i != 27 {
		t.Fatalf("IndexOpenTag = %d, want 27", i)
	}
	// "<c" at the very end cannot be classified until more bytes arrive.
	if i := IndexOpenTag([]byte(`<v>1</v><c`), 0, CellOpen); i != -1 {
		t.Fatalf("IndexOpenTag at buffer end = %d, want -1", i)
	}
	if i := IndexOpenTag([]byte(`<row/>`), 0, RowOpen); i != 0 {
		t.Fatalf("self-closing row = %d, want 0", i)
	}
}

func TestParseUint(t *testing.T) {
	if n, ok := ParseUint([]byte("1048576")); !ok || n != 1048576 {
		t.Fatalf("ParseUint = %d,%v", n, ok)
	}
	for _, bad := range []string{"", "-1", "1a", "99999999999999999999999"} {
		if _, ok := ParseUint([]byte(bad)); ok {
			t.Fatalf("ParseUint(%q) should fail", bad)
		}
	}
}

func TestIsTrue(t *testing.T) {
	if !IsTrue([]byte("1")) || !IsTrue([]byte("true")) {
		t.Fatalf("expected true")
	}
	if IsTrue([]byte("0")) || IsTrue([]byte("false")) || IsTrue(nil) {
		t.Fatalf("expected false")
	}
}
