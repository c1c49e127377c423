package sst

import (
	"io"
	"strconv"
	"sync"

	"github.com/joshuapare/sheetkit/internal/format"
	"github.com/joshuapare/sheetkit/pkg/types"
	"github.com/joshuapare/sheetkit/xlsx/inthash"
)

// Table interns strings for a workbook being written. Ids are assigned
// sequentially from zero in first-seen order.
type Table struct {
	mu     sync.Mutex
	arena  []byte
	ends   []int    // ends[id] is the arena offset one past entry id
	hashes []uint32 // hashes[id] caches fnv32 of entry id
	slots  []int32  // dedup index: id+1, or 0 when empty
	refs   int
}

// NewTable creates a table sized for about capacity distinct strings.
func NewTable(capacity int) *Table {
	if capacity < 1 {
		capacity = 1
	}
	return &Table{
		ends:   make([]int, 0, capacity),
		hashes: make([]uint32, 0, capacity),
		slots:  make([]int32, inthash.NextPrime(capacity*2)),
	}
}

func (t *Table) entry(id int) []byte {
	start := 0
	if id > 0 {
		start = t.ends[id-1]
	}
	return t.arena[start:t.ends[id]]
}

// probe returns the index slot for text and the id stored there, or -1
// when the slot is empty.
func (t *Table) probe(h uint32, text string) (int, int) {
	hash := int(h & 0x7fffffff)
	capacity := len(t.slots)
	slot := hash % capacity
	step := 1 + hash%(capacity-2)
	for {
		s := t.slots[slot]
		if s == 0 {
			return slot, -1
		}
		id := int(s - 1)
		if t.hashes[id] == h && string(t.entry(id)) == text {
			return slot, id
		}
		slot -= step
		if slot < 0 {
			slot += capacity
		}
	}
}

func (t *Table) grow() {
	t.slots = make([]int32, inthash.NextPrime(len(t.slots)*2))
	capacity := len(t.slots)
	for id, h := range t.hashes {
		hash := int(h & 0x7fffffff)
		slot := hash % capacity
		step := 1 + hash%(capacity-2)
		for t.slots[slot] != 0 {
			slot -= step
			if slot < 0 {
				slot += capacity
			}
		}
		t.slots[slot] = int32(id + 1)
	}
}

// Add interns text and returns its id. added is false when text was already
// present, in which case the existing id is returned and nothing is stored.
func (t *Table) Add(text string) (id int, added bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refs++
	h := fnv32(text)
	if 2*(len(t.ends)+1) > len(t.slots) {
		t.grow()
	}
	slot, id := t.probe(h, text)
	if id >= 0 {
		return id, false
	}

	id = len(t.ends)
	t.arena = append(t.arena, text...)
	t.ends = append(t.ends, len(t.arena))
	t.hashes = append(t.hashes, h)
	t.slots[slot] = int32(id + 1)
	return id, true
}

// Lookup returns the id of text without interning it.
func (t *Table) Lookup(text string) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, id := t.probe(fnv32(text), text)
	return id, id >= 0
}

// Get returns the string with the given id.
func (t *Table) Get(id int) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.ends) {
		return "", types.Boundsf("shared string %d out of range [0,%d)", id, len(t.ends))
	}
	return string(t.entry(id)), nil
}

// Len returns the number of distinct strings.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ends)
}

// Refs returns the number of Add calls, emitted as the fragment's count.
func (t *Table) Refs() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refs
}

// WriteTo writes the sharedStrings fragment.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]byte, 0, len(format.XMLHeader)+len(t.arena)+len(t.ends)*24+128)
	out = append(out, format.XMLHeader...)
	out = append(out, `<sst xmlns="`...)
	out = append(out, format.NamespaceMain...)
	out = append(out, `" count="`...)
	out = strconv.AppendInt(out, int64(t.refs), 10)
	out = append(out, `" uniqueCount="`...)
	out = strconv.AppendInt(out, int64(len(t.ends)), 10)
	out = append(out, `">`...)
	for id := range t.ends {
		s := string(t.entry(id))
		if format.NeedsPreserve(s) {
			out = append(out, `<si><t xml:space="preserve">`...)
		} else {
			out = append(out, `<si><t>`...)
		}
		out = format.AppendEscapedText(out, s)
		out = append(out, `</t></si>`...)
	}
	out = append(out, `</sst>`...)

	n, err := w.Write(out)
	return int64(n), err
}
