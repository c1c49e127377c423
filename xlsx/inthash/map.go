package inthash

import "math"

const (
	stateFree    byte = 0
	stateFull    byte = 1
	stateRemoved byte = 2
)

// loadFactor is the maximum ratio of live entries to capacity.
const loadFactor = 0.5

// minCapacity keeps capacity-2 >= 3 so the probe stride is well defined.
const minCapacity = 5

// Map is an open-addressing int32 -> int32 hash map. The zero value is not
// usable; construct with New.
type Map struct {
	keys    []int32
	values  []int32
	states  []byte
	size    int // live entries
	free    int // never-used slots
	maxSize int
	noEntry int32
}

// New creates a map able to hold initialCapacity entries before growing.
// noEntry is returned by Get and Remove for absent keys.
func New(initialCapacity int, noEntry int32) *Map {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	m := &Map{noEntry: noEntry}
	m.alloc(NextPrime(int(math.Ceil(float64(initialCapacity) / loadFactor))))
	return m
}

func (m *Map) alloc(capacity int) {
	m.keys = make([]int32, capacity)
	m.values = make([]int32, capacity)
	m.states = make([]byte, capacity)
	m.size = 0
	m.free = capacity
	m.maxSize = min(capacity-1, int(float64(capacity)*loadFactor))
}

// Len returns the number of live entries.
func (m *Map) Len() int { return m.size }

// Cap returns the number of slots.
func (m *Map) Cap() int { return len(m.states) }

// NoEntry returns the sentinel for absent keys.
func (m *Map) NoEntry() int32 { return m.noEntry }

func hashOf(key int32) int { return int(key & 0x7fffffff) }

// InsertKey claims a slot for key. It returns the slot when key was absent
// (the value at that slot is reset to zero and should be set with SetAt) or
// -slot-1 when key is already present.
func (m *Map) InsertKey(key int32) int {
	hash := hashOf(key)
	capacity := len(m.states)
	index := hash % capacity

	switch m.states[index] {
	case stateFree:
		return m.claim(index, key, true)
	case stateFull:
		if m.keys[index] == key {
			return -index - 1
		}
	}

	probe := 1 + hash%(capacity-2)
	loopIndex := index
	firstRemoved := -1
	for {
		if m.states[index] == stateRemoved && firstRemoved < 0 {
			firstRemoved = index
		}
		index -= probe
		if index < 0 {
			index += capacity
		}
		switch m.states[index] {
		case stateFree:
			if firstRemoved >= 0 {
				return m.claim(firstRemoved, key, false)
			}
			return m.claim(index, key, true)
		case stateFull:
			if m.keys[index] == key {
				return -index - 1
			}
		}
		if index == loopIndex {
			break
		}
	}
	if firstRemoved < 0 {
		// Unreachable while size <= maxSize < capacity.
		panic("inthash: table full")
	}
	return m.claim(firstRemoved, key, false)
}

// claim stores key at index and runs the growth check. It returns the slot
// holding key after any rebuild.
func (m *Map) claim(index int, key int32, usedFree bool) int {
	m.keys[index] = key
	m.values[index] = 0
	m.states[index] = stateFull
	if usedFree {
		m.free--
	}
	m.size++
	if m.size > m.maxSize || m.free == 0 {
		capacity := len(m.states)
		if m.size > m.maxSize {
			capacity = NextPrime(capacity << 1)
		}
		m.rehash(capacity)
		return m.index(key)
	}
	return index
}

// rehash rebuilds the table at newCapacity, re-inserting every live entry.
func (m *Map) rehash(newCapacity int) {
	oldKeys, oldValues, oldStates := m.keys, m.values, m.states
	m.alloc(newCapacity)
	for i, st := range oldStates {
		if st != stateFull {
			continue
		}
		slot := m.freeSlot(oldKeys[i])
		m.keys[slot] = oldKeys[i]
		m.values[slot] = oldValues[i]
		m.states[slot] = stateFull
		m.free--
		m.size++
	}
}

// freeSlot returns the first free slot on key's probe path. Used while
// rebuilding, when keys are known to be unique and no tombstones exist.
func (m *Map) freeSlot(key int32) int {
	hash := hashOf(key)
	capacity := len(m.states)
	index := hash % capacity
	if m.states[index] == stateFree {
		return index
	}
	probe := 1 + hash%(capacity-2)
	for {
		index -= probe
		if index < 0 {
			index += capacity
		}
		if m.states[index] == stateFree {
			return index
		}
	}
}

// index returns the slot holding key or -1.
func (m *Map) index(key int32) int {
	hash := hashOf(key)
	capacity := len(m.states)
	index := hash % capacity

	switch m.states[index] {
	case stateFree:
		return -1
	case stateFull:
		if m.keys[index] == key {
			return index
		}
	}

	probe := 1 + hash%(capacity-2)
	loopIndex := index
	for {
		index -= probe
		if index < 0 {
			index += capacity
		}
		switch m.states[index] {
		case stateFree:
			return -1
		case stateFull:
			if m.keys[index] == key {
				return index
			}
		}
		if index == loopIndex {
			return -1
		}
	}
}

// ValueAt returns the value stored in slot.
func (m *Map) ValueAt(slot int) int32 { return m.values[slot] }

// SetAt stores value in slot, which must come from InsertKey.
func (m *Map) SetAt(slot int, value int32) { m.values[slot] = value }

// Put associates value with key and returns the previous value, or the
// sentinel when key was absent.
func (m *Map) Put(key, value int32) int32 {
	slot := m.InsertKey(key)
	if slot < 0 {
		slot = -slot - 1
		prev := m.values[slot]
		m.values[slot] = value
		return prev
	}
	m.values[slot] = value
	return m.noEntry
}

// Get returns the value for key, or the sentinel when absent.
func (m *Map) Get(key int32) int32 {
	if i := m.index(key); i >= 0 {
		return m.values[i]
	}
	return m.noEntry
}

// Lookup returns the value for key and whether it was present.
func (m *Map) Lookup(key int32) (int32, bool) {
	if i := m.index(key); i >= 0 {
		return m.values[i], true
	}
	return m.noEntry, false
}

// Contains reports whether key is present.
func (m *Map) Contains(key int32) bool { return m.index(key) >= 0 }

// Remove deletes key, leaving a tombstone, and returns its value or the
// sentinel when absent.
func (m *Map) Remove(key int32) int32 {
	i := m.index(key)
	if i < 0 {
		return m.noEntry
	}
	prev := m.values[i]
	m.values[i] = m.noEntry
	m.states[i] = stateRemoved
	m.size--
	return prev
}

// Clear removes every entry without shrinking.
func (m *Map) Clear() {
	clear(m.states)
	m.size = 0
	m.free = len(m.states)
}

// Range calls fn for every live entry in slot order until fn returns false.
func (m *Map) Range(fn func(key, value int32) bool) {
	for i, st := range m.states {
		if st == stateFull && !fn(m.keys[i], m.values[i]) {
			return
		}
	}
}
