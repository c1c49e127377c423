package inthash

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const noEntry int32 = -1

func TestMap_PutGetRemove(t *testing.T) {
	m := New(16, noEntry)

	require.Equal(t, noEntry, m.Put(7, 70))
	require.Equal(t, noEntry, m.Put(9, 90))
	require.Equal(t, 2, m.Len())

	assert.Equal(t, int32(70), m.Get(7))
	assert.Equal(t, int32(90), m.Get(9))
	assert.Equal(t, noEntry, m.Get(8))

	// Overwrite returns the old value.
	assert.Equal(t, int32(70), m.Put(7, 71))
	assert.Equal(t, int32(71), m.Get(7))
	assert.Equal(t, 2, m.Len())

	assert.Equal(t, int32(71), m.Remove(7))
	assert.Equal(t, noEntry, m.Get(7))
	assert.False(t, m.Contains(7))
	assert.Equal(t, noEntry, m.Remove(7))
	assert.Equal(t, 1, m.Len())

	// Reinsert after removal.
	assert.Equal(t, noEntry, m.Put(7, 72))
	assert.Equal(t, int32(72), m.Get(7))
	assert.Equal(t, 2, m.Len())
}

func TestMap_SentinelIsCallerSupplied(t *testing.T) {
	m := New(4, math.MinInt32)
	assert.Equal(t, int32(math.MinInt32), m.Get(1))
	assert.Equal(t, int32(math.MinInt32), m.NoEntry())

	v, ok := m.Lookup(1)
	assert.False(t, ok)
	assert.Equal(t, int32(math.MinInt32), v)

	m.Put(1, 0)
	v, ok = m.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, int32(0), v)
}

func TestMap_InsertKeyReportsExisting(t *testing.T) {
	m := New(16, noEntry)

	slot := m.InsertKey(42)
	require.GreaterOrEqual(t, slot, 0)
	m.SetAt(slot, 4200)

	again := m.InsertKey(42)
	require.Less(t, again, 0)
	assert.Equal(t, slot, -again-1)
	assert.Equal(t, int32(4200), m.ValueAt(-again-1))
	assert.Equal(t, 1, m.Len())
}

func TestMap_InsertKeySlotValidAcrossGrowth(t *testing.T) {
	m := New(1, noEntry)
	for k := int32(0); k < 200; k++ {
		slot := m.InsertKey(k)
		require.GreaterOrEqual(t, slot, 0, "key %d", k)
		m.SetAt(slot, k*10)
	}
	for k := int32(0); k < 200; k++ {
		require.Equal(t, k*10, m.Get(k), "key %d", k)
	}
}

func TestMap_NegativeKeys(t *testing.T) {
	m := New(8, noEntry)
	keys := []int32{-1, -2, math.MinInt32, math.MaxInt32, 0}
	for i, k := range keys {
		m.Put(k, int32(i))
	}
	for i, k := range keys {
		assert.Equal(t, int32(i), m.Get(k), "key %d", k)
	}
}

func TestMap_GrowthKeepsLoadFactor(t *testing.T) {
	m := New(4, noEntry)
	initial := m.Cap()

	for k := int32(0); k < 1000; k++ {
		m.Put(k, -k)
	}

	require.Equal(t, 1000, m.Len())
	assert.Greater(t, m.Cap(), initial)
	assert.GreaterOrEqual(t, m.Cap(), 2*m.Len())
	for k := int32(0); k < 1000; k++ {
		require.Equal(t, -k, m.Get(k))
	}
}

func TestMap_TombstonesCompactInPlace(t *testing.T) {
	m := New(2, noEntry)
	capBefore := m.Cap()

	for k := int32(1); k <= 1000; k++ {
		m.Put(k, k)
		require.Equal(t, k, m.Remove(k))
	}

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, capBefore, m.Cap(), "tombstone pressure must not grow the table")

	m.Put(5000, 1)
	assert.Equal(t, int32(1), m.Get(5000))
}

func TestMap_TombstoneDoesNotBreakProbeChain(t *testing.T) {
	m := New(16, noEntry)
	capacity := int32(m.Cap())

	// Same primary slot: a, a+cap, a+2cap.
	a, b, c := int32(3), 3+capacity, 3+2*capacity
	m.Put(a, 1)
	m.Put(b, 2)
	m.Put(c, 3)

	m.Remove(b)
	assert.Equal(t, int32(1), m.Get(a))
	assert.Equal(t, int32(3), m.Get(c))
	assert.Equal(t, noEntry, m.Get(b))

	// Reinsert reuses the tombstone and does not duplicate c.
	m.Put(c, 30)
	m.Put(b, 20)
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, int32(20), m.Get(b))
	assert.Equal(t, int32(30), m.Get(c))
}

func TestMap_ClearAndRange(t *testing.T) {
	m := New(8, noEntry)
	for k := int32(1); k <= 5; k++ {
		m.Put(k, k*k)
	}

	seen := map[int32]int32{}
	m.Range(func(k, v int32) bool {
		seen[k] = v
		return true
	})
	assert.Equal(t, map[int32]int32{1: 1, 2: 4, 3: 9, 4: 16, 5: 25}, seen)

	calls := 0
	m.Range(func(int32, int32) bool {
		calls++
		return false
	})
	assert.Equal(t, 1, calls)

	capBefore := m.Cap()
	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, capBefore, m.Cap())
	assert.False(t, m.Contains(3))

	m.Put(3, 33)
	assert.Equal(t, int32(33), m.Get(3))
}

func TestMap_MatchesBuiltinMap(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	m := New(4, noEntry)
	ref := map[int32]int32{}

	for range 20000 {
		k := int32(rng.IntN(512)) - 256
		switch rng.IntN(3) {
		case 0, 1:
			v := rng.Int32()
			want, ok := ref[k]
			if !ok {
				want = noEntry
			}
			require.Equal(t, want, m.Put(k, v))
			ref[k] = v
		case 2:
			want, ok := ref[k]
			if !ok {
				want = noEntry
			}
			require.Equal(t, want, m.Remove(k))
			delete(ref, k)
		}
		require.Equal(t, len(ref), m.Len())
	}

	for k, v := range ref {
		require.Equal(t, v, m.Get(k))
	}
}

func TestNextPrime(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 5},
		{5, 5},
		{6, 7},
		{8, 11},
		{14, 17},
		{100, 101},
		{1000, 1009},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextPrime(tt.in), "NextPrime(%d)", tt.in)
	}
}
