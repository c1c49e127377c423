// Package inthash provides an open-addressing hash map from int32 keys to
// int32 values, used by the style and string dedup caches.
//
// # Layout
//
// The table is three parallel arrays of equal, prime length:
//
//	keys   []int32
//	values []int32
//	states []byte  // free, full or removed
//
// There are no per-entry allocations and no pointers for the garbage
// collector to trace. Lookups and inserts never allocate; only growth does.
//
// # Probing
//
// The primary slot is hash % capacity with hash = key & 0x7fffffff.
// Collisions are resolved by double hashing with the stride
//
//	probe = 1 + hash % (capacity - 2)
//
// walking downwards and wrapping modulo capacity. Because the capacity is
// prime, every stride is coprime with it and a probe sequence visits every
// slot before returning to its start.
//
// # Removal
//
// Remove leaves a tombstone (removed) rather than a free slot so probe
// sequences that pass through the slot still reach keys stored beyond it.
// Inserts reuse the first tombstone seen on their probe path.
//
// # Growth
//
// The load factor is kept at or below 0.5. When an insert pushes the number
// of live entries past the threshold the table is rebuilt at the next prime
// at least twice the old capacity; when tombstones consume the last free
// slot it is rebuilt at the same capacity. Rebuilding re-inserts every live
// entry in one pass.
//
// # Insert-or-find
//
// InsertKey reports whether the key was new through the sign of its result:
// a non-negative slot for a fresh insertion, -slot-1 when the key was
// already present. Callers use it to dedup in a single probe:
//
//	slot := m.InsertKey(int32(key))
//	if slot < 0 {
//	    return m.ValueAt(-slot - 1) // existing id
//	}
//	m.SetAt(slot, nextID)
//
// # Thread Safety
//
// Map instances are not thread-safe. Callers must synchronize access
// externally.
package inthash
