package sst

// FNV-1a constants for 32-bit hash.
const (
	fnvBasis32 uint32 = 2166136261
	fnvPrime32 uint32 = 16777619
)

func fnv32(s string) uint32 {
	h := fnvBasis32
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime32
	}
	return h
}
