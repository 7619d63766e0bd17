package container

import (
	"hash/fnv"
	"math"
	"strings"
	"unsafe"
)

// Epsilon is the tolerance FloatKeys uses for key equality.
const Epsilon = 1e-6

// Integer is the set of integer kinds IntKeys can hash.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// IntKeys hashes integer keys (including named integer types such as enums)
// with Wang's integer mix and compares them exactly.
type IntKeys[T Integer] struct{}

func (IntKeys[T]) Hash(key T) uint64 { return mix(uint64(key)) }
func (IntKeys[T]) Equal(a, b T) bool { return a == b }

// FloatKeys hashes the IEEE-754 bit pattern of a key but compares keys with
// an absolute tolerance of Epsilon.
//
// Two keys within Epsilon of each other are Equal yet usually hash to
// different buckets, so a lookup with a nearly-equal key only succeeds when
// both land in the same chain. Use exact bit patterns as keys when lookups
// must be reliable.
type FloatKeys struct{}

func (FloatKeys) Hash(key float64) uint64 { return mix64(math.Float64bits(key)) }
func (FloatKeys) Equal(a, b float64) bool { return math.Abs(a-b) < Epsilon }

// CharKeys hashes character keys.
type CharKeys struct{}

func (CharKeys) Hash(key rune) uint64 { return mix(uint64(uint32(key))) }
func (CharKeys) Equal(a, b rune) bool { return a == b }

// StringKeys hashes text keys with 64-bit FNV-1a.
type StringKeys struct{}

func (StringKeys) Hash(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}

func (StringKeys) Equal(a, b string) bool { return a == b }

// PointerKeys hashes and compares keys by address: two distinct pointers are
// different keys even when they point at equal values.
type PointerKeys[T any] struct{}

func (PointerKeys[T]) Hash(key *T) uint64 { return mix(uint64(uintptr(unsafe.Pointer(key)))) }
func (PointerKeys[T]) Equal(a, b *T) bool { return a == b }

// mix is Thomas Wang's integer hash.
func mix(k uint64) uint64 {
	k = (k ^ 61) ^ (k >> 16)
	k = k + (k << 3)
	k = k ^ (k >> 4)
	k = k * 0x27d4eb2d
	k = k ^ (k >> 15)
	return k
}

// mix64 is the MurmurHash3 64-bit finalizer. Float bit patterns keep their
// information in the high bits, which mix alone does not bring down to the
// bits that select a bucket.
func mix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

// OwnedStrings deep-copies strings on insertion. Free is a no-op because the
// garbage collector reclaims the copies; it exists so string maps share the
// same ownership shape as maps with explicit release hooks.
type OwnedStrings struct{}

func (OwnedStrings) Copy(s string) string { return strings.Clone(s) }
func (OwnedStrings) Free(string)          {}

// OwnershipFuncs adapts a pair of functions to the Ownership interface.
// A nil CopyFunc stores elements as given; a nil FreeFunc releases nothing.
type OwnershipFuncs[T any] struct {
	CopyFunc func(T) T
	FreeFunc func(T)
}

func (o OwnershipFuncs[T]) Copy(v T) T {
	if o.CopyFunc == nil {
		return v
	}
	return o.CopyFunc(v)
}

func (o OwnershipFuncs[T]) Free(v T) {
	if o.FreeFunc != nil {
		o.FreeFunc(v)
	}
}
