// Package container provides the generic hash-indexed associative container
// that backs the transpiler's registries and symbol tables.
//
// A Map resolves collisions by separate chaining. New entries are prepended to
// their bucket chain, so iteration order is neither insertion order nor stable
// across resizes. Callers that need a deterministic order must sort.
//
// Hashing and equality come from a Strategy chosen at construction time; the
// optional Ownership capabilities decide whether keys and values are stored as
// given or deep-copied on insertion and released on overwrite, removal and
// destruction.
package container

const (
	// DefaultCapacity is the bucket count used when New is given a capacity <= 0.
	DefaultCapacity = 16

	// MinCapacity is the smallest bucket array a Map will allocate.
	MinCapacity = 8

	// LoadFactor is the size/bucket ratio past which Put doubles the bucket array.
	LoadFactor = 0.75
)

// Strategy supplies hashing and key equality for a Map.
//
// Equal must agree with Hash for lookups to be reliable: keys that compare
// equal are expected to hash to the same value. FloatKeys deliberately bends
// this rule; see its documentation.
type Strategy[K any] interface {
	Hash(key K) uint64
	Equal(a, b K) bool
}

// Ownership decides how a Map takes ownership of keys or values.
//
// Copy is applied when an element enters the map; Free is applied when the map
// lets go of an element it owns (overwrite, Remove, Clear, Destroy).
type Ownership[T any] interface {
	Copy(v T) T
	Free(v T)
}

// Config configures a Map. Keys is required. A nil ownership stores elements
// as given and never frees them.
type Config[K, V any] struct {
	Keys           Strategy[K]
	KeyOwnership   Ownership[K]
	ValueOwnership Ownership[V]
}

type entry[K, V any] struct {
	key   K
	value V
	next  *entry[K, V]
}

// Map is a generic hash map with separate chaining.
//
// The zero value is not usable; construct maps with New.
// A Map is not safe for concurrent use.
type Map[K, V any] struct {
	buckets []*entry[K, V]
	size    int
	cfg     Config[K, V]
}

// New creates a map with the given initial bucket capacity.
// Capacities below MinCapacity are raised to MinCapacity; a capacity <= 0
// selects DefaultCapacity. New panics if cfg.Keys is nil.
func New[K, V any](capacity int, cfg Config[K, V]) *Map[K, V] {
	if cfg.Keys == nil {
		panic("container: Config.Keys strategy is required")
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	return &Map[K, V]{
		buckets: make([]*entry[K, V], capacity),
		cfg:     cfg,
	}
}

// Put inserts key with value, or overwrites the value of an existing key.
// It reports whether the key was new.
func (m *Map[K, V]) Put(key K, value V) bool {
	m.ensureBuckets()
	if float64(m.size)/float64(len(m.buckets)) > LoadFactor {
		m.resize(len(m.buckets) * 2)
	}

	idx := m.index(key)
	for e := m.buckets[idx]; e != nil; e = e.next {
		if m.cfg.Keys.Equal(e.key, key) {
			old := e.value
			e.value = m.copyValue(value)
			if m.cfg.ValueOwnership != nil {
				m.cfg.ValueOwnership.Free(old)
			}
			return false
		}
	}

	m.buckets[idx] = &entry[K, V]{
		key:   m.copyKey(key),
		value: m.copyValue(value),
		next:  m.buckets[idx],
	}
	m.size++
	return true
}

// Get returns the value stored under key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if e := m.find(key); e != nil {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	return m.find(key) != nil
}

// Remove deletes key and reports whether it was present.
func (m *Map[K, V]) Remove(key K) bool {
	if len(m.buckets) == 0 {
		return false
	}
	idx := m.index(key)
	var prev *entry[K, V]
	for e := m.buckets[idx]; e != nil; e = e.next {
		if m.cfg.Keys.Equal(e.key, key) {
			if prev == nil {
				m.buckets[idx] = e.next
			} else {
				prev.next = e.next
			}
			m.release(e)
			m.size--
			return true
		}
		prev = e
	}
	return false
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.size
}

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.size == 0
}

// Cap returns the current bucket count.
func (m *Map[K, V]) Cap() int {
	return len(m.buckets)
}

// Clear removes every entry, releasing owned keys and values.
// The bucket array keeps its current capacity.
func (m *Map[K, V]) Clear() {
	for i, e := range m.buckets {
		for e != nil {
			next := e.next
			m.release(e)
			e = next
		}
		m.buckets[i] = nil
	}
	m.size = 0
}

// Destroy clears the map and drops its bucket array. A destroyed map behaves
// like an empty one; the next Put allocates MinCapacity buckets.
func (m *Map[K, V]) Destroy() {
	m.Clear()
	m.buckets = nil
}

// Range calls fn for every entry until fn returns false. The order is bucket
// order, then chain order. Mutating the map during Range is undefined.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	it := m.Iterator()
	for {
		k, v, ok := it.Next()
		if !ok || !fn(k, v) {
			return
		}
	}
}

// Keys returns all keys in iteration order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.size)
	m.Range(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func (m *Map[K, V]) ensureBuckets() {
	if len(m.buckets) == 0 {
		m.buckets = make([]*entry[K, V], MinCapacity)
	}
}

func (m *Map[K, V]) index(key K) int {
	return int(m.cfg.Keys.Hash(key) % uint64(len(m.buckets)))
}

func (m *Map[K, V]) find(key K) *entry[K, V] {
	if len(m.buckets) == 0 {
		return nil
	}
	for e := m.buckets[m.index(key)]; e != nil; e = e.next {
		if m.cfg.Keys.Equal(e.key, key) {
			return e
		}
	}
	return nil
}

// resize rehashes every entry into a new bucket array. Entries are relinked,
// not copied, so ownership hooks are not invoked.
func (m *Map[K, V]) resize(capacity int) {
	if capacity < MinCapacity {
		return
	}
	old := m.buckets
	m.buckets = make([]*entry[K, V], capacity)
	for _, e := range old {
		for e != nil {
			next := e.next
			idx := m.index(e.key)
			e.next = m.buckets[idx]
			m.buckets[idx] = e
			e = next
		}
	}
}

func (m *Map[K, V]) copyKey(k K) K {
	if m.cfg.KeyOwnership != nil {
		return m.cfg.KeyOwnership.Copy(k)
	}
	return k
}

func (m *Map[K, V]) copyValue(v V) V {
	if m.cfg.ValueOwnership != nil {
		return m.cfg.ValueOwnership.Copy(v)
	}
	return v
}

func (m *Map[K, V]) release(e *entry[K, V]) {
	if m.cfg.KeyOwnership != nil {
		m.cfg.KeyOwnership.Free(e.key)
	}
	if m.cfg.ValueOwnership != nil {
		m.cfg.ValueOwnership.Free(e.value)
	}
}

// Iterator walks a Map's non-empty buckets in order, then each chain in order.
type Iterator[K, V any] struct {
	m      *Map[K, V]
	bucket int
	cur    *entry[K, V]
}

// Iterator returns an iterator positioned before the first entry.
func (m *Map[K, V]) Iterator() *Iterator[K, V] {
	it := &Iterator[K, V]{m: m, bucket: -1}
	it.seek()
	return it
}

// HasNext reports whether Next will return another entry.
func (it *Iterator[K, V]) HasNext() bool {
	return it.cur != nil
}

// Next returns the next entry. ok is false once the iterator is exhausted.
func (it *Iterator[K, V]) Next() (key K, value V, ok bool) {
	if it.cur == nil {
		return key, value, false
	}
	e := it.cur
	if e.next != nil {
		it.cur = e.next
	} else {
		it.seek()
	}
	return e.key, e.value, true
}

// seek advances to the head of the next non-empty bucket.
func (it *Iterator[K, V]) seek() {
	it.cur = nil
	for i := it.bucket + 1; i < len(it.m.buckets); i++ {
		if it.m.buckets[i] != nil {
			it.bucket = i
			it.cur = it.m.buckets[i]
			return
		}
	}
	it.bucket = len(it.m.buckets)
}
