package listMap

import "iter"

type listMapEntry[K comparable, V any] struct {
	Key   K
	Value V
}

// ListMap is a small map which keeps the insertion order of its keys.
// It is cheaper than a map as long as only a few entries are stored.
type ListMap[K comparable, V any] []listMapEntry[K, V]

func New[K comparable, V any](size int) ListMap[K, V] {
	return make(ListMap[K, V], 0, size)
}

func (l ListMap[K, V]) Get(key K) (V, bool) {
	for _, e := range l {
		if e.Key == key {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

// Append sets the value of the given key. An existing entry keeps its
// position, a new entry is added at the end.
func (l ListMap[K, V]) Append(key K, v V) ListMap[K, V] {
	for i := range l {
		if l[i].Key == key {
			l[i].Value = v
			return l
		}
	}
	return append(l, listMapEntry[K, V]{Key: key, Value: v})
}

func (l ListMap[K, V]) Size() int {
	return len(l)
}

// Iter iterates over the entries in insertion order
func (l ListMap[K, V]) Iter(yield func(K, V) bool) {
	for _, e := range l {
		if !yield(e.Key, e.Value) {
			return
		}
	}
}

// All returns the entries as an iter.Seq2
func (l ListMap[K, V]) All() iter.Seq2[K, V] {
	return l.Iter
}
