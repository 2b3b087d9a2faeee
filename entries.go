package sfv

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// entries is an insertion-ordered map with unique keys.
// Setting an existing key replaces its value in place.
type entries[V any] struct {
	om *orderedmap.OrderedMap[string, V]
}

func (e *entries[V]) set(key string, val V) {
	if e.om == nil {
		e.om = orderedmap.New[string, V]()
	}
	e.om.Set(key, val)
}

func (e *entries[V]) get(key string) (V, bool) {
	if e.om == nil {
		var zero V
		return zero, false
	}
	return e.om.Get(key)
}

func (e *entries[V]) del(key string) {
	if e.om != nil {
		e.om.Delete(key)
	}
}

func (e *entries[V]) len() int {
	if e.om == nil {
		return 0
	}
	return e.om.Len()
}

func (e *entries[V]) at(i int) (key string, val V, ok bool) {
	if i < 0 || i >= e.len() {
		return key, val, false
	}
	pair := e.om.Oldest()
	for ; i > 0; i-- {
		pair = pair.Next()
	}
	return pair.Key, pair.Value, true
}

func (e *entries[V]) all() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if e.om == nil {
			return
		}
		for pair := e.om.Oldest(); pair != nil; {
			next := pair.Next()
			if !yield(pair.Key, pair.Value) {
				return
			}
			pair = next
		}
	}
}

func (e *entries[V]) keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range e.all() {
			if !yield(k) {
				return
			}
		}
	}
}

func (e *entries[V]) clone(cloneVal func(V) V) entries[V] {
	var e2 entries[V]
	for k, v := range e.all() {
		e2.set(k, cloneVal(v))
	}
	return e2
}

func (e *entries[V]) equal(other *entries[V], eq func(V, V) bool) bool {
	if e.len() != other.len() {
		return false
	}
	next, stop := iter.Pull2(other.all())
	defer stop()
	for k1, v1 := range e.all() {
		k2, v2, ok := next()
		if !ok || k1 != k2 || !eq(v1, v2) {
			return false
		}
	}
	return true
}
