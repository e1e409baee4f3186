package value

import (
	"strings"
	"sync"
)

// Store is the Molang runtime value store: a namespaced map from
// QualifiedName to Value, with namespaced, dotted, nested paths (spec §3,
// §4.1). It is not safe for concurrent use by more than one evaluation at
// a time (spec §5); a sync.RWMutex only protects the host's debug-listing
// API against a concurrent compiled call on the same goroutine-unsafe
// structure from racing with Inspect.
type Store struct {
	mu     sync.RWMutex
	values map[QualifiedName]Value
}

// NewStore returns an empty RuntimeContext.
func NewStore() *Store {
	return &Store{values: make(map[QualifiedName]Value)}
}

// Get implements the exact-then-prefix-walking lookup of invariant 3.
func (s *Store) Get(name QualifiedName) Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[name]; ok {
		return v
	}
	return s.getPrefixWalk(name)
}

// getPrefixWalk finds the longest stored ancestor of name and descends into
// it via struct-field chaining, or `.length` on a trailing Array segment.
func (s *Store) getPrefixWalk(name QualifiedName) Value {
	segs := name.segments()
	for n := len(segs) - 1; n >= 1; n-- {
		candidate := QualifiedName{Namespace: name.Namespace, Key: strings.Join(segs[:n], ".")}
		v, ok := s.values[candidate]
		if !ok {
			continue
		}
		return descend(v, segs[n:])
	}
	return Null
}

// descend walks remaining dotted segments into v via struct fields, with a
// special-cased trailing `.length` on an Array.
func descend(v Value, remaining []string) Value {
	for i, seg := range remaining {
		if seg == "length" && i == len(remaining)-1 {
			if v.Kind() == KindArray {
				return Number(float64(len(v.AsArray())))
			}
			return Null
		}
		field, ok := v.Field(seg)
		if !ok {
			return Null
		}
		v = field
	}
	return v
}

// GetNumber is Get followed by numeric coercion; missing yields 0.0.
func (s *Store) GetNumber(name QualifiedName) float64 {
	return s.Get(name).AsNumber()
}

// Set assigns under a non-Query namespace, re-materializing ancestor
// structs per invariant 1. A Query-namespace target or an empty key is a
// no-op (spec §4.1, testable property 5).
func (s *Store) Set(name QualifiedName, v Value) {
	if name.Namespace == Query || name.Key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(name, v)
}

// SetQuery is the host-only backdoor that bypasses the Query guard.
func (s *Store) SetQuery(name QualifiedName, v Value) {
	if name.Key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(name, v)
}

func (s *Store) setLocked(name QualifiedName, v Value) {
	s.values[name] = v
	child := name
	for {
		parent, ok := child.Parent()
		if !ok {
			break
		}
		field := lastSegment(child.Key)
		s.values[parent] = mergeField(s.values[parent], field, s.values[child])
		child = parent
	}
}

// mergeField inserts or replaces one named field of existing, producing a
// new Struct value. If existing is not already a Struct, a fresh
// single-field Struct is created (spec: "merging into existing structs if
// present").
func mergeField(existing Value, field string, v Value) Value {
	var fields []Field
	if existing.Kind() == KindStruct {
		fields = append(fields, existing.Fields()...)
	}
	for i, f := range fields {
		if f.Name == field {
			fields[i].Value = v
			return Struct(fields)
		}
	}
	fields = append(fields, Field{Name: field, Value: v})
	return Struct(fields)
}

func lastSegment(key string) string {
	if idx := strings.LastIndexByte(key, '.'); idx >= 0 {
		return key[idx+1:]
	}
	return key
}

// Clear removes the exact key and any descendant whose canonical starts
// with "<canonical>.".
func (s *Store) Clear(name QualifiedName) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, name)
	prefix := name.Canonical() + "."
	for k := range s.values {
		if k.Namespace == name.Namespace && strings.HasPrefix(k.Canonical(), prefix) {
			delete(s.values, k)
		}
	}
}

// Copy reads src and assigns it to dest, or clears dest if src is absent.
// Null only ever arises in this store as a lookup-miss sentinel (the
// language has no Null literal), so it doubles as the absence check here.
func (s *Store) Copy(dest, src QualifiedName) {
	v := s.Get(src)
	if v.IsNull() {
		s.Clear(dest)
		return
	}
	s.Set(dest, v)
}

// ArrayPush appends v to the array at canonical, starting a new empty
// array if the slot holds a non-Array value or is absent.
func (s *Store) ArrayPush(name QualifiedName, v Value) {
	existing := s.Get(name)
	arr := append(append([]Value(nil), existing.AsArray()...), v)
	s.Set(name, Array(arr))
}

// ArrayLength returns 0 if name is absent or not an Array.
func (s *Store) ArrayLength(name QualifiedName) int64 {
	return int64(len(s.Get(name).AsArray()))
}

// ArrayGet implements spec §4.1's array_get: floor the index, clamp
// negative to 0, wrap modulo length; Null on an empty or non-Array value.
func (s *Store) ArrayGet(name QualifiedName, index float64) Value {
	arr := s.Get(name).AsArray()
	if len(arr) == 0 {
		return Null
	}
	return arr[normalizeIndex(index, len(arr))]
}

func normalizeIndex(index float64, length int) int {
	i := int64(index)
	if float64(i) > index {
		i-- // floor for negative non-integers
	}
	if i < 0 {
		i = 0
	}
	return int(i % int64(length))
}

// ArrayCopyElement copies element `index` of the array at srcArray into
// dest, clearing dest if the index falls on an absent/non-Array source.
func (s *Store) ArrayCopyElement(srcArray QualifiedName, index int64, dest QualifiedName) {
	arr := s.Get(srcArray).AsArray()
	if len(arr) == 0 {
		s.Clear(dest)
		return
	}
	s.Set(dest, arr[normalizeIndex(float64(index), len(arr))])
}

// Entry is one canonical-name/value pair surfaced for host inspection.
type Entry struct {
	Name  string
	Value Value
}

// Inspect lists every stored canonical name/value pair for debugging/REPL
// display (spec §6). Order is unspecified.
func (s *Store) Inspect() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.values))
	for k, v := range s.values {
		out = append(out, Entry{Name: k.Canonical(), Value: v})
	}
	return out
}
