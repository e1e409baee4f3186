// Package bridge implements the runtime bridge (spec §4.5): the fixed set
// of stable, C-ABI-callable functions that JIT-emitted native code calls
// into to read and write a value.Store. Every function here is total —
// a nil/invalid argument is a silent no-op (mutators) or returns 0/0.0
// (readers), per spec §7: no runtime error ever surfaces from emitted
// code.
//
// Emitted code only ever holds an opaque uint64 handle for "context_ptr",
// never a real Go pointer: cgo's pointer-passing rules forbid handing a
// Go pointer to C and receiving it back as an opaque value later, so a
// small integer handle into a process-wide registry stands in for the
// context, the same role original_source/src/jit.rs fills by registering
// a `*mut Executor` as a cranelift JITBuilder symbol.
package bridge

import (
	"sync"
	"unsafe"

	"j5.nz/molang/internal/value"
)

var (
	registryMu sync.Mutex
	registry   = map[uint64]*value.Store{}
	nextHandle uint64
)

// Register pins s under a fresh handle for the duration of one evaluate
// call and returns it; the caller must Unregister when done.
func Register(s *value.Store) uint64 {
	registryMu.Lock()
	defer registryMu.Unlock()
	nextHandle++
	h := nextHandle
	registry[h] = s
	return h
}

// Unregister releases the handle. Safe to call even if h is unknown.
func Unregister(h uint64) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, h)
}

func lookup(h uint64) *value.Store {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registry[h]
}

// cString converts a (ptr, len) byte span into a Go string without a
// defensive copy; the caller (emitted code) guarantees the bytes are
// stable for the duration of the call, since they are either owned by
// the compiled artifact's slot table or by the artifact's pinned literal
// data.
func cString(ptr unsafe.Pointer, length uint64) (string, bool) {
	if ptr == nil || length == 0 {
		return "", length == 0
	}
	return unsafe.String((*byte)(ptr), int(length)), true
}

func name(ptr unsafe.Pointer, length uint64) (value.QualifiedName, bool) {
	s, ok := cString(ptr, length)
	if !ok {
		return value.QualifiedName{}, false
	}
	return value.ParseCanonical(s), true
}

// GetNumber implements rt_get_number.
func GetNumber(ctx uint64, namePtr unsafe.Pointer, nameLen uint64) float64 {
	st := lookup(ctx)
	n, ok := name(namePtr, nameLen)
	if st == nil || !ok {
		return 0.0
	}
	return st.GetNumber(n)
}

// SetNumber implements rt_set_number.
func SetNumber(ctx uint64, namePtr unsafe.Pointer, nameLen uint64, v float64) {
	st := lookup(ctx)
	n, ok := name(namePtr, nameLen)
	if st == nil || !ok {
		return
	}
	st.Set(n, value.Number(v))
}

// ClearValue implements rt_clear_value.
func ClearValue(ctx uint64, namePtr unsafe.Pointer, nameLen uint64) {
	st := lookup(ctx)
	n, ok := name(namePtr, nameLen)
	if st == nil || !ok {
		return
	}
	st.Clear(n)
}

// CopyValue implements rt_copy_value.
func CopyValue(ctx uint64, destPtr unsafe.Pointer, destLen uint64, srcPtr unsafe.Pointer, srcLen uint64) {
	st := lookup(ctx)
	dest, ok1 := name(destPtr, destLen)
	src, ok2 := name(srcPtr, srcLen)
	if st == nil || !ok1 || !ok2 {
		return
	}
	st.Copy(dest, src)
}

// SetString implements rt_set_string.
func SetString(ctx uint64, namePtr unsafe.Pointer, nameLen uint64, textPtr unsafe.Pointer, textLen uint64) {
	st := lookup(ctx)
	n, ok := name(namePtr, nameLen)
	text, okText := cString(textPtr, textLen)
	if st == nil || !ok || !okText {
		return
	}
	st.Set(n, value.String(text))
}

// ArrayPushNumber implements rt_array_push_number.
func ArrayPushNumber(ctx uint64, namePtr unsafe.Pointer, nameLen uint64, v float64) {
	st := lookup(ctx)
	n, ok := name(namePtr, nameLen)
	if st == nil || !ok {
		return
	}
	st.ArrayPush(n, value.Number(v))
}

// ArrayPushString implements rt_array_push_string.
func ArrayPushString(ctx uint64, namePtr unsafe.Pointer, nameLen uint64, textPtr unsafe.Pointer, textLen uint64) {
	st := lookup(ctx)
	n, ok := name(namePtr, nameLen)
	text, okText := cString(textPtr, textLen)
	if st == nil || !ok || !okText {
		return
	}
	st.ArrayPush(n, value.String(text))
}

// ArrayGetNumber implements rt_array_get_number.
func ArrayGetNumber(ctx uint64, namePtr unsafe.Pointer, nameLen uint64, index float64) float64 {
	st := lookup(ctx)
	n, ok := name(namePtr, nameLen)
	if st == nil || !ok {
		return 0.0
	}
	return st.ArrayGet(n, index).AsNumber()
}

// ArrayLength implements rt_array_length.
func ArrayLength(ctx uint64, namePtr unsafe.Pointer, nameLen uint64) int64 {
	st := lookup(ctx)
	n, ok := name(namePtr, nameLen)
	if st == nil || !ok {
		return 0
	}
	return st.ArrayLength(n)
}

// ArrayCopyElement implements rt_array_copy_element.
func ArrayCopyElement(ctx uint64, srcPtr unsafe.Pointer, srcLen uint64, index int64, destPtr unsafe.Pointer, destLen uint64) {
	st := lookup(ctx)
	src, ok1 := name(srcPtr, srcLen)
	dest, ok2 := name(destPtr, destLen)
	if st == nil || !ok1 || !ok2 {
		return
	}
	st.ArrayCopyElement(src, index, dest)
}

// equalPaths is the shared body of rt_equal_paths / rt_not_equal_paths:
// it reports whether the two paths hold equal values, and false for ok
// when the handle or either name is invalid.
func equalPaths(ctx uint64, lp unsafe.Pointer, ll uint64, rp unsafe.Pointer, rl uint64) (bool, bool) {
	st := lookup(ctx)
	left, ok1 := name(lp, ll)
	right, ok2 := name(rp, rl)
	if st == nil || !ok1 || !ok2 {
		return false, false
	}
	return value.Equal(st.Get(left), st.Get(right)), true
}

// EqualPaths implements rt_equal_paths.
func EqualPaths(ctx uint64, lp unsafe.Pointer, ll uint64, rp unsafe.Pointer, rl uint64) float64 {
	eq, ok := equalPaths(ctx, lp, ll, rp, rl)
	if !ok {
		return 0.0
	}
	return boolToF64(eq)
}

// NotEqualPaths implements rt_not_equal_paths.
func NotEqualPaths(ctx uint64, lp unsafe.Pointer, ll uint64, rp unsafe.Pointer, rl uint64) float64 {
	eq, ok := equalPaths(ctx, lp, ll, rp, rl)
	if !ok {
		return 0.0
	}
	return boolToF64(!eq)
}

// EqualPathString implements rt_equal_path_string.
func EqualPathString(ctx uint64, pathPtr unsafe.Pointer, pathLen uint64, textPtr unsafe.Pointer, textLen uint64) float64 {
	st := lookup(ctx)
	p, ok := name(pathPtr, pathLen)
	text, okText := cString(textPtr, textLen)
	if st == nil || !ok || !okText {
		return 0.0
	}
	v := st.Get(p)
	return boolToF64(v.Kind() == value.KindString && v.AsString() == text)
}

// NotEqualPathString implements rt_not_equal_path_string.
func NotEqualPathString(ctx uint64, pathPtr unsafe.Pointer, pathLen uint64, textPtr unsafe.Pointer, textLen uint64) float64 {
	st := lookup(ctx)
	p, ok := name(pathPtr, pathLen)
	text, okText := cString(textPtr, textLen)
	if st == nil || !ok || !okText {
		return 0.0
	}
	v := st.Get(p)
	return boolToF64(!(v.Kind() == value.KindString && v.AsString() == text))
}

func boolToF64(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
