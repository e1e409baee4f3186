package bridge

// cgo //export directives give the bridge functions real, stable C-ABI
// symbols (spec §4.5's "declared as imports by emitted code"), the exact
// role original_source/src/jit.rs fills by registering `extern "C" fn`
// host callbacks with cranelift's JITBuilder::symbol. Go has no cranelift
// equivalent in the retrieved pack, so cgo export is the idiomatic
// substitute for producing a genuine callable C function pointer.

import "C"
import "unsafe"

//export rt_get_number
func rt_get_number(ctx C.uint64_t, namePtr unsafe.Pointer, nameLen C.uint64_t) C.double {
	return C.double(GetNumber(uint64(ctx), namePtr, uint64(nameLen)))
}

//export rt_set_number
func rt_set_number(ctx C.uint64_t, namePtr unsafe.Pointer, nameLen C.uint64_t, v C.double) {
	SetNumber(uint64(ctx), namePtr, uint64(nameLen), float64(v))
}

//export rt_clear_value
func rt_clear_value(ctx C.uint64_t, namePtr unsafe.Pointer, nameLen C.uint64_t) {
	ClearValue(uint64(ctx), namePtr, uint64(nameLen))
}

//export rt_copy_value
func rt_copy_value(ctx C.uint64_t, destPtr unsafe.Pointer, destLen C.uint64_t, srcPtr unsafe.Pointer, srcLen C.uint64_t) {
	CopyValue(uint64(ctx), destPtr, uint64(destLen), srcPtr, uint64(srcLen))
}

//export rt_set_string
func rt_set_string(ctx C.uint64_t, namePtr unsafe.Pointer, nameLen C.uint64_t, textPtr unsafe.Pointer, textLen C.uint64_t) {
	SetString(uint64(ctx), namePtr, uint64(nameLen), textPtr, uint64(textLen))
}

//export rt_array_push_number
func rt_array_push_number(ctx C.uint64_t, namePtr unsafe.Pointer, nameLen C.uint64_t, v C.double) {
	ArrayPushNumber(uint64(ctx), namePtr, uint64(nameLen), float64(v))
}

//export rt_array_push_string
func rt_array_push_string(ctx C.uint64_t, namePtr unsafe.Pointer, nameLen C.uint64_t, textPtr unsafe.Pointer, textLen C.uint64_t) {
	ArrayPushString(uint64(ctx), namePtr, uint64(nameLen), textPtr, uint64(textLen))
}

//export rt_array_get_number
func rt_array_get_number(ctx C.uint64_t, namePtr unsafe.Pointer, nameLen C.uint64_t, index C.double) C.double {
	return C.double(ArrayGetNumber(uint64(ctx), namePtr, uint64(nameLen), float64(index)))
}

//export rt_array_length
func rt_array_length(ctx C.uint64_t, namePtr unsafe.Pointer, nameLen C.uint64_t) C.int64_t {
	return C.int64_t(ArrayLength(uint64(ctx), namePtr, uint64(nameLen)))
}

//export rt_array_copy_element
func rt_array_copy_element(ctx C.uint64_t, srcPtr unsafe.Pointer, srcLen C.uint64_t, index C.int64_t, destPtr unsafe.Pointer, destLen C.uint64_t) {
	ArrayCopyElement(uint64(ctx), srcPtr, uint64(srcLen), int64(index), destPtr, uint64(destLen))
}

//export rt_equal_paths
func rt_equal_paths(ctx C.uint64_t, lp unsafe.Pointer, ll C.uint64_t, rp unsafe.Pointer, rl C.uint64_t) C.double {
	return C.double(EqualPaths(uint64(ctx), lp, uint64(ll), rp, uint64(rl)))
}

//export rt_not_equal_paths
func rt_not_equal_paths(ctx C.uint64_t, lp unsafe.Pointer, ll C.uint64_t, rp unsafe.Pointer, rl C.uint64_t) C.double {
	return C.double(NotEqualPaths(uint64(ctx), lp, uint64(ll), rp, uint64(rl)))
}

//export rt_equal_path_string
func rt_equal_path_string(ctx C.uint64_t, pathPtr unsafe.Pointer, pathLen C.uint64_t, textPtr unsafe.Pointer, textLen C.uint64_t) C.double {
	return C.double(EqualPathString(uint64(ctx), pathPtr, uint64(pathLen), textPtr, uint64(textLen)))
}

//export rt_not_equal_path_string
func rt_not_equal_path_string(ctx C.uint64_t, pathPtr unsafe.Pointer, pathLen C.uint64_t, textPtr unsafe.Pointer, textLen C.uint64_t) C.double {
	return C.double(NotEqualPathString(uint64(ctx), pathPtr, uint64(pathLen), textPtr, uint64(textLen)))
}
