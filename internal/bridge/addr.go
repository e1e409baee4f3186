package bridge

/*
#include "_cgo_export.h"
#include <stdint.h>

static uintptr_t molang_bridge_addr(int id) {
	switch (id) {
	case 0: return (uintptr_t)rt_get_number;
	case 1: return (uintptr_t)rt_set_number;
	case 2: return (uintptr_t)rt_clear_value;
	case 3: return (uintptr_t)rt_copy_value;
	case 4: return (uintptr_t)rt_set_string;
	case 5: return (uintptr_t)rt_array_push_number;
	case 6: return (uintptr_t)rt_array_push_string;
	case 7: return (uintptr_t)rt_array_get_number;
	case 8: return (uintptr_t)rt_array_length;
	case 9: return (uintptr_t)rt_array_copy_element;
	case 10: return (uintptr_t)rt_equal_paths;
	case 11: return (uintptr_t)rt_not_equal_paths;
	case 12: return (uintptr_t)rt_equal_path_string;
	case 13: return (uintptr_t)rt_not_equal_path_string;
	default: return 0;
	}
}
*/
import "C"

// Symbol identifies one of the fixed runtime-bridge functions (spec
// §4.5) by its stable external name, for the code generator to resolve
// to an absolute address via Addr.
type Symbol int

const (
	GetNumberSym Symbol = iota
	SetNumberSym
	ClearValueSym
	CopyValueSym
	SetStringSym
	ArrayPushNumberSym
	ArrayPushStringSym
	ArrayGetNumberSym
	ArrayLengthSym
	ArrayCopyElementSym
	EqualPathsSym
	NotEqualPathsSym
	EqualPathStringSym
	NotEqualPathStringSym
)

var names = map[Symbol]string{
	GetNumberSym:          "rt_get_number",
	SetNumberSym:          "rt_set_number",
	ClearValueSym:         "rt_clear_value",
	CopyValueSym:          "rt_copy_value",
	SetStringSym:          "rt_set_string",
	ArrayPushNumberSym:    "rt_array_push_number",
	ArrayPushStringSym:    "rt_array_push_string",
	ArrayGetNumberSym:     "rt_array_get_number",
	ArrayLengthSym:        "rt_array_length",
	ArrayCopyElementSym:   "rt_array_copy_element",
	EqualPathsSym:         "rt_equal_paths",
	NotEqualPathsSym:      "rt_not_equal_paths",
	EqualPathStringSym:    "rt_equal_path_string",
	NotEqualPathStringSym: "rt_not_equal_path_string",
}

// Name returns the stable external symbol name, matching spec §4.5's
// table exactly.
func (s Symbol) Name() string { return names[s] }

// Addr resolves s to its absolute process address, for the code
// generator to embed as a movabs+call target.
func (s Symbol) Addr() uintptr {
	return uintptr(C.molang_bridge_addr(C.int(s)))
}

// Count returns the number of bridge symbols, for callers that need to
// enumerate every Symbol (the code generator's symbol-to-address
// resolver).
func Count() int { return len(names) }
