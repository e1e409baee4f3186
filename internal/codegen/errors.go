package codegen

import "fmt"

// ErrorKind classifies a code-generation failure (spec §7's "Compile
// errors").
type ErrorKind int

const (
	// UnsupportedFeature: a construct that is syntactically valid IR but
	// illegal in this position (string/struct literal used as a value,
	// indexing a non-path target, break/continue outside a loop, a
	// for_each collection that isn't a path, a nested array/struct element
	// of an array literal).
	UnsupportedFeature ErrorKind = iota
	// InternalError: a backend invariant was violated; never reachable
	// from valid host input per spec §7's panic/abort-free policy, but
	// reported as an error rather than a panic to keep that guarantee.
	InternalError
)

// Error is a compile-time failure. No runtime error ever originates from
// emitted code (spec §7); everything here happens before a single
// instruction of the compiled function runs.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func errUnsupported(format string, args ...any) *Error {
	return &Error{Kind: UnsupportedFeature, Message: fmt.Sprintf(format, args...)}
}

func errInternal(format string, args ...any) *Error {
	return &Error{Kind: InternalError, Message: fmt.Sprintf(format, args...)}
}
