package value

import "strings"

// Namespace is one of the four Molang value-store namespaces.
type Namespace int

const (
	Temp Namespace = iota
	Variable
	Context
	Query
)

// String renders the canonical lowercase namespace token.
func (n Namespace) String() string {
	switch n {
	case Temp:
		return "temp"
	case Variable:
		return "variable"
	case Context:
		return "context"
	case Query:
		return "query"
	default:
		return "variable"
	}
}

// namespaceAliases maps every accepted lowercase prefix token to its
// Namespace, per spec §3.
var namespaceAliases = map[string]Namespace{
	"temp":     Temp,
	"t":        Temp,
	"variable": Variable,
	"var":      Variable,
	"v":        Variable,
	"context":  Context,
	"c":        Context,
	"query":    Query,
	"q":        Query,
}

// lookupNamespace resolves a lowercased path segment to a Namespace alias.
func lookupNamespace(segment string) (Namespace, bool) {
	ns, ok := namespaceAliases[strings.ToLower(segment)]
	return ns, ok
}

// QualifiedName is a canonical (Namespace, key) pair: a value-store key.
type QualifiedName struct {
	Namespace Namespace
	Key       string
}

// NewQualifiedName builds a QualifiedName from dotted path segments. If the
// first segment is not a namespace alias, the whole path lands in
// Variable, per spec §3.
func NewQualifiedName(parts []string) QualifiedName {
	if len(parts) == 0 {
		return QualifiedName{Namespace: Variable, Key: ""}
	}
	rest := parts[1:]
	ns, ok := lookupNamespace(parts[0])
	if !ok {
		ns = Variable
		rest = parts
	}
	lowered := make([]string, len(rest))
	for i, seg := range rest {
		lowered[i] = strings.ToLower(seg)
	}
	return QualifiedName{Namespace: ns, Key: strings.Join(lowered, ".")}
}

// ParseCanonical parses a canonical "<namespace>.<key>" string back into a
// QualifiedName, used by get_value_canonical round-trips (spec §8 property 2).
func ParseCanonical(canonical string) QualifiedName {
	parts := strings.Split(canonical, ".")
	return NewQualifiedName(parts)
}

// Canonical renders the "<namespace>.<key>" form.
func (q QualifiedName) Canonical() string {
	if q.Key == "" {
		return q.Namespace.String()
	}
	return q.Namespace.String() + "." + q.Key
}

// segments splits the key into its dotted components (empty for a bare key).
func (q QualifiedName) segments() []string {
	if q.Key == "" {
		return nil
	}
	return strings.Split(q.Key, ".")
}

// Child returns the QualifiedName for appending one more field name.
func (q QualifiedName) Child(field string) QualifiedName {
	field = strings.ToLower(field)
	if q.Key == "" {
		return QualifiedName{Namespace: q.Namespace, Key: field}
	}
	return QualifiedName{Namespace: q.Namespace, Key: q.Key + "." + field}
}

// Parent returns the QualifiedName one segment shorter, and false if q has
// no parent (a bare top-level key).
func (q QualifiedName) Parent() (QualifiedName, bool) {
	segs := q.segments()
	if len(segs) <= 1 {
		return QualifiedName{}, false
	}
	return QualifiedName{Namespace: q.Namespace, Key: strings.Join(segs[:len(segs)-1], ".")}, true
}
