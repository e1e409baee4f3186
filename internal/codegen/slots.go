package codegen

import "j5.nz/molang/internal/value"

// slotTable is the per-compilation ordered list of canonical path strings
// referenced by a function (spec §4.4's "slot discipline"): a path
// allocates a slot the first time it is used, in first-use order.
type slotTable struct {
	index   map[string]int
	strings []string
}

func newSlotTable() *slotTable {
	return &slotTable{index: make(map[string]int)}
}

// indexOf returns name's slot index, allocating a new one on first use.
func (t *slotTable) indexOf(name value.QualifiedName) int {
	canon := name.Canonical()
	if idx, ok := t.index[canon]; ok {
		return idx
	}
	idx := len(t.strings)
	t.index[canon] = idx
	t.strings = append(t.strings, canon)
	return idx
}

// literalData is one anonymous read-only byte buffer the compiled
// function references by symbol (a string literal's bytes, spec §4.4 /
// §9's "embed literals as read-only data owned by the artifact").
type literalData struct {
	symbol string
	bytes  []byte
}

// literalPool accumulates the anonymous string-literal data objects one
// compilation embeds, keyed by content so two equal literals share a slot.
type literalPool struct {
	bySymbol map[string]int
	entries  []literalData
}

func newLiteralPool() *literalPool {
	return &literalPool{bySymbol: make(map[string]int)}
}

// intern returns the stable symbol name for s's bytes, reusing an
// existing entry if the exact same text was already embedded.
func (p *literalPool) intern(s string) string {
	if idx, ok := p.bySymbol[s]; ok {
		return p.entries[idx].symbol
	}
	sym := symbolForLiteral(len(p.entries))
	p.bySymbol[s] = len(p.entries)
	p.entries = append(p.entries, literalData{symbol: sym, bytes: []byte(s)})
	return sym
}

func symbolForLiteral(idx int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	if idx < len(alphabet) {
		return "molang_lit_" + string(alphabet[idx])
	}
	// Extremely literal-heavy programs fall back to a wider base-36 tag;
	// not expected in practice given Molang's per-frame-expression scale.
	digits := []byte{}
	n := idx
	for n > 0 || len(digits) == 0 {
		digits = append([]byte{alphabet[n%36]}, digits...)
		n /= 36
	}
	return "molang_lit_" + string(digits)
}
