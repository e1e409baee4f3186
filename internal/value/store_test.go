package value

import "testing"

func TestNamespaceCanonicalization(t *testing.T) {
	s := NewStore()
	s.Set(NewQualifiedName([]string{"temp", "X"}), Number(1))
	got := s.GetNumber(NewQualifiedName([]string{"t", "x"}))
	if got != 1 {
		t.Fatalf("t.x = %v, want 1", got)
	}
	canon := ParseCanonical("temp.x").Canonical()
	if canon != "temp.x" {
		t.Fatalf("round trip = %q, want temp.x", canon)
	}
}

func TestNestedAssignmentInvariant(t *testing.T) {
	s := NewStore()
	name := NewQualifiedName([]string{"temp", "a", "b", "c"})
	s.Set(name, Number(7))

	if got := s.GetNumber(name); got != 7 {
		t.Fatalf("temp.a.b.c = %v, want 7", got)
	}

	ab := s.Get(NewQualifiedName([]string{"temp", "a", "b"}))
	if ab.Kind() != KindStruct {
		t.Fatalf("temp.a.b kind = %v, want Struct", ab.Kind())
	}
	c, ok := ab.Field("c")
	if !ok || c.AsNumber() != 7 {
		t.Fatalf("temp.a.b.c field = %v, ok=%v, want 7", c, ok)
	}

	a := s.Get(NewQualifiedName([]string{"temp", "a"}))
	if a.Kind() != KindStruct {
		t.Fatalf("temp.a kind = %v, want Struct", a.Kind())
	}
}

func TestQueryImmutableThroughSet(t *testing.T) {
	s := NewStore()
	s.SetQuery(NewQualifiedName([]string{"query", "x"}), Number(1))
	s.Set(NewQualifiedName([]string{"query", "x"}), Number(5))
	if got := s.GetNumber(NewQualifiedName([]string{"query", "x"})); got != 1 {
		t.Fatalf("query.x = %v, want 1 (assignment must be a no-op)", got)
	}
}

func TestArrayWraparound(t *testing.T) {
	s := NewStore()
	name := NewQualifiedName([]string{"temp", "values"})
	s.Set(name, Array([]Value{Number(10), Number(20), Number(30)}))

	if got := s.ArrayGet(name, 1).AsNumber(); got != 20 {
		t.Fatalf("values[1] = %v, want 20", got)
	}
	if got := s.ArrayGet(name, 3).AsNumber(); got != 10 {
		t.Fatalf("values[3] = %v, want 10 (wraps to index 0)", got)
	}
	if got := s.ArrayLength(name); got != 3 {
		t.Fatalf("length = %v, want 3", got)
	}
}

func TestClearRemovesDescendants(t *testing.T) {
	s := NewStore()
	s.Set(NewQualifiedName([]string{"temp", "a", "b"}), Number(1))
	s.Clear(NewQualifiedName([]string{"temp", "a"}))
	if got := s.GetNumber(NewQualifiedName([]string{"temp", "a", "b"})); got != 0 {
		t.Fatalf("temp.a.b after clear = %v, want 0", got)
	}
}

func TestPrefixWalkOnDirectStructSet(t *testing.T) {
	s := NewStore()
	name := NewQualifiedName([]string{"temp", "location"})
	s.Set(name, Struct([]Field{{Name: "x", Value: Number(1)}, {Name: "y", Value: Number(2)}}))
	if got := s.GetNumber(NewQualifiedName([]string{"temp", "location", "x"})); got != 1 {
		t.Fatalf("temp.location.x = %v, want 1", got)
	}
}
