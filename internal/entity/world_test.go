package entity

import "testing"

func TestWorldCreateEntity(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity(EntityVector)
	if !w.IsValid(e) {
		t.Fatal("expected newly created entity to be valid")
	}
	if got, ok := w.EntityType(e); !ok || got != EntityVector {
		t.Fatalf("EntityType = %v, %v; want EntityVector, true", got, ok)
	}
}

func TestWorldEntitiesOfType(t *testing.T) {
	w := NewWorld()
	v1 := w.CreateEntity(EntityVector)
	w.CreateEntity(EntityFeature)
	v2 := w.CreateEntity(EntityVector)

	vectors := w.EntitiesOfType(EntityVector)
	if len(vectors) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vectors))
	}
	seen := map[EntityID]bool{}
	for _, id := range vectors {
		seen[id] = true
	}
	if !seen[v1] || !seen[v2] {
		t.Fatalf("expected both %v and %v in %v", v1, v2, vectors)
	}
}

func TestWorldIndicesResolve(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity(EntityVector)
	name := Name{RCNM: 110, RCID: 17}
	w.NameIndex[name] = e

	got, ok := w.VectorByName(name)
	if !ok || got != e {
		t.Fatalf("VectorByName = %v, %v; want %v, true", got, ok, e)
	}
	if _, ok := w.VectorByName(Name{RCNM: 110, RCID: 99}); ok {
		t.Fatal("expected lookup of unknown NAME to fail")
	}
}

func TestWorldDiagnostics(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity(EntityVector)
	w.AddDiagnostic(DiagnosticUnusualTopi, e, "TOPI=255 on node row")
	if len(w.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(w.Diagnostics))
	}
	if w.Diagnostics[0].Kind != DiagnosticUnusualTopi {
		t.Fatalf("got kind %v, want %v", w.Diagnostics[0].Kind, DiagnosticUnusualTopi)
	}
}
