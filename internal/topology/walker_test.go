package topology

import (
	"errors"
	"testing"

	"github.com/harborcharts/s57/internal/entity"
	"github.com/harborcharts/s57/internal/rational"
)

func pt(y, x int64) rational.Point {
	return rational.Point{Y: rational.FromScaledInt(y, 1), X: rational.FromScaledInt(x, 1)}
}

// addNode creates a node vector entity at name with a single position.
func addNode(w *entity.World, name entity.Name, p rational.Point) entity.EntityID {
	id := w.CreateEntity(entity.EntityVector)
	w.NameIndex[name] = id
	w.VectorMeta[id] = &entity.VectorMeta{Name: name}
	w.ExactPositions[id] = &entity.ExactPositions{Points: []rational.Point{p}}
	return id
}

// addEdge creates an edge vector entity referencing beginName/endName via
// VRPT (TOPI 1/2), with optional interior points.
func addEdge(w *entity.World, name, beginName, endName entity.Name, interior []rational.Point) entity.EntityID {
	id := w.CreateEntity(entity.EntityVector)
	w.NameIndex[name] = id
	w.VectorMeta[id] = &entity.VectorMeta{Name: name}
	w.VectorTopology[id] = &entity.VectorTopology{Neighbors: []entity.VectorNeighbor{
		{Name: beginName, TOPI: TopiBeginNode},
		{Name: endName, TOPI: TopiEndNode},
	}}
	if len(interior) > 0 {
		w.ExactPositions[id] = &entity.ExactPositions{Points: interior}
	}
	return id
}

func TestResolvePointIsolatedNode(t *testing.T) {
	w := entity.NewWorld()
	nodeName := entity.Name{RCNM: 110, RCID: 17}
	want := pt(412345678, 1)
	addNode(w, nodeName, want)

	walker := NewEdgeWalker(w, AllowOnce(), ContinuityError)
	got, err := walker.ResolvePoint(nodeName)
	if err != nil {
		t.Fatalf("ResolvePoint: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("ResolvePoint = %s, want %s", got.String(), want.String())
	}
}

// scenario 2: two edges E1 (A->B, interiors [P,Q]) and E2 (B->C), forward.
func TestResolveLineTwoEdgesDeduplicatesSharedEndpoint(t *testing.T) {
	w := entity.NewWorld()
	nA, nB, nC := entity.Name{RCNM: 110, RCID: 1}, entity.Name{RCNM: 110, RCID: 2}, entity.Name{RCNM: 110, RCID: 3}
	A, B, C := pt(0, 0), pt(10, 10), pt(20, 20)
	P, Q := pt(3, 3), pt(6, 6)
	addNode(w, nA, A)
	addNode(w, nB, B)
	addNode(w, nC, C)

	e1, e2 := entity.Name{RCNM: 130, RCID: 1}, entity.Name{RCNM: 130, RCID: 2}
	addEdge(w, e1, nA, nB, []rational.Point{P, Q})
	addEdge(w, e2, nB, nC, nil)

	refs := []entity.SpatialRef{
		{Name: e1, ORNT: 1},
		{Name: e2, ORNT: 1},
	}
	walker := NewEdgeWalker(w, AllowOnce(), ContinuityError)
	line, err := walker.ResolveLine(refs)
	if err != nil {
		t.Fatalf("ResolveLine: %v", err)
	}
	want := []rational.Point{A, P, Q, B, C}
	assertPoints(t, line, want)
}

// scenario 3: E2 referenced with ORNT=Reverse.
func TestResolveLineReversedSegment(t *testing.T) {
	w := entity.NewWorld()
	nA, nB, nC := entity.Name{RCNM: 110, RCID: 1}, entity.Name{RCNM: 110, RCID: 2}, entity.Name{RCNM: 110, RCID: 3}
	A, B, C := pt(0, 0), pt(10, 10), pt(20, 20)
	P, Q := pt(3, 3), pt(6, 6)
	addNode(w, nA, A)
	addNode(w, nB, B)
	addNode(w, nC, C)

	e1, e2 := entity.Name{RCNM: 130, RCID: 1}, entity.Name{RCNM: 130, RCID: 2}
	addEdge(w, e1, nA, nB, []rational.Point{P, Q})
	// Stored as C->B; a Reverse reference yields B->C consumed order.
	addEdge(w, e2, nC, nB, nil)

	refs := []entity.SpatialRef{
		{Name: e1, ORNT: 1},
		{Name: e2, ORNT: 2},
	}
	walker := NewEdgeWalker(w, AllowOnce(), ContinuityError)
	line, err := walker.ResolveLine(refs)
	if err != nil {
		t.Fatalf("ResolveLine: %v", err)
	}
	want := []rational.Point{A, P, Q, B, C}
	assertPoints(t, line, want)
}

// scenario 4: exterior A-B-C-A (edges E1,E2,E3), interior D-E-D (edges E4,E5).
func TestResolveAreaWithInteriorRing(t *testing.T) {
	w := entity.NewWorld()
	names := map[string]entity.Name{
		"A": {RCNM: 110, RCID: 1}, "B": {RCNM: 110, RCID: 2}, "C": {RCNM: 110, RCID: 3},
		"D": {RCNM: 110, RCID: 4}, "E": {RCNM: 110, RCID: 5},
	}
	pts := map[string]rational.Point{
		"A": pt(0, 0), "B": pt(10, 0), "C": pt(10, 10), "D": pt(3, 3), "E": pt(6, 3),
	}
	for k, n := range names {
		addNode(w, n, pts[k])
	}

	e1, e2, e3 := entity.Name{RCNM: 130, RCID: 1}, entity.Name{RCNM: 130, RCID: 2}, entity.Name{RCNM: 130, RCID: 3}
	e4, e5 := entity.Name{RCNM: 130, RCID: 4}, entity.Name{RCNM: 130, RCID: 5}
	addEdge(w, e1, names["A"], names["B"], nil)
	addEdge(w, e2, names["B"], names["C"], nil)
	addEdge(w, e3, names["C"], names["A"], nil)
	addEdge(w, e4, names["D"], names["E"], nil)
	addEdge(w, e5, names["E"], names["D"], nil)

	refs := []entity.SpatialRef{
		{Name: e1, ORNT: 1, USAG: UsageExterior},
		{Name: e2, ORNT: 1, USAG: UsageExterior},
		{Name: e3, ORNT: 1, USAG: UsageExterior},
		{Name: e4, ORNT: 1, USAG: UsageInterior},
		{Name: e5, ORNT: 1, USAG: UsageInterior},
	}
	walker := NewEdgeWalker(w, AllowOnce(), ContinuityError)
	exterior, interiors, err := walker.ResolveArea(refs)
	if err != nil {
		t.Fatalf("ResolveArea: %v", err)
	}
	assertPoints(t, exterior, []rational.Point{pts["A"], pts["B"], pts["C"], pts["A"]})
	if len(interiors) != 1 {
		t.Fatalf("got %d interior rings, want 1", len(interiors))
	}
	assertPoints(t, interiors[0], []rational.Point{pts["D"], pts["E"], pts["D"]})
}

// scenario 5: feature references a NAME that was never ingested.
func TestResolveLineDanglingReference(t *testing.T) {
	w := entity.NewWorld()
	missing := entity.Name{RCNM: 130, RCID: 99}
	refs := []entity.SpatialRef{{Name: missing, ORNT: 1}}

	walker := NewEdgeWalker(w, AllowOnce(), ContinuityError)
	_, err := walker.ResolveLine(refs)
	var dangling *DanglingReferenceError
	if !errors.As(err, &dangling) {
		t.Fatalf("ResolveLine err = %v, want *DanglingReferenceError", err)
	}
	if dangling.To != missing {
		t.Fatalf("dangling.To = %+v, want %+v", dangling.To, missing)
	}
}

// scenario 6: a figure-eight boundary revisits one edge; AllowOnce succeeds,
// Error fails.
func TestResolveAreaCyclePolicy(t *testing.T) {
	w := entity.NewWorld()
	nA, nB := entity.Name{RCNM: 110, RCID: 1}, entity.Name{RCNM: 110, RCID: 2}
	A, B := pt(0, 0), pt(10, 0)
	addNode(w, nA, A)
	addNode(w, nB, B)

	shared := entity.Name{RCNM: 130, RCID: 1}
	addEdge(w, shared, nA, nB, nil)

	refs := []entity.SpatialRef{
		{Name: shared, ORNT: 1, USAG: UsageExterior},
		{Name: shared, ORNT: 2, USAG: UsageExterior},
	}

	allowOnce := NewEdgeWalker(w, AllowOnce(), ContinuityGapMarker)
	if _, _, err := allowOnce.ResolveArea(refs); err != nil {
		t.Fatalf("ResolveArea under AllowOnce: %v", err)
	}

	strict := NewEdgeWalker(w, ErrorOnCycle(), ContinuityGapMarker)
	_, _, err := strict.ResolveArea(refs)
	var cycle *CycleDetectedError
	if !errors.As(err, &cycle) {
		t.Fatalf("ResolveArea under ErrorOnCycle err = %v, want *CycleDetectedError", err)
	}
}

func TestJoinContinuityPolicies(t *testing.T) {
	w := entity.NewWorld()
	a, b := pt(0, 0), pt(1, 1)
	c, d := pt(5, 5), pt(6, 6)

	strict := NewEdgeWalker(w, AllowOnce(), ContinuityError)
	_, err := strict.join([]rational.Point{a, b}, []rational.Point{c, d}, entity.Name{}, 1)
	var brk *ContinuityBreakError
	if !errors.As(err, &brk) {
		t.Fatalf("join err = %v, want *ContinuityBreakError", err)
	}

	lenient := NewEdgeWalker(w, AllowOnce(), ContinuityGapMarker)
	joined, err := lenient.join([]rational.Point{a, b}, []rational.Point{c, d}, entity.Name{}, 1)
	if err != nil {
		t.Fatalf("join under GapMarker: %v", err)
	}
	assertPoints(t, joined, []rational.Point{a, b, c, d})
}

func assertPoints(t *testing.T, got, want []rational.Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d: got=%v want=%v", len(got), len(want), got, want)
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			t.Fatalf("point %d = %s, want %s", i, got[i].String(), want[i].String())
		}
	}
}
