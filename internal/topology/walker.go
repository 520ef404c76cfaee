// Package topology implements the Topology Traversal System: resolving a
// feature's renderable geometry by walking VRPT edge/node chains and FSPT
// spatial reference lists under configurable cycle and continuity policies.
//
// Reference: original_source/s57-interp/src/topology/{types,errors,walker,
// cursors,mod}.rs, spec §4.5.
package topology

import (
	"github.com/harborcharts/s57/internal/entity"
	"github.com/harborcharts/s57/internal/rational"
)

// maxDepth bounds recursive vector resolution, guarding against topology
// data forming a longer cycle than a single vector's CyclePolicy budget
// alone would catch.
const maxDepth = 100

// EdgeWalker resolves vector and feature geometry against a single World,
// tracking visit counts and recursion depth across the calls made while
// resolving one feature. Callers construct a fresh EdgeWalker per feature
// so visit counts from an earlier feature don't leak in.
type EdgeWalker struct {
	world            *entity.World
	cyclePolicy      CyclePolicy
	continuityPolicy ContinuityPolicy

	visitCounts map[entity.Name]int
	depth       int
	chain       []entity.Name
}

// NewEdgeWalker returns a walker bound to world under the given policies.
func NewEdgeWalker(world *entity.World, cyclePolicy CyclePolicy, continuityPolicy ContinuityPolicy) *EdgeWalker {
	return &EdgeWalker{
		world:            world,
		cyclePolicy:      cyclePolicy,
		continuityPolicy: continuityPolicy,
		visitCounts:      map[entity.Name]int{},
	}
}

// ResolvePoint resolves a point feature's single spatial reference to its
// exact coordinate. name identifies an isolated or connected node directly.
func (w *EdgeWalker) ResolvePoint(name entity.Name) (rational.Point, error) {
	pts, err := w.ResolvePoints(name)
	if err != nil {
		return rational.Point{}, err
	}
	return pts[0], nil
}

// ResolvePoints resolves a point feature's spatial reference to every
// position carried by the referenced node, in field order. A node almost
// always carries exactly one position; a SOUNDG feature's referenced node
// may carry an array of SG3D soundings, all of which belong to the same
// multipoint feature.
func (w *EdgeWalker) ResolvePoints(name entity.Name) ([]rational.Point, error) {
	pts, err := w.resolveVector(name)
	if err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, &NoGeometryError{Vector: name}
	}
	return pts, nil
}

// ResolveLine resolves a line feature's ordered spatial reference list to a
// single polyline, stitching consecutive edges and applying orientation.
func (w *EdgeWalker) ResolveLine(refs []entity.SpatialRef) ([]rational.Point, error) {
	var line []rational.Point
	for idx, ref := range refs {
		coords, err := w.resolveWithOrientation(ref.Name, OrientationFromByte(ref.ORNT))
		if err != nil {
			return nil, err
		}
		line, err = w.join(line, coords, ref.Name, idx)
		if err != nil {
			return nil, err
		}
	}
	return line, nil
}

// ResolveArea resolves an area feature's spatial reference list into one
// exterior ring and zero or more interior rings, grouping consecutive
// references by USAG per spec §4.5's ring-accumulation state machine.
func (w *EdgeWalker) ResolveArea(refs []entity.SpatialRef) (exterior []rational.Point, interiors [][]rational.Point, err error) {
	var current []rational.Point
	inInterior := false
	exteriorTruncated := false

	flushInterior := func() error {
		if len(current) == 0 {
			return nil
		}
		closed, cerr := w.closeRing(current, false)
		if cerr != nil {
			return cerr
		}
		interiors = append(interiors, closed)
		current = nil
		return nil
	}

	for idx, ref := range refs {
		coords, rerr := w.resolveWithOrientation(ref.Name, OrientationFromByte(ref.ORNT))
		if rerr != nil {
			return nil, nil, rerr
		}

		switch ref.USAG {
		case UsageInterior:
			if !inInterior {
				inInterior = true
			} else if ringIsClosed(current) {
				// Previous interior ring already closed on itself; this
				// reference starts the next hole.
				if err := flushInterior(); err != nil {
					return nil, nil, err
				}
			}
			var jerr error
			current, jerr = w.join(current, coords, ref.Name, idx)
			if jerr != nil {
				return nil, nil, jerr
			}
		default:
			if ref.USAG == UsageExteriorTruncated {
				exteriorTruncated = true
			}
			var jerr error
			exterior, jerr = w.join(exterior, coords, ref.Name, idx)
			if jerr != nil {
				return nil, nil, jerr
			}
		}
	}

	if err := flushInterior(); err != nil {
		return nil, nil, err
	}

	exterior, err = w.closeRing(exterior, exteriorTruncated)
	if err != nil {
		return nil, nil, err
	}
	return exterior, interiors, nil
}

// closeRing enforces the exact first==last invariant on an area ring,
// unless truncated (an intentionally open data-coverage boundary, per
// USAG=ExteriorTruncated) or the ring is empty or a single point.
func (w *EdgeWalker) closeRing(ring []rational.Point, truncated bool) ([]rational.Point, error) {
	if truncated || len(ring) < 2 {
		return ring, nil
	}
	first, last := ring[0], ring[len(ring)-1]
	if first.Equal(last) {
		return ring, nil
	}
	switch w.continuityPolicy {
	case ContinuityGapMarker:
		return append(ring, first), nil
	default:
		return nil, &RingNotClosedError{First: first, Last: last}
	}
}

func ringIsClosed(ring []rational.Point) bool {
	if len(ring) < 2 {
		return false
	}
	return ring[0].Equal(ring[len(ring)-1])
}

// join appends next to acc, dropping next's leading point when it exactly
// matches acc's trailing point, per the continuity policy otherwise.
func (w *EdgeWalker) join(acc, next []rational.Point, child entity.Name, atIndex int) ([]rational.Point, error) {
	if len(next) == 0 {
		return acc, nil
	}
	if len(acc) == 0 {
		return append([]rational.Point{}, next...), nil
	}
	lhsEnd := acc[len(acc)-1]
	rhsStart := next[0]
	if lhsEnd.Equal(rhsStart) {
		return append(acc, next[1:]...), nil
	}
	switch w.continuityPolicy {
	case ContinuityGapMarker:
		return append(acc, next...), nil
	default:
		return nil, &ContinuityBreakError{AtIndex: atIndex, LhsEnd: lhsEnd, RhsStart: rhsStart, Child: child}
	}
}

// resolveWithOrientation resolves name's coordinates and reverses them if
// ornt calls for it.
func (w *EdgeWalker) resolveWithOrientation(name entity.Name, ornt Orientation) ([]rational.Point, error) {
	coords, err := w.resolveVector(name)
	if err != nil {
		return nil, err
	}
	if ornt.ShouldReverse() {
		reversed := make([]rational.Point, len(coords))
		for i, p := range coords {
			reversed[len(coords)-1-i] = p
		}
		return reversed, nil
	}
	return coords, nil
}

// resolveVector resolves name to an ordered coordinate sequence: direct
// positions if the vector carries SG2D/SG3D, or begin-node + interior
// points + end-node if it carries VRPT topology instead.
func (w *EdgeWalker) resolveVector(name entity.Name) ([]rational.Point, error) {
	if w.depth >= maxDepth {
		return nil, &MaxDepthExceededError{MaxDepth: maxDepth, Chain: append([]entity.Name{}, w.chain...)}
	}
	if err := w.checkCycle(name); err != nil {
		return nil, err
	}

	w.chain = append(w.chain, name)
	w.depth++
	w.visitCounts[name]++
	defer func() {
		w.depth--
		w.chain = w.chain[:len(w.chain)-1]
	}()

	id, ok := w.world.VectorByName(name)
	if !ok {
		from := name
		if len(w.chain) >= 2 {
			from = w.chain[len(w.chain)-2]
		}
		return nil, &DanglingReferenceError{From: from, To: name}
	}

	pos := w.world.ExactPositions[id]
	topo := w.world.VectorTopology[id]

	if topo != nil && len(topo.Neighbors) > 0 {
		var interior []rational.Point
		if pos != nil {
			interior = pos.Points
		}
		return w.resolveEdge(name, topo, interior)
	}
	if pos != nil && len(pos.Points) > 0 {
		return pos.Points, nil
	}
	return nil, &NoGeometryError{Vector: name}
}

// resolveEdge builds an edge's coordinate sequence as begin-node ⊕ interior
// points ⊕ end-node, per spec §4.5 step 2-4. The begin-node reference
// (TOPI=1) always precedes the end-node reference (TOPI=2) in the built
// sequence regardless of the order the two VRPT rows appeared in the file.
func (w *EdgeWalker) resolveEdge(name entity.Name, topo *entity.VectorTopology, interior []rational.Point) ([]rational.Point, error) {
	var beginName, endName *entity.Name
	for i := range topo.Neighbors {
		n := &topo.Neighbors[i]
		switch n.TOPI {
		case TopiBeginNode:
			if beginName == nil {
				beginName = &n.Name
			}
		case TopiEndNode:
			if endName == nil {
				endName = &n.Name
			}
		}
	}
	if beginName == nil || endName == nil {
		return nil, &IncompleteEdgeError{Edge: name}
	}

	beginPts, err := w.resolveVector(*beginName)
	if err != nil {
		return nil, err
	}
	endPts, err := w.resolveVector(*endName)
	if err != nil {
		return nil, err
	}
	if len(beginPts) == 0 || len(endPts) == 0 {
		return nil, &NoGeometryError{Vector: name}
	}

	seq := make([]rational.Point, 0, len(interior)+2)
	seq = append(seq, beginPts[0])
	seq = append(seq, interior...)
	seq = append(seq, endPts[0])
	return seq, nil
}

// checkCycle enforces the active CyclePolicy against name's current visit
// count.
func (w *EdgeWalker) checkCycle(name entity.Name) error {
	if w.visitCounts[name] >= w.cyclePolicy.maxVisits() {
		return &CycleDetectedError{Chain: append(append([]entity.Name{}, w.chain...), name)}
	}
	return nil
}
