package topology

import (
	"fmt"

	"github.com/harborcharts/s57/internal/entity"
	"github.com/harborcharts/s57/internal/rational"
)

// DanglingReferenceError indicates a VRPT or FSPT reference names a vector
// absent from the entity store.
type DanglingReferenceError struct {
	From entity.Name
	To   entity.Name
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("dangling reference from %+v to %+v", e.From, e.To)
}

// NoGeometryError indicates a vector has neither direct positions (SG2D/
// SG3D) nor a topology link to resolve one from.
type NoGeometryError struct {
	Vector entity.Name
}

func (e *NoGeometryError) Error() string {
	return fmt.Sprintf("vector %+v has no geometry", e.Vector)
}

// CycleDetectedError indicates a vector was revisited more times than the
// active CyclePolicy allows while resolving a single feature.
type CycleDetectedError struct {
	Chain []entity.Name
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("cycle detected in traversal chain: %v", e.Chain)
}

// ContinuityBreakError indicates two stitched edges do not share an
// endpoint and ContinuityPolicy is Error.
type ContinuityBreakError struct {
	AtIndex  int
	LhsEnd   rational.Point
	RhsStart rational.Point
	Child    entity.Name
}

func (e *ContinuityBreakError) Error() string {
	return fmt.Sprintf("continuity break at index %d (child %+v): end %s != start %s",
		e.AtIndex, e.Child, e.LhsEnd.String(), e.RhsStart.String())
}

// RingNotClosedError indicates an area ring's first and last resolved
// points do not coincide exactly and ContinuityPolicy is Error.
type RingNotClosedError struct {
	First rational.Point
	Last  rational.Point
}

func (e *RingNotClosedError) Error() string {
	return fmt.Sprintf("ring not closed: first %s != last %s", e.First.String(), e.Last.String())
}

// MaxDepthExceededError indicates recursive vector resolution exceeded
// MaxDepth, almost always the symptom of a topology cycle a CyclePolicy
// didn't catch (e.g. a mix of distinct vectors forming a longer loop).
type MaxDepthExceededError struct {
	MaxDepth int
	Chain    []entity.Name
}

func (e *MaxDepthExceededError) Error() string {
	return fmt.Sprintf("maximum recursion depth %d exceeded, chain length %d", e.MaxDepth, len(e.Chain))
}

// IncompleteEdgeError indicates an edge's VectorTopology is missing a
// begin-node or end-node reference (TOPI 1 or 2).
type IncompleteEdgeError struct {
	Edge entity.Name
}

func (e *IncompleteEdgeError) Error() string {
	return fmt.Sprintf("edge %+v missing begin or end node reference", e.Edge)
}
