package topology

import (
	"github.com/harborcharts/s57/internal/entity"
	"github.com/harborcharts/s57/internal/rational"
)

// GeometryKind discriminates a ResolvedGeometry's populated field, the Go
// rendering of the source's ResolvedGeometry sum type.
type GeometryKind int

const (
	GeometryNone GeometryKind = iota
	GeometryPoint
	GeometryLine
	GeometryArea
	GeometryError
)

// ResolvedGeometry is a feature's traversal result: exactly one of Points,
// Line, or (Exterior, Interiors) is meaningful, selected by Kind. A GRUP
// entry with PRIM=255 (not applicable) resolves to GeometryNone rather than
// an error; a traversal failure resolves to GeometryError with Err set.
// Points holds exactly one coordinate for an ordinary point feature, or
// several for a multipoint feature (e.g. SOUNDG) whose referenced node
// carries more than one SG3D position.
type ResolvedGeometry struct {
	Kind      GeometryKind
	Points    []rational.Point
	Line      []rational.Point
	Exterior  []rational.Point
	Interiors [][]rational.Point
	Err       error
}

// ResolveFeature runs the Topology Traversal System for one feature entity,
// dispatching on its FeatureMeta.PRIM primitive, per spec §4.5. A dangling
// reference or topology error is captured as GeometryError rather than
// propagated, so that one bad feature does not abort a whole file's
// resolution (spec §7's error-propagation table).
func ResolveFeature(world *entity.World, featureID entity.EntityID, cyclePolicy CyclePolicy, continuityPolicy ContinuityPolicy) ResolvedGeometry {
	meta := world.FeatureMeta[featureID]
	if meta == nil {
		return ResolvedGeometry{Kind: GeometryError, Err: &NoGeometryError{}}
	}

	pointers := world.FeaturePointers[featureID]
	var refs []entity.SpatialRef
	if pointers != nil {
		refs = pointers.SpatialRefs
	}

	switch meta.PRIM {
	case 1: // point
		if len(refs) == 0 {
			return ResolvedGeometry{Kind: GeometryNone}
		}
		w := NewEdgeWalker(world, cyclePolicy, continuityPolicy)
		pts, err := w.ResolvePoints(refs[0].Name)
		if err != nil {
			return ResolvedGeometry{Kind: GeometryError, Err: err}
		}
		return ResolvedGeometry{Kind: GeometryPoint, Points: pts}

	case 2: // line
		if len(refs) == 0 {
			return ResolvedGeometry{Kind: GeometryNone}
		}
		w := NewEdgeWalker(world, cyclePolicy, continuityPolicy)
		line, err := w.ResolveLine(refs)
		if err != nil {
			return ResolvedGeometry{Kind: GeometryError, Err: err}
		}
		return ResolvedGeometry{Kind: GeometryLine, Line: line}

	case 3: // area
		if len(refs) == 0 {
			return ResolvedGeometry{Kind: GeometryNone}
		}
		w := NewEdgeWalker(world, cyclePolicy, continuityPolicy)
		exterior, interiors, err := w.ResolveArea(refs)
		if err != nil {
			return ResolvedGeometry{Kind: GeometryError, Err: err}
		}
		return ResolvedGeometry{Kind: GeometryArea, Exterior: exterior, Interiors: interiors}

	default:
		return ResolvedGeometry{Kind: GeometryNone}
	}
}
