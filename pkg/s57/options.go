package s57

import "github.com/harborcharts/s57/internal/topology"

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	// SkipUnknownFeatures drops features whose OBJL code has no entry in
	// Catalogue instead of surfacing them with a synthesized acronym.
	SkipUnknownFeatures bool

	// ValidateGeometry aborts ParseWithOptions on the first feature whose
	// Topology Traversal System resolution fails, instead of recording the
	// failure on that feature's Geometry and continuing. It also range-checks
	// every resolved coordinate (latitude within ±90, longitude within ±180)
	// and aborts on the first violation, which in practice catches a wrong
	// COMF/SOMF scale factor or a corrupt SG2D/SG3D subfield.
	ValidateGeometry bool

	// ObjectClassFilter, if non-empty, restricts the returned chart to
	// features whose object class acronym appears in this list.
	ObjectClassFilter []string

	// CyclePolicy governs how the Topology Traversal System reacts to a
	// vector visited more than once while resolving a single feature.
	// Defaults to topology.AllowOnce(), matching the vast majority of
	// real ENC data (a shared edge referenced by two adjoining areas).
	CyclePolicy topology.CyclePolicy

	// ContinuityPolicy governs how the Topology Traversal System reacts to
	// a break between consecutively-joined edges or an unclosed ring.
	// Defaults to topology.ContinuityError.
	ContinuityPolicy topology.ContinuityPolicy

	// Catalogue resolves OBJL object class codes and ATTL attribute codes
	// to their acronyms. Defaults to NewStaticCatalogue(); callers with a
	// full IHO object catalogue should inject their own implementation.
	Catalogue Catalogue
}

// DefaultParseOptions returns default options.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		SkipUnknownFeatures: false,
		ValidateGeometry:    false,
		ObjectClassFilter:   nil,
		CyclePolicy:         topology.AllowOnce(),
		ContinuityPolicy:    topology.ContinuityError,
		Catalogue:           NewStaticCatalogue(),
	}
}

// withDefaults fills in the one field ParseWithOptions cannot leave nil:
// Catalogue. CyclePolicy's zero value (ErrorOnCycle) and ContinuityPolicy's
// zero value (ContinuityError) are both legitimate, strict policy choices,
// so an explicitly-constructed ParseOptions{} is left as-is rather than
// silently promoted to DefaultParseOptions()'s more permissive choices.
func (o ParseOptions) withDefaults() ParseOptions {
	if o.Catalogue == nil {
		o.Catalogue = NewStaticCatalogue()
	}
	return o
}
