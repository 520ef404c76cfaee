package s57

// Geometry represents the spatial representation of a feature.
//
// Coordinates follow GeoJSON convention: [longitude, latitude] pairs, or
// [longitude, latitude, depth] for a sounding's 3-D position.
// All coordinates are in WGS-84 decimal degrees (or, for CoordinateUnits ==
// CoordinateUnitsEastNorth, projected easting/northing).
type Geometry struct {
	// Type indicates the geometry type (Point, LineString, or Polygon).
	Type GeometryType

	// Coordinates contains [longitude, latitude] pairs, or [longitude,
	// latitude, depth] for a sounding.
	//
	// For Point: one or more coordinate tuples (more than one only for a
	// multipoint feature, e.g. SOUNDG, whose referenced vector carries
	// several SG3D repetitions).
	// For LineString: an ordered sequence of tuples forming a line.
	// For Polygon: the exterior ring's tuples, forming a closed loop.
	Coordinates [][]float64

	// Interiors holds zero or more interior (hole) rings, present only for
	// Polygon geometry.
	Interiors [][][]float64

	// Err is set when the Topology Traversal System failed to resolve this
	// feature's geometry (a dangling reference, cycle, or continuity
	// break). Type is GeometryTypeUnresolved and Coordinates is nil in
	// this case.
	Err error
}

// GeometryType represents the type of geometry.
type GeometryType int

const (
	// GeometryTypePoint represents a single point location, or several
	// colocated points for a multipoint feature.
	GeometryTypePoint GeometryType = iota

	// GeometryTypeLineString represents a line composed of connected points.
	GeometryTypeLineString

	// GeometryTypePolygon represents a closed polygon area, possibly with
	// interior rings.
	GeometryTypePolygon

	// GeometryTypeNone represents a feature with PRIM=255 (not applicable)
	// or no spatial references at all.
	GeometryTypeNone

	// GeometryTypeUnresolved represents a feature whose Topology Traversal
	// System resolution failed; see Geometry.Err.
	GeometryTypeUnresolved
)

// String returns the string representation of the geometry type.
func (g GeometryType) String() string {
	switch g {
	case GeometryTypePoint:
		return "Point"
	case GeometryTypeLineString:
		return "LineString"
	case GeometryTypePolygon:
		return "Polygon"
	case GeometryTypeNone:
		return "None"
	case GeometryTypeUnresolved:
		return "Unresolved"
	default:
		return "Unknown"
	}
}
