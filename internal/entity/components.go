package entity

import "github.com/harborcharts/s57/internal/rational"

// DatasetParams holds the DSID/DSPM-derived scaling and datum parameters
// governing how every raw coordinate in the dataset is interpreted.
type DatasetParams struct {
	COMF int64 // coordinate multiplication factor
	SOMF int64 // sounding (depth) multiplication factor
	DUNI uint16
	HUNI uint16
	PUNI uint16
	COUN uint16 // coordinate units (1=lat/lon, 2=easting/northing)
	HDAT uint16
	VDAT uint16
	SDAT uint16
	CSCL uint32
	AGEN uint16
	EXPP uint16 // exchange purpose (1=new, 2=revision)
	INTU uint16 // intended usage (usage band)
	PROF uint16 // application profile (1=EN=New, 2=ER=Revision, 3=DD=data dictionary)
	COMT string
	DSNM string
	EDTN string
	UPDN string
	ISDT string // issue date (DSID)
	UADT string // update application date (DSID)
}

// VectorMeta is the identity and lifecycle metadata for a vector (spatial)
// record, decoded from VRID.
type VectorMeta struct {
	Name Name
	RVER uint16
	RUIN uint8
}

// VectorNeighbor is a single VRPT topology reference.
type VectorNeighbor struct {
	Name Name
	ORNT uint8 // 1=forward, 2=reverse, 255=not relevant
	USAG uint8 // 1=exterior, 2=interior, 3=exterior boundary truncated
	TOPI uint8 // 1=begin node, 2=end node, 3=left face, 4=right face
	MASK uint8 // 1=mask, 2=show, 255=not relevant
}

// VectorTopology accumulates every VRPT reference attached to a vector
// record, in field order.
type VectorTopology struct {
	Neighbors []VectorNeighbor
}

// FeatureMeta is the identity and lifecycle metadata for a feature
// (semantic object) record, decoded from FRID/FOID.
type FeatureMeta struct {
	Foid FoidKey
	PRIM uint8 // 1=point, 2=line, 3=area, 255=not applicable
	GRUP uint8
	OBJL uint16
	RVER uint16
	RUIN uint8
}

// Attribute is a single decoded ATTF or NATF label/value pair.
type Attribute struct {
	Label uint16
	Value string
}

// Attributes holds the ATTF/NATF attribute set attached to a feature.
type Attributes struct {
	ATTF []Attribute
	NATF []Attribute
}

// SpatialRef is a single FSPT reference from a feature to a vector.
type SpatialRef struct {
	Name Name
	ORNT uint8
	USAG uint8
	MASK uint8
}

// FeaturePointers holds a feature's outgoing FFPT (feature-to-feature) and
// FSPT (feature-to-spatial) references.
type FeaturePointers struct {
	RelatedFeatures []FoidKey
	SpatialRefs     []SpatialRef
}

// ExactPositions is the ordered sequence of exact coordinates decoded from
// a vector's SG2D/SG3D fields, in field order.
type ExactPositions struct {
	Points []rational.Point
}

// DiagnosticKind names a category of non-fatal condition recorded during
// ingestion rather than raised as an error.
type DiagnosticKind string

const (
	DiagnosticNullOrientation DiagnosticKind = "null-orientation"
	DiagnosticUnusualTopi     DiagnosticKind = "unusual-topi"
	DiagnosticUnknownRCNM     DiagnosticKind = "unknown-rcnm"
)

// Diagnostic is a non-fatal condition observed while ingesting a record,
// kept alongside the World so a caller can inspect it without ingestion
// aborting.
type Diagnostic struct {
	Kind    DiagnosticKind
	Entity  EntityID
	Message string
}
