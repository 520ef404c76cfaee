package s57

import "github.com/harborcharts/s57/internal/entity"

// Chart represents a parsed S-57 Electronic Navigational Chart.
//
// A chart contains metadata (cell name, edition, dates, etc.) and a
// collection of navigational features (depth contours, buoys, lights,
// hazards, etc.).
//
// All fields are private to maintain encapsulation; access metadata via
// methods like DatasetName(), Edition(), ProducingAgency(), and access
// features via Features(), FeaturesInBounds(), or FeatureCount().
type Chart struct {
	features     []Feature
	spatialIndex *spatialIndex
	bounds       Bounds

	datasetName  string
	edition      string
	updateNumber string
	producingAgency int
	comment      string
	exchangePurpose string
	applicationProfile string
	issueDate           string
	updateApplicationDate string
	usageBand    UsageBand

	coordinateUnits  CoordinateUnits
	horizontalDatum  int
	compilationScale int32

	// Diagnostics carries every non-fatal condition recorded while
	// ingesting this chart (a null VRPT ORNT treated as forward, an unusual
	// TOPI on a node record, and so on). Geometry resolution records none.
	Diagnostics []entity.Diagnostic
}

// CoordinateUnits indicates how coordinates are encoded in the chart.
//
// S-57 §7.3.2.1: COUN field in DSPM record defines coordinate units.
type CoordinateUnits int

const (
	// CoordinateUnitsUnknown indicates coordinate units are not specified.
	// Treat as lat/lon by default (S-57 default assumption).
	CoordinateUnitsUnknown CoordinateUnits = 0

	// CoordinateUnitsLatLon indicates coordinates are in latitude/longitude
	// (WGS-84). This is the most common format for ENC charts.
	CoordinateUnitsLatLon CoordinateUnits = 1

	// CoordinateUnitsEastNorth indicates coordinates are in projected
	// Easting/Northing. Less common; requires a DSPR record (not decoded
	// by this module) to interpret the projection parameters.
	CoordinateUnitsEastNorth CoordinateUnits = 2
)

// String returns a human-readable name for the coordinate units.
func (c CoordinateUnits) String() string {
	switch c {
	case CoordinateUnitsLatLon:
		return "Latitude/Longitude (WGS-84)"
	case CoordinateUnitsEastNorth:
		return "Easting/Northing (Projected)"
	default:
		return "Unknown"
	}
}

// UsageBand defines the ENC usage band (navigational purpose) of the chart,
// decoded from the DSID INTU subfield.
//
// Reference: S-57 Part 3 §7.3.1.1 and S-52 §3.4.
type UsageBand int

const (
	UsageBandUnknown   UsageBand = 0
	UsageBandOverview  UsageBand = 1
	UsageBandGeneral   UsageBand = 2
	UsageBandCoastal   UsageBand = 3
	UsageBandApproach  UsageBand = 4
	UsageBandHarbour   UsageBand = 5
	UsageBandBerthing  UsageBand = 6
)

// String returns the human-readable name of the usage band.
func (ub UsageBand) String() string {
	switch ub {
	case UsageBandOverview:
		return "Overview"
	case UsageBandGeneral:
		return "General"
	case UsageBandCoastal:
		return "Coastal"
	case UsageBandApproach:
		return "Approach"
	case UsageBandHarbour:
		return "Harbour"
	case UsageBandBerthing:
		return "Berthing"
	default:
		return "Unknown"
	}
}

// ScaleRange returns the recommended scale range for this usage band as
// (minScale, maxScale) denominators. Overview and Berthing have an
// open-ended bound, returned as 0.
func (ub UsageBand) ScaleRange() (min, max int) {
	switch ub {
	case UsageBandOverview:
		return 1500000, 0
	case UsageBandGeneral:
		return 350000, 1500000
	case UsageBandCoastal:
		return 90000, 350000
	case UsageBandApproach:
		return 22000, 90000
	case UsageBandHarbour:
		return 4000, 22000
	case UsageBandBerthing:
		return 0, 4000
	default:
		return 0, 0
	}
}

// Features returns all features in the chart.
func (c *Chart) Features() []Feature {
	return c.features
}

// FeatureCount returns the number of features in the chart.
func (c *Chart) FeatureCount() int {
	return len(c.features)
}

// Bounds returns the geographic coverage area of the chart: the M_COVR
// (Meta Coverage) feature's extent if one is present, else the minimum
// bounding box of every feature's geometry.
func (c *Chart) Bounds() Bounds {
	return c.bounds
}

// FeaturesInBounds returns all features whose geometry intersects bounds.
// Backed by an R-tree index for O(log n) viewport queries.
func (c *Chart) FeaturesInBounds(bounds Bounds) []Feature {
	if c.spatialIndex == nil {
		return c.featuresInBoundsLinear(bounds)
	}
	return c.spatialIndex.query(bounds)
}

func (c *Chart) featuresInBoundsLinear(bounds Bounds) []Feature {
	result := make([]Feature, 0, len(c.features)/10)
	for _, feature := range c.features {
		if bounds.Intersects(featureBounds(feature)) {
			result = append(result, feature)
		}
	}
	return result
}

// DatasetName returns the chart's dataset name (cell identifier), e.g.
// "US5MA22M".
func (c *Chart) DatasetName() string { return c.datasetName }

// Edition returns the chart's edition number.
func (c *Chart) Edition() string { return c.edition }

// UpdateNumber returns the chart's update number ("0" for a base cell).
func (c *Chart) UpdateNumber() string { return c.updateNumber }

// Comment returns the metadata comment field.
func (c *Chart) Comment() string { return c.comment }

// ProducingAgency returns the producing agency code (S-57 Appendix A).
func (c *Chart) ProducingAgency() int { return c.producingAgency }

// ExchangePurpose returns "New" or "Revision", decoded from DSID EXPP.
func (c *Chart) ExchangePurpose() string { return c.exchangePurpose }

// ApplicationProfile returns the DSID PROF value ("New", "Revision",
// "Data dictionary", or "Unknown").
func (c *Chart) ApplicationProfile() string { return c.applicationProfile }

// IssueDate returns the DSID ISDT subfield (CCYYMMDD), unparsed.
func (c *Chart) IssueDate() string { return c.issueDate }

// UpdateApplicationDate returns the DSID UADT subfield (CCYYMMDD),
// unparsed. Empty for a base cell with no updates applied.
func (c *Chart) UpdateApplicationDate() string { return c.updateApplicationDate }

// UsageBand returns the ENC usage band of this chart.
func (c *Chart) UsageBand() UsageBand { return c.usageBand }

// CoordinateUnits returns the coordinate system used in the chart.
func (c *Chart) CoordinateUnits() CoordinateUnits { return c.coordinateUnits }

// HorizontalDatum returns the horizontal geodetic datum code (DSPM HDAT).
func (c *Chart) HorizontalDatum() int { return c.horizontalDatum }

// CompilationScale returns the compilation scale denominator (DSPM CSCL),
// or 0 if not specified.
func (c *Chart) CompilationScale() int32 { return c.compilationScale }
