// Package s57 provides a clean public API for parsing IHO S-57 Electronic
// Navigational Charts.
package s57

import (
	"fmt"

	"github.com/harborcharts/s57/internal/entity"
	"github.com/harborcharts/s57/internal/ingest"
	"github.com/harborcharts/s57/internal/iso8211"
	"github.com/harborcharts/s57/internal/rational"
	"github.com/harborcharts/s57/internal/topology"
)

// Parser parses S-57 Electronic Navigational Chart files.
//
// Create a parser with NewParser and use Parse or ParseWithOptions to read
// charts.
type Parser interface {
	// Parse reads an S-57 file and returns the parsed chart, ingested and
	// resolved under DefaultParseOptions().
	//
	// filename should point to an S-57 base cell (.000). Update-file
	// (.001, .002, ...) application is out of scope; pass the base cell
	// only.
	Parse(filename string) (*Chart, error)

	// ParseWithOptions parses an S-57 file with custom options.
	ParseWithOptions(filename string, opts ParseOptions) (*Chart, error)
}

// NewParser creates a new S-57 parser with default settings.
//
// Example:
//
//	parser := s57.NewParser()
//	chart, err := parser.Parse("US5MA22M.000")
func NewParser() Parser {
	return &parserWrapper{}
}

type parserWrapper struct{}

func (p *parserWrapper) Parse(filename string) (*Chart, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

func (p *parserWrapper) ParseWithOptions(filename string, opts ParseOptions) (*Chart, error) {
	opts = opts.withDefaults()

	r, err := iso8211.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if _, err := r.ReadDDR(); err != nil {
		return nil, err
	}

	world := entity.NewWorld()
	overrides := iso8211.NewOverrideSchema()
	if err := ingest.Run(r, world, overrides); err != nil {
		return nil, err
	}

	return buildChart(world, opts)
}

// buildChart runs the Topology Traversal System over every feature entity
// in world and converts the result to the public Chart/Feature/Geometry
// types, applying SkipUnknownFeatures, ObjectClassFilter, and
// ValidateGeometry per opts.
func buildChart(world *entity.World, opts ParseOptions) (*Chart, error) {
	featureIDs := world.EntitiesOfType(entity.EntityFeature)
	filter := classFilterSet(opts.ObjectClassFilter)

	features := make([]Feature, 0, len(featureIDs))
	for _, id := range featureIDs {
		meta := world.FeatureMeta[id]
		if meta == nil {
			continue
		}

		acronym, known := opts.Catalogue.ObjectClass(meta.OBJL)
		className := acronym.Acronym
		if !known {
			if opts.SkipUnknownFeatures {
				continue
			}
			className = fmt.Sprintf("OBJL%d", meta.OBJL)
		}
		if filter != nil && !filter[className] {
			continue
		}

		resolved := topology.ResolveFeature(world, id, opts.CyclePolicy, opts.ContinuityPolicy)
		if resolved.Kind == topology.GeometryError && opts.ValidateGeometry {
			return nil, resolved.Err
		}

		feature := convertFeature(world, id, className, meta.OBJL, resolved, opts.Catalogue)
		if opts.ValidateGeometry {
			if err := validateGeometry(className, feature.geometry); err != nil {
				return nil, err
			}
		}

		features = append(features, feature)
	}

	idx, bounds := buildSpatialIndex(features)

	chart := &Chart{
		features:     features,
		spatialIndex: idx,
		bounds:       bounds,
		Diagnostics:  world.Diagnostics,
	}
	if world.Dataset != nil {
		d := world.Dataset
		chart.datasetName = d.DSNM
		chart.edition = d.EDTN
		chart.updateNumber = d.UPDN
		chart.comment = d.COMT
		chart.producingAgency = int(d.AGEN)
		chart.exchangePurpose = expp(d.EXPP)
		chart.applicationProfile = prof(d.PROF)
		chart.issueDate = d.ISDT
		chart.updateApplicationDate = d.UADT
		chart.usageBand = UsageBand(d.INTU)
		chart.coordinateUnits = CoordinateUnits(d.COUN)
		chart.horizontalDatum = int(d.HDAT)
		chart.compilationScale = int32(d.CSCL)
	}
	return chart, nil
}

func expp(code uint16) string {
	switch code {
	case 1:
		return "New"
	case 2:
		return "Revision"
	default:
		return "Unknown"
	}
}

func prof(code uint16) string {
	switch code {
	case 1:
		return "New"
	case 2:
		return "Revision"
	case 3:
		return "Data dictionary"
	default:
		return "Unknown"
	}
}

func classFilterSet(classes []string) map[string]bool {
	if len(classes) == 0 {
		return nil
	}
	set := make(map[string]bool, len(classes))
	for _, c := range classes {
		set[c] = true
	}
	return set
}

// convertFeature builds a public Feature from a resolved geometry and the
// entity's ATTF/NATF attribute set. SOUNDG's multipoint geometry gets an
// additional "DEPTHS" attribute (one value per coordinate's Z), mirroring
// how a sounding's depths are surfaced by the acronym-keyed attribute map
// rather than requiring callers to dig Z back out of raw coordinates.
func convertFeature(world *entity.World, id entity.EntityID, className string, objl uint16, resolved topology.ResolvedGeometry, cat Catalogue) Feature {
	attrs := convertAttributes(world.Attributes[id], cat)
	geometry := convertGeometry(resolved)

	if className == "SOUNDG" && geometry.Type == GeometryTypePoint {
		var depths []float64
		for _, coord := range geometry.Coordinates {
			if len(coord) >= 3 {
				depths = append(depths, coord[2])
			}
		}
		if len(depths) > 0 {
			attrs["DEPTHS"] = depths
		}
	}

	meta := world.FeatureMeta[id]
	return Feature{
		id:          int64(meta.Foid.FIDN),
		objectClass: className,
		objl:        objl,
		geometry:    geometry,
		attributes:  attrs,
	}
}

func convertAttributes(attrs *entity.Attributes, cat Catalogue) map[string]interface{} {
	out := map[string]interface{}{}
	if attrs == nil {
		return out
	}
	for _, a := range attrs.ATTF {
		out[attributeKey(a.Label, cat)] = a.Value
	}
	for _, a := range attrs.NATF {
		out[attributeKey(a.Label, cat)] = a.Value
	}
	return out
}

func attributeKey(label uint16, cat Catalogue) string {
	if entry, ok := cat.Attribute(label); ok {
		return entry.Acronym
	}
	return fmt.Sprintf("ATTL%d", label)
}

func convertGeometry(resolved topology.ResolvedGeometry) Geometry {
	switch resolved.Kind {
	case topology.GeometryPoint:
		coords := make([][]float64, len(resolved.Points))
		for i, p := range resolved.Points {
			coords[i] = pointToCoord(p)
		}
		return Geometry{Type: GeometryTypePoint, Coordinates: coords}

	case topology.GeometryLine:
		return Geometry{Type: GeometryTypeLineString, Coordinates: pointsToCoords(resolved.Line)}

	case topology.GeometryArea:
		interiors := make([][][]float64, len(resolved.Interiors))
		for i, ring := range resolved.Interiors {
			interiors[i] = pointsToCoords(ring)
		}
		return Geometry{
			Type:        GeometryTypePolygon,
			Coordinates: pointsToCoords(resolved.Exterior),
			Interiors:   interiors,
		}

	case topology.GeometryError:
		return Geometry{Type: GeometryTypeUnresolved, Err: resolved.Err}

	default:
		return Geometry{Type: GeometryTypeNone}
	}
}

func pointsToCoords(pts []rational.Point) [][]float64 {
	coords := make([][]float64, len(pts))
	for i, p := range pts {
		coords[i] = pointToCoord(p)
	}
	return coords
}

// pointToCoord renders a Point in GeoJSON [lon, lat] order (SG2D/SG3D store
// Y=latitude/northing, X=longitude/easting), appending Z (depth) as a third
// element when present.
func pointToCoord(p rational.Point) []float64 {
	if p.Z != nil {
		return []float64{p.X.Float64(), p.Y.Float64(), p.Z.Float64()}
	}
	return []float64{p.X.Float64(), p.Y.Float64()}
}
