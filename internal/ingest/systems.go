// Package ingest implements the five fixed-order ingestion systems that
// turn decoded ISO 8211 data records into entities and components in an
// entity.World.
//
// Reference: original_source/s57-interp/src/systems.rs (system order and
// responsibilities), internal/parser/{spatial.go,feature.go} (byte-offset
// semantics, now re-expressed against DDR-schema-decoded RecordRows instead
// of raw byte slices), spec §4.4.
package ingest

import (
	"fmt"
	"io"

	"github.com/harborcharts/s57/internal/entity"
	"github.com/harborcharts/s57/internal/iso8211"
	"github.com/harborcharts/s57/internal/rational"
)

// Run streams every data record from r (whose DDR has already been read via
// r.ReadDDR) through the fixed-order ingestion systems, populating world.
// It processes one record at a time; memory use is bounded by world's
// accumulated entities, not by the file size.
func Run(r *iso8211.Reader, world *entity.World, overrides *iso8211.OverrideSchema) error {
	ddr := r.DDR()
	if ddr == nil {
		return fmt.Errorf("ingest: reader has no DDR; call ReadDDR first")
	}

	for {
		rec, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := ingestRecord(ddr, overrides, world, rec); err != nil {
			return err
		}
	}
}

func ingestRecord(ddr *iso8211.DDR, overrides *iso8211.OverrideSchema, world *entity.World, rec *iso8211.Record) error {
	switch {
	case rec.Field("DSID") != nil:
		return ingestDataset(ddr, overrides, world, rec)
	case rec.Field("VRID") != nil:
		vector, err := nameDecodeSystem(ddr, overrides, world, rec)
		if err != nil {
			return err
		}
		if err := geometrySystem(ddr, overrides, world, rec, vector); err != nil {
			return err
		}
		return topologySystem(ddr, overrides, world, rec, vector)
	case rec.Field("FRID") != nil:
		feature, err := foidDecodeSystem(ddr, overrides, world, rec)
		if err != nil {
			return err
		}
		return featureBindSystem(ddr, overrides, world, rec, feature)
	default:
		world.AddDiagnostic(entity.DiagnosticUnknownRCNM, 0, "data record has none of DSID, VRID, FRID as its leading field")
		return nil
	}
}

func decodeField(ddr *iso8211.DDR, overrides *iso8211.OverrideSchema, rec *iso8211.Record, tag string) (*iso8211.FieldValue, error) {
	raw := rec.Field(tag)
	if raw == nil {
		return nil, nil
	}
	schema := ddr.FieldSchema(tag)
	if schema == nil {
		return nil, &iso8211.SchemaError{Tag: tag, Message: "data record references a field absent from the DDR schema"}
	}
	return iso8211.DecodeField(schema, raw, overrides)
}

// ingestDataset decodes DSID and DSPM into the world's dataset-wide
// parameters. It must run before any GeometrySystem call, since COMF/SOMF
// govern every coordinate's scale; real S-57 cells always place DSID first.
func ingestDataset(ddr *iso8211.DDR, overrides *iso8211.OverrideSchema, world *entity.World, rec *iso8211.Record) error {
	dsidFV, err := decodeField(ddr, overrides, rec, "DSID")
	if err != nil {
		return err
	}
	dspmFV, err := decodeField(ddr, overrides, rec, "DSPM")
	if err != nil {
		return err
	}

	params := &entity.DatasetParams{COMF: 1, SOMF: 1}
	if dsidFV != nil && len(dsidFV.Rows) > 0 {
		row := dsidFV.Rows[0]
		params.AGEN = uint16(row["AGEN"].Int)
		params.EXPP = uint16(row["EXPP"].Int)
		params.INTU = uint16(row["INTU"].Int)
		params.PROF = uint16(row["PROF"].Int)
		params.DSNM = row["DSNM"].Str
		params.EDTN = row["EDTN"].Str
		params.UPDN = row["UPDN"].Str
		params.ISDT = row["ISDT"].Str
		params.UADT = row["UADT"].Str
		params.COMT = row["COMT"].Str
	}
	if dspmFV != nil && len(dspmFV.Rows) > 0 {
		row := dspmFV.Rows[0]
		if v := row["COMF"].Int; v != 0 {
			params.COMF = v
		}
		if v := row["SOMF"].Int; v != 0 {
			params.SOMF = v
		}
		params.DUNI = uint16(row["DUNI"].Int)
		params.HUNI = uint16(row["HUNI"].Int)
		params.PUNI = uint16(row["PUNI"].Int)
		params.COUN = uint16(row["COUN"].Int)
		params.HDAT = uint16(row["HDAT"].Int)
		params.VDAT = uint16(row["VDAT"].Int)
		params.SDAT = uint16(row["SDAT"].Int)
		params.CSCL = uint32(row["CSCL"].Int)
	}
	world.Dataset = params
	return nil
}

// nameDecodeSystem consumes VRID, creating the vector entity every other
// vector-side system attaches its components to.
func nameDecodeSystem(ddr *iso8211.DDR, overrides *iso8211.OverrideSchema, world *entity.World, rec *iso8211.Record) (entity.EntityID, error) {
	fv, err := decodeField(ddr, overrides, rec, "VRID")
	if err != nil {
		return 0, err
	}
	if fv == nil || len(fv.Rows) == 0 {
		return 0, &iso8211.SchemaError{Tag: "VRID", Message: "vector record missing VRID"}
	}
	row := fv.Rows[0]
	name := entity.Name{RCNM: uint8(row["RCNM"].Int), RCID: uint32(row["RCID"].Int)}

	id := world.CreateEntity(entity.EntityVector)
	world.NameIndex[name] = id
	world.VectorMeta[id] = &entity.VectorMeta{
		Name: name,
		RVER: uint16(row["RVER"].Int),
		RUIN: uint8(row["RUIN"].Int),
	}
	return id, nil
}

// geometrySystem consumes SG2D/SG3D attached to the current vector,
// scaling raw integers into exact rational coordinates via the dataset's
// COMF/SOMF.
func geometrySystem(ddr *iso8211.DDR, overrides *iso8211.OverrideSchema, world *entity.World, rec *iso8211.Record, vector entity.EntityID) error {
	comf, somf := int64(1), int64(1)
	if world.Dataset != nil {
		comf, somf = world.Dataset.COMF, world.Dataset.SOMF
	}

	positions := &entity.ExactPositions{}

	fv2d, err := decodeField(ddr, overrides, rec, "SG2D")
	if err != nil {
		return err
	}
	for _, row := range fv2d.AllRows() {
		y := rational.FromScaledInt(row["YCOO"].Int, comf)
		x := rational.FromScaledInt(row["XCOO"].Int, comf)
		positions.Points = append(positions.Points, rational.Point{Y: y, X: x})
	}

	fv3d, err := decodeField(ddr, overrides, rec, "SG3D")
	if err != nil {
		return err
	}
	for _, row := range fv3d.AllRows() {
		y := rational.FromScaledInt(row["YCOO"].Int, comf)
		x := rational.FromScaledInt(row["XCOO"].Int, comf)
		z := rational.FromScaledInt(row["VE3D"].Int, somf)
		positions.Points = append(positions.Points, rational.Point{Y: y, X: x, Z: &z})
	}

	if len(positions.Points) > 0 {
		world.ExactPositions[vector] = positions
	}
	return nil
}

// topologySystem consumes VRPT, appending one VectorNeighbor per repetition
// in file order.
func topologySystem(ddr *iso8211.DDR, overrides *iso8211.OverrideSchema, world *entity.World, rec *iso8211.Record, vector entity.EntityID) error {
	fv, err := decodeField(ddr, overrides, rec, "VRPT")
	if err != nil {
		return err
	}

	meta := world.VectorMeta[vector]
	for _, row := range fv.AllRows() {
		name, err := entity.DecodeName(row["NAME"].Bytes)
		if err != nil {
			return &iso8211.SchemaError{Tag: "VRPT", Message: err.Error()}
		}

		ornt := uint8(row["ORNT"].Int)
		if ornt == 0 {
			world.AddDiagnostic(entity.DiagnosticNullOrientation, vector, "VRPT ORNT absent, treated as forward")
			ornt = 1
		}
		usag := uint8(row["USAG"].Int)
		topi := uint8(row["TOPI"].Int)
		mask := uint8(row["MASK"].Int)

		if meta != nil && (meta.Name.RCNM == 110 || meta.Name.RCNM == 120) && topi == 255 {
			world.AddDiagnostic(entity.DiagnosticUnusualTopi, vector, fmt.Sprintf("TOPI=255 on node row RCNM=%d", meta.Name.RCNM))
		}

		topo := world.VectorTopology[vector]
		if topo == nil {
			topo = &entity.VectorTopology{}
			world.VectorTopology[vector] = topo
		}
		topo.Neighbors = append(topo.Neighbors, entity.VectorNeighbor{Name: name, ORNT: ornt, USAG: usag, TOPI: topi, MASK: mask})
	}
	return nil
}

// foidDecodeSystem consumes FRID+FOID, creating the feature entity every
// other feature-side system attaches its components to.
func foidDecodeSystem(ddr *iso8211.DDR, overrides *iso8211.OverrideSchema, world *entity.World, rec *iso8211.Record) (entity.EntityID, error) {
	fridFV, err := decodeField(ddr, overrides, rec, "FRID")
	if err != nil {
		return 0, err
	}
	if fridFV == nil || len(fridFV.Rows) == 0 {
		return 0, &iso8211.SchemaError{Tag: "FRID", Message: "feature record missing FRID"}
	}
	fridRow := fridFV.Rows[0]

	var foid entity.FoidKey
	foidFV, err := decodeField(ddr, overrides, rec, "FOID")
	if err != nil {
		return 0, err
	}
	if foidFV != nil && len(foidFV.Rows) > 0 {
		row := foidFV.Rows[0]
		foid = entity.FoidKey{
			AGEN: uint16(row["AGEN"].Int),
			FIDN: uint32(row["FIDN"].Int),
			FIDS: uint16(row["FIDS"].Int),
		}
	}

	id := world.CreateEntity(entity.EntityFeature)
	world.FoidIndex[foid] = id
	world.FeatureMeta[id] = &entity.FeatureMeta{
		Foid: foid,
		PRIM: uint8(fridRow["PRIM"].Int),
		GRUP: uint8(fridRow["GRUP"].Int),
		OBJL: uint16(fridRow["OBJL"].Int),
		RVER: uint16(fridRow["RVER"].Int),
		RUIN: uint8(fridRow["RUIN"].Int),
	}
	return id, nil
}

// featureBindSystem consumes FSPT, FFPT, ATTF, and NATF, binding the
// feature to the spatial vectors and other features it references and
// populating its attribute set.
func featureBindSystem(ddr *iso8211.DDR, overrides *iso8211.OverrideSchema, world *entity.World, rec *iso8211.Record, feature entity.EntityID) error {
	pointers := world.FeaturePointers[feature]
	if pointers == nil {
		pointers = &entity.FeaturePointers{}
		world.FeaturePointers[feature] = pointers
	}

	fsptFV, err := decodeField(ddr, overrides, rec, "FSPT")
	if err != nil {
		return err
	}
	for _, row := range fsptFV.AllRows() {
		name, err := entity.DecodeName(row["NAME"].Bytes)
		if err != nil {
			return &iso8211.SchemaError{Tag: "FSPT", Message: err.Error()}
		}
		pointers.SpatialRefs = append(pointers.SpatialRefs, entity.SpatialRef{
			Name: name,
			ORNT: uint8(row["ORNT"].Int),
			USAG: uint8(row["USAG"].Int),
			MASK: uint8(row["MASK"].Int),
		})
	}

	ffptFV, err := decodeField(ddr, overrides, rec, "FFPT")
	if err != nil {
		return err
	}
	for _, row := range ffptFV.AllRows() {
		foid, err := entity.DecodeFoidKey(row["LNAM"].Bytes)
		if err != nil {
			return &iso8211.SchemaError{Tag: "FFPT", Message: err.Error()}
		}
		pointers.RelatedFeatures = append(pointers.RelatedFeatures, foid)
	}

	attrs := world.Attributes[feature]
	if attrs == nil {
		attrs = &entity.Attributes{}
		world.Attributes[feature] = attrs
	}

	attfFV, err := decodeField(ddr, overrides, rec, "ATTF")
	if err != nil {
		return err
	}
	for _, row := range attfFV.AllRows() {
		attrs.ATTF = append(attrs.ATTF, entity.Attribute{Label: uint16(row["ATTL"].Int), Value: row["ATVL"].Str})
	}

	natfFV, err := decodeField(ddr, overrides, rec, "NATF")
	if err != nil {
		return err
	}
	for _, row := range natfFV.AllRows() {
		attrs.NATF = append(attrs.NATF, entity.Attribute{Label: uint16(row["ATTL"].Int), Value: row["ATVL"].Str})
	}

	return nil
}
