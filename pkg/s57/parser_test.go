package s57

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harborcharts/s57/internal/iso8211"
)

func u32(v int32) uint32 { return uint32(v) }

// buildTestCell assembles a synthetic S-57 cell exercising the full public
// pipeline: a LIGHTS point feature on an isolated node, a SOUNDG multipoint
// feature on a node carrying two SG3D repetitions, and a DEPCNT line
// feature spanning an edge whose geometry comes entirely from its begin/end
// node topology (no interior SG2D of its own).
func buildTestCell(t *testing.T) string {
	t.Helper()

	fields := []struct {
		tag    string
		name   string
		labels string
		format string
	}{
		{"DSID", "Data set identification field", "RCNM!RCID!EXPP!INTU!DSNM!EDTN!UPDN!UADT!ISDT!PROF!AGEN!COMT", "(b11,b14,b11,b11,A,A,A,A,A,b11,b12,A)"},
		{"DSPM", "Data set parameter field", "RCNM!RCID!HDAT!VDAT!SDAT!CSCL!DUNI!HUNI!PUNI!COUN!COMF!SOMF", "(b11,b14,b12,b12,b12,b14,b11,b11,b11,b11,b14,b14)"},
		{"VRID", "Vector record identifier field", "RCNM!RCID!RVER!RUIN", "(b11,b14,b12,b11)"},
		{"SG2D", "2-D coordinate field", "*YCOO!XCOO", "(2b24)"},
		{"SG3D", "3-D coordinate field", "*YCOO!XCOO!VE3D", "(3b24)"},
		{"VRPT", "Vector record pointer field", "*NAME!ORNT!USAG!TOPI!MASK", "(B(40),b11,b11,b11,b11)"},
		{"FRID", "Feature record identifier field", "RCNM!RCID!PRIM!GRUP!OBJL!RVER!RUIN", "(b11,b14,b11,b11,b12,b12,b11)"},
		{"FOID", "Feature object identifier field", "AGEN!FIDN!FIDS", "(b12,b14,b12)"},
		{"FSPT", "Feature to spatial record pointer field", "*NAME!ORNT!USAG!MASK", "(B(40),b11,b11,b11)"},
		{"ATTF", "Feature record attribute field", "*ATTL!ATVL", "(b12,A)"},
	}

	le := func(v uint32, n int) []byte {
		b := make([]byte, n)
		for i := 0; i < n; i++ {
			b[i] = byte(v >> (8 * i))
		}
		return b
	}
	name := func(rcnm uint8, rcid uint32) []byte {
		return append([]byte{rcnm}, le(rcid, 4)...)
	}

	var fieldDefs [][]byte
	tags := []string{"0000"}
	fieldDefs = append(fieldDefs, nil)

	fc := append([]byte("         "), iso8211.UnitTerminator)
	for _, f := range fields {
		fc = append(fc, []byte("0001"+f.tag)...)
	}
	fc = append(fc, iso8211.FieldTerminator)
	fieldDefs[0] = fc

	for _, f := range fields {
		d := append([]byte("         "), []byte(f.name)...)
		d = append(d, iso8211.UnitTerminator)
		d = append(d, []byte(f.labels)...)
		d = append(d, iso8211.UnitTerminator)
		d = append(d, []byte(f.format)...)
		d = append(d, iso8211.FieldTerminator)
		fieldDefs = append(fieldDefs, d)
		tags = append(tags, f.tag)
	}

	var directory []byte
	pos := 0
	for i, tag := range tags {
		directory = append(directory, []byte(tag)...)
		directory = append(directory, []byte(padInt(len(fieldDefs[i]), 3))...)
		directory = append(directory, []byte(padInt(pos, 4))...)
		pos += len(fieldDefs[i])
	}
	directory = append(directory, iso8211.FieldTerminator)

	base := iso8211.LeaderSize + len(directory)
	var fieldArea []byte
	for _, d := range fieldDefs {
		fieldArea = append(fieldArea, d...)
	}
	recordLength := base + len(fieldArea)

	leader := []byte(padInt(recordLength, 5) + "3L 1 09" + padInt(base, 5) + "   3404")
	if len(leader) != iso8211.LeaderSize {
		t.Fatalf("ddr leader length = %d, want %d", len(leader), iso8211.LeaderSize)
	}

	ddr := append([]byte{}, leader...)
	ddr = append(ddr, directory...)
	ddr = append(ddr, fieldArea...)

	// DR1: DSID + DSPM. COMF=10_000_000, SOMF=10.
	dsidData := append([]byte{10}, le(1, 4)...)
	dsidData = append(dsidData, 1, 5)
	dsidData = append(dsidData, []byte("TESTCELL")...)
	dsidData = append(dsidData, iso8211.UnitTerminator)
	dsidData = append(dsidData, []byte("1")...)
	dsidData = append(dsidData, iso8211.UnitTerminator)
	dsidData = append(dsidData, []byte("0")...)
	dsidData = append(dsidData, iso8211.UnitTerminator)
	dsidData = append(dsidData, []byte("")...)
	dsidData = append(dsidData, iso8211.UnitTerminator)
	dsidData = append(dsidData, []byte("20250115")...)
	dsidData = append(dsidData, iso8211.UnitTerminator)
	dsidData = append(dsidData, 1)
	dsidData = append(dsidData, le(550, 2)...)
	dsidData = append(dsidData, iso8211.UnitTerminator)

	dspmData := append([]byte{10}, le(2, 4)...)
	dspmData = append(dspmData, le(2, 2)...)
	dspmData = append(dspmData, le(2, 2)...)
	dspmData = append(dspmData, le(2, 2)...)
	dspmData = append(dspmData, le(80000, 4)...)
	dspmData = append(dspmData, 1, 1, 1)
	dspmData = append(dspmData, 1)
	dspmData = append(dspmData, le(10_000_000, 4)...)
	dspmData = append(dspmData, le(10, 4)...)
	dr1 := buildTestDataRecord(t, [][2]interface{}{{"DSID", dsidData}, {"DSPM", dspmData}})

	// DR2: node A (110/1).
	vridA := append(name(110, 1), le(1, 2)...)
	vridA = append(vridA, 1)
	sg2dA := append(le(u32(412345678), 4), le(u32(-718765432), 4)...)
	dr2 := buildTestDataRecord(t, [][2]interface{}{{"VRID", vridA}, {"SG2D", sg2dA}})

	// DR3: node B (110/2).
	vridB := append(name(110, 2), le(1, 2)...)
	vridB = append(vridB, 1)
	sg2dB := append(le(u32(412345680), 4), le(u32(-718765430), 4)...)
	dr3 := buildTestDataRecord(t, [][2]interface{}{{"VRID", vridB}, {"SG2D", sg2dB}})

	// DR4: edge (130/1), VRPT to A (begin) and B (end), no own SG2D.
	vridEdge := append(name(130, 1), le(1, 2)...)
	vridEdge = append(vridEdge, 1)
	vrptEdge := append(name(110, 1), uint8(1), uint8(255), uint8(1), uint8(255))
	vrptEdge = append(vrptEdge, name(110, 2)...)
	vrptEdge = append(vrptEdge, uint8(1), uint8(255), uint8(2), uint8(255))
	dr4 := buildTestDataRecord(t, [][2]interface{}{{"VRID", vridEdge}, {"VRPT", vrptEdge}})

	// DR5: sounding node (110/3), two SG3D repetitions.
	vridSoundg := append(name(110, 3), le(1, 2)...)
	vridSoundg = append(vridSoundg, 1)
	sg3d := append(le(u32(410000000), 4), le(u32(-710000000), 4)...)
	sg3d = append(sg3d, le(u32(50), 4)...)
	sg3d = append(sg3d, le(u32(410000010), 4)...)
	sg3d = append(sg3d, le(u32(-710000010), 4)...)
	sg3d = append(sg3d, le(u32(60), 4)...)
	dr5 := buildTestDataRecord(t, [][2]interface{}{{"VRID", vridSoundg}, {"SG3D", sg3d}})

	// DR6: LIGHTS point feature (OBJL=75) referencing node A, with an
	// OBJNAM attribute (ATTL=116).
	fridLights := append([]byte{100}, le(1, 4)...)
	fridLights = append(fridLights, 1, 255)
	fridLights = append(fridLights, le(75, 2)...)
	fridLights = append(fridLights, le(1, 2)...)
	fridLights = append(fridLights, 1)
	foidLights := append(le(550, 2), le(1, 4)...)
	foidLights = append(foidLights, le(1, 2)...)
	fsptLights := append(name(110, 1), uint8(255), uint8(255), uint8(255))
	attfLights := append(le(116, 2), []byte("Test Light")...)
	dr6 := buildTestDataRecord(t, [][2]interface{}{
		{"FRID", fridLights}, {"FOID", foidLights}, {"FSPT", fsptLights}, {"ATTF", attfLights},
	})

	// DR7: SOUNDG multipoint feature (OBJL=129) referencing the sounding node.
	fridSoundg := append([]byte{100}, le(2, 4)...)
	fridSoundg = append(fridSoundg, 1, 255)
	fridSoundg = append(fridSoundg, le(129, 2)...)
	fridSoundg = append(fridSoundg, le(1, 2)...)
	fridSoundg = append(fridSoundg, 1)
	foidSoundg := append(le(550, 2), le(2, 4)...)
	foidSoundg = append(foidSoundg, le(1, 2)...)
	fsptSoundg := append(name(110, 3), uint8(255), uint8(255), uint8(255))
	dr7 := buildTestDataRecord(t, [][2]interface{}{{"FRID", fridSoundg}, {"FOID", foidSoundg}, {"FSPT", fsptSoundg}})

	// DR8: DEPCNT line feature (OBJL=43, PRIM=2) spanning the edge.
	fridDepcnt := append([]byte{100}, le(3, 4)...)
	fridDepcnt = append(fridDepcnt, 2, 255)
	fridDepcnt = append(fridDepcnt, le(43, 2)...)
	fridDepcnt = append(fridDepcnt, le(1, 2)...)
	fridDepcnt = append(fridDepcnt, 1)
	foidDepcnt := append(le(550, 2), le(3, 4)...)
	foidDepcnt = append(foidDepcnt, le(1, 2)...)
	fsptDepcnt := append(name(130, 1), uint8(1), uint8(1), uint8(255))
	dr8 := buildTestDataRecord(t, [][2]interface{}{{"FRID", fridDepcnt}, {"FOID", foidDepcnt}, {"FSPT", fsptDepcnt}})

	all := append([]byte{}, ddr...)
	for _, dr := range [][]byte{dr1, dr2, dr3, dr4, dr5, dr6, dr7, dr8} {
		all = append(all, dr...)
	}

	path := filepath.Join(t.TempDir(), "TESTCELL.000")
	if err := os.WriteFile(path, all, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func padInt(v, width int) string {
	s := ""
	for i := 0; i < width; i++ {
		s = string(rune('0'+v%10)) + s
		v /= 10
	}
	return s
}

func buildTestDataRecord(t *testing.T, tagsAndData [][2]interface{}) []byte {
	t.Helper()
	var directory []byte
	var fieldArea []byte
	pos := 0
	for _, td := range tagsAndData {
		tag := td[0].(string)
		data := append(td[1].([]byte), iso8211.FieldTerminator)
		directory = append(directory, []byte(tag)...)
		directory = append(directory, []byte(padInt(len(data), 3))...)
		directory = append(directory, []byte(padInt(pos, 4))...)
		fieldArea = append(fieldArea, data...)
		pos += len(data)
	}
	directory = append(directory, iso8211.FieldTerminator)

	base := iso8211.LeaderSize + len(directory)
	recordLength := base + len(fieldArea)
	leader := []byte(padInt(recordLength, 5) + "3D 1 09" + padInt(base, 5) + "   3404")
	if len(leader) != iso8211.LeaderSize {
		t.Fatalf("dr leader length = %d, want %d", len(leader), iso8211.LeaderSize)
	}

	out := append([]byte{}, leader...)
	out = append(out, directory...)
	out = append(out, fieldArea...)
	return out
}

func TestParseChartMetadata(t *testing.T) {
	path := buildTestCell(t)
	chart, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if chart.DatasetName() != "TESTCELL" {
		t.Errorf("DatasetName = %q, want TESTCELL", chart.DatasetName())
	}
	if chart.ProducingAgency() != 550 {
		t.Errorf("ProducingAgency = %d, want 550", chart.ProducingAgency())
	}
	if chart.ExchangePurpose() != "New" {
		t.Errorf("ExchangePurpose = %q, want New", chart.ExchangePurpose())
	}
	if chart.ApplicationProfile() != "New" {
		t.Errorf("ApplicationProfile = %q, want New", chart.ApplicationProfile())
	}
	if chart.IssueDate() != "20250115" {
		t.Errorf("IssueDate = %q, want 20250115", chart.IssueDate())
	}
	if chart.UpdateApplicationDate() != "" {
		t.Errorf("UpdateApplicationDate = %q, want empty", chart.UpdateApplicationDate())
	}
	if chart.CoordinateUnits() != CoordinateUnitsLatLon {
		t.Errorf("CoordinateUnits = %v, want CoordinateUnitsLatLon", chart.CoordinateUnits())
	}
	if chart.FeatureCount() != 3 {
		t.Fatalf("FeatureCount = %d, want 3", chart.FeatureCount())
	}
}

func TestParsePointFeatureWithAttribute(t *testing.T) {
	path := buildTestCell(t)
	chart, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var light *Feature
	for i := range chart.Features() {
		if chart.Features()[i].ObjectClass() == "LIGHTS" {
			light = &chart.Features()[i]
		}
	}
	if light == nil {
		t.Fatal("expected a LIGHTS feature")
	}
	geom := light.Geometry()
	if geom.Type != GeometryTypePoint || len(geom.Coordinates) != 1 {
		t.Fatalf("Geometry = %+v, want one point", geom)
	}
	if name, ok := light.Attribute("OBJNAM"); !ok || name != "Test Light" {
		t.Errorf("OBJNAM = %v, %v; want \"Test Light\", true", name, ok)
	}
}

func TestParseSoundingMultipointExtractsDepths(t *testing.T) {
	path := buildTestCell(t)
	chart, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var soundg *Feature
	for i := range chart.Features() {
		if chart.Features()[i].ObjectClass() == "SOUNDG" {
			soundg = &chart.Features()[i]
		}
	}
	if soundg == nil {
		t.Fatal("expected a SOUNDG feature")
	}
	geom := soundg.Geometry()
	if geom.Type != GeometryTypePoint || len(geom.Coordinates) != 2 {
		t.Fatalf("Geometry = %+v, want two points", geom)
	}
	depths, ok := soundg.Attribute("DEPTHS")
	if !ok {
		t.Fatal("expected a DEPTHS attribute")
	}
	values, ok := depths.([]float64)
	if !ok || len(values) != 2 {
		t.Fatalf("DEPTHS = %v, want two float64 depths", depths)
	}
	if values[0] < 4.9 || values[0] > 5.1 {
		t.Errorf("DEPTHS[0] = %v, want ~5.0", values[0])
	}
}

func TestParseLineFeatureFromEdgeTopology(t *testing.T) {
	path := buildTestCell(t)
	chart, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var depcnt *Feature
	for i := range chart.Features() {
		if chart.Features()[i].ObjectClass() == "DEPCNT" {
			depcnt = &chart.Features()[i]
		}
	}
	if depcnt == nil {
		t.Fatal("expected a DEPCNT feature")
	}
	geom := depcnt.Geometry()
	if geom.Type != GeometryTypeLineString || len(geom.Coordinates) != 2 {
		t.Fatalf("Geometry = %+v, want a 2-point line from the edge's begin/end nodes", geom)
	}
}

func TestParseObjectClassFilter(t *testing.T) {
	path := buildTestCell(t)
	opts := DefaultParseOptions()
	opts.ObjectClassFilter = []string{"LIGHTS"}
	chart, err := NewParser().ParseWithOptions(path, opts)
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if chart.FeatureCount() != 1 || chart.Features()[0].ObjectClass() != "LIGHTS" {
		t.Fatalf("expected only the LIGHTS feature, got %d features", chart.FeatureCount())
	}
}

func TestParseFeaturesInBounds(t *testing.T) {
	path := buildTestCell(t)
	chart, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	bounds := chart.Bounds()
	if bounds.MinLon >= bounds.MaxLon && bounds.MinLat >= bounds.MaxLat {
		t.Fatalf("Bounds = %+v, want a non-degenerate box", bounds)
	}
	visible := chart.FeaturesInBounds(bounds.Expand(0.01))
	if len(visible) != chart.FeatureCount() {
		t.Errorf("FeaturesInBounds(expanded chart bounds) = %d features, want all %d", len(visible), chart.FeatureCount())
	}
}

func TestUsageBandScaleRange(t *testing.T) {
	tests := []struct {
		band              UsageBand
		name              string
		minScale, maxScale int
	}{
		{UsageBandOverview, "Overview", 1500000, 0},
		{UsageBandHarbour, "Harbour", 4000, 22000},
	}
	for _, tt := range tests {
		if tt.band.String() != tt.name {
			t.Errorf("String() = %q, want %q", tt.band.String(), tt.name)
		}
		min, max := tt.band.ScaleRange()
		if min != tt.minScale || max != tt.maxScale {
			t.Errorf("ScaleRange() = (%d, %d), want (%d, %d)", min, max, tt.minScale, tt.maxScale)
		}
	}
}

func TestBoundsOperations(t *testing.T) {
	b1 := Bounds{MinLon: -71.0, MaxLon: -70.0, MinLat: 42.0, MaxLat: 43.0}
	b2 := Bounds{MinLon: -70.5, MaxLon: -69.5, MinLat: 42.5, MaxLat: 43.5}
	b3 := Bounds{MinLon: -69.0, MaxLon: -68.0, MinLat: 44.0, MaxLat: 45.0}

	if !b1.Intersects(b2) {
		t.Error("b1 and b2 should intersect")
	}
	if b1.Intersects(b3) {
		t.Error("b1 and b3 should not intersect")
	}
	if !b1.Contains(-70.5, 42.5) {
		t.Error("b1 should contain (-70.5, 42.5)")
	}
	if b1.Contains(-69.0, 44.0) {
		t.Error("b1 should not contain (-69.0, 44.0)")
	}
}
