package s57

// AttributeValueType classifies how an attribute's ATTF/NATF value should
// be interpreted.
type AttributeValueType int

const (
	AttributeTypeUnknown AttributeValueType = iota
	AttributeTypeEnumerated
	AttributeTypeList
	AttributeTypeFloat
	AttributeTypeInteger
	AttributeTypeCodedString
	AttributeTypeFreeText
)

// ObjectClassEntry is one row of the object class catalogue: the acronym
// used in application code (e.g. "LIGHTS") and its full name.
type ObjectClassEntry struct {
	Acronym string
	Name    string
}

// AttributeEntry is one row of the attribute catalogue.
type AttributeEntry struct {
	Acronym   string
	Name      string
	ValueType AttributeValueType
}

// Catalogue looks up S-57 object class and attribute codes. Both lookups
// are total: a missing code returns (zero value, false) rather than an
// error, per spec §6.2 — callers degrade to an Unknown sentinel, never a
// fatal condition.
type Catalogue interface {
	ObjectClass(code uint16) (ObjectClassEntry, bool)
	Attribute(code uint16) (AttributeEntry, bool)
}

// StaticCatalogue is a small, hand-authored Catalogue seeded with the
// object classes and attributes this module's own examples and tests
// exercise. The real IHO S-57 Appendix A object/attribute catalogue is
// out of scope (see SPEC_FULL.md §6.2); production callers are expected to
// supply their own Catalogue (e.g. loaded from a GDAL-derived CSV) via
// this same interface.
//
// Grounded on internal/parser/objectclass.go's objectClassNames table
// (values here are drawn from the same real IHO object-class numbering)
// and its AttributeCodeToString/ObjectClassToString accessor shape,
// reseeded as a struct-backed interface implementation instead of a
// package-level sync.Once CSV loader, since no CSV ships in this module.
type StaticCatalogue struct {
	objectClasses map[uint16]ObjectClassEntry
	attributes    map[uint16]AttributeEntry
}

// NewStaticCatalogue returns a StaticCatalogue seeded with a small set of
// commonly-exercised object classes and attributes.
func NewStaticCatalogue() *StaticCatalogue {
	return &StaticCatalogue{
		objectClasses: map[uint16]ObjectClassEntry{
			14:  {Acronym: "BOYCAR", Name: "Buoy, cardinal"},
			42:  {Acronym: "DEPARE", Name: "Depth area"},
			43:  {Acronym: "DEPCNT", Name: "Depth contour"},
			75:  {Acronym: "LIGHTS", Name: "Light"},
			86:  {Acronym: "OBSTRN", Name: "Obstruction"},
			112: {Acronym: "RESARE", Name: "Restricted area"},
			129: {Acronym: "SOUNDG", Name: "Sounding"},
			302: {Acronym: "M_COVR", Name: "Coverage"},
		},
		attributes: map[uint16]AttributeEntry{
			51:  {Acronym: "CATLIT", Name: "Category of light", ValueType: AttributeTypeEnumerated},
			57:  {Acronym: "CATOBS", Name: "Category of obstruction", ValueType: AttributeTypeEnumerated},
			87:  {Acronym: "DRVAL2", Name: "Depth range value 2", ValueType: AttributeTypeFloat},
			88:  {Acronym: "DRVAL1", Name: "Depth range value 1", ValueType: AttributeTypeFloat},
			116: {Acronym: "OBJNAM", Name: "Object name", ValueType: AttributeTypeFreeText},
			133: {Acronym: "VALSOU", Name: "Value of sounding", ValueType: AttributeTypeFloat},
			187: {Acronym: "WATLEV", Name: "Water level effect", ValueType: AttributeTypeEnumerated},
		},
	}
}

func (c *StaticCatalogue) ObjectClass(code uint16) (ObjectClassEntry, bool) {
	e, ok := c.objectClasses[code]
	return e, ok
}

func (c *StaticCatalogue) Attribute(code uint16) (AttributeEntry, bool) {
	e, ok := c.attributes[code]
	return e, ok
}
