package s57

// Feature represents a navigational object from an S-57 chart.
//
// Features include depth contours, buoys, lights, hazards, restricted areas,
// and all other objects defined in the S-57 Object Catalogue.
type Feature struct {
	id          int64
	objectClass string
	objl        uint16
	geometry    Geometry
	attributes  map[string]interface{}
}

// ID returns the unique feature identifier (the FIDN component of its
// FOID/LNAM key).
func (f *Feature) ID() int64 {
	return f.id
}

// ObjectClass returns the S-57 object class acronym, e.g. "DEPCNT",
// "LIGHTS", or "OBJL<code>" if the OBJL code has no Catalogue entry.
func (f *Feature) ObjectClass() string {
	return f.objectClass
}

// ObjectClassCode returns the feature's raw OBJL code.
func (f *Feature) ObjectClassCode() uint16 {
	return f.objl
}

// Geometry returns the spatial representation of the feature.
func (f *Feature) Geometry() Geometry {
	return f.geometry
}

// Attributes returns all feature attributes as a map, keyed by attribute
// acronym (e.g. "OBJNAM", "DRVAL1") when the Catalogue recognizes the ATTL
// code, or "ATTL<code>" otherwise.
func (f *Feature) Attributes() map[string]interface{} {
	return f.attributes
}

// Attribute returns a specific attribute value by acronym.
func (f *Feature) Attribute(name string) (interface{}, bool) {
	val, ok := f.attributes[name]
	return val, ok
}
