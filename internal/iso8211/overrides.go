package iso8211

// OverrideSchema records field/subfield facts the DDR alone cannot express:
// per S-57 Appendix B.1, some DSID subfields are optional depending on
// record context (EN/ER), and DSID!STED is a fixed 4-character ASCII
// decimal string even though the DDR declares it R(4).
//
// Reference: original_source/s57/src/s57_schema.rs (OverrideSchema).
type OverrideSchema struct {
	optionalSubfields map[string]map[string]bool
	formatOverrides   map[tagLabel]FormatKind
}

type tagLabel struct{ tag, label string }

// NewOverrideSchema builds the override table with the S-57 field
// definitions known to need one. All subfields not listed here are assumed
// required, and use whatever format the DDR itself declares.
func NewOverrideSchema() *OverrideSchema {
	s := &OverrideSchema{
		optionalSubfields: map[string]map[string]bool{},
		formatOverrides:   map[tagLabel]FormatKind{},
	}

	// DSID: PSDN/PRED optional in general use; UADT optional in ER
	// (revision) context; COMT is free-form and always optional.
	s.optionalSubfields["DSID"] = map[string]bool{
		"PSDN": true,
		"PRED": true,
		"UADT": true,
		"COMT": true,
	}

	// DSID!STED is listed as R(4) in the DDR but is actually a 4-character
	// ASCII rendering of a real number (e.g. "03.1"), not binary IEEE 754.
	s.formatOverrides[tagLabel{"DSID", "STED"}] = FormatASCII

	return s
}

// IsOptional reports whether label is allowed to be short or absent within
// field tag.
func (s *OverrideSchema) IsOptional(tag, label string) bool {
	if s == nil {
		return false
	}
	m, ok := s.optionalSubfields[tag]
	if !ok {
		return false
	}
	return m[label]
}

// FormatOverride returns a corrected FormatKind for (tag, label), if one is
// registered.
func (s *OverrideSchema) FormatOverride(tag, label string) (FormatKind, bool) {
	if s == nil {
		return 0, false
	}
	k, ok := s.formatOverrides[tagLabel{tag, label}]
	return k, ok
}
