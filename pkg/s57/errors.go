package s57

import "fmt"

// InvalidCoordinateError indicates a resolved coordinate falls outside
// valid geographic bounds (latitude ±90, longitude ±180). Only raised when
// ParseOptions.ValidateGeometry is set; an out-of-range coordinate usually
// means a COMF/SOMF scaling mismatch or a corrupt SG2D/SG3D subfield rather
// than a topology problem, so it is reported distinctly from the
// topology package's own error kinds.
type InvalidCoordinateError struct {
	ObjectClass string
	Lon, Lat    float64
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("%s: invalid coordinate lon=%f lat=%f (lat must be within ±90, lon within ±180)",
		e.ObjectClass, e.Lon, e.Lat)
}
