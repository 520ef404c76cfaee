// Package rational implements the arbitrary-precision coordinate arithmetic
// the topology traversal system depends on for bit-exact ring closure and
// endpoint-continuity tests.
//
// Reference: original_source/s57-interp (BigRational usage throughout
// topology/{types,walker,cursors}.rs), spec §4.3.
package rational

import "math/big"

// Coordinate is a single scaled, arbitrary-precision coordinate value: the
// raw integer read from an SG2D/SG3D subfield over the dataset's
// multiplication factor (COMF for lat/lon, SOMF for depth).
type Coordinate struct {
	r *big.Rat
}

// FromScaledInt builds a Coordinate from a raw integer subfield value and
// the multiplication factor it is scaled by. factor must be non-zero; a
// zero factor is treated as 1 to avoid a division-by-zero panic on
// malformed DSPM data (callers should validate DSPM separately).
func FromScaledInt(raw int64, factor int64) Coordinate {
	if factor == 0 {
		factor = 1
	}
	return Coordinate{r: big.NewRat(raw, factor)}
}

// Zero is the additive identity, useful as a default/sentinel value.
func Zero() Coordinate {
	return Coordinate{r: big.NewRat(0, 1)}
}

// Equal reports exact equality via cross-multiplication; it is correct
// whether or not either operand's internal fraction has been reduced,
// which is the property the topology walker's ring-closure and
// endpoint-continuity checks depend on.
func (c Coordinate) Equal(other Coordinate) bool {
	if c.r == nil || other.r == nil {
		return c.r == other.r
	}
	return c.r.Cmp(other.r) == 0
}

// Float64 converts to a float64 for rendering or logging. Precision loss
// here is expected and confined to output; no internal computation uses
// this representation.
func (c Coordinate) Float64() float64 {
	if c.r == nil {
		return 0
	}
	f, _ := c.r.Float64()
	return f
}

// String renders a bounded-precision decimal, sufficient for diagnostics
// without materializing the full exact fraction.
func (c Coordinate) String() string {
	if c.r == nil {
		return "0"
	}
	return c.r.FloatString(9)
}

// Sub returns c - other as an exact rational.
func (c Coordinate) Sub(other Coordinate) Coordinate {
	out := new(big.Rat)
	if c.r != nil && other.r != nil {
		out.Sub(c.r, other.r)
	}
	return Coordinate{r: out}
}

// Abs returns the absolute value of c.
func (c Coordinate) Abs() Coordinate {
	out := new(big.Rat)
	if c.r != nil {
		out.Abs(c.r)
	}
	return Coordinate{r: out}
}

// LessThan reports whether c < other. The exact-equality checks use Equal,
// never this ordering.
func (c Coordinate) LessThan(other Coordinate) bool {
	if c.r == nil || other.r == nil {
		return false
	}
	return c.r.Cmp(other.r) < 0
}

// Point is a 2-D or 3-D exact position: Z is present only for soundings and
// other 3-D vector records (SG3D).
type Point struct {
	Y, X Coordinate
	Z    *Coordinate
}

// Equal reports whether two points coincide exactly. Points differing only
// in the presence of Z (2-D vs 3-D) are compared on Y/X alone, since ring
// closure operates in the horizontal plane.
func (p Point) Equal(other Point) bool {
	return p.Y.Equal(other.Y) && p.X.Equal(other.X)
}

// String renders (Y, X) for diagnostics.
func (p Point) String() string {
	return "(" + p.Y.String() + ", " + p.X.String() + ")"
}
