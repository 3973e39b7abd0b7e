package attributes

import "math"

// RoundHalfEven rounds x to the nearest integer, breaking exact ties
// (fractional part == 0.5) toward the nearest even integer rather than
// always away from zero. This matches the in-game rounding behavior the
// point-attribute conversions rely on; ordinary math.Round always rounds
// .5 away from zero and would diverge on exact ties.
func RoundHalfEven(x float64) float64 {
	return math.RoundToEven(x)
}
