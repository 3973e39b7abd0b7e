package results

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// formatFixed renders v with exactly decimals fractional digits and
// locale-grouped (comma) thousands separators in the integer part, the way
// the teacher's report package renders large counts with go-humanize.
func formatFixed(v float64, decimals int) string {
	neg := v < 0
	if neg {
		v = -v
	}
	scale := math.Pow(10, float64(decimals))
	scaled := math.Round(v * scale)
	intPart := int64(scaled / scale)
	fracPart := int64(scaled) - intPart*int64(scale)
	s := humanize.Comma(intPart)
	if decimals > 0 {
		s += fmt.Sprintf(".%0*d", decimals, fracPart)
	}
	if neg && scaled != 0 {
		s = "-" + s
	}
	return s
}

// formatPercent renders a fraction-of-total as "NN.N%".
func formatPercent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// round5 rounds to 5 decimal places.
func round5(v float64) float64 {
	const scale = 1e5
	return math.Round(v*scale) / scale
}
