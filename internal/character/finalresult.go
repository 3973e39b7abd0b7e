package character

// Results is the §4.9 display breakdown computed for an accepted candidate
// by internal/results.Finalize. Nil until finalization.
type Results struct {
	Value float64 // attributes[rankby]

	// Indicators holds one formatted (4-decimal, locale-grouped) string per
	// gwdata.Indicators entry, keyed by attribute name.
	Indicators map[string]string

	// EffectivePositiveValues / EffectiveNegativeValues hold the signed
	// Damage delta (5 decimals) from a ±5 nudge to one of Power, Precision,
	// Ferocity, Condition Damage, Expertise.
	EffectivePositiveValues map[string]float64
	EffectiveNegativeValues map[string]float64

	// EffectiveDamageDistribution holds, per distribution key, the percent
	// of total Damage contributed, formatted as "NN.N%".
	EffectiveDamageDistribution map[string]string

	// DamageBreakdown holds the raw per-key DPS, formatted to 2 decimals
	// with locale grouping.
	DamageBreakdown map[string]string

	// CoefficientHelper holds, per distribution key, the linear response
	// coefficients (slope, intercept) of that key's DPS contribution.
	CoefficientHelper map[string]LinearCoefficient
}

// LinearCoefficient is the (slope, intercept) pair for one distribution
// key's contribution to total Damage as a function of its coefficient c:
// DPS(c) = slope*c + intercept.
type LinearCoefficient struct {
	Slope     float64
	Intercept float64
}
