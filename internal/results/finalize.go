// Package results implements the bounded result heap (C7) and the
// finalization pass (C9) that turns an accepted candidate into the display
// breakdown a report consumer reads.
package results

import (
	"github.com/pable/go-cs-metrics/internal/attributes"
	"github.com/pable/go-cs-metrics/internal/character"
	"github.com/pable/go-cs-metrics/internal/gwdata"
	"github.com/pable/go-cs-metrics/internal/scoring"
)

// sensitivityAttrs lists the base attributes the ±5 pass nudges (§4.9).
var sensitivityAttrs = []string{
	"Power", "Precision", "Ferocity", "Condition Damage", "Expertise",
}

// Finalize computes the full §4.9 display breakdown for an accepted
// candidate and attaches it as c.Results. c must already have been through
// UpdateAttributes (the heap runs it with rounding enabled before calling
// Finalize).
func Finalize(c *character.Character) {
	s := c.Settings
	r := &character.Results{
		Value:                       c.Get(s.Attr(s.RankBy.AttributeName())),
		Indicators:                  make(map[string]string, len(gwdata.Indicators)),
		EffectivePositiveValues:     make(map[string]float64, len(sensitivityAttrs)),
		EffectiveNegativeValues:     make(map[string]float64, len(sensitivityAttrs)),
		EffectiveDamageDistribution: make(map[string]string, len(s.Distribution)),
		DamageBreakdown:             make(map[string]string, len(s.Distribution)),
		CoefficientHelper:           make(map[string]character.LinearCoefficient, len(s.Distribution)),
	}

	for _, name := range gwdata.Indicators {
		r.Indicators[name] = formatFixed(c.Get(s.Attr(name)), 4)
	}

	fillSensitivity(c, r)
	fillDistribution(c, r)
	fillCoefficientHelper(c, r)

	c.Results = r
}

// fillSensitivity is the ±5 sensitivity pass: nudge one base attribute at a
// time, clamping a negative nudge at 0, recompute with no_rounding=true, and
// record the signed Damage delta against the (also no-rounding) baseline.
func fillSensitivity(c *character.Character, r *character.Results) {
	s := c.Settings

	baseline := c.Clone()
	scoring.UpdateAttributes(baseline, true)
	baseDamage := baseline.Get(s.Attr("Damage"))

	for _, name := range sensitivityAttrs {
		idx := s.Attr(name)

		pos := c.Clone()
		pos.BaseAttributes[idx] += 5
		scoring.UpdateAttributes(pos, true)
		r.EffectivePositiveValues[name] = round5(pos.Get(s.Attr("Damage")) - baseDamage)

		neg := c.Clone()
		v := neg.BaseAttributes[idx] - 5
		if v < 0 {
			v = 0
		}
		neg.BaseAttributes[idx] = v
		scoring.UpdateAttributes(neg, true)
		r.EffectiveNegativeValues[name] = round5(neg.Get(s.Attr("Damage")) - baseDamage)
	}
}

// fillDistribution records each distribution key's raw DPS and its percent
// share of total Damage.
func fillDistribution(c *character.Character, r *character.Results) {
	s := c.Settings
	total := c.Get(s.Attr("Damage"))

	for key := range s.Distribution {
		attrName := key + " DPS"
		if key == "Power" {
			attrName = "Power DPS"
		}
		v := c.Get(s.Attr(attrName))
		r.DamageBreakdown[key] = formatFixed(v, 2)
		if total != 0 {
			r.EffectiveDamageDistribution[key] = formatPercent(v / total)
		} else {
			r.EffectiveDamageDistribution[key] = formatPercent(0)
		}
	}
}

// coefficientAttrName maps a distribution key to the attribute whose value
// drives that key's contribution linearly.
func coefficientAttrName(key string) string {
	if key == "Power" {
		return "Power Coefficient"
	}
	return key + " Coefficient"
}

// fillCoefficientHelper computes, per distribution key, the (slope,
// intercept) pair of that key's DPS contribution as a function of its own
// coefficient, holding every other key's coefficient at zero. Because each
// key's contribution is linear in only its own coefficient attribute (the
// condition and power formulas have no cross terms), summing these
// per-key lines reproduces the total Damage at any uniform coefficient c —
// the round-trip property described in §8.
func fillCoefficientHelper(c *character.Character, r *character.Results) {
	s := c.Settings
	if len(s.Distribution) == 0 {
		return
	}

	baseline := totalDamage(prepareZeroed(c))

	baselineKey := ""
	for key := range s.Distribution {
		if key == "Power" {
			baselineKey = "Power"
			break
		}
		if baselineKey == "" || key < baselineKey {
			baselineKey = key
		}
	}

	for key := range s.Distribution {
		swept := prepareZeroed(c)
		swept.Set(s.Attr(coefficientAttrName(key)), 1)
		d1 := totalDamage(swept)

		intercept := 0.0
		if key == baselineKey {
			intercept = baseline
		}
		r.CoefficientHelper[key] = character.LinearCoefficient{
			Slope:     d1 - baseline,
			Intercept: intercept,
		}
	}
}

// prepareZeroed runs a fresh, single calc_stats pass from c's BaseAttributes
// and zeroes every distribution key's coefficient attribute, giving a
// one-shot-scoreable character with no accumulated state from a prior
// scoring call (CondiDPS mutates Condition Duration as a side effect, so
// reusing an already-scored instance across sweeps would double-count it).
func prepareZeroed(c *character.Character) *character.Character {
	s := c.Settings
	clone := c.Clone()
	attributes.CalcStats(clone, true)
	for key := range s.Distribution {
		clone.Set(s.Attr(coefficientAttrName(key)), 0)
	}
	return clone
}

// totalDamage scores power and condi DPS once against a prepared
// character's current Attributes and returns total Damage.
func totalDamage(c *character.Character) float64 {
	power := scoring.PowerDPS(c)
	condi := scoring.CondiDPS(c)
	return scoring.Damage(c, condi, power)
}
