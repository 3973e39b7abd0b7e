// Package attributes implements the pure attribute derivation pipeline
// (C3): base attributes + gear additions -> full attribute map, applying
// conversions, buffs, derived-stat formulas, post-buff conversions, and
// half-to-even rounding on point attributes (spec §4.1).
package attributes

import (
	"github.com/pable/go-cs-metrics/internal/character"
)

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// CalcStats is calc_stats (§4.1): a deterministic, total function over
// c.BaseAttributes, writing the full attribute map into c.Attributes. When
// noRounding is true, every half-to-even rounding step is skipped — used
// by the finalization passes (the ±5 sensitivity pass and the coefficient
// helper, §4.5, §8 round-trips).
func CalcStats(c *character.Character, noRounding bool) {
	s := c.Settings

	attrs := make([]float64, len(c.BaseAttributes))
	copy(attrs, c.BaseAttributes)

	// Step 2: pre-buff conversions, sources read from BaseAttributes.
	for _, entry := range s.Modifiers.Convert {
		for _, src := range entry.Sources {
			delta := c.BaseAttributes[src.SourceIdx] * src.Percent
			if entry.IsPoint && !noRounding {
				delta = RoundHalfEven(delta)
			}
			attrs[entry.TargetIdx] += delta
		}
	}

	// Step 3: buffs.
	for _, b := range s.Modifiers.Buff {
		attrs[b.TargetIdx] += b.Bonus
	}

	// Step 4: derived primaries.
	precisionIdx := s.Attr("Precision")
	ferocityIdx := s.Attr("Ferocity")
	concentrationIdx := s.Attr("Concentration")
	critChanceIdx := s.Attr("Critical Chance")
	critDamageIdx := s.Attr("Critical Damage")
	boonDurationIdx := s.Attr("Boon Duration")
	healthIdx := s.Attr("Health")
	vitalityIdx := s.Attr("Vitality")
	maxHealthIdx := s.Attr("Maximum Health")

	attrs[critChanceIdx] += (attrs[precisionIdx] - 1000) / 2100
	attrs[critDamageIdx] += attrs[ferocityIdx] / 1500
	attrs[boonDurationIdx] += attrs[concentrationIdx] / 1500

	health := (attrs[healthIdx] + attrs[vitalityIdx]*10) * (1 + attrs[maxHealthIdx])
	if !noRounding {
		health = RoundHalfEven(health)
	}
	attrs[healthIdx] = health

	// Step 5: post-buff conversions, sources read from the current map.
	for _, entry := range s.Modifiers.ConvertAfterBuffs {
		for _, src := range entry.Sources {
			var v float64
			if src.CritChanceClampOffset != nil {
				v = clamp01(attrs[critChanceIdx] - *src.CritChanceClampOffset)
			} else {
				v = attrs[src.SourceIdx]
			}
			delta := v * src.Percent
			if entry.IsPoint && !noRounding {
				delta = RoundHalfEven(delta)
			}
			attrs[entry.TargetIdx] += delta
		}
	}

	c.Attributes = attrs
}

// CheckInvalid is check_invalid (§4.2): marks c.Valid accordingly and
// returns true iff any configured constraint bound is violated. All
// comparisons are strict, matching the source.
func CheckInvalid(c *character.Character) bool {
	s := c.Settings
	cons := s.Constraints

	invalid := false
	if cons.MinBoonDuration != nil && c.Get(s.Attr("Boon Duration")) < *cons.MinBoonDuration/100 {
		invalid = true
	}
	if cons.MinHealingPower != nil && c.Get(s.Attr("Healing Power")) < *cons.MinHealingPower {
		invalid = true
	}
	if cons.MinToughness != nil && c.Get(s.Attr("Toughness")) < *cons.MinToughness {
		invalid = true
	}
	if cons.MaxToughness != nil && c.Get(s.Attr("Toughness")) > *cons.MaxToughness {
		invalid = true
	}
	if cons.MinHealth != nil && c.Get(s.Attr("Health")) < *cons.MinHealth {
		invalid = true
	}
	if cons.MinCritChance != nil && c.Get(s.Attr("Critical Chance")) < *cons.MinCritChance/100 {
		invalid = true
	}

	c.Valid = !invalid
	return invalid
}
