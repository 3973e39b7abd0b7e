package scoring

import (
	"github.com/pable/go-cs-metrics/internal/attributes"
	"github.com/pable/go-cs-metrics/internal/character"
	"github.com/pable/go-cs-metrics/internal/optsettings"
)

// Damage computes the total damage score: power + condi + flat (§4.3).
func Damage(c *character.Character, condiScore float64, powerScore float64) float64 {
	s := c.Settings
	flat := c.Get(s.Attr("Flat DPS"))
	total := powerScore + condiScore + flat
	c.Set(s.Attr("Damage"), total)
	return total
}

// UpdateAttributesFast is update_attributes_fast (§4.4): runs calc_stats
// with rounding enabled, checks constraints unless skipValidation, and
// computes only the scoring family the settings rank by, using cache for
// Damage's condi half.
func UpdateAttributesFast(c *character.Character, cache *CondiCache, skipValidation bool) bool {
	attributes.CalcStats(c, false)

	if !skipValidation {
		if attributes.CheckInvalid(c) {
			return false
		}
	} else {
		c.Valid = true
	}

	s := c.Settings
	switch s.RankBy {
	case optsettings.RankDamage:
		power := PowerDPS(c)
		condi := condiFast(c, cache)
		c.RankScore = Damage(c, condi, power)
	case optsettings.RankSurvivability:
		c.RankScore = Survivability(c)
	case optsettings.RankHealing:
		c.RankScore = Healing(c)
	}
	return true
}

// condiFast computes condition DPS, consulting the condi cache unless it is
// disabled or there are no relevant conditions (§4.4 step 3).
func condiFast(c *character.Character, cache *CondiCache) float64 {
	s := c.Settings
	if s.DisableCondiResultCache || len(s.RelevantConditions) == 0 || cache == nil {
		return CondiDPS(c)
	}
	key := Key(c.Get(s.Attr("Expertise")), c.Get(s.Attr("Condition Damage")))
	if v, ok := cache.Get(key); ok {
		return v
	}
	v := CondiDPS(c)
	cache.Put(key, v)
	return v
}

// UpdateAttributes is update_attributes (§4.5): calc_stats followed by
// every scoring family, unconditionally, storing every intermediate. Used
// only for accepted candidates and the ±5 sensitivity pass.
func UpdateAttributes(c *character.Character, noRounding bool) {
	attributes.CalcStats(c, noRounding)
	attributes.CheckInvalid(c)

	power := PowerDPS(c)
	condi := CondiDPS(c)
	Damage(c, condi, power)
	Survivability(c)
	Healing(c)

	c.RankScore = c.Get(c.Settings.Attr(c.Settings.RankBy.AttributeName()))
}
