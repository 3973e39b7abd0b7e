package scoring

import "github.com/pable/go-cs-metrics/internal/character"

// Survivability computes effective health and the survivability score
// (§4.3). 1967 is the reference effective-health-per-point-of-score
// normalizer, analogous to the 2597 constant in PowerDPS.
func Survivability(c *character.Character) float64 {
	s := c.Settings
	dm := s.Modifiers.DamageMultiplier

	armor := c.Get(s.Attr("Armor")) + c.Get(s.Attr("Toughness"))
	c.Set(s.Attr("Armor"), armor)

	effectiveHealth := c.Get(s.Attr("Health")) * armor / dmGet(dm, "Damage Taken")
	c.Set(s.Attr("Effective Health"), effectiveHealth)

	survivability := effectiveHealth / 1967
	c.Set(s.Attr("Survivability"), survivability)
	return survivability
}
