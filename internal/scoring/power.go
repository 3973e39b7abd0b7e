// Package scoring implements the pure scoring functions (C4) — Power DPS,
// per-condition DPS, effective health, and healing output — plus the
// condition-damage memoization cache (C5). Every function here reads
// c.Attributes and settings.Modifiers.DamageMultiplier and writes its
// results back onto c.Attributes. Two inputs are also modified in place:
// CondiDPS adds Expertise/1500 to "Condition Duration", and Survivability
// replaces "Armor" with Armor + Toughness. Gear is never touched.
package scoring

import "github.com/pable/go-cs-metrics/internal/character"

// PowerDPS computes Power DPS + Siphon DPS (§4.3). The standard target
// armor of 2597 normalizes the coefficient the same way for every build.
func PowerDPS(c *character.Character) float64 {
	s := c.Settings
	dm := s.Modifiers.DamageMultiplier

	critDmg := c.Get(s.Attr("Critical Damage")) * dmGet(dm, "Critical Damage")
	critChance := clamp01(c.Get(s.Attr("Critical Chance")))
	effectivePower := c.Get(s.Attr("Power")) * (1 + critChance*(critDmg-1)) * dmGet(dm, "Strike Damage")
	c.Set(s.Attr("Effective Power"), effectivePower)

	powerDPS := (c.Get(s.Attr("Power Coefficient")) / 2597) * effectivePower
	siphonDPS := c.Get(s.Attr("Siphon Base Coefficient")) * dmGet(dm, "Siphon Damage")
	c.Set(s.Attr("Siphon DPS"), siphonDPS)

	total := powerDPS + siphonDPS
	c.Set(s.Attr("Power DPS"), powerDPS)
	return total
}
