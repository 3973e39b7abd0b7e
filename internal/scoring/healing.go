package scoring

import "github.com/pable/go-cs-metrics/internal/character"

// Healing computes the effective healing output of a reference healing
// skill (base 390, healing-power coefficient 0.3) and writes it onto
// "Healing" (§4.3).
func Healing(c *character.Character) float64 {
	s := c.Settings

	hp := c.Get(s.Attr("Healing Power"))
	outgoing := c.Get(s.Attr("Outgoing Healing"))
	effective := (hp*0.3 + 390) * (1 + outgoing)

	if s.Modifiers.BountifulMaintenanceOil {
		concentration := c.Get(s.Attr("Concentration"))
		effective *= 1 + (hp*0.6+concentration*0.8)/10000
	}

	c.Set(s.Attr("Effective Healing"), effective)
	c.Set(s.Attr("Healing"), effective)
	return effective
}
