package scoring

import (
	"github.com/pable/go-cs-metrics/internal/character"
	"github.com/pable/go-cs-metrics/internal/gwdata"
)

// tick returns one condition's per-tick damage: factor*conditionDamage +
// baseDamage.
func tick(coef gwdata.ConditionCoefficient, condDmg float64) float64 {
	return coef.Factor*condDmg + coef.BaseDamage
}

// CondiDPS computes total condition DPS across every relevant condition
// (§4.3), writing "{c} Damage", "{c} Stacks", "{c} DPS" back onto c for
// every condition as a documented side effect.
func CondiDPS(c *character.Character) float64 {
	s := c.Settings
	dm := s.Modifiers.DamageMultiplier

	expertiseIdx := s.Attr("Expertise")
	condDurationIdx := s.Attr("Condition Duration")
	c.Add(condDurationIdx, c.Get(expertiseIdx)/1500)
	condDuration := c.Get(condDurationIdx)

	condDmg := c.Get(s.Attr("Condition Damage"))
	condDmgMult := dmGet(dm, "Condition Damage")

	var total float64
	for i, name := range s.RelevantConditions {
		mult := condDmgMult * dmGet(dm, name+" Damage")

		var damagePerStack float64
		switch name {
		case "Torment":
			moving := tick(gwdata.ConditionData["TormentMoving"], condDmg)
			stationary := tick(gwdata.ConditionData["Torment"], condDmg)
			damagePerStack = stationary*(1-s.MovementUptime) + moving*s.MovementUptime
		case "Confusion":
			passive := tick(gwdata.ConditionData["Confusion"], condDmg)
			active := tick(gwdata.ConditionData["ConfusionActive"], condDmg)
			damagePerStack = passive + active*s.AttackRate
		default:
			damagePerStack = tick(gwdata.ConditionData[name], condDmg) * mult
		}

		duration := 1 + clamp01(c.Get(s.CondDurationIdx[i])+condDuration)
		stacks := c.Get(s.CondCoefficientIdx[i]) * duration
		dps := stacks * damagePerStack

		c.Set(s.CondDamageIdx[i], damagePerStack)
		c.Set(s.CondStacksIdx[i], stacks)
		c.Set(s.CondDPSIdx[i], dps)
		total += dps
	}
	return total
}
