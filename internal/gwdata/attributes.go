// Package gwdata holds the read-only static game tables the engine is built
// against: the canonical point-attribute set, the indicator attribute list,
// per-condition damage coefficients, and the infusion bonus constant. These
// tables are supplied at construction and never mutated by the search.
package gwdata

// PointAttributeNames is the set of attributes that round half-to-even when
// written by a conversion. Every other attribute — derived stats like
// Critical Chance or any per-condition Damage/Stacks/DPS tuple — is left
// unrounded.
var PointAttributeNames = map[string]bool{
	"Power":           true,
	"Precision":       true,
	"Ferocity":        true,
	"Condition Damage": true,
	"Expertise":       true,
	"Concentration":   true,
	"Vitality":        true,
	"Toughness":       true,
	"Healing Power":   true,
}

// IsPointAttribute reports whether name rounds half-to-even on write.
func IsPointAttribute(name string) bool {
	return PointAttributeNames[name]
}

// Indicators lists the attributes surfaced on every finalized result (C9).
var Indicators = []string{
	"Power",
	"Precision",
	"Ferocity",
	"Condition Damage",
	"Expertise",
	"Concentration",
	"Healing Power",
	"Vitality",
	"Toughness",
	"Critical Chance",
	"Critical Damage",
	"Boon Duration",
	"Health",
	"Armor",
}

// AllConditions lists every condition a settings document can name as a
// distribution key. The two synthetic per-tick variants in ConditionData
// (TormentMoving, ConfusionActive) are not listed here; scoring looks them up
// directly and they never become a Settings.RelevantConditions entry.
var AllConditions = []string{
	"Bleeding",
	"Burning",
	"Confusion",
	"Poison",
	"Torment",
}

// ConditionCoefficient is the per-tick damage formula for one condition:
// tick = Factor*ConditionDamage + BaseDamage.
type ConditionCoefficient struct {
	Factor     float64
	BaseDamage float64
}

// ConditionData is the canonical (factor, baseDamage) table per condition,
// including the synthetic TormentMoving and ConfusionActive entries used by
// the Torment/Confusion special cases in scoring (§4.3).
var ConditionData = map[string]ConditionCoefficient{
	"Bleeding":       {Factor: 0.05, BaseDamage: 22},
	"Burning":        {Factor: 0.155, BaseDamage: 131.25},
	"Confusion":      {Factor: 0.03, BaseDamage: 9.5},
	"ConfusionActive": {Factor: 0.2, BaseDamage: 19},
	"Poison":         {Factor: 0.06, BaseDamage: 33.5},
	"Torment":        {Factor: 0.025, BaseDamage: 14.5},
	"TormentMoving":  {Factor: 0.075, BaseDamage: 29},
}

// InfusionBonus is the attribute bonus contributed by a single infusion.
const InfusionBonus = 5
