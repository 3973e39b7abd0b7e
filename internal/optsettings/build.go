package optsettings

import (
	"fmt"

	"github.com/pable/go-cs-metrics/internal/gwdata"
)

// RawAffixBonus is one (attribute, bonus) pair on a RawAffix.
type RawAffixBonus struct {
	Attr  string  `json:"attr"`
	Bonus float64 `json:"bonus"`
}

// RawAffix is one selectable affix for a slot, in the canonical order used
// for symmetry breaking.
type RawAffix struct {
	ID      string          `json:"id"`
	Bonuses []RawAffixBonus `json:"bonuses"`
}

// RawSlot is one gear slot and its allowed affixes.
type RawSlot struct {
	Name    string     `json:"name"`
	Kind    string     `json:"kind"` // "armor", "ring", "accessory", "weapon", "" (generic)
	Affixes []RawAffix `json:"affixes"`
}

// RawSymmetryCheck configures one symmetry-pruning comparison (§4.8 step 3):
// when the gear prefix reaches length AtSlotsFilled, reject it unless
// gear[A] <= gear[B] (canonical affix order), unless the matching
// ForceFlag ("armor", "ring", "acc", "wep") is set.
type RawSymmetryCheck struct {
	AtSlotsFilled int    `json:"atSlotsFilled"`
	A             int    `json:"a"`
	B             int    `json:"b"`
	ForceFlag     string `json:"forceFlag"`
}

// RawConvertSource is one contributing source of a RawConvertEntry.
type RawConvertSource struct {
	Attr    string  `json:"attr"`
	Percent float64 `json:"percent"`
}

// RawConvertEntry is one (target, [(source, percent)...]) conversion rule.
type RawConvertEntry struct {
	Target  string             `json:"target"`
	Sources []RawConvertSource `json:"sources"`
}

// RawBuffEntry is one (attribute, bonus) additive buff.
type RawBuffEntry struct {
	Attr  string  `json:"attr"`
	Bonus float64 `json:"bonus"`
}

// RawModifiers is the settings document's modifier bundle.
type RawModifiers struct {
	Convert                 []RawConvertEntry `json:"convert"`
	Buff                    []RawBuffEntry     `json:"buff"`
	ConvertAfterBuffs       []RawConvertEntry `json:"convertAfterBuffs"`
	DamageMultiplier        map[string]float64 `json:"damageMultiplier"`
	BountifulMaintenanceOil bool               `json:"bountifulMaintenanceOil"`
}

// RawConstraints is the settings document's optional per-candidate bounds.
type RawConstraints struct {
	MinBoonDuration *float64 `json:"minBoonDuration"`
	MinHealingPower *float64 `json:"minHealingPower"`
	MinToughness    *float64 `json:"minToughness"`
	MaxToughness    *float64 `json:"maxToughness"`
	MinHealth       *float64 `json:"minHealth"`
	MinCritChance   *float64 `json:"minCritChance"`
}

// RawSettings is the on-disk JSON shape a settings document is decoded
// from (internal/optsettings/load.go). It is translated into an immutable
// Settings by NewSettings, which performs all validation described in §7.
type RawSettings struct {
	Slots            []RawSlot           `json:"slots"`
	SymmetryChecks   []RawSymmetryCheck  `json:"symmetryChecks"`
	BaseAttributes   map[string]float64  `json:"baseAttributes"`
	Modifiers        RawModifiers        `json:"modifiers"`
	Constraints      RawConstraints      `json:"constraints"`
	Distribution     map[string]float64  `json:"distribution"`
	RankBy           string              `json:"rankby"`
	InfusionMode     string              `json:"infusionMode"`
	MaxInfusions         int             `json:"maxInfusions"`
	PrimaryMaxInfusions  int             `json:"primaryMaxInfusions"`
	SecondaryMaxInfusions int            `json:"secondaryMaxInfusions"`
	PrimaryAttr      string              `json:"primaryAttr"`
	SecondaryAttr    string              `json:"secondaryAttr"`
	MaxResults              int         `json:"maxResults"`
	DisableCondiResultCache bool        `json:"disableCondiResultCache"`
	ForcedArmor bool `json:"forcedArmor"`
	ForcedRing  bool `json:"forcedRing"`
	ForcedAcc   bool `json:"forcedAcc"`
	ForcedWep   bool `json:"forcedWep"`
	MovementUptime float64 `json:"movementUptime"`
	AttackRate     float64 `json:"attackRate"`
	Minimal        MinimalSettings `json:"minimal"`
}

// DefaultGW2SymmetryChecks returns the symmetry checks for the standard
// 15-slot layout documented in spec §3: armor shoulders/gloves/boots at
// 1/3/5, rings at 7/8, accessories at 9/10, weapons at 12/13.
func DefaultGW2SymmetryChecks() []RawSymmetryCheck {
	return []RawSymmetryCheck{
		{AtSlotsFilled: 6, A: 1, B: 3, ForceFlag: "armor"},
		{AtSlotsFilled: 6, A: 3, B: 5, ForceFlag: "armor"},
		{AtSlotsFilled: 9, A: 7, B: 8, ForceFlag: "ring"},
		{AtSlotsFilled: 11, A: 9, B: 10, ForceFlag: "acc"},
		{AtSlotsFilled: 14, A: 12, B: 13, ForceFlag: "wep"},
	}
}

// SymmetryCheck is a compiled RawSymmetryCheck, resolved against the
// Settings' Forced* flags.
type SymmetryCheck struct {
	AtSlotsFilled int
	A, B          int
	ForceFlag     string
}

// forced reports whether this check's governing flag is set, disabling it.
func (c SymmetryCheck) forced(s *Settings) bool {
	switch c.ForceFlag {
	case "armor":
		return s.ForcedArmor
	case "ring":
		return s.ForcedRing
	case "acc":
		return s.ForcedAcc
	case "wep":
		return s.ForcedWep
	default:
		return false
	}
}

// Active reports whether this check should be evaluated against gear prefix
// of length k — i.e. whether the check is not disabled by a forcing flag.
func (c SymmetryCheck) Active(s *Settings, k int) bool {
	return k == c.AtSlotsFilled && !c.forced(s)
}

// compileConvert resolves a RawConvertEntry against the registry, producing
// a ConvertEntry whose indices the hot loop in internal/attributes reads
// directly. forPostBuff enables the "Critical Chance"/"Critical Chance -X"
// special-case source handling (§4.1 step 5); pre-buff conversions never
// use it (their sources always read baseAttributes by plain name, §4.1
// step 2).
func compileConvert(reg *gwdata.Registry, e RawConvertEntry, forPostBuff bool) ConvertEntry {
	out := ConvertEntry{
		TargetIdx: reg.Resolve(e.Target),
		IsPoint:   gwdata.IsPointAttribute(e.Target),
	}
	for _, src := range e.Sources {
		cs := ConvertSource{Percent: src.Percent}
		if forPostBuff {
			if off, ok := critChanceClampOffset(src.Attr); ok {
				v := off
				cs.CritChanceClampOffset = &v
				cs.SourceIdx = reg.Resolve("Critical Chance")
				out.Sources = append(out.Sources, cs)
				continue
			}
		}
		cs.SourceIdx = reg.Resolve(src.Attr)
		out.Sources = append(out.Sources, cs)
	}
	return out
}

// critChanceClampOffset recognizes the literal source strings "Critical
// Chance" and "Critical Chance -X" for X in {7,20,27,30,37} (§4.1 step 5),
// returning the offset to subtract before clamping to [0,1], as a fraction
// (X/100, e.g. 0.37 for "-37"). The spec's open question about a redundant second "-37" term is
// deliberately not reproduced here — only the single documented term is
// applied (see SPEC_FULL.md §13).
func critChanceClampOffset(attr string) (float64, bool) {
	if attr == "Critical Chance" {
		return 0, true
	}
	for _, x := range []int{7, 20, 27, 30, 37} {
		if attr == fmt.Sprintf("Critical Chance -%d", x) {
			return float64(x) / 100, true
		}
	}
	return 0, false
}

// NewSettings validates raw and compiles it into an immutable Settings.
// Fails fast (ConfigurationError) on an unknown infusion mode or an
// impossible slot layout.
func NewSettings(raw RawSettings) (*Settings, error) {
	if raw.MaxResults <= 0 {
		raw.MaxResults = 200
	}
	mode, err := ParseInfusionMode(raw.InfusionMode)
	if err != nil {
		return nil, err
	}
	rankBy, err := ParseRankBy(raw.RankBy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	for _, s := range raw.Slots {
		if len(s.Affixes) == 0 {
			return nil, ErrEmptySearchSpace
		}
	}

	reg := gwdata.NewRegistry()

	s := &Settings{
		Registry:                reg,
		RankBy:                  rankBy,
		InfusionMode:            mode,
		MaxInfusions:            raw.MaxInfusions,
		PrimaryMaxInfusions:     raw.PrimaryMaxInfusions,
		SecondaryMaxInfusions:   raw.SecondaryMaxInfusions,
		PrimaryAttr:             raw.PrimaryAttr,
		SecondaryAttr:           raw.SecondaryAttr,
		MaxResults:              raw.MaxResults,
		DisableCondiResultCache: raw.DisableCondiResultCache,
		ForcedArmor:             raw.ForcedArmor,
		ForcedRing:              raw.ForcedRing,
		ForcedAcc:               raw.ForcedAcc,
		ForcedWep:               raw.ForcedWep,
		MovementUptime:          raw.MovementUptime,
		AttackRate:              raw.AttackRate,
		Minimal:                 raw.Minimal,
		Distribution:            raw.Distribution,
	}

	// Resolve canonical derived attributes up front so every hot-loop
	// formula in internal/attributes and internal/scoring can assume a
	// stable index regardless of whether a given settings document happens
	// to reference them via a modifier.
	for _, name := range []string{
		"Power", "Precision", "Ferocity", "Condition Damage", "Expertise",
		"Concentration", "Vitality", "Toughness", "Healing Power",
		"Critical Chance", "Critical Damage", "Boon Duration", "Health",
		"Effective Power", "Power DPS", "Siphon Base Coefficient",
		"Siphon DPS", "Condition Duration", "Armor", "Effective Health",
		"Survivability", "Outgoing Healing", "Effective Healing", "Healing",
		"Power Coefficient", "Flat DPS", "Damage", "Maximum Health",
	} {
		reg.Resolve(name)
	}

	// Base attributes.
	baseTmp := make(map[int]float64, len(raw.BaseAttributes))
	for name, v := range raw.BaseAttributes {
		baseTmp[reg.Resolve(name)] = v
	}

	// Relevant conditions: subset of gwdata.AllConditions present in the
	// distribution, each given a per-condition index tuple.
	for _, c := range gwdata.AllConditions {
		if _, ok := raw.Distribution[c]; !ok {
			continue
		}
		s.RelevantConditions = append(s.RelevantConditions, c)
		dur, coef, dmg, stacks, dps := gwdata.ConditionAttrNames(c)
		s.CondDurationIdx = append(s.CondDurationIdx, reg.Resolve(dur))
		s.CondCoefficientIdx = append(s.CondCoefficientIdx, reg.Resolve(coef))
		s.CondDamageIdx = append(s.CondDamageIdx, reg.Resolve(dmg))
		s.CondStacksIdx = append(s.CondStacksIdx, reg.Resolve(stacks))
		s.CondDPSIdx = append(s.CondDPSIdx, reg.Resolve(dps))
	}

	// Slots + affixes.
	s.Slots = make([]SlotSpec, len(raw.Slots))
	s.AffixesArray = make([][]CompiledAffix, len(raw.Slots))
	for i, rs := range raw.Slots {
		s.Slots[i] = SlotSpec{Name: rs.Name, Kind: parseSlotKind(rs.Kind)}
		affixes := make([]CompiledAffix, len(rs.Affixes))
		for j, ra := range rs.Affixes {
			bonuses := make([]AffixBonus, len(ra.Bonuses))
			for k, rb := range ra.Bonuses {
				idx := reg.Resolve(rb.Attr)
				bonuses[k] = AffixBonus{AttrIdx: idx, Bonus: rb.Bonus}
			}
			affixes[j] = CompiledAffix{ID: ra.ID, Bonuses: bonuses}
		}
		s.AffixesArray[i] = affixes
	}

	// Symmetry checks: explicit document list, or the GW2 default when the
	// document supplies none and the layout matches the documented slot
	// count (15 slots, §3).
	checks := raw.SymmetryChecks
	if checks == nil && len(raw.Slots) == 15 {
		checks = DefaultGW2SymmetryChecks()
	}
	for _, rc := range checks {
		s.symmetryChecks = append(s.symmetryChecks, SymmetryCheck{
			AtSlotsFilled: rc.AtSlotsFilled, A: rc.A, B: rc.B, ForceFlag: rc.ForceFlag,
		})
	}

	// Modifiers.
	for _, rc := range raw.Modifiers.Convert {
		s.Modifiers.Convert = append(s.Modifiers.Convert, compileConvert(reg, rc, false))
	}
	for _, rb := range raw.Modifiers.Buff {
		s.Modifiers.Buff = append(s.Modifiers.Buff, BuffEntry{TargetIdx: reg.Resolve(rb.Attr), Bonus: rb.Bonus})
	}
	for _, rc := range raw.Modifiers.ConvertAfterBuffs {
		s.Modifiers.ConvertAfterBuffs = append(s.Modifiers.ConvertAfterBuffs, compileConvert(reg, rc, true))
	}
	s.Modifiers.DamageMultiplier = raw.Modifiers.DamageMultiplier
	s.Modifiers.BountifulMaintenanceOil = raw.Modifiers.BountifulMaintenanceOil

	// Constraints.
	s.Constraints = Constraints{
		MinBoonDuration: raw.Constraints.MinBoonDuration,
		MinHealingPower: raw.Constraints.MinHealingPower,
		MinToughness:    raw.Constraints.MinToughness,
		MaxToughness:    raw.Constraints.MaxToughness,
		MinHealth:       raw.Constraints.MinHealth,
		MinCritChance:   raw.Constraints.MinCritChance,
	}

	// Infusion target attribute indices.
	if s.PrimaryAttr != "" {
		s.PrimaryAttrIdx = reg.Resolve(s.PrimaryAttr)
	}
	if s.SecondaryAttr != "" {
		s.SecondaryAttrIdx = reg.Resolve(s.SecondaryAttr)
	}

	// Materialize BaseAttributes now that every name referenced anywhere in
	// the document (including ones only ever seen as a modifier target) has
	// a stable index.
	s.BaseAttributes = make([]float64, reg.Len())
	for idx, v := range baseTmp {
		s.BaseAttributes[idx] = v
	}

	// RunsAfterThisSlot[k] = product_{j>=k} |AffixesArray[j]|.
	s.RunsAfterThisSlot = make([]uint64, len(s.Slots)+1)
	s.RunsAfterThisSlot[len(s.Slots)] = 1
	for k := len(s.Slots) - 1; k >= 0; k-- {
		s.RunsAfterThisSlot[k] = s.RunsAfterThisSlot[k+1] * uint64(len(s.AffixesArray[k]))
	}

	return s, nil
}

func parseSlotKind(k string) SlotKind {
	switch k {
	case "armor":
		return SlotArmor
	case "ring":
		return SlotRing
	case "accessory":
		return SlotAccessory
	case "weapon":
		return SlotWeapon
	default:
		return SlotGeneric
	}
}

// SymmetryChecks returns the compiled symmetry-pruning rules for this
// Settings (§4.8 step 3).
func (s *Settings) SymmetryChecks() []SymmetryCheck {
	return s.symmetryChecks
}
