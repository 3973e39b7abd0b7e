// Package optsettings builds the immutable, pre-validated Settings bundle
// (C2) the search engine is constructed from: gear slots, allowed affixes
// per slot, base attributes, modifiers, the damage/condition distribution,
// constraints, the ranking key, and infusion configuration.
package optsettings

import (
	"fmt"

	"github.com/pable/go-cs-metrics/internal/gwdata"
)

// RankBy selects the objective the result heap orders candidates by.
type RankBy int

const (
	RankDamage RankBy = iota
	RankSurvivability
	RankHealing
)

func (r RankBy) AttributeName() string {
	switch r {
	case RankSurvivability:
		return "Survivability"
	case RankHealing:
		return "Healing"
	default:
		return "Damage"
	}
}

// ParseRankBy converts a settings-document string into a RankBy.
func ParseRankBy(s string) (RankBy, error) {
	switch s {
	case "Damage", "":
		return RankDamage, nil
	case "Survivability":
		return RankSurvivability, nil
	case "Healing":
		return RankHealing, nil
	default:
		return 0, fmt.Errorf("optsettings: unknown rankby %q", s)
	}
}

// InfusionMode selects one of the five infusion allocation strategies (C6).
// An unknown mode is a ConfigurationError, fatal at Settings construction.
type InfusionMode int

const (
	InfusionNone InfusionMode = iota
	InfusionPrimary
	InfusionFew
	InfusionSecondary
	InfusionSecondaryNoDuplicates
)

// ParseInfusionMode converts a settings-document string into an
// InfusionMode, returning ErrUnknownInfusionMode for anything else.
func ParseInfusionMode(s string) (InfusionMode, error) {
	switch s {
	case "None":
		return InfusionNone, nil
	case "Primary":
		return InfusionPrimary, nil
	case "Few":
		return InfusionFew, nil
	case "Secondary":
		return InfusionSecondary, nil
	case "SecondaryNoDuplicates":
		return InfusionSecondaryNoDuplicates, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownInfusionMode, s)
	}
}

// ConvertEntry is one (target, [(source, percent)...]) rule, compiled
// against a Registry so the hot loop in internal/attributes never looks an
// attribute up by name.
type ConvertEntry struct {
	TargetIdx int
	IsPoint   bool
	Sources   []ConvertSource
}

// ConvertSource is one contributing source of a ConvertEntry.
type ConvertSource struct {
	SourceIdx int
	Percent   float64
	// CritChanceClampOffset is non-nil only for post-buff conversions whose
	// source is the literal string "Critical Chance" (offset 0) or
	// "Critical Chance -X" for X in {7,20,27,30,37}, and holds X/100: the
	// source value is clamp(CritChance - offset, 0, 1) rather than a raw
	// attribute read.
	CritChanceClampOffset *float64
}

// BuffEntry is one (attribute, bonus) additive buff.
type BuffEntry struct {
	TargetIdx int
	Bonus     float64
}

// Constraints holds the optional per-candidate bounds from §4.2. A zero
// value (nil pointer) means "unset" — no bound is checked.
type Constraints struct {
	MinBoonDuration *float64 // percent, e.g. 100 means 100%
	MinHealingPower *float64
	MinToughness    *float64
	MaxToughness    *float64
	MinHealth       *float64
	MinCritChance   *float64 // percent
}

// Modifiers is the compiled modifier bundle (§4.1): conversions applied
// before buffs, additive buffs, conversions applied after buffs, and the
// damage-multiplier table read only by scoring.
type Modifiers struct {
	Convert           []ConvertEntry
	Buff              []BuffEntry
	ConvertAfterBuffs []ConvertEntry
	DamageMultiplier  map[string]float64
	// BountifulMaintenanceOil mirrors the presence of the
	// "bountiful-maintenance-oil" modifier id in the healing formula (§4.3).
	BountifulMaintenanceOil bool
}

// AffixBonus is one (attribute, bonus) pair contributed by an affix in a
// given slot, pre-multiplied by slot weight, resolved against a Registry.
type AffixBonus struct {
	AttrIdx int
	Bonus   float64
}

// CompiledAffix is one selectable affix for a slot: its canonical-order
// position and the gear-stat deltas it contributes.
type CompiledAffix struct {
	ID      string
	Bonuses []AffixBonus
}

// SlotKind distinguishes the symmetric-pair slot groups the search engine's
// pruning rules (§4.8 step 3) key off of.
type SlotKind int

const (
	SlotGeneric SlotKind = iota
	SlotArmor
	SlotRing
	SlotAccessory
	SlotWeapon
)

// SlotSpec describes one gear slot.
type SlotSpec struct {
	Name string
	Kind SlotKind
}

// Settings is the immutable, pre-validated input the search engine is built
// from (C2). Constructed once per search via NewSettings; never mutated
// afterward.
type Settings struct {
	Registry *gwdata.Registry

	Slots        []SlotSpec
	AffixesArray [][]CompiledAffix // per slot, canonical order (the order symmetry checks compare by)

	BaseAttributes []float64 // dense, len == Registry.Len()

	Modifiers   Modifiers
	Constraints Constraints

	Distribution       map[string]float64 // coefficient per distribution key, e.g. "Power", "Bleeding"
	RelevantConditions []string           // subset of gwdata.AllConditions present in Distribution

	// Per-condition registry indices, parallel to RelevantConditions.
	CondDurationIdx    []int
	CondCoefficientIdx []int
	CondDamageIdx      []int
	CondStacksIdx      []int
	CondDPSIdx         []int

	RankBy RankBy

	InfusionMode         InfusionMode
	MaxInfusions         int
	PrimaryMaxInfusions  int
	SecondaryMaxInfusions int
	PrimaryAttr          string
	SecondaryAttr        string
	PrimaryAttrIdx       int
	SecondaryAttrIdx     int

	MaxResults              int
	DisableCondiResultCache bool

	ForcedArmor bool
	ForcedRing  bool
	ForcedAcc   bool
	ForcedWep   bool

	// RunsAfterThisSlot[k] = product of |AffixesArray[j]| for j >= k, used
	// only to approximate the progress counter on a pruned branch (§4.8).
	RunsAfterThisSlot []uint64

	symmetryChecks []SymmetryCheck

	// Scoring-only parameters.
	MovementUptime float64 // condition scoring §4.3 Torment split
	AttackRate     float64 // condition scoring §4.3 Confusion split

	// MinimalSettings projection, carried for display-only consumers (§6).
	Minimal MinimalSettings
}

// MinimalSettings is the subset of a settings document used only for
// display: profession, build metadata, and UI form state the core never
// reads. Round-tripped verbatim by callers; the engine does not interpret
// it.
type MinimalSettings struct {
	Profession     string            `json:"profession"`
	Specialization string            `json:"specialization"`
	WeaponType     string            `json:"weaponType"`
	ModifiersApplied []string        `json:"modifiersApplied"`
	RankBy         string            `json:"rankby"`
	Extras         map[string]bool   `json:"extras"`
	FormState      map[string]string `json:"formState"`
}

// Attr resolves an already-registered attribute name to its dense index.
// Panics if the name was never resolved during construction — this is an
// InternalInvariant (§7), not a recoverable condition, since every name the
// hot loop touches must have been compiled in by NewSettings.
func (s *Settings) Attr(name string) int {
	i, ok := s.Registry.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("optsettings: attribute %q was never resolved", name))
	}
	return i
}
