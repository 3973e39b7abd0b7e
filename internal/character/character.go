// Package character defines the per-candidate evaluation unit the search
// engine (internal/optimizer) enumerates: a gear assignment, the attribute
// map derived from it, and the bookkeeping the rest of the engine attaches
// as the candidate survives each stage (§3 Character).
package character

import (
	"github.com/pable/go-cs-metrics/internal/gwdata"
	"github.com/pable/go-cs-metrics/internal/optsettings"
)

// Character is a candidate gear assignment and everything computed from it.
// Settings is shared (read-only) across every Character in a search;
// Gear, GearStats, BaseAttributes, Attributes, and Infusions are owned.
type Character struct {
	Settings *optsettings.Settings

	// Gear holds one affix index per slot, length settings.Slots.
	Gear []int
	// GearStats is the dense per-attribute sum of the chosen affixes'
	// bonuses, same length as Settings.Registry.Len().
	GearStats []float64

	// BaseAttributes is an owned copy of Settings.BaseAttributes + GearStats,
	// the input calc_stats reads conversion sources from.
	BaseAttributes []float64
	// Attributes is the full derived attribute map, written by
	// internal/attributes.CalcStats.
	Attributes []float64

	Valid     bool
	RankScore float64

	// Infusions maps attribute name -> count, assigned by internal/infusion.
	Infusions map[string]int

	// Results holds the §4.9 display breakdown, populated only for
	// candidates accepted into the result heap.
	Results *Results

	// ID is "{counter} ({randomId})", assigned on heap insertion (§4.7 step 3).
	ID string
}

// New allocates a Character for the given gear prefix/suffix and gear-stat
// sum. baseAttributes and gearStats are not retained by reference — New
// copies them so the search engine's scratch arrays can be reused for the
// next candidate (per the source's pooled-scratch-array design note).
func New(settings *optsettings.Settings, gear []int, gearStats []float64) *Character {
	n := settings.Registry.Len()
	base := make([]float64, n)
	copy(base, settings.BaseAttributes)
	for i := 0; i < n && i < len(gearStats); i++ {
		base[i] += gearStats[i]
	}
	gearOwned := make([]int, len(gear))
	copy(gearOwned, gear)
	gearStatsOwned := make([]float64, n)
	copy(gearStatsOwned, gearStats)

	return &Character{
		Settings:       settings,
		Gear:           gearOwned,
		GearStats:      gearStatsOwned,
		BaseAttributes: base,
		Attributes:     make([]float64, n),
	}
}

// Clone returns a deep copy of c's gear, stats, attributes, validity, rank
// score and infusions; Results and ID are left unset. Used by the ±5
// sensitivity pass and by
// infusion strategies that need to evaluate several candidate allocations
// from the same base gear without mutating the original.
func (c *Character) Clone() *Character {
	n := len(c.Attributes)
	clone := &Character{
		Settings:       c.Settings,
		Gear:           append([]int(nil), c.Gear...),
		GearStats:      append([]float64(nil), c.GearStats...),
		BaseAttributes: append([]float64(nil), c.BaseAttributes...),
		Attributes:     make([]float64, n),
		Valid:          c.Valid,
		RankScore:      c.RankScore,
	}
	copy(clone.Attributes, c.Attributes)
	if c.Infusions != nil {
		clone.Infusions = make(map[string]int, len(c.Infusions))
		for k, v := range c.Infusions {
			clone.Infusions[k] = v
		}
	}
	return clone
}

// Get reads attribute idx, defaulting to 0 for any index outside the
// current Attributes array (never NaN, per §8 Boundaries).
func (c *Character) Get(idx int) float64 {
	if idx < 0 || idx >= len(c.Attributes) {
		return 0
	}
	return c.Attributes[idx]
}

// Set writes attribute idx, growing the array if a late-resolved index
// (e.g. one only ever referenced by a finalizer pass) exceeds its length.
func (c *Character) Set(idx int, v float64) {
	if idx >= len(c.Attributes) {
		grown := make([]float64, idx+1)
		copy(grown, c.Attributes)
		c.Attributes = grown
	}
	c.Attributes[idx] = v
}

// Add adds delta to attribute idx.
func (c *Character) Add(idx int, delta float64) {
	c.Set(idx, c.Get(idx)+delta)
}

// AddInfusion records count infusions of attr on this character and adds
// their flat attribute bonus to BaseAttributes, ready for the next
// CalcStats pass.
func (c *Character) AddInfusion(attrIdx int, attrName string, count int) {
	if count == 0 {
		return
	}
	if c.Infusions == nil {
		c.Infusions = make(map[string]int)
	}
	c.Infusions[attrName] += count
	if attrIdx >= len(c.BaseAttributes) {
		grown := make([]float64, attrIdx+1)
		copy(grown, c.BaseAttributes)
		c.BaseAttributes = grown
	}
	c.BaseAttributes[attrIdx] += float64(count) * gwdata.InfusionBonus
}
