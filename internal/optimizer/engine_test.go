package optimizer

import (
	"testing"

	"github.com/pable/go-cs-metrics/internal/gwdata"
	"github.com/pable/go-cs-metrics/internal/optsettings"
)

// newTinySettings builds a 2-slot, 2-affix-per-slot search space: slot 0
// grants either +100 Power or +0, slot 1 grants either +50 Precision or +0.
// Every combination is valid, so Run must enumerate all 4 leaves.
func newTinySettings() *optsettings.Settings {
	r := gwdata.NewRegistry()
	names := append([]string{}, gwdata.Indicators...)
	names = append(names,
		"Power Coefficient", "Siphon Base Coefficient", "Siphon DPS",
		"Effective Power", "Power DPS", "Flat DPS", "Damage",
		"Condition Duration", "Maximum Health",
		"Effective Health", "Survivability", "Outgoing Healing",
		"Effective Healing", "Healing",
	)
	for _, n := range names {
		r.Resolve(n)
	}

	powerIdx := r.Resolve("Power")
	precisionIdx := r.Resolve("Precision")

	s := &optsettings.Settings{
		Registry:     r,
		Modifiers:    optsettings.Modifiers{DamageMultiplier: map[string]float64{}},
		Distribution: map[string]float64{"Power": 1},
		RankBy:       optsettings.RankDamage,
		MaxResults:   10,
		InfusionMode: optsettings.InfusionNone,
		BaseAttributes: func() []float64 {
			b := make([]float64, r.Len())
			b[powerIdx] = 1000
			return b
		}(),
		Slots: []optsettings.SlotSpec{{Name: "weapon"}, {Name: "trinket"}},
		AffixesArray: [][]optsettings.CompiledAffix{
			{
				{ID: "zero", Bonuses: nil},
				{ID: "power", Bonuses: []optsettings.AffixBonus{{AttrIdx: powerIdx, Bonus: 100}}},
			},
			{
				{ID: "zero", Bonuses: nil},
				{ID: "precision", Bonuses: []optsettings.AffixBonus{{AttrIdx: precisionIdx, Bonus: 50}}},
			},
		},
	}
	s.BaseAttributes[r.Resolve("Power Coefficient")] = 1

	s.RunsAfterThisSlot = make([]uint64, len(s.Slots)+1)
	s.RunsAfterThisSlot[len(s.Slots)] = 1
	for k := len(s.Slots) - 1; k >= 0; k-- {
		s.RunsAfterThisSlot[k] = s.RunsAfterThisSlot[k+1] * uint64(len(s.AffixesArray[k]))
	}

	return s
}

func TestEngineRunEnumeratesEveryLeaf(t *testing.T) {
	s := newTinySettings()
	e, err := NewEngine(s, "test")
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	heap := e.Run()

	if !e.Finished() {
		t.Fatalf("Finished() = false after Run")
	}
	if e.CalculationRuns() != 4 {
		t.Errorf("CalculationRuns() = %d, want 4 (2x2 combinations)", e.CalculationRuns())
	}
	if heap.Len() == 0 {
		t.Fatalf("heap is empty after Run")
	}

	best := heap.Items[0]
	if got := best.Get(s.Attr("Power")); got != 1100 {
		t.Errorf("best candidate Power = %v, want 1100 (highest-power affix wins under RankDamage)", got)
	}
}

func TestNewEngineYieldsTerminalProgressForEmptySlot(t *testing.T) {
	s := newTinySettings()
	s.AffixesArray[0] = nil

	e, err := NewEngine(s, "test")
	if err != nil {
		t.Fatalf("NewEngine with an empty slot returned an error: %v", err)
	}

	progress := e.Step()
	if !progress.Changed {
		t.Errorf("Changed = false, want true for the terminal empty-search-space progress")
	}
	if progress.CalculationRuns != 0 {
		t.Errorf("CalculationRuns = %d, want 0", progress.CalculationRuns)
	}
	if len(progress.NewList) != 0 {
		t.Errorf("NewList len = %d, want 0", len(progress.NewList))
	}
	if !e.Finished() {
		t.Errorf("Finished() = false after the terminal empty-search-space progress")
	}

	again := e.Step()
	if again.Changed {
		t.Errorf("a second Step call after the terminal progress reported Changed = true")
	}
}

func TestEngineStepIsResumable(t *testing.T) {
	s := newTinySettings()
	e, err := NewEngine(s, "test")
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	for i := 0; i < 10 && !e.Finished(); i++ {
		e.Step()
	}
	if !e.Finished() {
		t.Fatalf("search did not finish within 10 Step calls for a 4-leaf space")
	}
	if e.CalculationRuns() != 4 {
		t.Errorf("CalculationRuns() = %d, want 4", e.CalculationRuns())
	}
}
