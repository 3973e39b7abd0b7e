package attributes

import (
	"testing"

	"github.com/pable/go-cs-metrics/internal/character"
	"github.com/pable/go-cs-metrics/internal/gwdata"
	"github.com/pable/go-cs-metrics/internal/optsettings"
)

// newTestSettings resolves the primary attributes CalcStats always touches
// and returns a Settings with an empty modifier set, ready for a caller to
// add Convert/Buff/ConvertAfterBuffs entries against stable indices.
func newTestSettings() *optsettings.Settings {
	r := gwdata.NewRegistry()
	for _, name := range []string{
		"Power", "Precision", "Ferocity", "Concentration",
		"Critical Chance", "Critical Damage", "Boon Duration",
		"Health", "Vitality", "Maximum Health", "Toughness", "Healing Power",
	} {
		r.Resolve(name)
	}
	return &optsettings.Settings{Registry: r, BaseAttributes: make([]float64, r.Len())}
}

func newTestCharacter(s *optsettings.Settings, base map[string]float64) *character.Character {
	c := character.New(s, nil, make([]float64, s.Registry.Len()))
	for name, v := range base {
		c.BaseAttributes[s.Attr(name)] = v
	}
	return c
}

func TestCalcStatsDerivedPrimaries(t *testing.T) {
	s := newTestSettings()
	c := newTestCharacter(s, map[string]float64{
		"Precision": 2100, "Ferocity": 1500, "Concentration": 1500,
		"Health": 1000, "Vitality": 100, "Maximum Health": 0,
	})

	CalcStats(c, false)

	wantCrit := (2100.0 - 1000) / 2100
	if got := c.Get(s.Attr("Critical Chance")); got != wantCrit {
		t.Errorf("Critical Chance = %v, want %v", got, wantCrit)
	}
	if got := c.Get(s.Attr("Critical Damage")); got != 1.0 {
		t.Errorf("Critical Damage = %v, want 1.0 (1500/1500)", got)
	}
	if got := c.Get(s.Attr("Boon Duration")); got != 1.0 {
		t.Errorf("Boon Duration = %v, want 1.0 (1500/1500)", got)
	}

	wantHealth := (1000.0 + 100*10) * (1 + 0)
	if got := c.Get(s.Attr("Health")); got != wantHealth {
		t.Errorf("Health = %v, want %v", got, wantHealth)
	}
}

func TestCalcStatsIsNotCumulative(t *testing.T) {
	s := newTestSettings()
	c := newTestCharacter(s, map[string]float64{"Precision": 1500})

	CalcStats(c, false)
	first := c.Get(s.Attr("Critical Chance"))

	CalcStats(c, false)
	second := c.Get(s.Attr("Critical Chance"))

	if first != second {
		t.Fatalf("CalcStats is cumulative: first=%v second=%v, want identical repeat calls", first, second)
	}
}

func TestCalcStatsHealthRounding(t *testing.T) {
	s := newTestSettings()
	c := newTestCharacter(s, map[string]float64{"Health": 1, "Vitality": 0, "Maximum Health": 0.005})

	CalcStats(c, false)
	rounded := c.Get(s.Attr("Health"))

	c2 := newTestCharacter(s, map[string]float64{"Health": 1, "Vitality": 0, "Maximum Health": 0.005})
	CalcStats(c2, true)
	unrounded := c2.Get(s.Attr("Health"))

	if rounded != RoundHalfEven(unrounded) {
		t.Errorf("rounded health %v != RoundHalfEven(unrounded) %v", rounded, RoundHalfEven(unrounded))
	}
}

func TestCheckInvalidConstraints(t *testing.T) {
	s := newTestSettings()
	minHealth := 5000.0
	s.Constraints.MinHealth = &minHealth

	c := newTestCharacter(s, map[string]float64{"Health": 100})
	CalcStats(c, false)

	if !CheckInvalid(c) {
		t.Fatalf("CheckInvalid returned false, want true (Health below MinHealth)")
	}
	if c.Valid {
		t.Fatalf("c.Valid = true, want false")
	}
}

func TestCheckInvalidNoConstraintsAlwaysValid(t *testing.T) {
	s := newTestSettings()
	c := newTestCharacter(s, map[string]float64{})
	CalcStats(c, false)

	if CheckInvalid(c) {
		t.Fatalf("CheckInvalid returned true with no constraints configured")
	}
	if !c.Valid {
		t.Fatalf("c.Valid = false, want true")
	}
}
