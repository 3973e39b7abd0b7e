package scoring

import (
	"testing"

	"github.com/pable/go-cs-metrics/internal/character"
	"github.com/pable/go-cs-metrics/internal/gwdata"
	"github.com/pable/go-cs-metrics/internal/optsettings"
)

func newScoringSettings(conditions ...string) *optsettings.Settings {
	r := gwdata.NewRegistry()
	base := []string{
		"Power", "Precision", "Ferocity", "Condition Damage", "Expertise",
		"Critical Chance", "Critical Damage", "Power Coefficient",
		"Siphon Base Coefficient", "Siphon DPS", "Effective Power", "Power DPS",
		"Flat DPS", "Damage", "Condition Duration",
		"Healing Power", "Outgoing Healing", "Effective Healing", "Healing",
		"Concentration", "Armor", "Toughness", "Health", "Effective Health", "Survivability",
		"Boon Duration", "Vitality", "Maximum Health",
	}
	for _, n := range base {
		r.Resolve(n)
	}

	s := &optsettings.Settings{
		Registry:     r,
		Modifiers:    optsettings.Modifiers{DamageMultiplier: map[string]float64{}},
		Distribution: map[string]float64{},
	}

	for _, cond := range conditions {
		duration, coefficient, damage, stacks, dps := gwdata.ConditionAttrNames(cond)
		s.RelevantConditions = append(s.RelevantConditions, cond)
		s.CondDurationIdx = append(s.CondDurationIdx, r.Resolve(duration))
		s.CondCoefficientIdx = append(s.CondCoefficientIdx, r.Resolve(coefficient))
		s.CondDamageIdx = append(s.CondDamageIdx, r.Resolve(damage))
		s.CondStacksIdx = append(s.CondStacksIdx, r.Resolve(stacks))
		s.CondDPSIdx = append(s.CondDPSIdx, r.Resolve(dps))
	}

	return s
}

func newScoringCharacter(s *optsettings.Settings) *character.Character {
	return character.New(s, nil, make([]float64, s.Registry.Len()))
}

func TestPowerDPSNoCritNoSiphon(t *testing.T) {
	s := newScoringSettings()
	c := newScoringCharacter(s)
	c.Set(s.Attr("Power"), 2597)
	c.Set(s.Attr("Power Coefficient"), 2597)
	c.Set(s.Attr("Critical Damage"), 1.5)

	got := PowerDPS(c)
	if got != 2597 {
		t.Errorf("PowerDPS with 0%% crit chance = %v, want 2597 (coefficient == power/1 normalizer)", got)
	}
}

func TestPowerDPSIncludesSiphon(t *testing.T) {
	s := newScoringSettings()
	c := newScoringCharacter(s)
	c.Set(s.Attr("Siphon Base Coefficient"), 100)

	got := PowerDPS(c)
	if got != 100 {
		t.Errorf("PowerDPS with only siphon = %v, want 100", got)
	}
}

func TestCondiDPSAddsExpertiseToDurationAsSideEffect(t *testing.T) {
	s := newScoringSettings("Bleeding")
	c := newScoringCharacter(s)
	c.Set(s.Attr("Expertise"), 1500)
	c.Set(s.Attr("Condition Damage"), 0)
	c.Set(s.CondCoefficientIdx[0], 1)

	CondiDPS(c)
	first := c.Get(s.Attr("Condition Duration"))
	if first != 1 {
		t.Fatalf("Condition Duration after one CondiDPS call = %v, want 1 (1500/1500)", first)
	}

	CondiDPS(c)
	second := c.Get(s.Attr("Condition Duration"))
	if second != 2 {
		t.Fatalf("Condition Duration after two CondiDPS calls = %v, want 2 (cumulative side effect)", second)
	}
}

func TestCondiDPSBleeding(t *testing.T) {
	s := newScoringSettings("Bleeding")
	c := newScoringCharacter(s)
	c.Set(s.CondCoefficientIdx[0], 10)

	got := CondiDPS(c)
	want := 10.0 * tick(gwdata.ConditionData["Bleeding"], 0)
	if got != want {
		t.Errorf("CondiDPS(Bleeding, 10 stacks) = %v, want %v", got, want)
	}
}

func TestCondiCacheKeyStable(t *testing.T) {
	k1 := Key(1000.5, 2000.25)
	k2 := Key(1000.5, 2000.25)
	if k1 != k2 {
		t.Fatalf("Key is not deterministic: %v != %v", k1, k2)
	}

	k3 := Key(1000.5, 2000.26)
	if k1 == k3 {
		t.Fatalf("distinct condition damage values collided at key %v", k1)
	}
}

func TestCondiCachePutGet(t *testing.T) {
	cache := NewCondiCache()
	key := Key(1000, 500)
	if _, ok := cache.Get(key); ok {
		t.Fatalf("empty cache reported a hit")
	}
	cache.Put(key, 42.5)
	v, ok := cache.Get(key)
	if !ok || v != 42.5 {
		t.Fatalf("Get after Put = (%v, %v), want (42.5, true)", v, ok)
	}
	if cache.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cache.Len())
	}
}

func TestHealingBaseline(t *testing.T) {
	s := newScoringSettings()
	c := newScoringCharacter(s)

	got := Healing(c)
	if got != 390 {
		t.Errorf("Healing with 0 Healing Power = %v, want 390 (base skill heal)", got)
	}
}

func TestHealingBountifulMaintenanceOil(t *testing.T) {
	s := newScoringSettings()
	s.Modifiers.BountifulMaintenanceOil = true
	c := newScoringCharacter(s)
	c.Set(s.Attr("Healing Power"), 1000)
	c.Set(s.Attr("Concentration"), 500)

	got := Healing(c)
	base := (1000*0.3 + 390) * (1 + 0)
	want := base * (1 + (1000*0.6+500*0.8)/10000)
	if got != want {
		t.Errorf("Healing with oil = %v, want %v", got, want)
	}
}

func TestSurvivabilityCombinesArmorAndToughness(t *testing.T) {
	s := newScoringSettings()
	c := newScoringCharacter(s)
	c.Set(s.Attr("Armor"), 1000)
	c.Set(s.Attr("Toughness"), 967)
	c.Set(s.Attr("Health"), 1967 * 2)

	got := Survivability(c)
	want := (1967.0 * 2) * 1967 / 1967
	if got != want {
		t.Errorf("Survivability = %v, want %v", got, want)
	}
}

func TestUpdateAttributesFastRejectsInvalid(t *testing.T) {
	s := newScoringSettings()
	minHealth := 9999999.0
	s.Constraints.MinHealth = &minHealth
	s.RankBy = optsettings.RankDamage

	c := newScoringCharacter(s)
	ok := UpdateAttributesFast(c, NewCondiCache(), false)
	if ok {
		t.Fatalf("UpdateAttributesFast returned true for a character violating MinHealth")
	}
}

func TestUpdateAttributesFastSkipValidationBypassesConstraints(t *testing.T) {
	s := newScoringSettings()
	minHealth := 9999999.0
	s.Constraints.MinHealth = &minHealth
	s.RankBy = optsettings.RankDamage

	c := newScoringCharacter(s)
	ok := UpdateAttributesFast(c, NewCondiCache(), true)
	if !ok {
		t.Fatalf("UpdateAttributesFast(skipValidation=true) returned false")
	}
	if !c.Valid {
		t.Fatalf("c.Valid = false with skipValidation=true")
	}
}
