package results

import (
	"testing"

	"github.com/pable/go-cs-metrics/internal/attributes"
	"github.com/pable/go-cs-metrics/internal/character"
	"github.com/pable/go-cs-metrics/internal/gwdata"
	"github.com/pable/go-cs-metrics/internal/optsettings"
	"github.com/pable/go-cs-metrics/internal/scoring"
)

// newFinalizeSettings resolves every attribute Finalize's pipeline touches:
// the indicator set, the sensitivity attributes, Power, and one condition
// (Bleeding) so fillDistribution/fillCoefficientHelper have a non-Power key
// to exercise alongside Power.
func newFinalizeSettings() *optsettings.Settings {
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

	s := &optsettings.Settings{
		Registry:     r,
		Modifiers:    optsettings.Modifiers{DamageMultiplier: map[string]float64{}},
		Distribution: map[string]float64{"Power": 1, "Bleeding": 1},
		RankBy:       optsettings.RankDamage,
	}

	duration, coefficient, damage, stacks, dps := gwdata.ConditionAttrNames("Bleeding")
	s.RelevantConditions = []string{"Bleeding"}
	s.CondDurationIdx = []int{r.Resolve(duration)}
	s.CondCoefficientIdx = []int{r.Resolve(coefficient)}
	s.CondDamageIdx = []int{r.Resolve(damage)}
	s.CondStacksIdx = []int{r.Resolve(stacks)}
	s.CondDPSIdx = []int{r.Resolve(dps)}

	return s
}

func newFinalizeCharacter(s *optsettings.Settings) *character.Character {
	c := character.New(s, nil, make([]float64, s.Registry.Len()))
	c.BaseAttributes[s.Attr("Power")] = 2597
	c.BaseAttributes[s.Attr("Power Coefficient")] = 1
	c.BaseAttributes[s.CondCoefficientIdx[0]] = 10
	scoring.UpdateAttributes(c, true)
	return c
}

func TestFinalizePopulatesIndicatorsAndDistribution(t *testing.T) {
	s := newFinalizeSettings()
	c := newFinalizeCharacter(s)

	Finalize(c)
	if c.Results == nil {
		t.Fatalf("Finalize left c.Results nil")
	}
	for _, name := range gwdata.Indicators {
		if _, ok := c.Results.Indicators[name]; !ok {
			t.Errorf("Indicators missing %q", name)
		}
	}
	if _, ok := c.Results.DamageBreakdown["Power"]; !ok {
		t.Errorf("DamageBreakdown missing Power key")
	}
	if _, ok := c.Results.DamageBreakdown["Bleeding"]; !ok {
		t.Errorf("DamageBreakdown missing Bleeding key")
	}
}

func TestFillCoefficientHelperRoundTrip(t *testing.T) {
	s := newFinalizeSettings()
	c := newFinalizeCharacter(s)

	Finalize(c)

	for _, coeff := range []float64{0, 1, 2.5, 10} {
		sum := 0.0
		for _, lc := range c.Results.CoefficientHelper {
			sum += lc.Slope*coeff + lc.Intercept
		}

		probe := c.Clone()
		for key := range s.Distribution {
			probe.BaseAttributes[s.Attr(coefficientAttrName(key))] = coeff
		}
		attributes.CalcStats(probe, true)
		want := totalDamage(probe)

		if diff := sum - want; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("coefficient c=%v: sum of per-key lines = %v, want %v (round-trip identity)", coeff, sum, want)
		}
	}
}

func TestFillSensitivityClampsNegativeNudgeAtZero(t *testing.T) {
	s := newFinalizeSettings()
	c := newFinalizeCharacter(s)
	c.BaseAttributes[s.Attr("Power")] = 2 // less than the 5-point nudge
	scoring.UpdateAttributes(c, true)

	Finalize(c)

	if _, ok := c.Results.EffectiveNegativeValues["Power"]; !ok {
		t.Fatalf("EffectiveNegativeValues missing Power entry")
	}
}
