package gamedata

import (
	"testing"
	"time"

	"github.com/pable/go-cs-metrics/internal/character"
	"github.com/pable/go-cs-metrics/internal/gwdata"
	"github.com/pable/go-cs-metrics/internal/optsettings"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func makeCharacter(t *testing.T, gear []int, value float64) *character.Character {
	t.Helper()
	r := gwdata.NewRegistry()
	s := &optsettings.Settings{Registry: r, RankBy: optsettings.RankDamage}
	r.Resolve("Damage")

	c := character.New(s, gear, make([]float64, r.Len()))
	c.ID = "0 (test)"
	c.Set(s.Attr("Damage"), value)
	c.Results = &character.Results{Value: value}
	c.Infusions = map[string]int{"Power": 18}
	return c
}

func TestSaveAndLoadRun(t *testing.T) {
	db := openMemDB(t)

	run := RunRecord{
		ID:              "run1",
		CreatedAt:       time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC),
		SettingsPath:    "builds/power.json",
		RankBy:          "Damage",
		CalculationRuns: 12345,
		Duration:        2 * time.Second,
	}
	top := []*character.Character{makeCharacter(t, []int{1, 2, 3}, 45000)}

	if err := db.SaveRun(run, top); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	loaded, results, err := db.LoadRun("run1")
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if loaded.SettingsPath != run.SettingsPath {
		t.Errorf("SettingsPath = %q, want %q", loaded.SettingsPath, run.SettingsPath)
	}
	if loaded.CalculationRuns != run.CalculationRuns {
		t.Errorf("CalculationRuns = %d, want %d", loaded.CalculationRuns, run.CalculationRuns)
	}
	if len(results) != 1 {
		t.Fatalf("LoadRun results len = %d, want 1", len(results))
	}
	if results[0].Value != 45000 {
		t.Errorf("results[0].Value = %v, want 45000", results[0].Value)
	}
	if results[0].Infusions["Power"] != 18 {
		t.Errorf("results[0].Infusions[Power] = %d, want 18", results[0].Infusions["Power"])
	}
	if len(results[0].Gear) != 3 {
		t.Errorf("results[0].Gear len = %d, want 3", len(results[0].Gear))
	}
}

func TestListRunsOrdersByCreatedAtDesc(t *testing.T) {
	db := openMemDB(t)

	older := RunRecord{ID: "a", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), SettingsPath: "a.json", RankBy: "Damage"}
	newer := RunRecord{ID: "b", CreatedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), SettingsPath: "b.json", RankBy: "Damage"}

	if err := db.SaveRun(older, nil); err != nil {
		t.Fatalf("SaveRun older: %v", err)
	}
	if err := db.SaveRun(newer, nil); err != nil {
		t.Fatalf("SaveRun newer: %v", err)
	}

	runs, err := db.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns len = %d, want 2", len(runs))
	}
	if runs[0].ID != "b" {
		t.Errorf("runs[0].ID = %q, want %q (most recent first)", runs[0].ID, "b")
	}
}

func TestLoadRunUnknownID(t *testing.T) {
	db := openMemDB(t)
	_, _, err := db.LoadRun("missing")
	if err == nil {
		t.Fatalf("LoadRun with an unknown id returned no error")
	}
}
