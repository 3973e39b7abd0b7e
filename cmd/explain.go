package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-metrics/internal/gamedata"
	"github.com/pable/go-cs-metrics/internal/optimizer"
	"github.com/pable/go-cs-metrics/internal/optsettings"
	"github.com/pable/go-cs-metrics/internal/report"
)

var (
	explainSettingsPath string
	explainRank         int
	explainRunID        string
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Show the full indicator, damage, and sensitivity breakdown for one build",
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().StringVar(&explainSettingsPath, "settings", "", "path to a settings JSON document (re-runs the search)")
	explainCmd.Flags().StringVar(&explainRunID, "run", "", "a saved run id to load from the run-history database instead of re-searching")
	explainCmd.Flags().IntVar(&explainRank, "rank", 1, "1-based rank of the build to explain")
}

func runExplain(cmd *cobra.Command, args []string) error {
	if explainRunID != "" {
		return explainSavedRun(explainRunID, explainRank)
	}
	if explainSettingsPath == "" {
		return fmt.Errorf("either --settings or --run is required")
	}
	return explainFreshRun(explainSettingsPath, explainRank)
}

func explainFreshRun(path string, rank int) error {
	settings, err := optsettings.Load(path)
	if err != nil {
		return fmt.Errorf("load settings %s: %w", path, err)
	}

	engine, err := optimizer.NewEngine(settings, "explain")
	if err != nil {
		return fmt.Errorf("build search engine: %w", err)
	}
	heap := engine.Run()

	if rank < 1 || rank > heap.Len() {
		return fmt.Errorf("rank %d out of range (have %d results)", rank, heap.Len())
	}
	report.PrintResultDetail(os.Stdout, heap.Items[rank-1])
	return nil
}

func explainSavedRun(runID string, rank int) error {
	db, err := gamedata.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open run-history db: %w", err)
	}
	defer db.Close()

	run, results, err := db.LoadRun(runID)
	if err != nil {
		return fmt.Errorf("load run %s: %w", runID, err)
	}
	if rank < 1 || rank > len(results) {
		return fmt.Errorf("rank %d out of range (run %s has %d stored results)", rank, runID, len(results))
	}

	stored := results[rank-1]
	fmt.Printf("run %s (settings=%s, rankby=%s)\n", run.ID, run.SettingsPath, run.RankBy)
	fmt.Printf("build %s: value=%.4f gear=%v infusions=%v\n",
		stored.CharacterID, stored.Value, stored.Gear, stored.Infusions)
	fmt.Println("(stored runs keep only the final rank score; re-run with --settings for the full indicator breakdown)")
	return nil
}
