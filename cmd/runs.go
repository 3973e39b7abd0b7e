package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pable/go-cs-metrics/internal/gamedata"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List or show past search runs stored in the run-history database",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the stored results for one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsCmd.AddCommand(runsShowCmd)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	db, err := gamedata.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open run-history db: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header("ID", "CREATED", "SETTINGS", "RANKBY", "RUNS", "DURATION")
	for _, r := range runs {
		table.Append(
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.SettingsPath,
			r.RankBy,
			fmt.Sprintf("%d", r.CalculationRuns),
			r.Duration.String(),
		)
	}
	table.Render()
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	db, err := gamedata.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open run-history db: %w", err)
	}
	defer db.Close()

	run, results, err := db.LoadRun(args[0])
	if err != nil {
		return fmt.Errorf("load run %s: %w", args[0], err)
	}

	fmt.Printf("run %s (settings=%s, rankby=%s, %d builds in %s)\n",
		run.ID, run.SettingsPath, run.RankBy, run.CalculationRuns, run.Duration)

	table := tablewriter.NewTable(os.Stdout)
	table.Header("RANK", "ID", "VALUE", "GEAR", "INFUSIONS")
	for _, r := range results {
		table.Append(
			fmt.Sprintf("%d", r.Rank+1),
			r.CharacterID,
			fmt.Sprintf("%.4f", r.Value),
			fmt.Sprintf("%v", r.Gear),
			fmt.Sprintf("%v", r.Infusions),
		)
	}
	table.Render()
	return nil
}
