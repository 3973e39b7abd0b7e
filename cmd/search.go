package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/pable/go-cs-metrics/internal/gamedata"
	"github.com/pable/go-cs-metrics/internal/optimizer"
	"github.com/pable/go-cs-metrics/internal/optlog"
	"github.com/pable/go-cs-metrics/internal/optsettings"
	"github.com/pable/go-cs-metrics/internal/report"
)

var (
	settingsPath string
	settingsDir  string
	workers      int
	saveRun      bool
	noProgress   bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a gear search against one or more settings documents",
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&settingsPath, "settings", "", "path to a settings JSON document")
	searchCmd.Flags().StringVar(&settingsDir, "settings-dir", "", "directory of settings JSON documents to sweep concurrently")
	searchCmd.Flags().IntVar(&workers, "workers", 4, "concurrent searches when sweeping --settings-dir")
	searchCmd.Flags().BoolVar(&saveRun, "save", false, "persist the top results to the run-history database")
	searchCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the live progress line")
}

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

func runSearch(cmd *cobra.Command, args []string) error {
	optlog.Initialize()

	if settingsDir != "" {
		return sweepSettings(settingsDir)
	}
	if settingsPath == "" {
		return fmt.Errorf("either --settings or --settings-dir is required")
	}
	return runOne(settingsPath)
}

// sweepSettings runs one search per *.json file in dir, bounded by workers
// concurrent searches via errgroup, fail-soft: one bad settings document
// logs and continues rather than aborting the sweep.
func sweepSettings(dir string) error {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("glob settings dir: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no settings documents found in %s", dir)
	}

	sem := make(chan struct{}, workers)
	g := new(errgroup.Group)

	for _, path := range entries {
		path := path
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := runOne(path); err != nil {
				optlog.Error("settings sweep entry failed", "path", path, "error", err)
				return nil
			}
			return nil
		})
	}
	return g.Wait()
}

func runOne(path string) error {
	settings, err := optsettings.Load(path)
	if err != nil {
		return fmt.Errorf("load settings %s: %w", path, err)
	}

	randomID := uuid.NewString()[:8]
	engine, err := optimizer.NewEngine(settings, randomID)
	if err != nil {
		return fmt.Errorf("build search engine for %s: %w", path, err)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("searching %s (rankby=%s)", path, settings.RankBy.AttributeName())))

	start := time.Now()
	interactive := !noProgress && term.IsTerminal(int(os.Stdout.Fd()))

	for !engine.Finished() {
		progress := engine.Step()
		if interactive {
			fmt.Printf("\r%d builds evaluated, %d kept...", progress.CalculationRuns, engine.Heap().Len())
		}
	}
	if interactive {
		fmt.Println()
	}
	elapsed := time.Since(start)

	heap := engine.Heap()
	optlog.Info("search complete", "settings", path, "runs", engine.CalculationRuns(),
		"kept", heap.Len(), "elapsed", elapsed.String())

	report.PrintResultsTable(os.Stdout, heap.Items, settings.RankBy)

	if saveRun {
		db, err := gamedata.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open run-history db: %w", err)
		}
		defer db.Close()

		record := gamedata.RunRecord{
			ID:              randomID,
			CreatedAt:       time.Now(),
			SettingsPath:    path,
			RankBy:          settings.RankBy.AttributeName(),
			CalculationRuns: engine.CalculationRuns(),
			Duration:        elapsed,
		}
		if err := db.SaveRun(record, heap.Items); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("saved run %s to %s\n", randomID, dbPath)
	}

	return nil
}
