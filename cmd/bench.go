package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-metrics/internal/optimizer"
	"github.com/pable/go-cs-metrics/internal/optsettings"
)

var benchSettingsPath string

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a settings document to completion and report search throughput",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().StringVar(&benchSettingsPath, "settings", "", "path to a settings JSON document")
	benchCmd.MarkFlagRequired("settings")
}

func runBench(cmd *cobra.Command, args []string) error {
	settings, err := optsettings.Load(benchSettingsPath)
	if err != nil {
		return fmt.Errorf("load settings %s: %w", benchSettingsPath, err)
	}

	engine, err := optimizer.NewEngine(settings, "bench")
	if err != nil {
		return fmt.Errorf("build search engine: %w", err)
	}

	start := time.Now()
	heap := engine.Run()
	elapsed := time.Since(start)

	runs := engine.CalculationRuns()
	throughput := float64(runs) / elapsed.Seconds()

	fmt.Printf("settings:     %s\n", benchSettingsPath)
	fmt.Printf("builds run:   %d\n", runs)
	fmt.Printf("kept results: %d\n", heap.Len())
	fmt.Printf("elapsed:      %s\n", elapsed)
	fmt.Printf("throughput:   %.0f builds/sec\n", throughput)
	return nil
}
