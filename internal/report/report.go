// Package report formats and prints search results as terminal tables using
// tablewriter, in the style the rest of this module's ancestry uses for its
// CS2 match reports.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-cs-metrics/internal/character"
	"github.com/pable/go-cs-metrics/internal/gwdata"
	"github.com/pable/go-cs-metrics/internal/optsettings"
)

// Verbose controls whether indicator explanations are printed before the
// results table. The CLI sets it to false when the --silent (-s) flag is
// passed.
var Verbose = true

func printSection(w io.Writer, title, desc string) {
	fmt.Fprintf(w, "\n--- %s ---\n", title)
	if Verbose {
		fmt.Fprintf(w, "%s\n", desc)
	}
}

// PrintResultsTable prints the ranked result list: rank, id, the rankby
// value, and the headline indicators.
func PrintResultsTable(w io.Writer, items []*character.Character, rankBy optsettings.RankBy) {
	printSection(w, "Top Builds",
		"RANK=result position  VALUE="+rankBy.AttributeName()+" (the ranking objective)\n"+
			"PWR/PREC/FERO/CD/EXP=Power/Precision/Ferocity/Condition Damage/Expertise  CRIT%=Critical Chance")
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header(" ", "RANK", "ID", "VALUE", "PWR", "PREC", "FERO", "CD", "EXP", "CRIT%")

	for i, c := range items {
		marker := " "
		if i == 0 {
			marker = color.GreenString("*")
		}
		s := c.Settings
		value := c.RankScore
		if c.Results != nil {
			value = c.Results.Value
		}
		table.Append(
			marker,
			fmt.Sprintf("%d", i+1),
			c.ID,
			fmt.Sprintf("%.2f", value),
			fmt.Sprintf("%.0f", c.Get(s.Attr("Power"))),
			fmt.Sprintf("%.0f", c.Get(s.Attr("Precision"))),
			fmt.Sprintf("%.0f", c.Get(s.Attr("Ferocity"))),
			fmt.Sprintf("%.0f", c.Get(s.Attr("Condition Damage"))),
			fmt.Sprintf("%.0f", c.Get(s.Attr("Expertise"))),
			fmt.Sprintf("%.1f%%", c.Get(s.Attr("Critical Chance"))*100),
		)
	}
	table.Render()
}

// PrintResultDetail prints the full §4.9 breakdown for one accepted
// candidate: indicators, damage breakdown, and ±5 sensitivity.
func PrintResultDetail(w io.Writer, c *character.Character) {
	if c.Results == nil {
		fmt.Fprintln(w, "result has not been finalized")
		return
	}
	r := c.Results

	fmt.Fprintf(w, "\nBuild %s\n", c.ID)
	fmt.Fprintf(w, "Gear: %v\n", c.Gear)
	if len(c.Infusions) > 0 {
		fmt.Fprintf(w, "Infusions: %v\n", c.Infusions)
	}

	printSection(w, "Indicators", "Full attribute snapshot for this build.")
	indTable := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	indTable.Header("ATTRIBUTE", "VALUE")
	for _, name := range gwdata.Indicators {
		indTable.Append(name, r.Indicators[name])
	}
	indTable.Render()

	if len(r.DamageBreakdown) > 0 {
		printSection(w, "Damage Breakdown", "Raw DPS and % of total Damage, per distribution key.")
		keys := sortedKeys(r.DamageBreakdown)
		dmgTable := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
			Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
			Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
		}))
		dmgTable.Header("SOURCE", "DPS", "%")
		for _, k := range keys {
			dmgTable.Append(k, r.DamageBreakdown[k], r.EffectiveDamageDistribution[k])
		}
		dmgTable.Render()
	}

	printSection(w, "±5 Sensitivity", "Signed Damage delta from a ±5 nudge to each core attribute.")
	sensTable := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	sensTable.Header("ATTRIBUTE", "+5", "-5")
	for _, name := range []string{"Power", "Precision", "Ferocity", "Condition Damage", "Expertise"} {
		pos := r.EffectivePositiveValues[name]
		neg := r.EffectiveNegativeValues[name]
		posStr := fmt.Sprintf("%.5f", pos)
		if pos > 0 {
			posStr = color.GreenString(posStr)
		}
		sensTable.Append(name, posStr, fmt.Sprintf("%.5f", neg))
	}
	sensTable.Render()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
