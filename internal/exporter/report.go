package exporter

import (
	"fmt"
	"sort"
	"strconv"

	"ogacli/internal/analytics"
	"ogacli/internal/pipeline"
)

// Report is one named output table. Name becomes the file name (CSV,
// JSON) or sheet name (XLSX).
type Report struct {
	Name    string
	Headers []string
	Records [][]string
}

func formatFloat(f float64) string {
	// Two decimal places so ratios like 0.5 render as 0.50.
	return fmt.Sprintf("%.2f", f)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}

// ParticipationReport tabulates entry counts per year.
func ParticipationReport(name string, counts []analytics.YearCount) Report {
	records := make([][]string, 0, len(counts))
	for _, c := range counts {
		records = append(records, []string{formatInt(c.Year), formatInt(c.Count)})
	}
	return Report{
		Name:    name,
		Headers: []string{"Year", "Entries"},
		Records: records,
	}
}

// GenderReport tabulates per-Games gender counts and the male share.
func GenderReport(name string, counts []analytics.GenderCounts) Report {
	records := make([][]string, 0, len(counts))
	for _, c := range counts {
		records = append(records, []string{
			formatInt(c.Year),
			formatInt(c.Men),
			formatInt(c.Women),
			formatFloat(c.RatioMale),
		})
	}
	return Report{
		Name:    name,
		Headers: []string{"Year", "Men", "Women", "RatioMale"},
		Records: records,
	}
}

// SportBalanceReport tabulates per-sport joint gender splits.
func SportBalanceReport(name string, balances []analytics.SportBalance) Report {
	records := make([][]string, 0, len(balances))
	for _, b := range balances {
		records = append(records, []string{
			b.Sport,
			formatInt(b.Men),
			formatInt(b.Women),
			formatFloat(b.RatioMale),
		})
	}
	return Report{
		Name:    name,
		Headers: []string{"Sport", "Men", "Women", "RatioMale"},
		Records: records,
	}
}

// MedalTableReport tabulates the per-region medal standings.
func MedalTableReport(name string, entries []analytics.MedalTableEntry) Report {
	records := make([][]string, 0, len(entries))
	for _, e := range entries {
		records = append(records, []string{
			e.Region,
			formatInt(e.Gold),
			formatInt(e.Silver),
			formatInt(e.Bronze),
			formatInt(e.Total),
		})
	}
	return Report{
		Name:    name,
		Headers: []string{"Region", "Gold", "Silver", "Bronze", "Total"},
		Records: records,
	}
}

// NationReport tabulates the Games x Region participation grid.
func NationReport(name string, grid []analytics.NationGames) Report {
	records := make([][]string, 0, len(grid))
	for _, cell := range grid {
		records = append(records, []string{
			cell.Games,
			cell.Region,
			formatInt(cell.Men),
			formatInt(cell.Women),
			formatInt(cell.Medals),
			formatFloat(cell.MedalsPerEntry),
		})
	}
	return Report{
		Name:    name,
		Headers: []string{"Games", "Region", "Men", "Women", "Medals", "MedalsPerEntry"},
		Records: records,
	}
}

// CleaningSummaryReport tabulates pipeline stage row counts followed by
// the derived discontinued sports and dropped-NOC tallies.
func CleaningSummaryReport(name string, result *pipeline.Result) Report {
	records := make([][]string, 0, len(result.Stages)+len(result.Discontinued)+len(result.DroppedByNOC))
	for _, stage := range result.Stages {
		records = append(records, []string{
			"stage", stage.Stage, formatInt(stage.RowsIn), formatInt(stage.RowsOut),
		})
	}

	sports := make([]string, 0, len(result.Discontinued))
	for sport := range result.Discontinued {
		sports = append(sports, sport)
	}
	sort.Strings(sports)
	for _, sport := range sports {
		records = append(records, []string{
			"discontinued_sport", sport, formatInt(result.Discontinued[sport]), "",
		})
	}

	nocs := make([]string, 0, len(result.DroppedByNOC))
	for noc := range result.DroppedByNOC {
		nocs = append(nocs, noc)
	}
	sort.Strings(nocs)
	for _, noc := range nocs {
		records = append(records, []string{
			"dropped_noc", noc, formatInt(result.DroppedByNOC[noc]), "",
		})
	}

	return Report{
		Name:    name,
		Headers: []string{"Kind", "Key", "Value", "Extra"},
		Records: records,
	}
}
