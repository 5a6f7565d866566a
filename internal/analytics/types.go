package analytics

import (
	"log/slog"

	"ogacli/pkg/contracts/domain"
)

// GenderCounts holds zero-filled per-key counts of male and female
// entries plus the derived male proportion.
type GenderCounts struct {
	Year      int     `json:"year"`
	Men       int     `json:"men"`
	Women     int     `json:"women"`
	RatioMale float64 `json:"ratio_male"`
}

// SportBalance is the gender balance of one sport across one or more
// Games. Counts and per-year ratios are zero-filled over the union of
// sports observed in any of the requested years, so a sport contested
// by one gender only, or added partway through, still gets a row.
type SportBalance struct {
	Sport     string       `json:"sport"`
	Years     []YearGender `json:"years"`
	Men       int          `json:"men"`
	Women     int          `json:"women"`
	RatioMale float64      `json:"ratio_male"`
}

// YearGender is one year's slice of a SportBalance.
type YearGender struct {
	Year      int     `json:"year"`
	Men       int     `json:"men"`
	Women     int     `json:"women"`
	RatioMale float64 `json:"ratio_male"`
}

// EventCount counts distinct events for a sport and sex in one Games.
type EventCount struct {
	Sport  string `json:"sport"`
	Sex    string `json:"sex"`
	Events int    `json:"events"`
}

// MedalSportCounts is the per-sport, per-medal-category gender split of
// one Games. Medal covers all four categories including "None".
type MedalSportCounts struct {
	Sport string `json:"sport"`
	Medal string `json:"medal"`
	Women int    `json:"women"`
	Men   int    `json:"men"`
}

// MedalTableEntry is one region's row in the medal table.
type MedalTableEntry struct {
	Region string `json:"region"`
	Gold   int    `json:"gold"`
	Silver int    `json:"silver"`
	Bronze int    `json:"bronze"`
	Total  int    `json:"total"`
}

// NationGames is one (Games, Region) cell of the participation grid.
// Entries covers every row the nation contributed to that Games; a pair
// with no entries means the nation did not attend and is not reported.
type NationGames struct {
	Games   string  `json:"games"`
	Region  string  `json:"region"`
	Men     int     `json:"men"`
	Women   int     `json:"women"`
	Medals  int     `json:"medals"`
	Entries int     `json:"entries"`
	// MedalsPerEntry is Medals / Entries, a size-normalized success rate.
	MedalsPerEntry float64 `json:"medals_per_entry"`
}

// YearCount is a plain per-year entry count.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// DistributionBin is one bucket of a frequency table.
type DistributionBin struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// Correlation reports a Pearson coefficient. Defined is false when
// either series has zero variance, in which case Coefficient is 0.
type Correlation struct {
	Coefficient float64 `json:"coefficient"`
	Defined     bool    `json:"defined"`
	Pairs       int     `json:"pairs"`
}

// Analyzer answers aggregation queries over one canonical table.
type Analyzer struct {
	table  domain.Table
	logger *slog.Logger
}

// New creates an Analyzer over the given canonical table. The table is
// held by reference and must not be mutated by the caller; the pipeline
// hands over ownership of its result.
func New(table domain.Table, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{table: table, logger: logger}
}

// Rows returns the number of rows backing the analyzer.
func (a *Analyzer) Rows() int {
	return len(a.table)
}

// ratioMale is M/(M+F). A key only exists because at least one row
// carries it, so the denominator is never zero for grouped results;
// the guard covers direct calls with empty counts.
func ratioMale(men, women int) float64 {
	total := men + women
	if total == 0 {
		return 0
	}
	return float64(men) / float64(total)
}
