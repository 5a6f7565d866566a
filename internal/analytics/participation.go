package analytics

import (
	"sort"

	"ogacli/pkg/contracts/domain"
)

// CountBySex returns total entry counts keyed by sex.
func (a *Analyzer) CountBySex() map[string]int {
	counts := make(map[string]int, 2)
	for _, row := range a.table {
		counts[row.Sex]++
	}
	return counts
}

// CountByMedal returns total entry counts keyed by medal category,
// including the explicit "None" category.
func (a *Analyzer) CountByMedal() map[string]int {
	counts := make(map[string]int, len(domain.Medals))
	for _, row := range a.table {
		counts[row.Medal]++
	}
	return counts
}

// CountBySport returns total entry counts keyed by sport.
func (a *Analyzer) CountBySport() map[string]int {
	counts := make(map[string]int)
	for _, row := range a.table {
		counts[row.Sport]++
	}
	return counts
}

// ParticipationByYear counts entries per year for one season, sorted
// ascending by year. An empty season counts both seasons.
func (a *Analyzer) ParticipationByYear(season string) []YearCount {
	counts := make(map[int]int)
	for _, row := range a.table {
		if season != "" && row.Season != season {
			continue
		}
		counts[row.Year]++
	}
	out := make([]YearCount, 0, len(counts))
	for year, n := range counts {
		out = append(out, YearCount{Year: year, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// GenderCountsByGames returns per-year male and female entry counts for
// one season, zero-filled and sorted ascending by year. The male
// proportion is M/(M+F): a year with men only yields 1.0, women only
// yields 0.0.
func (a *Analyzer) GenderCountsByGames(season string) []GenderCounts {
	type mw struct{ men, women int }
	counts := make(map[int]mw)
	for _, row := range a.table {
		if season != "" && row.Season != season {
			continue
		}
		c := counts[row.Year]
		switch row.Sex {
		case domain.SexMale:
			c.men++
		case domain.SexFemale:
			c.women++
		}
		counts[row.Year] = c
	}

	out := make([]GenderCounts, 0, len(counts))
	for year, c := range counts {
		out = append(out, GenderCounts{
			Year:      year,
			Men:       c.men,
			Women:     c.women,
			RatioMale: ratioMale(c.men, c.women),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
