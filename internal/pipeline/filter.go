package pipeline

import (
	"ogacli/pkg/contracts/domain"
)

// LastInclusion computes, for each distinct sport in the table, the most
// recent year in which it appears.
func LastInclusion(table domain.Table) map[string]int {
	last := make(map[string]int)
	for _, row := range table {
		if row.Year > last[row.Sport] {
			last[row.Sport] = row.Year
		}
	}
	return last
}

// lastInclusionOfRecords is LastInclusion over raw athlete records. The
// dropped-row validation needs it because a dropped row's sport may not
// appear in the joined table at all.
func lastInclusionOfRecords(records []domain.AthleteRecord) map[string]int {
	last := make(map[string]int)
	for _, r := range records {
		if r.Year > last[r.Sport] {
			last[r.Sport] = r.Year
		}
	}
	return last
}

// FilterDiscontinued removes all rows of sports whose last Games appearance
// predates the cutoff year. The discontinued set is derived from the table
// at run time and returned as sport -> last inclusion year; it is never a
// stored list, so a refreshed dataset reclassifies automatically.
func FilterDiscontinued(table domain.Table, cutoff int) (domain.Table, map[string]int) {
	last := LastInclusion(table)

	discontinued := make(map[string]int)
	for sport, year := range last {
		if year < cutoff {
			discontinued[sport] = year
		}
	}

	kept := make(domain.Table, 0, len(table))
	for _, row := range table {
		if _, gone := discontinued[row.Sport]; gone {
			continue
		}
		kept = append(kept, row)
	}

	return kept, discontinued
}
