package analytics

import (
	"sort"

	"ogacli/pkg/contracts/domain"
)

// SportGenderBalance returns the per-sport gender split for the given
// years, plus a joint split across all of them. The sport key set is
// the union over all requested years, so a sport contested in only some
// of the years, or by one gender only, still appears with zero-filled
// counts everywhere else. Results are sorted by sport name.
func (a *Analyzer) SportGenderBalance(years ...int) []SportBalance {
	if len(years) == 0 {
		return nil
	}
	wanted := make(map[int]bool, len(years))
	for _, y := range years {
		wanted[y] = true
	}

	type mw struct{ men, women int }
	perSportYear := make(map[string]map[int]mw)
	for _, row := range a.table {
		if !wanted[row.Year] {
			continue
		}
		byYear := perSportYear[row.Sport]
		if byYear == nil {
			byYear = make(map[int]mw, len(years))
			perSportYear[row.Sport] = byYear
		}
		c := byYear[row.Year]
		switch row.Sex {
		case domain.SexMale:
			c.men++
		case domain.SexFemale:
			c.women++
		}
		byYear[row.Year] = c
	}

	sortedYears := append([]int(nil), years...)
	sort.Ints(sortedYears)

	out := make([]SportBalance, 0, len(perSportYear))
	for sport, byYear := range perSportYear {
		balance := SportBalance{
			Sport: sport,
			Years: make([]YearGender, 0, len(sortedYears)),
		}
		for _, year := range sortedYears {
			c := byYear[year] // zero value when the sport skipped the year
			balance.Years = append(balance.Years, YearGender{
				Year:      year,
				Men:       c.men,
				Women:     c.women,
				RatioMale: ratioMale(c.men, c.women),
			})
			balance.Men += c.men
			balance.Women += c.women
		}
		balance.RatioMale = ratioMale(balance.Men, balance.Women)
		out = append(out, balance)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sport < out[j].Sport })
	return out
}

// DistinctEventCounts counts distinct events per sport and sex for one
// year, sorted by sport then sex.
func (a *Analyzer) DistinctEventCounts(year int) []EventCount {
	type key struct{ sport, sex string }
	events := make(map[key]map[string]bool)
	for _, row := range a.table {
		if row.Year != year {
			continue
		}
		k := key{sport: row.Sport, sex: row.Sex}
		set := events[k]
		if set == nil {
			set = make(map[string]bool)
			events[k] = set
		}
		set[row.Event] = true
	}

	out := make([]EventCount, 0, len(events))
	for k, set := range events {
		out = append(out, EventCount{Sport: k.sport, Sex: k.sex, Events: len(set)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sport != out[j].Sport {
			return out[i].Sport < out[j].Sport
		}
		return out[i].Sex < out[j].Sex
	})
	return out
}

// MedalCountsBySport returns the gender split per sport and medal
// category for one Games. Every (sport, medal) pair over the sports
// present in that Games is emitted, zero-filled, with "None" as a
// first-class category. Sorted by sport then medal category order
// Gold, Silver, Bronze, None.
func (a *Analyzer) MedalCountsBySport(year int, season string) []MedalSportCounts {
	type key struct{ sport, medal string }
	type mw struct{ men, women int }
	counts := make(map[key]mw)
	sports := make(map[string]bool)
	for _, row := range a.table {
		if row.Year != year {
			continue
		}
		if season != "" && row.Season != season {
			continue
		}
		sports[row.Sport] = true
		k := key{sport: row.Sport, medal: row.Medal}
		c := counts[k]
		switch row.Sex {
		case domain.SexMale:
			c.men++
		case domain.SexFemale:
			c.women++
		}
		counts[k] = c
	}

	sortedSports := make([]string, 0, len(sports))
	for sport := range sports {
		sortedSports = append(sortedSports, sport)
	}
	sort.Strings(sortedSports)

	out := make([]MedalSportCounts, 0, len(sortedSports)*len(domain.Medals))
	for _, sport := range sortedSports {
		for _, medal := range domain.Medals {
			c := counts[key{sport: sport, medal: medal}]
			out = append(out, MedalSportCounts{
				Sport: sport,
				Medal: medal,
				Women: c.women,
				Men:   c.men,
			})
		}
	}
	return out
}
