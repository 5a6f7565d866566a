package analytics

import (
	"sort"

	"ogacli/pkg/contracts/domain"
)

// MedalTable returns per-region Gold/Silver/Bronze totals for one
// season (or both seasons when season is empty), sorted by golds, then
// silvers, then bronzes, then region name. Every region present in the
// selection appears, zero-filled, even if it never medalled.
func (a *Analyzer) MedalTable(season string) []MedalTableEntry {
	totals := make(map[string]*MedalTableEntry)
	for _, row := range a.table {
		if season != "" && row.Season != season {
			continue
		}
		entry := totals[row.Region]
		if entry == nil {
			entry = &MedalTableEntry{Region: row.Region}
			totals[row.Region] = entry
		}
		switch row.Medal {
		case domain.MedalGold:
			entry.Gold++
		case domain.MedalSilver:
			entry.Silver++
		case domain.MedalBronze:
			entry.Bronze++
		}
	}

	out := make([]MedalTableEntry, 0, len(totals))
	for _, entry := range totals {
		entry.Total = entry.Gold + entry.Silver + entry.Bronze
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Gold != b.Gold {
			return a.Gold > b.Gold
		}
		if a.Silver != b.Silver {
			return a.Silver > b.Silver
		}
		if a.Bronze != b.Bronze {
			return a.Bronze > b.Bronze
		}
		return a.Region < b.Region
	})
	return out
}

// NationParticipation returns the Games x Region participation grid:
// per-cell male/female entry counts, medal count, and medals per entry.
// Only cells where the nation actually attended are reported; the cross
// product of observed Games and regions would otherwise be dominated by
// non-attendance rows carrying no information. Sorted by Games, then
// region.
func (a *Analyzer) NationParticipation() []NationGames {
	type key struct{ games, region string }
	cells := make(map[key]*NationGames)
	for _, row := range a.table {
		k := key{games: row.Games, region: row.Region}
		cell := cells[k]
		if cell == nil {
			cell = &NationGames{Games: row.Games, Region: row.Region}
			cells[k] = cell
		}
		cell.Entries++
		switch row.Sex {
		case domain.SexMale:
			cell.Men++
		case domain.SexFemale:
			cell.Women++
		}
		if row.Medal != domain.MedalNone {
			cell.Medals++
		}
	}

	out := make([]NationGames, 0, len(cells))
	for _, cell := range cells {
		cell.MedalsPerEntry = float64(cell.Medals) / float64(cell.Entries)
		out = append(out, *cell)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Games != out[j].Games {
			return out[i].Games < out[j].Games
		}
		return out[i].Region < out[j].Region
	})
	return out
}
