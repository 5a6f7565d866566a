package domain

// Medal categories on the canonical table. MedalNone is assigned by the
// repair stage so that "did not medal" is a queryable outcome rather than a
// null that falls out of group keys.
const (
	MedalGold   = "Gold"
	MedalSilver = "Silver"
	MedalBronze = "Bronze"
	MedalNone   = "None"
)

// Medals lists the valid medal categories after cleaning.
var Medals = []string{MedalGold, MedalSilver, MedalBronze, MedalNone}

// ValidMedal reports whether m is one of the four canonical medal categories.
func ValidMedal(m string) bool {
	switch m {
	case MedalGold, MedalSilver, MedalBronze, MedalNone:
		return true
	}
	return false
}

// Row is one row of the canonical athlete-event table: an AthleteRecord
// joined with its region, with the team name and mapping notes pruned.
// After the cleaning pipeline completes, Region is never empty and Medal is
// always one of the canonical categories. Age, height and weight keep their
// source missingness; consumers exclude nil values row-wise.
type Row struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Sex    string   `json:"sex"`
	Age    *float64 `json:"age,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	Games  string   `json:"games"`
	Year   int      `json:"year"`
	Season string   `json:"season"`
	City   string   `json:"city"`
	Sport  string   `json:"sport"`
	Event  string   `json:"event"`
	Medal  string   `json:"medal"`
	NOC    string   `json:"noc"`
	Region string   `json:"region"`
}

// Table is the canonical athlete-event table. It is built once per run and
// treated as immutable; every aggregation is a pure read over it. Row order
// follows source order, so identical inputs produce identical tables.
type Table []Row

// Clone returns a copy of the table. Pipeline stages clone before modifying
// row values so that each stage hands ownership of a fresh table forward.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	copy(out, t)
	return out
}
