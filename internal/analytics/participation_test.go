package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ogacli/pkg/contracts/domain"
)

func entry(sex string, year int, season, sport, event, medal, region string) domain.Row {
	return domain.Row{
		Sex:    sex,
		Year:   year,
		Games:  "Games",
		Season: season,
		Sport:  sport,
		Event:  event,
		Medal:  medal,
		Region: region,
	}
}

func TestCountBySex(t *testing.T) {
	a := New(domain.Table{
		entry("M", 2016, "Summer", "Swimming", "100m", "None", "Nation"),
		entry("M", 2016, "Summer", "Swimming", "200m", "None", "Nation"),
		entry("F", 2016, "Summer", "Swimming", "100m", "Gold", "Nation"),
	}, nil)

	assert.Equal(t, map[string]int{"M": 2, "F": 1}, a.CountBySex())
}

func TestCountByMedal(t *testing.T) {
	a := New(domain.Table{
		entry("M", 2016, "Summer", "Swimming", "100m", "Gold", "Nation"),
		entry("M", 2016, "Summer", "Swimming", "200m", "None", "Nation"),
		entry("F", 2016, "Summer", "Swimming", "100m", "None", "Nation"),
	}, nil)

	counts := a.CountByMedal()
	assert.Equal(t, 1, counts[domain.MedalGold])
	assert.Equal(t, 2, counts[domain.MedalNone], `"None" is a countable category`)
}

func TestParticipationByYear_SeasonSplit(t *testing.T) {
	a := New(domain.Table{
		entry("M", 2014, "Winter", "Curling", "Mixed", "None", "Nation"),
		entry("M", 2016, "Summer", "Swimming", "100m", "None", "Nation"),
		entry("F", 2016, "Summer", "Swimming", "100m", "None", "Nation"),
	}, nil)

	summer := a.ParticipationByYear(domain.SeasonSummer)
	require.Len(t, summer, 1)
	assert.Equal(t, YearCount{Year: 2016, Count: 2}, summer[0])

	both := a.ParticipationByYear("")
	assert.Len(t, both, 2)
}

func TestGenderCountsByGames(t *testing.T) {
	rows := domain.Table{
		entry("F", 2012, "Summer", "Swimming", "100m", "None", "Nation"),
		entry("M", 2012, "Summer", "Swimming", "100m", "None", "Nation"),
	}
	for i := 0; i < 10; i++ {
		rows = append(rows, entry("M", 2016, "Summer", "Swimming", "100m", "None", "Nation"))
	}
	a := New(rows, nil)

	counts := a.GenderCountsByGames(domain.SeasonSummer)
	require.Len(t, counts, 2)

	assert.Equal(t, GenderCounts{Year: 2012, Men: 1, Women: 1, RatioMale: 0.5}, counts[0])

	// Men=10, Women=0 must yield exactly 1.0, not a division error.
	assert.Equal(t, GenderCounts{Year: 2016, Men: 10, Women: 0, RatioMale: 1.0}, counts[1])
}

func TestAnalyzer_DoesNotMutateTable(t *testing.T) {
	table := domain.Table{
		entry("M", 2016, "Summer", "Swimming", "100m", "Gold", "Nation"),
	}
	snapshot := table.Clone()

	a := New(table, nil)
	a.CountBySex()
	a.GenderCountsByGames("")
	a.MedalTable("")
	a.NationParticipation()

	assert.Equal(t, snapshot, table)
}
