package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ogacli/pkg/contracts/domain"
)

func row(id int, sport string, year int) domain.Row {
	return domain.Row{
		ID:     id,
		Sex:    domain.SexMale,
		Year:   year,
		Season: domain.SeasonSummer,
		Sport:  sport,
		Region: "Nation",
	}
}

func TestLastInclusion(t *testing.T) {
	table := domain.Table{
		row(1, "Tug-Of-War", 1900),
		row(2, "Tug-Of-War", 1920),
		row(3, "Swimming", 2016),
	}

	last := LastInclusion(table)

	assert.Equal(t, map[string]int{"Tug-Of-War": 1920, "Swimming": 2016}, last)
}

func TestFilterDiscontinued(t *testing.T) {
	table := domain.Table{
		row(1, "Croquet", 1900),
		row(2, "Croquet", 1950),
		row(3, "Swimming", 1912),
		row(4, "Swimming", 2016),
	}

	kept, discontinued := FilterDiscontinued(table, 2000)

	require.Len(t, kept, 2, "all rows of the discontinued sport go, all others stay")
	for _, r := range kept {
		assert.Equal(t, "Swimming", r.Sport)
	}
	assert.Equal(t, map[string]int{"Croquet": 1950}, discontinued)

	// No surviving sport has a last inclusion before the cutoff.
	for sport, year := range LastInclusion(kept) {
		assert.GreaterOrEqual(t, year, 2000, sport)
	}
}

func TestFilterDiscontinued_CutoffBoundary(t *testing.T) {
	table := domain.Table{
		row(1, "Boundary", 2000),
		row(2, "Below", 1999),
	}

	kept, discontinued := FilterDiscontinued(table, 2000)

	require.Len(t, kept, 1)
	assert.Equal(t, "Boundary", kept[0].Sport, "a sport last held in the cutoff year survives")
	assert.Contains(t, discontinued, "Below")
}

func TestFilterDiscontinued_DerivedNotHardcoded(t *testing.T) {
	// Raising the cutoff reclassifies a sport without any list to edit.
	table := domain.Table{
		row(1, "Baseball", 2008),
		row(2, "Swimming", 2016),
	}

	kept, _ := FilterDiscontinued(table, 2000)
	assert.Len(t, kept, 2)

	kept, discontinued := FilterDiscontinued(table, 2012)
	assert.Len(t, kept, 1)
	assert.Contains(t, discontinued, "Baseball")
}
