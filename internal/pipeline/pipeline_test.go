package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ogacli/internal/config"
	"ogacli/internal/dataset"
	"ogacli/internal/errors"
	"ogacli/pkg/contracts/domain"
)

const testAthleteHeader = "ID,Name,Sex,Age,Height,Weight,Team,NOC,Games,Year,Season,City,Sport,Event,Medal\n"

// writeFixtures writes a small but representative pair of sources:
// a discontinued sport, a patched null-region NOC, an unmapped NOC whose
// rows are confined to the discontinued sport, and missing numerics.
func writeFixtures(t *testing.T) (athletesPath, regionsPath string) {
	t.Helper()
	dir := t.TempDir()

	athletes := testAthleteHeader +
		"1,Anna,F,24,168,55,Sweden,SWE,2016 Summer,2016,Summer,Rio,Swimming,Swimming 100m,Gold\n" +
		"2,Berit,F,NA,NA,NA,Sweden,SWE,2012 Summer,2012,Summer,London,Swimming,Swimming 100m,NA\n" +
		"3,Carl,M,31,181,78,Norway,NOR,2014 Winter,2014,Winter,Sochi,Curling,Curling Mixed,Silver\n" +
		"4,Telupe,M,22,175,70,Tuvalu,TUV,2016 Summer,2016,Summer,Rio,Athletics,Athletics 100m,NA\n" +
		"5,Old Hand,M,28,NA,NA,Club,UNK,1912 Summer,1912,Summer,Stockholm,Tug-Of-War,Tug-Of-War Team,Bronze\n" +
		"6,Older Hand,M,NA,NA,NA,Club,SWE,1920 Summer,1920,Summer,Antwerp,Tug-Of-War,Tug-Of-War Team,NA\n"

	regions := "NOC,region,notes\n" +
		"SWE,Sweden,\n" +
		"NOR,Norway,\n" +
		"TUV,,\n"

	athletesPath = filepath.Join(dir, "athlete_events.csv")
	regionsPath = filepath.Join(dir, "noc_regions.csv")
	require.NoError(t, os.WriteFile(athletesPath, []byte(athletes), 0644))
	require.NoError(t, os.WriteFile(regionsPath, []byte(regions), 0644))
	return athletesPath, regionsPath
}

func newTestPipeline() *Pipeline {
	cfg := config.Default().Pipeline
	return New(cfg, dataset.NewLoader(nil))
}

func TestPipeline_Run(t *testing.T) {
	athletesPath, regionsPath := writeFixtures(t)
	ctx := context.Background()

	result, err := newTestPipeline().Run(ctx, athletesPath, regionsPath)
	require.NoError(t, err)

	// Rows 5 (unmapped NOC) and 6 (discontinued sport) are gone.
	require.Len(t, result.Canonical, 4)

	for _, row := range result.Canonical {
		assert.NotEmpty(t, row.Region)
		assert.True(t, domain.ValidMedal(row.Medal), row.Medal)
	}

	// The Tuvalu row got its patched region.
	var tuv *domain.Row
	for i := range result.Canonical {
		if result.Canonical[i].NOC == "TUV" {
			tuv = &result.Canonical[i]
		}
	}
	require.NotNil(t, tuv)
	assert.Equal(t, "Tuvalu", tuv.Region)
	assert.Equal(t, domain.MedalNone, tuv.Medal)

	// Missing numerics stay missing.
	assert.Nil(t, result.Canonical[1].Age)

	assert.Equal(t, map[string]int{"UNK": 1}, result.DroppedByNOC)
	assert.Contains(t, result.Discontinued, "Tug-Of-War")
	assert.Equal(t, 1920, result.Discontinued["Tug-Of-War"])
}

func TestPipeline_Run_RowCountsMonotone(t *testing.T) {
	athletesPath, regionsPath := writeFixtures(t)

	result, err := newTestPipeline().Run(context.Background(), athletesPath, regionsPath)
	require.NoError(t, err)

	require.NotEmpty(t, result.Stages)
	for _, stage := range result.Stages {
		assert.LessOrEqual(t, stage.RowsOut, stage.RowsIn, stage.Stage)
	}
}

func TestPipeline_Run_Idempotent(t *testing.T) {
	athletesPath, regionsPath := writeFixtures(t)
	ctx := context.Background()
	p := newTestPipeline()

	first, err := p.Run(ctx, athletesPath, regionsPath)
	require.NoError(t, err)
	second, err := p.Run(ctx, athletesPath, regionsPath)
	require.NoError(t, err)

	assert.Equal(t, first.Canonical, second.Canonical)
	assert.Equal(t, first.Discontinued, second.Discontinued)
}

func TestPipeline_Run_UnmappedModernNOCFails(t *testing.T) {
	dir := t.TempDir()

	// XYZ competes in a current sport but has no region mapping: the
	// inner join would silently lose modern data, which must surface.
	athletes := testAthleteHeader +
		"1,Anna,F,24,168,55,Sweden,SWE,2016 Summer,2016,Summer,Rio,Swimming,Swimming 100m,Gold\n" +
		"2,Ghost,M,25,180,75,Nowhere,XYZ,2016 Summer,2016,Summer,Rio,Swimming,Swimming 200m,NA\n"
	regions := "NOC,region,notes\nSWE,Sweden,\n"

	athletesPath := filepath.Join(dir, "athletes.csv")
	regionsPath := filepath.Join(dir, "regions.csv")
	require.NoError(t, os.WriteFile(athletesPath, []byte(athletes), 0644))
	require.NoError(t, os.WriteFile(regionsPath, []byte(regions), 0644))

	_, err := newTestPipeline().Run(context.Background(), athletesPath, regionsPath)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeIntegrity))
}

func TestPipeline_Run_LoadFailureIsFatal(t *testing.T) {
	athletesPath, _ := writeFixtures(t)

	_, err := newTestPipeline().Run(context.Background(), athletesPath, filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeLoad))
}
