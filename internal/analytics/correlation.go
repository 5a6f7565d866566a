package analytics

import (
	"math"

	"ogacli/internal/errors"
)

// Pearson computes the Pearson correlation coefficient of two paired
// series. A series with zero variance makes the coefficient undefined;
// the result then reports Defined=false with a coefficient of 0 rather
// than NaN, so downstream serialization stays finite.
func Pearson(xs, ys []float64) (Correlation, error) {
	if len(xs) != len(ys) {
		return Correlation{}, errors.NewAppValidationError("correlation requires series of equal length")
	}
	n := len(xs)
	if n < 2 {
		return Correlation{Pairs: n}, nil
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return Correlation{Pairs: n}, nil
	}

	return Correlation{
		Coefficient: cov / math.Sqrt(varX*varY),
		Defined:     true,
		Pairs:       n,
	}, nil
}

// ParticipationTrend correlates year against the male proportion of
// each Games in one season. It answers whether the gender balance has
// been moving over time.
func (a *Analyzer) ParticipationTrend(season string) (Correlation, error) {
	counts := a.GenderCountsByGames(season)
	years := make([]float64, len(counts))
	ratios := make([]float64, len(counts))
	for i, c := range counts {
		years[i] = float64(c.Year)
		ratios[i] = c.RatioMale
	}
	return Pearson(years, ratios)
}

// SuccessBySize correlates per-nation entry counts against medal counts
// across the participation grid.
func (a *Analyzer) SuccessBySize() (Correlation, error) {
	grid := a.NationParticipation()
	entries := make([]float64, len(grid))
	medals := make([]float64, len(grid))
	for i, cell := range grid {
		entries[i] = float64(cell.Entries)
		medals[i] = float64(cell.Medals)
	}
	return Pearson(entries, medals)
}
