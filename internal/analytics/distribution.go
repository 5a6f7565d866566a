package analytics

import (
	"math"
	"sort"

	"ogacli/pkg/contracts/domain"
)

// AgeDistribution returns the age frequency table for one sex. Rows
// with a missing age are excluded row-wise, never imputed.
func (a *Analyzer) AgeDistribution(sex string) []DistributionBin {
	return a.distribution(sex, func(r domain.Row) *float64 { return r.Age }, false)
}

// HeightDistribution returns the height frequency table for one sex.
func (a *Analyzer) HeightDistribution(sex string) []DistributionBin {
	return a.distribution(sex, func(r domain.Row) *float64 { return r.Height }, false)
}

// WeightDistribution returns the weight frequency table for one sex.
// Weights are rounded to integer bins: the source records fractional
// kilograms for a handful of athletes, which would otherwise produce
// singleton buckets.
func (a *Analyzer) WeightDistribution(sex string) []DistributionBin {
	return a.distribution(sex, func(r domain.Row) *float64 { return r.Weight }, true)
}

func (a *Analyzer) distribution(sex string, value func(domain.Row) *float64, round bool) []DistributionBin {
	counts := make(map[float64]int)
	for _, row := range a.table {
		if sex != "" && row.Sex != sex {
			continue
		}
		v := value(row)
		if v == nil {
			continue
		}
		x := *v
		if round {
			x = math.Round(x)
		}
		counts[x]++
	}

	out := make([]DistributionBin, 0, len(counts))
	for v, n := range counts {
		out = append(out, DistributionBin{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
