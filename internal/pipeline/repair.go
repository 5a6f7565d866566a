package pipeline

import (
	"fmt"
	"sort"

	"ogacli/internal/errors"
	"ogacli/pkg/contracts/domain"
)

// PatchRegions fills the region for rows whose NOC code is one of the
// configured patch codes. This is a targeted repair for the known NOC
// codes whose region is null in the source mapping, not a general
// null-region handler: any other row with an empty region is a
// data-quality defect and fails the stage with an INTEGRITY error.
func PatchRegions(table domain.Table, patches map[string]string) (domain.Table, error) {
	out := table.Clone()
	defects := make(map[string]int)

	for i := range out {
		if out[i].Region != "" {
			continue
		}

		region, ok := patches[out[i].NOC]
		if !ok {
			defects[out[i].NOC]++
			continue
		}
		out[i].Region = region
	}

	if len(defects) > 0 {
		codes := make([]string, 0, len(defects))
		for noc := range defects {
			codes = append(codes, noc)
		}
		sort.Strings(codes)

		err := errors.NewIntegrityError(
			fmt.Sprintf("rows with empty region for unpatched NOC codes %v", codes), nil)
		for noc, count := range defects {
			err = err.WithContext(noc, count)
		}
		return nil, err
	}

	return out, nil
}

// NormalizeMedals assigns the explicit "None" category to every row whose
// medal is absent. Non-medallists become a first-class, queryable group;
// rows that already carry a medal are never altered.
func NormalizeMedals(table domain.Table) domain.Table {
	out := table.Clone()
	for i := range out {
		if out[i].Medal == "" {
			out[i].Medal = domain.MedalNone
		}
	}
	return out
}
