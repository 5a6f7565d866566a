package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"ogacli/internal/errors"
	"ogacli/pkg/contracts/domain"
)

// ValidateDropped checks the design assumption behind the inner join: every
// athlete row dropped for lack of a region mapping must belong to a sport
// that the cutoff classifies as discontinued. The assumption held for the
// original dataset snapshot but must be re-verified on every run.
//
// Violating rows are grouped by NOC. A NOC whose violation count exceeds
// the tolerance fails the run with an INTEGRITY error; counts at or below
// the tolerance are logged as warnings.
func ValidateDropped(ctx context.Context, logger *slog.Logger, dropped []domain.AthleteRecord, lastInclusion map[string]int, cutoff, tolerance int) error {
	if len(dropped) == 0 {
		return nil
	}

	violations := make(map[string]int)
	for _, r := range dropped {
		if lastInclusion[r.Sport] >= cutoff {
			violations[r.NOC]++
		}
	}

	var failing []string
	for noc, count := range violations {
		if count > tolerance {
			failing = append(failing, noc)
			continue
		}
		logger.WarnContext(ctx, "join dropped modern-sport rows for unmapped NOC within tolerance",
			slog.String("noc", noc),
			slog.Int("rows", count))
	}

	if len(failing) > 0 {
		sort.Strings(failing)
		err := errors.NewIntegrityError(
			fmt.Sprintf("unmapped NOC codes %v carry rows in current sports; inner join would silently drop them", failing), nil)
		for _, noc := range failing {
			err = err.WithContext(noc, violations[noc])
		}
		return err
	}

	return nil
}

// CheckInvariants asserts the canonical-table invariants: every region is
// non-empty and every medal is one of the four categories.
func CheckInvariants(table domain.Table) error {
	for i, row := range table {
		if row.Region == "" {
			return errors.NewIntegrityError(
				fmt.Sprintf("canonical row %d (athlete %d) has empty region", i, row.ID), nil)
		}
		if !domain.ValidMedal(row.Medal) {
			return errors.NewIntegrityError(
				fmt.Sprintf("canonical row %d (athlete %d) has invalid medal %q", i, row.ID, row.Medal), nil)
		}
	}
	return nil
}
