package pipeline

import (
	"ogacli/pkg/contracts/domain"
)

// JoinRegions inner-joins athlete records against region mappings on NOC
// code and prunes the columns not needed downstream: the free-text team
// name and mapping notes are dropped in favor of the normalized region.
//
// Rows whose NOC has no mapping at all are excluded from the joined table
// and returned separately; ValidateDropped checks them against the
// discontinued-sport assumption instead of letting the join discard them
// unexamined. A mapping with an empty region still joins: those rows are
// the patch targets of the repair stage.
func JoinRegions(athletes []domain.AthleteRecord, regions []domain.RegionMapping) (domain.Table, []domain.AthleteRecord) {
	regionByNOC := make(map[string]string, len(regions))
	for _, m := range regions {
		if _, ok := regionByNOC[m.NOC]; !ok {
			regionByNOC[m.NOC] = m.Region
		}
	}

	joined := make(domain.Table, 0, len(athletes))
	var dropped []domain.AthleteRecord

	for _, a := range athletes {
		region, ok := regionByNOC[a.NOC]
		if !ok {
			dropped = append(dropped, a)
			continue
		}

		joined = append(joined, domain.Row{
			ID:     a.ID,
			Name:   a.Name,
			Sex:    a.Sex,
			Age:    a.Age,
			Height: a.Height,
			Weight: a.Weight,
			Games:  a.Games,
			Year:   a.Year,
			Season: a.Season,
			City:   a.City,
			Sport:  a.Sport,
			Event:  a.Event,
			Medal:  a.Medal,
			NOC:    a.NOC,
			Region: region,
		})
	}

	return joined, dropped
}
