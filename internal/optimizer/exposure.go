package optimizer

import (
	"sort"

	"github.com/stitts-dev/portfolio-engine/internal/types"
)

// BuildExposureReport summarizes how often each entity appears across the
// returned lineups. The report is display-only: exposure never feeds back
// into the model.
func BuildExposureReport(lineups []types.LineupResult) *types.ExposureReport {
	report := &types.ExposureReport{TotalLineups: len(lineups)}
	if len(lineups) == 0 {
		return report
	}

	counts := make(map[string]int)
	categories := make(map[string]types.Category)
	for _, lineup := range lineups {
		for _, sa := range lineup.Slots {
			counts[sa.Entity.ID]++
			categories[sa.Entity.ID] = sa.Entity.Category
		}
	}

	for id, count := range counts {
		report.Entities = append(report.Entities, types.EntityExposure{
			EntityID:   id,
			Category:   string(categories[id]),
			Count:      count,
			Percentage: float64(count) / float64(len(lineups)) * 100,
		})
	}

	sort.Slice(report.Entities, func(i, j int) bool {
		if report.Entities[i].Count != report.Entities[j].Count {
			return report.Entities[i].Count > report.Entities[j].Count
		}
		return report.Entities[i].EntityID < report.Entities[j].EntityID
	})

	return report
}
