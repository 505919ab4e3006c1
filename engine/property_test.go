package engine

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ortelius/vulnview-backend/model"
)

// recordsFromSeeds builds a deterministic dataset from generated seeds
// so properties range over severities, null scores, statuses, and
// risk-factor counts
func recordsFromSeeds(seeds []int) []model.VulnerabilityRecord {
	severities := []string{"Critical", "High", "Medium", "Low", "Nonsense", ""}
	statuses := []string{"invalid - norisk", "ai-invalid-norisk", "needs-review", "fixed"}
	factors := []string{"Has fix", "In use", "Remote execution"}

	out := make([]model.VulnerabilityRecord, len(seeds))
	for i, seed := range seeds {
		if seed < 0 {
			seed = -seed
		}
		rec := model.VulnerabilityRecord{
			ID:        fmt.Sprintf("vuln-%d", i),
			Package:   fmt.Sprintf("pkg-%d", seed%7),
			Severity:  severities[seed%len(severities)],
			KaiStatus: statuses[seed%len(statuses)],
		}
		if seed%3 != 0 {
			score := float64(seed%101) / 10
			rec.Cvss = &score
		}
		rec.RiskFactors = factors[:seed%(len(factors)+1)]
		out[i] = rec
	}
	return out
}

func TestEngineProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	seedsGen := gen.SliceOf(gen.IntRange(0, 10_000))

	properties.Property("filter never grows the sequence", prop.ForAll(
		func(seeds []int) bool {
			records := recordsFromSeeds(seeds)
			filtered := Filter(records, model.FilterCriteria{Severities: []string{"Critical", "High"}})
			narrowed := Filter(records, model.FilterCriteria{
				Severities:  []string{"Critical", "High"},
				RiskFactors: []string{"Has fix"},
			})
			return len(filtered) <= len(records) && len(narrowed) <= len(filtered)
		},
		seedsGen,
	))

	properties.Property("kai status buckets partition the dataset", prop.ForAll(
		func(seeds []int) bool {
			records := recordsFromSeeds(seeds)
			m := ComputeMetrics(records)
			sum := m.KaiStatusBreakdown.InvalidNoRisk +
				m.KaiStatusBreakdown.AIInvalidNoRisk +
				m.KaiStatusBreakdown.Other
			return sum == m.Total
		},
		seedsGen,
	))

	properties.Property("severity distribution never exceeds total", prop.ForAll(
		func(seeds []int) bool {
			records := recordsFromSeeds(seeds)
			m := ComputeMetrics(records)
			return m.SeverityDistribution.Sum() <= m.Total
		},
		seedsGen,
	))

	properties.Property("severity sort is totally ordered", prop.ForAll(
		func(seeds []int) bool {
			records := recordsFromSeeds(seeds)
			sorted := Sort(records, "severity", model.SortAscending)
			for i := 1; i < len(sorted); i++ {
				if model.SeverityRank(sorted[i-1].Severity) > model.SeverityRank(sorted[i].Severity) {
					return false
				}
			}
			return true
		},
		seedsGen,
	))

	properties.Property("null sort keys land at the end in both directions", prop.ForAll(
		func(seeds []int, descending bool) bool {
			records := recordsFromSeeds(seeds)
			direction := model.SortAscending
			if descending {
				direction = model.SortDescending
			}
			sorted := Sort(records, "cvss", direction)

			seenNull := false
			var prev *float64
			for i := range sorted {
				if sorted[i].Cvss == nil {
					seenNull = true
					continue
				}
				if seenNull {
					return false // a value after a null
				}
				if prev != nil {
					if descending && *prev < *sorted[i].Cvss {
						return false
					}
					if !descending && *prev > *sorted[i].Cvss {
						return false
					}
				}
				prev = sorted[i].Cvss
			}
			return true
		},
		seedsGen,
		gen.Bool(),
	))

	properties.Property("filter and sort never mutate their input", prop.ForAll(
		func(seeds []int) bool {
			records := recordsFromSeeds(seeds)
			before := ids(records)

			Filter(records, model.FilterCriteria{Search: "pkg-1"})
			Sort(records, "severity", model.SortDescending)
			Sort(records, "cvss", model.SortAscending)

			after := ids(records)
			if len(before) != len(after) {
				return false
			}
			for i := range before {
				if before[i] != after[i] {
					return false
				}
			}
			return true
		},
		seedsGen,
	))

	properties.TestingRun(t)
}
