// Package dashboard implements the resolvers for dashboard metrics.
package dashboard

import (
	"sort"

	"github.com/samber/lo"

	"github.com/ortelius/vulnview-backend/dataset"
	"github.com/ortelius/vulnview-backend/model"
)

// ResolveOverview returns the high-level dashboard metrics from the
// session-cached aggregates
func ResolveOverview(store *dataset.Store) (interface{}, error) {
	metrics, err := store.Metrics()
	if err != nil {
		return nil, err
	}

	base := store.Base()
	packages := lo.UniqBy(base, func(r model.VulnerabilityRecord) string { return r.Package })

	return map[string]interface{}{
		"total":          metrics.Total,
		"packages":       len(packages),
		"with_severity":  metrics.SeverityDistribution.Sum(),
		"no_risk_tagged": metrics.KaiStatusBreakdown.InvalidNoRisk + metrics.KaiStatusBreakdown.AIInvalidNoRisk,
	}, nil
}

// ResolveSeverityDistribution returns the four canonical severity buckets
func ResolveSeverityDistribution(store *dataset.Store) (interface{}, error) {
	metrics, err := store.Metrics()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"critical": metrics.SeverityDistribution.Critical,
		"high":     metrics.SeverityDistribution.High,
		"medium":   metrics.SeverityDistribution.Medium,
		"low":      metrics.SeverityDistribution.Low,
	}, nil
}

// ResolveRiskFactors returns the most frequent risk-factor labels,
// ordered by count descending with label as the tie-break
func ResolveRiskFactors(store *dataset.Store, limit int) (interface{}, error) {
	metrics, err := store.Metrics()
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, 0, len(metrics.RiskFactorsFrequency))
	for label, count := range metrics.RiskFactorsFrequency {
		rows = append(rows, map[string]interface{}{"label": label, "count": count})
	}
	sort.Slice(rows, func(i, j int) bool {
		ci, cj := rows[i]["count"].(int), rows[j]["count"].(int)
		if ci != cj {
			return ci > cj
		}
		return rows[i]["label"].(string) < rows[j]["label"].(string)
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// ResolveKaiStatus returns the three-way assessment breakdown
func ResolveKaiStatus(store *dataset.Store) (interface{}, error) {
	metrics, err := store.Metrics()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"invalid_norisk":    metrics.KaiStatusBreakdown.InvalidNoRisk,
		"ai_invalid_norisk": metrics.KaiStatusBreakdown.AIInvalidNoRisk,
		"other":             metrics.KaiStatusBreakdown.Other,
	}, nil
}
