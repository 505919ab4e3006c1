package engine

import (
	"strings"

	"github.com/ortelius/vulnview-backend/model"
)

// ComputeMetrics produces the aggregate view of the base dataset in a
// single pass. It runs once per dataset load; filter and sort activity
// never invalidates the result.
func ComputeMetrics(records []model.VulnerabilityRecord) model.VulnerabilityMetrics {
	metrics := model.VulnerabilityMetrics{
		Total:                len(records),
		RiskFactorsFrequency: make(map[string]int),
	}

	for i := range records {
		rec := &records[i]

		// Case-insensitive match into the four canonical buckets;
		// anything else is dropped from the distribution.
		switch strings.ToLower(rec.Severity) {
		case "critical":
			metrics.SeverityDistribution.Critical++
		case "high":
			metrics.SeverityDistribution.High++
		case "medium":
			metrics.SeverityDistribution.Medium++
		case "low":
			metrics.SeverityDistribution.Low++
		}

		// Risk-factor labels count by exact string equality
		for _, label := range rec.RiskFactors {
			if label != "" {
				metrics.RiskFactorsFrequency[label]++
			}
		}

		// The three KAI buckets partition the dataset exactly
		switch rec.KaiStatus {
		case model.KaiStatusInvalidNoRisk:
			metrics.KaiStatusBreakdown.InvalidNoRisk++
		case model.KaiStatusAIInvalidNoRisk:
			metrics.KaiStatusBreakdown.AIInvalidNoRisk++
		default:
			metrics.KaiStatusBreakdown.Other++
		}
	}

	return metrics
}
