package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ortelius/vulnview-backend/model"
)

func TestComputeMetricsSeverityDistribution(t *testing.T) {
	records := []model.VulnerabilityRecord{
		{ID: "1", Severity: "Critical"},
		{ID: "2", Severity: "CRITICAL"},
		{ID: "3", Severity: "high"},
		{ID: "4", Severity: "Medium"},
		{ID: "5", Severity: "low"},
		{ID: "6", Severity: "Unknown-Level"},
		{ID: "7"},
	}

	metrics := ComputeMetrics(records)

	assert.Equal(t, 7, metrics.Total)
	assert.Equal(t, 2, metrics.SeverityDistribution.Critical)
	assert.Equal(t, 1, metrics.SeverityDistribution.High)
	assert.Equal(t, 1, metrics.SeverityDistribution.Medium)
	assert.Equal(t, 1, metrics.SeverityDistribution.Low)

	// unrecognized severities are dropped from every bucket
	assert.LessOrEqual(t, metrics.SeverityDistribution.Sum(), metrics.Total)
	assert.Equal(t, 5, metrics.SeverityDistribution.Sum())
}

func TestComputeMetricsKaiStatusPartition(t *testing.T) {
	records := []model.VulnerabilityRecord{
		{ID: "1", KaiStatus: "invalid - norisk"},
		{ID: "2", KaiStatus: "invalid - norisk"},
		{ID: "3", KaiStatus: "ai-invalid-norisk"},
		{ID: "4", KaiStatus: "needs-review"},
	}

	metrics := ComputeMetrics(records)

	assert.Equal(t, 2, metrics.KaiStatusBreakdown.InvalidNoRisk)
	assert.Equal(t, 1, metrics.KaiStatusBreakdown.AIInvalidNoRisk)
	assert.Equal(t, 1, metrics.KaiStatusBreakdown.Other)

	// the three buckets partition the dataset exactly
	sum := metrics.KaiStatusBreakdown.InvalidNoRisk +
		metrics.KaiStatusBreakdown.AIInvalidNoRisk +
		metrics.KaiStatusBreakdown.Other
	assert.Equal(t, metrics.Total, sum)
}

func TestComputeMetricsRiskFactorFrequency(t *testing.T) {
	records := []model.VulnerabilityRecord{
		{ID: "1", RiskFactors: []string{"Has fix", "In use"}},
		{ID: "2", RiskFactors: []string{"Has fix"}},
		{ID: "3", RiskFactors: []string{"has fix"}}, // exact-match labels, no case folding
		{ID: "4"},
	}

	metrics := ComputeMetrics(records)

	assert.Equal(t, 2, metrics.RiskFactorsFrequency["Has fix"])
	assert.Equal(t, 1, metrics.RiskFactorsFrequency["In use"])
	assert.Equal(t, 1, metrics.RiskFactorsFrequency["has fix"])
}

func TestComputeMetricsEmptyDataset(t *testing.T) {
	metrics := ComputeMetrics(nil)
	assert.Equal(t, 0, metrics.Total)
	assert.Equal(t, 0, metrics.SeverityDistribution.Sum())
	assert.Empty(t, metrics.RiskFactorsFrequency)
}
