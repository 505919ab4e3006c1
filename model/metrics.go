// Package model - aggregate metric types computed once per dataset load
package model

// SeverityDistribution holds counts for the four canonical severity buckets.
// Records with an unrecognized severity are not counted in any bucket.
type SeverityDistribution struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Sum returns the number of records that landed in a recognized bucket
func (d SeverityDistribution) Sum() int {
	return d.Critical + d.High + d.Medium + d.Low
}

// KaiStatusBreakdown partitions the dataset by assessment outcome.
// The three buckets always sum to the record total.
type KaiStatusBreakdown struct {
	InvalidNoRisk   int `json:"invalid-norisk"`
	AIInvalidNoRisk int `json:"ai-invalid-norisk"`
	Other           int `json:"other"`
}

// VulnerabilityMetrics is the session-cached aggregate view of the base dataset
type VulnerabilityMetrics struct {
	Total                int                  `json:"total"`
	SeverityDistribution SeverityDistribution `json:"severityDistribution"`
	RiskFactorsFrequency map[string]int       `json:"riskFactorsFrequency"`
	KaiStatusBreakdown   KaiStatusBreakdown   `json:"kaiStatusBreakdown"`
}
