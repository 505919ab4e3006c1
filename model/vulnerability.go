// Package model - core types for the vulnerability dataset and its derived views
package model

import (
	"strings"
	"time"
)

// Canonical severity levels, Title case after normalization
const (
	SeverityCritical = "Critical"
	SeverityHigh     = "High"
	SeverityMedium   = "Medium"
	SeverityLow      = "Low"
)

// KAI status tags that mark a finding as assessed-no-risk
const (
	KaiStatusInvalidNoRisk   = "invalid - norisk"
	KaiStatusAIInvalidNoRisk = "ai-invalid-norisk"
)

// VulnerabilityRecord is one row of the normalized dataset
type VulnerabilityRecord struct {
	ID          string     `json:"id"`
	Package     string     `json:"package"`
	Severity    string     `json:"severity"`
	Cvss        *float64   `json:"cvss,omitempty"`
	Version     string     `json:"version,omitempty"`
	KaiStatus   string     `json:"kaiStatus,omitempty"`
	RiskFactors []string   `json:"riskFactors,omitempty"`
	Cve         string     `json:"cve,omitempty"`
	Description string     `json:"description,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	GroupName   string     `json:"groupName,omitempty"`
	ImageName   string     `json:"imageName,omitempty"`
}

// SeverityRank maps a severity label to its position in the fixed total
// order Critical(4) > High(3) > Medium(2) > Low(1). Unrecognized values
// rank 0 and sort below every recognized level.
func SeverityRank(severity string) int {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "critical":
		return 4
	case "high":
		return 3
	case "medium":
		return 2
	case "low":
		return 1
	default:
		return 0
	}
}

// FieldValue looks up a sortable field by its JSON name. The second
// return is false when the record has no value for the field, which the
// sort engine treats as null-sorts-last.
func (r *VulnerabilityRecord) FieldValue(field string) (interface{}, bool) {
	switch field {
	case "id":
		return r.ID, r.ID != ""
	case "package":
		return r.Package, r.Package != ""
	case "severity":
		return r.Severity, r.Severity != ""
	case "cvss":
		if r.Cvss == nil {
			return nil, false
		}
		return *r.Cvss, true
	case "version":
		return r.Version, r.Version != ""
	case "kaiStatus":
		return r.KaiStatus, r.KaiStatus != ""
	case "cve":
		return r.Cve, r.Cve != ""
	case "description":
		return r.Description, r.Description != ""
	case "timestamp":
		if r.Timestamp == nil {
			return nil, false
		}
		return *r.Timestamp, true
	case "groupName":
		return r.GroupName, r.GroupName != ""
	case "imageName":
		return r.ImageName, r.ImageName != ""
	default:
		return nil, false
	}
}
