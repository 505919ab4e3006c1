// Package model - filter and sort parameters for derived views
package model

import "strings"

// FilterCriteria combines the independent predicates applied to a record
// sequence. A zero-value criterion is a pass-through.
type FilterCriteria struct {
	Search          string   `json:"search,omitempty"`
	Severities      []string `json:"severities,omitempty"`
	RiskFactors     []string `json:"riskFactors,omitempty"`
	ExcludeStatuses []string `json:"excludeStatuses,omitempty"`
}

// IsZero reports whether no predicate is active
func (c FilterCriteria) IsZero() bool {
	return c.Search == "" && len(c.Severities) == 0 &&
		len(c.RiskFactors) == 0 && len(c.ExcludeStatuses) == 0
}

// SortDirection orders a sorted view ascending or descending
type SortDirection string

// Sort directions accepted by the sort engine
const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// ParseSortDirection maps common spellings onto a SortDirection,
// defaulting to ascending.
func ParseSortDirection(s string) SortDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending", "down":
		return SortDescending
	default:
		return SortAscending
	}
}

// SortFieldRiskFactorsCount is the synthetic field that orders records by
// the number of normalized risk-factor labels.
const SortFieldRiskFactorsCount = "riskFactorsCount"
