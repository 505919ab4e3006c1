package engine

import (
	"strings"

	"github.com/ortelius/vulnview-backend/model"
)

// Filter applies the active criteria to a record sequence and returns
// the matching subset as a new slice. The input is never mutated.
// Predicates run in a fixed order: text search, severity membership,
// risk-factor membership, status exclusion. Membership tests use set
// lookups built once per call, never linear scans over the criteria.
func Filter(records []model.VulnerabilityRecord, criteria model.FilterCriteria) []model.VulnerabilityRecord {
	if criteria.IsZero() {
		out := make([]model.VulnerabilityRecord, len(records))
		copy(out, records)
		return out
	}

	search := strings.ToLower(strings.TrimSpace(criteria.Search))
	severities := lowerSet(criteria.Severities)
	riskFactors := exactSet(criteria.RiskFactors)
	excluded := exactSet(criteria.ExcludeStatuses)

	out := make([]model.VulnerabilityRecord, 0, len(records))
	for i := range records {
		rec := &records[i]
		if search != "" && !matchesSearch(rec, search) {
			continue
		}
		if len(severities) > 0 {
			if _, ok := severities[strings.ToLower(rec.Severity)]; !ok {
				continue
			}
		}
		if len(riskFactors) > 0 && !hasAnyRiskFactor(rec, riskFactors) {
			continue
		}
		if len(excluded) > 0 {
			if _, drop := excluded[rec.KaiStatus]; drop {
				continue
			}
		}
		out = append(out, *rec)
	}
	return out
}

// matchesSearch reports whether any searchable field contains the
// lowercased term
func matchesSearch(rec *model.VulnerabilityRecord, term string) bool {
	return strings.Contains(strings.ToLower(rec.Package), term) ||
		strings.Contains(strings.ToLower(rec.Severity), term) ||
		strings.Contains(strings.ToLower(rec.KaiStatus), term) ||
		strings.Contains(strings.ToLower(rec.Cve), term) ||
		strings.Contains(strings.ToLower(rec.Description), term)
}

// hasAnyRiskFactor requires at least one non-empty label that is a
// member of the requested set. A record without risk factors never
// passes an active risk-factor filter.
func hasAnyRiskFactor(rec *model.VulnerabilityRecord, wanted map[string]struct{}) bool {
	for _, label := range rec.RiskFactors {
		if label == "" {
			continue
		}
		if _, ok := wanted[label]; ok {
			return true
		}
	}
	return false
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			set[strings.ToLower(v)] = struct{}{}
		}
	}
	return set
}

func exactSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
