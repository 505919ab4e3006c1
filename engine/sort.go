package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/ortelius/vulnview-backend/model"
)

// Sort returns a stably sorted shallow copy of the record sequence.
// An empty field leaves the input order unchanged. Records missing the
// sort field always land at the end, in ascending and descending order
// alike; direction only inverts the order of two comparable values.
func Sort(records []model.VulnerabilityRecord, field string, direction model.SortDirection) []model.VulnerabilityRecord {
	out := make([]model.VulnerabilityRecord, len(records))
	copy(out, records)
	if field == "" {
		return out
	}

	desc := direction == model.SortDescending
	sort.SliceStable(out, func(i, j int) bool {
		cmp, ordered := compareRecords(&out[i], &out[j], field)
		if !ordered {
			// Exactly one side is null: cmp already encodes nulls-last
			// and must not be inverted by direction.
			return cmp < 0
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// compareRecords orders a and b by the given field. The second return is
// false when one side has no value for the field; in that case cmp
// places the null side last regardless of direction.
func compareRecords(a, b *model.VulnerabilityRecord, field string) (cmp int, ordered bool) {
	switch field {
	case model.SortFieldRiskFactorsCount:
		return intCompare(len(a.RiskFactors), len(b.RiskFactors)), true
	case "severity":
		return intCompare(model.SeverityRank(a.Severity), model.SeverityRank(b.Severity)), true
	default:
		av, aok := a.FieldValue(field)
		bv, bok := b.FieldValue(field)
		switch {
		case !aok && !bok:
			return 0, true
		case !aok:
			return 1, false // a is null, sorts after b
		case !bok:
			return -1, false // b is null, sorts after a
		}
		return compareValues(av, bv), true
	}
}

// compareValues compares two non-null field values. Strings compare
// case-insensitively by ordinal order (no locale tables on the hot
// path); numbers numerically; timestamps chronologically.
func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return floatCompare(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1
			case av.After(bv):
				return 1
			}
			return 0
		}
	}
	return 0
}

func intCompare(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func floatCompare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
