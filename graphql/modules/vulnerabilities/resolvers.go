// Package vulnerabilities implements the resolvers for the record list view.
package vulnerabilities

import (
	"time"

	"github.com/ortelius/vulnview-backend/dataset"
	"github.com/ortelius/vulnview-backend/engine"
	"github.com/ortelius/vulnview-backend/model"
)

// ListParams carries the filter/sort/paging arguments of one list query
type ListParams struct {
	Criteria      model.FilterCriteria
	SortField     string
	SortDirection model.SortDirection
	Limit         int
	Offset        int
}

// ResolveVulnerabilities computes a filtered and sorted page over the
// base dataset. Filtering and sorting are pure passes; the base is
// never mutated.
func ResolveVulnerabilities(store *dataset.Store, params ListParams) (interface{}, error) {
	base := store.Base()
	if base == nil {
		return nil, dataset.ErrNotLoaded
	}

	matched := engine.Filter(base, params.Criteria)
	sorted := engine.Sort(matched, params.SortField, params.SortDirection)

	start := params.Offset
	if start > len(sorted) {
		start = len(sorted)
	}
	end := len(sorted)
	if params.Limit > 0 && start+params.Limit < end {
		end = start + params.Limit
	}

	items := make([]map[string]interface{}, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, recordToMap(&sorted[i]))
	}

	return map[string]interface{}{
		"items":   items,
		"matched": len(matched),
		"total":   len(base),
	}, nil
}

func recordToMap(rec *model.VulnerabilityRecord) map[string]interface{} {
	out := map[string]interface{}{
		"id":          rec.ID,
		"package":     rec.Package,
		"severity":    rec.Severity,
		"version":     rec.Version,
		"kaiStatus":   rec.KaiStatus,
		"riskFactors": rec.RiskFactors,
		"cve":         rec.Cve,
		"description": rec.Description,
		"groupName":   rec.GroupName,
		"imageName":   rec.ImageName,
	}
	if rec.Cvss != nil {
		out["cvss"] = *rec.Cvss
	}
	if rec.Timestamp != nil {
		out["timestamp"] = rec.Timestamp.Format(time.RFC3339)
	}
	return out
}
