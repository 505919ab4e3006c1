// Package vulnerabilities provides the REST handlers for the record list,
// the session metrics, and the comparison selection.
package vulnerabilities

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ortelius/vulnview-backend/dataset"
	"github.com/ortelius/vulnview-backend/engine"
	"github.com/ortelius/vulnview-backend/model"
)

// ListResponse is the payload of GET /vulnerabilities
type ListResponse struct {
	Items   []model.VulnerabilityRecord `json:"items"`
	Matched int                         `json:"matched"`
	Total   int                         `json:"total"`
	Busy    bool                        `json:"busy"`
}

// List returns a filtered and sorted page over the base dataset.
// Filter and sort run as pure per-request passes; the shared base is
// read-only.
func List(store *dataset.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		base := store.Base()
		if base == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "dataset not loaded",
			})
		}

		criteria := model.FilterCriteria{
			Search:          c.Query("search"),
			Severities:      commaList(c.Query("severities")),
			RiskFactors:     commaList(c.Query("riskFactors")),
			ExcludeStatuses: commaList(c.Query("excludeStatuses")),
		}
		sortField := c.Query("sortField")
		direction := model.ParseSortDirection(c.Query("sortDirection"))
		limit := c.QueryInt("limit", 100)
		offset := c.QueryInt("offset", 0)

		matched := engine.Filter(base, criteria)
		sorted := engine.Sort(matched, sortField, direction)

		start := offset
		if start < 0 {
			start = 0
		}
		if start > len(sorted) {
			start = len(sorted)
		}
		end := len(sorted)
		if limit > 0 && start+limit < end {
			end = start + limit
		}

		return c.JSON(ListResponse{
			Items:   sorted[start:end],
			Matched: len(matched),
			Total:   len(base),
			Busy:    store.Busy(),
		})
	}
}

// MetricsSummary returns the session-cached aggregate metrics
func MetricsSummary(store *dataset.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metrics, err := store.Metrics()
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "dataset not loaded",
			})
		}
		return c.JSON(metrics)
	}
}

// CompareList returns the records currently in the comparison selection
func CompareList(store *dataset.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"items": store.CompareSelection(),
		})
	}
}

// CompareAdd adds a record to the comparison selection by id
func CompareAdd(store *dataset.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !store.CompareAdd(id) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "unknown record id",
			})
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// CompareRemove removes a record from the comparison selection by id
func CompareRemove(store *dataset.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store.CompareRemove(c.Params("id"))
		return c.JSON(fiber.Map{"success": true})
	}
}

func commaList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
