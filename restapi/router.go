// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/ortelius/vulnview-backend/dataset"
	"github.com/ortelius/vulnview-backend/restapi/modules/vulnerabilities"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint
func SetupRoutes(app *fiber.App, store *dataset.Store, schema graphql.Schema) {
	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route - Mounted within the api group to inherit path prefixes
	api.Post("/graphql", GraphQLHandler(schema))

	// Record list and aggregates
	api.Get("/vulnerabilities", vulnerabilities.List(store))
	api.Get("/metrics/summary", vulnerabilities.MetricsSummary(store))

	// Comparison selection, keyed by record id
	api.Get("/compare", vulnerabilities.CompareList(store))
	api.Post("/compare/:id", vulnerabilities.CompareAdd(store))
	api.Delete("/compare/:id", vulnerabilities.CompareRemove(store))
}
