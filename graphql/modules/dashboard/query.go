// Package dashboard defines the GraphQL queries for the dashboard.
package dashboard

import (
	"github.com/graphql-go/graphql"

	"github.com/ortelius/vulnview-backend/dataset"
)

// GetQueryFields returns the dashboard queries to be mounted in the root schema
func GetQueryFields(store *dataset.Store) graphql.Fields {
	return graphql.Fields{
		// Section 1: Top Cards (Overview)
		"dashboardOverview": &graphql.Field{
			Type: DashboardOverviewType,
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveOverview(store)
			},
		},
		// Section 2: Charts (Severity)
		"dashboardSeverity": &graphql.Field{
			Type: SeverityDistributionType,
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveSeverityDistribution(store)
			},
		},
		// Section 3: Charts (Risk Factors)
		"dashboardRiskFactors": &graphql.Field{
			Type: graphql.NewList(RiskFactorFrequencyType),
			Args: graphql.FieldConfigArgument{
				"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				limit := p.Args["limit"].(int)
				return ResolveRiskFactors(store, limit)
			},
		},
		// Section 4: Assessment outcome split
		"dashboardKaiStatus": &graphql.Field{
			Type: KaiStatusBreakdownType,
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveKaiStatus(store)
			},
		},
	}
}
