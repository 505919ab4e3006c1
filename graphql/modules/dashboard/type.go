// Package dashboard defines the GraphQL types for the dataset dashboard.
package dashboard

import (
	"github.com/graphql-go/graphql"
)

// DashboardOverviewType represents the high-level metrics for the top cards
var DashboardOverviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DashboardOverview",
	Fields: graphql.Fields{
		"total":          &graphql.Field{Type: graphql.Int},
		"packages":       &graphql.Field{Type: graphql.Int},
		"with_severity":  &graphql.Field{Type: graphql.Int},
		"no_risk_tagged": &graphql.Field{Type: graphql.Int},
	},
})

// SeverityDistributionType represents the data for the pie/bar charts
var SeverityDistributionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SeverityDistribution",
	Fields: graphql.Fields{
		"critical": &graphql.Field{Type: graphql.Int},
		"high":     &graphql.Field{Type: graphql.Int},
		"medium":   &graphql.Field{Type: graphql.Int},
		"low":      &graphql.Field{Type: graphql.Int},
	},
})

// RiskFactorFrequencyType represents one bar of the risk-factor chart
var RiskFactorFrequencyType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RiskFactorFrequency",
	Fields: graphql.Fields{
		"label": &graphql.Field{Type: graphql.String},
		"count": &graphql.Field{Type: graphql.Int},
	},
})

// KaiStatusBreakdownType partitions records by assessment outcome
var KaiStatusBreakdownType = graphql.NewObject(graphql.ObjectConfig{
	Name: "KaiStatusBreakdown",
	Fields: graphql.Fields{
		"invalid_norisk":    &graphql.Field{Type: graphql.Int},
		"ai_invalid_norisk": &graphql.Field{Type: graphql.Int},
		"other":             &graphql.Field{Type: graphql.Int},
	},
})
