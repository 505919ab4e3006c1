// Package vulnerabilities defines the GraphQL types for the record list view.
package vulnerabilities

import (
	"github.com/graphql-go/graphql"
)

// VulnerabilityType represents one normalized dataset row
var VulnerabilityType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Vulnerability",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.String},
		"package":     &graphql.Field{Type: graphql.String},
		"severity":    &graphql.Field{Type: graphql.String},
		"cvss":        &graphql.Field{Type: graphql.Float},
		"version":     &graphql.Field{Type: graphql.String},
		"kaiStatus":   &graphql.Field{Type: graphql.String},
		"riskFactors": &graphql.Field{Type: graphql.NewList(graphql.String)},
		"cve":         &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"timestamp":   &graphql.Field{Type: graphql.String},
		"groupName":   &graphql.Field{Type: graphql.String},
		"imageName":   &graphql.Field{Type: graphql.String},
	},
})

// VulnerabilityPageType wraps a list slice with its counts
var VulnerabilityPageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "VulnerabilityPage",
	Fields: graphql.Fields{
		"items":   &graphql.Field{Type: graphql.NewList(VulnerabilityType)},
		"matched": &graphql.Field{Type: graphql.Int},
		"total":   &graphql.Field{Type: graphql.Int},
	},
})
