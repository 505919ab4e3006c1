// Package vulnerabilities defines the GraphQL queries for the record list view.
package vulnerabilities

import (
	"github.com/graphql-go/graphql"

	"github.com/ortelius/vulnview-backend/dataset"
	"github.com/ortelius/vulnview-backend/model"
)

// GetQueryFields returns the list queries to be mounted in the root schema
func GetQueryFields(store *dataset.Store) graphql.Fields {
	return graphql.Fields{
		"vulnerabilities": &graphql.Field{
			Type: VulnerabilityPageType,
			Args: graphql.FieldConfigArgument{
				"search":          &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"severities":      &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				"riskFactors":     &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				"excludeStatuses": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				"sortField":       &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"sortDirection":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "asc"},
				"limit":           &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 100},
				"offset":          &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				params := ListParams{
					Criteria: model.FilterCriteria{
						Search:          p.Args["search"].(string),
						Severities:      stringList(p.Args["severities"]),
						RiskFactors:     stringList(p.Args["riskFactors"]),
						ExcludeStatuses: stringList(p.Args["excludeStatuses"]),
					},
					SortField:     p.Args["sortField"].(string),
					SortDirection: model.ParseSortDirection(p.Args["sortDirection"].(string)),
					Limit:         p.Args["limit"].(int),
					Offset:        p.Args["offset"].(int),
				}
				return ResolveVulnerabilities(store, params)
			},
		},
	}
}

func stringList(arg interface{}) []string {
	raw, ok := arg.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, el := range raw {
		if s, ok := el.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
