// Package graphql assembles the root query schema from the feature modules.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/ortelius/vulnview-backend/dataset"
	"github.com/ortelius/vulnview-backend/graphql/modules/dashboard"
	"github.com/ortelius/vulnview-backend/graphql/modules/vulnerabilities"
)

// CreateSchema mounts every module's query fields on the root query type
func CreateSchema(store *dataset.Store) (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range dashboard.GetQueryFields(store) {
		fields[name] = field
	}
	for name, field := range vulnerabilities.GetQueryFields(store) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
