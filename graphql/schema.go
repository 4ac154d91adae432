// Package graphql assembles the root GraphQL schema from the query modules.
package graphql

import (
	"github.com/graphql-go/graphql"

	funding "github.com/fundchain/fundchain-backend/graphql/modules/funding"
	"github.com/fundchain/fundchain-backend/internal/ledger"
)

// Schema is re-exported so callers don't import graphql-go directly
type Schema = graphql.Schema

// CreateSchema builds the read-only query schema over the ledger core
func CreateSchema(core *ledger.Core) (Schema, error) {
	fields := graphql.Fields{}
	for name, field := range funding.GetQueryFields(core) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: rootQuery,
	})
}
