// Package funding defines the GraphQL queries for the funding ledger.
package funding

import (
	"github.com/graphql-go/graphql"

	"github.com/fundchain/fundchain-backend/internal/ledger"
)

// GetQueryFields returns the funding queries to be mounted in the root schema
func GetQueryFields(core *ledger.Core) graphql.Fields {
	return graphql.Fields{
		"organizations": &graphql.Field{
			Type: graphql.NewList(OrganizationType),
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveOrganizations(core)
			},
		},
		"organization": &graphql.Field{
			Type: OrganizationType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id := p.Args["id"].(int)
				return ResolveOrganization(core, uint64(id))
			},
		},
		"organizationCount": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return int(core.GetOrganizationCount()), nil
			},
		},
		"expenses": &graphql.Field{
			Type: graphql.NewList(ExpenseType),
			Args: graphql.FieldConfigArgument{
				"orgId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				orgID := p.Args["orgId"].(int)
				return ResolveExpenses(core, uint64(orgID))
			},
		},
		"trustScore": &graphql.Field{
			Type: graphql.Int,
			Args: graphql.FieldConfigArgument{
				"orgId":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				"expenseId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				orgID := p.Args["orgId"].(int)
				index := p.Args["expenseId"].(int)
				return ResolveTrustScore(core, uint64(orgID), uint64(index))
			},
		},
		"vendor": &graphql.Field{
			Type: VendorType,
			Args: graphql.FieldConfigArgument{
				"address": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				address := p.Args["address"].(string)
				return ResolveVendor(core, address)
			},
		},
		"fundingOverview": &graphql.Field{
			Type: FundingOverviewType,
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveFundingOverview(core)
			},
		},
	}
}
