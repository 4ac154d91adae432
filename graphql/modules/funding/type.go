// Package funding defines the GraphQL types for the funding ledger.
package funding

import "github.com/graphql-go/graphql"

// OrganizationType mirrors model.Organization for the read API
var OrganizationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Organization",
	Fields: graphql.Fields{
		"org_id":       &graphql.Field{Type: graphql.Int},
		"name":         &graphql.Field{Type: graphql.String},
		"details":      &graphql.Field{Type: graphql.String},
		"total_raised": &graphql.Field{Type: graphql.Float},
		"head":         &graphql.Field{Type: graphql.String},
	},
})

// ExpenseType mirrors model.Expense plus its current trust score
var ExpenseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Expense",
	Fields: graphql.Fields{
		"org_id":      &graphql.Field{Type: graphql.Int},
		"index":       &graphql.Field{Type: graphql.Int},
		"description": &graphql.Field{Type: graphql.String},
		"vendor":      &graphql.Field{Type: graphql.String},
		"amount":      &graphql.Field{Type: graphql.Float},
		"status":      &graphql.Field{Type: graphql.String},
		"proof_hash":  &graphql.Field{Type: graphql.String},
		"trust_score": &graphql.Field{Type: graphql.Int},
		"vote_count":  &graphql.Field{Type: graphql.Int},
	},
})

// VendorType mirrors model.Vendor; exists distinguishes lookup misses
var VendorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Vendor",
	Fields: graphql.Fields{
		"address":    &graphql.Field{Type: graphql.String},
		"name":       &graphql.Field{Type: graphql.String},
		"details":    &graphql.Field{Type: graphql.String},
		"reputation": &graphql.Field{Type: graphql.Int},
		"exists":     &graphql.Field{Type: graphql.Boolean},
	},
})

// FundingOverviewType is the dashboard aggregate
var FundingOverviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "FundingOverview",
	Fields: graphql.Fields{
		"total_organizations":   &graphql.Field{Type: graphql.Int},
		"total_raised":          &graphql.Field{Type: graphql.Float},
		"total_expenses":        &graphql.Field{Type: graphql.Int},
		"pending_expenses":      &graphql.Field{Type: graphql.Int},
		"approved_expenses":     &graphql.Field{Type: graphql.Int},
		"total_approved_amount": &graphql.Field{Type: graphql.Float},
	},
})
