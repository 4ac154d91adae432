// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/fundchain/fundchain-backend/config"
	"github.com/fundchain/fundchain-backend/database"
	funding "github.com/fundchain/fundchain-backend/events/modules/funding"
	"github.com/fundchain/fundchain-backend/internal/ledger"
	"github.com/fundchain/fundchain-backend/restapi/modules/auth"
	"github.com/fundchain/fundchain-backend/restapi/modules/expenses"
	"github.com/fundchain/fundchain-backend/restapi/modules/orgs"
	"github.com/fundchain/fundchain-backend/restapi/modules/proofs"
	"github.com/fundchain/fundchain-backend/restapi/modules/vendors"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
// CORS is handled globally in internal/api/fiber.go.
func SetupRoutes(app *fiber.App, core *ledger.Core, db database.DBConnection,
	producer *funding.Producer, schema graphql.Schema, adminCfg config.AdminConfig) {

	// Background initialization tasks
	go func() {
		if err := auth.BootstrapAdmin(db, adminCfg); err != nil {
			log.Printf("WARNING: Failed to bootstrap admin: %v", err)
		}
	}()

	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route - Mounted within the api group to inherit path prefixes
	api.Post("/graphql", auth.OptionalIdentity, GraphQLHandler(schema))

	// Auth Routes
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", auth.Signup(db))
	authGroup.Post("/login", auth.Login(db))
	authGroup.Post("/logout", auth.Logout())
	authGroup.Get("/me", auth.OptionalIdentity, auth.Me(db))
	authGroup.Post("/refresh", auth.RefreshToken())

	// Organizations
	api.Post("/orgs", auth.RequireIdentity, orgs.CreateOrganization(core))
	api.Get("/orgs", orgs.ListOrganizations(core))
	api.Get("/orgs/count", orgs.GetOrganizationCount(core))
	api.Get("/orgs/:id", orgs.GetOrganization(core))
	api.Post("/orgs/:id/donations", auth.RequireIdentity, orgs.Donate(core, producer))

	// Vendors
	api.Post("/vendors", auth.RequireIdentity, vendors.RegisterVendor(core))
	api.Get("/vendors/:address", vendors.GetVendor(core))

	// Expenses
	api.Post("/orgs/:id/expenses", auth.RequireIdentity, expenses.CreateExpense(core))
	api.Get("/orgs/:id/expenses", expenses.ListExpenses(core))

	// Proofs & trust voting
	api.Post("/orgs/:id/expenses/:idx/proof", auth.RequireIdentity, proofs.SubmitProof(core))
	api.Post("/orgs/:id/expenses/:idx/votes", auth.RequireIdentity, proofs.VerifyProof(core, producer))
	api.Get("/orgs/:id/expenses/:idx/trust-score", proofs.GetTrustScore(core))
	api.Get("/orgs/:id/expenses/:idx/vendor", proofs.GetVendorSnapshot(core))

	log.Println("API routes initialized successfully")
}
