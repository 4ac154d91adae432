// Package proofs provides REST handlers for proof submission and trust
// voting.
package proofs

import (
	"log"

	"github.com/gofiber/fiber/v2"

	funding "github.com/fundchain/fundchain-backend/events/modules/funding"
	"github.com/fundchain/fundchain-backend/internal/ledger"
	"github.com/fundchain/fundchain-backend/model"
	"github.com/fundchain/fundchain-backend/restapi/modules/auth"
	"github.com/fundchain/fundchain-backend/restapi/modules/expenses"
	"github.com/fundchain/fundchain-backend/util"
)

// SubmitProof handles POST /orgs/:id/expenses/:idx/proof
func SubmitProof(core *ledger.Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := expenses.ParseExpenseID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid expense id",
			})
		}

		var req model.SubmitProofRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if err := core.SubmitProof(c.Context(), auth.CallerAddress(c), id, req.ProofHash); err != nil {
			return c.Status(util.StatusForLedgerError(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// VerifyProof handles POST /orgs/:id/expenses/:idx/votes. Any authenticated
// identity may vote; the response always carries the updated score.
func VerifyProof(core *ledger.Core, producer *funding.Producer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := expenses.ParseExpenseID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid expense id",
			})
		}

		var req model.VoteRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		res, err := core.VerifyProof(c.Context(), auth.CallerAddress(c), id, req.Approve)
		if err != nil {
			return c.Status(util.StatusForLedgerError(err)).JSON(fiber.Map{
				"error": err.Error(),
				"score": res.Score,
			})
		}

		if res.Approved && producer != nil {
			list, listErr := core.GetExpenses(id.OrgID)
			if listErr == nil && id.Index < uint64(len(list)) {
				expense := list[id.Index]
				if pubErr := producer.PublishExpenseApproved(c.Context(), id.OrgID, id.Index,
					expense.Vendor, expense.Amount, res.Score); pubErr != nil {
					log.Printf("Failed to publish expense.approved for %s: %v", id, pubErr)
				}
			}
		}
		if res.ReputationErr != nil {
			log.Printf("Reputation adjustment skipped for expense %s: %v", id, res.ReputationErr)
		}

		return c.JSON(model.VoteResponse{
			Success:  true,
			Score:    res.Score,
			Status:   res.Status,
			Approved: res.Approved,
		})
	}
}

// GetTrustScore handles GET /orgs/:id/expenses/:idx/trust-score
func GetTrustScore(core *ledger.Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := expenses.ParseExpenseID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid expense id",
			})
		}

		score, err := core.GetTrustScore(id)
		if err != nil {
			return c.Status(util.StatusForLedgerError(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		proof, err := core.GetProof(id)
		if err != nil {
			return c.Status(util.StatusForLedgerError(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(model.TrustScoreResponse{
			OrgID: id.OrgID,
			Index: id.Index,
			Score: score,
			Votes: len(proof.Votes),
		})
	}
}

// GetVendorSnapshot handles GET /orgs/:id/expenses/:idx/vendor, the profile
// shown next to an expense's proof
func GetVendorSnapshot(core *ledger.Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := expenses.ParseExpenseID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid expense id",
			})
		}

		vendor, registered, err := core.GetVendorSnapshot(id)
		if err != nil {
			return c.Status(util.StatusForLedgerError(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if !registered {
			return c.JSON(model.VendorResponse{Exists: false})
		}
		return c.JSON(model.VendorResponse{Exists: true, Vendor: &vendor})
	}
}
