// Package expenses provides REST handlers for expense creation and listing.
package expenses

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fundchain/fundchain-backend/internal/ledger"
	"github.com/fundchain/fundchain-backend/model"
	"github.com/fundchain/fundchain-backend/restapi/modules/auth"
	"github.com/fundchain/fundchain-backend/restapi/modules/orgs"
	"github.com/fundchain/fundchain-backend/util"
)

// ParseExpenseID reads the :id and :idx path parameters
func ParseExpenseID(c *fiber.Ctx) (model.ExpenseID, error) {
	orgID, err := orgs.ParseOrgID(c)
	if err != nil {
		return model.ExpenseID{}, err
	}
	index, err := strconv.ParseUint(c.Params("idx"), 10, 64)
	if err != nil {
		return model.ExpenseID{}, err
	}
	return model.ExpenseID{OrgID: orgID, Index: index}, nil
}

// CreateExpense handles POST /orgs/:id/expenses. Only the organization head
// is authorized; the core enforces that against the attested caller.
func CreateExpense(core *ledger.Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := orgs.ParseOrgID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid organization id",
			})
		}

		var req model.CreateExpenseRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		id, err := core.CreateExpense(c.Context(), auth.CallerAddress(c), orgID,
			req.Description, util.NormalizeAddress(req.Vendor), req.Amount, req.ProofHash)
		if err != nil {
			return c.Status(util.StatusForLedgerError(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(model.CreateExpenseResponse{
			Success: true,
			OrgID:   id.OrgID,
			Index:   id.Index,
		})
	}
}

// ListExpenses handles GET /orgs/:id/expenses
func ListExpenses(core *ledger.Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := orgs.ParseOrgID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid organization id",
			})
		}

		list, err := core.GetExpenses(orgID)
		if err != nil {
			return c.Status(util.StatusForLedgerError(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(list)
	}
}
