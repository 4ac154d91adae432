// Package orgs provides REST handlers for organization management and
// donations.
package orgs

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	funding "github.com/fundchain/fundchain-backend/events/modules/funding"
	"github.com/fundchain/fundchain-backend/internal/ledger"
	"github.com/fundchain/fundchain-backend/model"
	"github.com/fundchain/fundchain-backend/restapi/modules/auth"
	"github.com/fundchain/fundchain-backend/util"
)

// ParseOrgID reads the :id path parameter
func ParseOrgID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

// CreateOrganization handles POST /orgs. The attested caller becomes head.
func CreateOrganization(core *ledger.Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.CreateOrganizationRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		orgID, err := core.CreateOrganization(c.Context(), auth.CallerAddress(c), req.Name, req.Details)
		if err != nil {
			return c.Status(util.StatusForLedgerError(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(model.CreateOrganizationResponse{
			Success: true,
			OrgID:   orgID,
		})
	}
}

// Donate handles POST /orgs/:id/donations
func Donate(core *ledger.Core, producer *funding.Producer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := ParseOrgID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid organization id",
			})
		}

		var req model.DonationRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		donor := auth.CallerAddress(c)
		if err := core.Donate(c.Context(), donor, orgID, req.Amount); err != nil {
			return c.Status(util.StatusForLedgerError(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if producer != nil {
			org, getErr := core.GetOrganization(orgID)
			if getErr == nil {
				if pubErr := producer.PublishDonationRecorded(c.Context(), orgID, donor, req.Amount, org.TotalRaised); pubErr != nil {
					log.Printf("Failed to publish donation.recorded for org %d: %v", orgID, pubErr)
				}
			}
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// GetOrganization handles GET /orgs/:id
func GetOrganization(core *ledger.Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := ParseOrgID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid organization id",
			})
		}

		org, err := core.GetOrganization(orgID)
		if err != nil {
			return c.Status(util.StatusForLedgerError(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(org)
	}
}

// ListOrganizations handles GET /orgs
func ListOrganizations(core *ledger.Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(core.GetOrganizations())
	}
}

// GetOrganizationCount handles GET /orgs/count
func GetOrganizationCount(core *ledger.Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"count": core.GetOrganizationCount()})
	}
}
