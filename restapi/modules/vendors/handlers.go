// Package vendors provides REST handlers for vendor registration and lookup.
package vendors

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fundchain/fundchain-backend/internal/ledger"
	"github.com/fundchain/fundchain-backend/model"
	"github.com/fundchain/fundchain-backend/restapi/modules/auth"
	"github.com/fundchain/fundchain-backend/util"
)

// RegisterVendor handles POST /vendors. The attested caller address is the
// vendor identity; there is no separate vendor id.
func RegisterVendor(core *ledger.Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.RegisterVendorRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if err := core.RegisterVendor(c.Context(), auth.CallerAddress(c), req.Name, req.Details); err != nil {
			return c.Status(util.StatusForLedgerError(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
	}
}

// GetVendor handles GET /vendors/:address. An unknown address is a normal
// lookup miss, not an error: the response carries exists=false.
func GetVendor(core *ledger.Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		address := util.NormalizeAddress(c.Params("address"))
		if address == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Vendor address is required",
			})
		}

		vendor, ok := core.GetVendor(address)
		if !ok {
			return c.JSON(model.VendorResponse{Exists: false})
		}
		return c.JSON(model.VendorResponse{Exists: true, Vendor: &vendor})
	}
}
