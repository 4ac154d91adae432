package util

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fundchain/fundchain-backend/internal/ledger"
)

// StatusForLedgerError maps a ledger error kind to an HTTP status code.
// Handlers use this so every module reports the same codes for the same
// failures.
func StatusForLedgerError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ledger.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, ledger.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, ledger.ErrInvalidState):
		return fiber.StatusConflict
	case errors.Is(err, ledger.ErrTransferFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
