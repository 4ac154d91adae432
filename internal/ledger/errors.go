package ledger

import "errors"

// Error kinds surfaced by the ledger core. Handlers match these with
// errors.Is to choose HTTP status codes; the core never swallows them.
var (
	// ErrInvalidInput covers empty required strings and non-positive amounts.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound covers unknown organization, expense, or vendor ids.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists covers duplicate vendor registration.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnauthorized covers callers lacking the required role.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidState covers operations incompatible with the expense
	// lifecycle, e.g. re-approving or re-evidencing an approved expense.
	ErrInvalidState = errors.New("invalid state")
	// ErrTransferFailed covers rejected credits or payouts on the value
	// transfer ledger.
	ErrTransferFailed = errors.New("transfer failed")
)
