package model

import "time"

// TransferKind distinguishes money in from money out
type TransferKind string

const (
	// TransferKindCredit is a donation accepted into an organization.
	TransferKindCredit TransferKind = "credit"
	// TransferKindPayout is a release of funds to a vendor.
	TransferKindPayout TransferKind = "payout"
)

// Transfer is one movement of value on the settlement ledger. An
// organization's balance is the sum of its credits minus its payouts.
type Transfer struct {
	Key       string       `json:"_key,omitempty"`
	OrgID     uint64       `json:"org_id"`
	Kind      TransferKind `json:"kind"`
	Vendor    string       `json:"vendor,omitempty"` // Payouts only
	Amount    int64        `json:"amount"`
	CreatedAt time.Time    `json:"created_at"`
}
