package model

import (
	"fmt"
	"time"
)

// ExpenseStatus represents the lifecycle state of an expense
type ExpenseStatus string

const (
	// ExpenseStatusPending is the initial state of every expense.
	ExpenseStatusPending ExpenseStatus = "pending"
	// ExpenseStatusApproved is the terminal state, reached once the proof
	// trust score crosses the approval threshold. There is no reversal path.
	ExpenseStatusApproved ExpenseStatus = "approved"
)

// ExpenseID identifies an expense within its owning organization.
// Indexes are 0-based and sequential in creation order.
type ExpenseID struct {
	OrgID uint64 `json:"org_id"`
	Index uint64 `json:"index"`
}

// String renders the id as "orgId/index" for log lines and API responses
func (id ExpenseID) String() string {
	return fmt.Sprintf("%d/%d", id.OrgID, id.Index)
}

// DocumentKey renders the id as "orgId-index". ArangoDB reserves "/" as the
// _id separator, so document keys use "-" instead of the display form.
func (id ExpenseID) DocumentKey() string {
	return fmt.Sprintf("%d-%d", id.OrgID, id.Index)
}

// Expense represents a claimed disbursement against an organization's funds.
// Description, vendor, and amount are fixed at creation; only Status moves.
type Expense struct {
	Key         string        `json:"_key,omitempty"` // Database key, "orgId-index"
	OrgID       uint64        `json:"org_id"`
	Index       uint64        `json:"index"`
	Description string        `json:"description"`
	Vendor      string        `json:"vendor"` // Vendor address, need not be registered
	Amount      int64         `json:"amount"` // Base units
	Status      ExpenseStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	ApprovedAt  *time.Time    `json:"approved_at,omitempty"`
}

// ID returns the composite expense identifier
func (e *Expense) ID() ExpenseID {
	return ExpenseID{OrgID: e.OrgID, Index: e.Index}
}

// NewExpense creates a pending expense
func NewExpense(orgID, index uint64, description, vendor string, amount int64) *Expense {
	return &Expense{
		OrgID:       orgID,
		Index:       index,
		Description: description,
		Vendor:      vendor,
		Amount:      amount,
		Status:      ExpenseStatusPending,
		CreatedAt:   time.Now(),
	}
}
