// Package model defines the data structures for the FundChain ledger,
// including organizations, vendors, expenses, and proof records.
package model

import "time"

// Organization represents a fundraising organization in the system
type Organization struct {
	Key         string    `json:"_key,omitempty"` // Database key, stringified OrgID
	OrgID       uint64    `json:"org_id"`         // Sequential id, 1-based
	Name        string    `json:"name"`
	Details     string    `json:"details"`
	TotalRaised int64     `json:"total_raised"` // Monotonic accumulator, base units
	Head        string    `json:"head"`         // Identity authorized to raise expenses
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewOrganization creates an organization with a zeroed accumulator
func NewOrganization(orgID uint64, name, details, head string) *Organization {
	now := time.Now()
	return &Organization{
		OrgID:       orgID,
		Name:        name,
		Details:     details,
		TotalRaised: 0,
		Head:        head,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
