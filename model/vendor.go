package model

import "time"

// Vendor represents a registered vendor keyed by its address identity.
// Reputation starts at the configured baseline and is only ever adjusted
// by expense approvals tied to this vendor.
type Vendor struct {
	Key        string    `json:"_key,omitempty"` // Database key, the address
	Address    string    `json:"address"`
	Name       string    `json:"name"`
	Details    string    `json:"details"`
	Reputation int64     `json:"reputation"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewVendor creates a vendor with baseline reputation
func NewVendor(address, name, details string) *Vendor {
	now := time.Now()
	return &Vendor{
		Address:    address,
		Name:       name,
		Details:    details,
		Reputation: 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
