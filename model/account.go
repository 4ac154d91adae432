package model

import "time"

// Account binds an address identity to a local credential. The ledger core
// only ever sees the address; accounts exist so the API layer can attest
// which address a caller controls.
type Account struct {
	Key          string    `json:"_key,omitempty"` // Database key, the address
	Address      string    `json:"address"`
	DisplayName  string    `json:"display_name,omitempty"`
	PasswordHash string    `json:"password_hash,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewAccount creates a non-admin account
func NewAccount(address, displayName string) *Account {
	now := time.Now()
	return &Account{
		Address:     address,
		DisplayName: displayName,
		IsAdmin:     false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
