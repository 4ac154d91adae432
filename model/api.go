// Package model - API types for requests and responses
package model

// CreateOrganizationRequest is the body for POST /orgs
type CreateOrganizationRequest struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

// CreateOrganizationResponse returns the allocated organization id
type CreateOrganizationResponse struct {
	Success bool   `json:"success"`
	OrgID   uint64 `json:"org_id"`
}

// DonationRequest is the body for POST /orgs/:id/donations
type DonationRequest struct {
	Amount int64 `json:"amount"`
}

// RegisterVendorRequest is the body for POST /vendors
type RegisterVendorRequest struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

// CreateExpenseRequest is the body for POST /orgs/:id/expenses
type CreateExpenseRequest struct {
	Description string `json:"description"`
	Vendor      string `json:"vendor"`
	Amount      int64  `json:"amount"`
	ProofHash   string `json:"proof_hash,omitempty"`
}

// CreateExpenseResponse returns the allocated expense index
type CreateExpenseResponse struct {
	Success bool   `json:"success"`
	OrgID   uint64 `json:"org_id"`
	Index   uint64 `json:"index"`
}

// SubmitProofRequest is the body for POST /orgs/:id/expenses/:idx/proof
type SubmitProofRequest struct {
	ProofHash string `json:"proof_hash"`
}

// VoteRequest is the body for POST /orgs/:id/expenses/:idx/votes
type VoteRequest struct {
	Approve bool `json:"approve"`
}

// VoteResponse returns the trust score after the vote was applied
type VoteResponse struct {
	Success  bool          `json:"success"`
	Score    int64         `json:"score"`
	Status   ExpenseStatus `json:"status"`
	Approved bool          `json:"approved"` // True if this vote triggered the transition
}

// TrustScoreResponse is the body for GET /orgs/:id/expenses/:idx/trust-score
type TrustScoreResponse struct {
	OrgID uint64 `json:"org_id"`
	Index uint64 `json:"index"`
	Score int64  `json:"score"`
	Votes int    `json:"votes"`
}

// VendorResponse wraps a vendor lookup; Exists distinguishes "never
// registered" from a registered vendor with zero reputation.
type VendorResponse struct {
	Exists bool    `json:"exists"`
	Vendor *Vendor `json:"vendor,omitempty"`
}
