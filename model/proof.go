package model

import "time"

// ProofRecord holds the current evidence hash for an expense and the votes
// cast against that hash. Submitting a new hash replaces the old one and
// discards the vote set: new evidence requires new consensus.
type ProofRecord struct {
	Key         string          `json:"_key,omitempty"` // Database key, "orgId-index"
	OrgID       uint64          `json:"org_id"`
	Index       uint64          `json:"index"`
	ProofHash   string          `json:"proof_hash"` // IPFS CID, may be empty
	Votes       map[string]bool `json:"votes"`      // Voter address -> approve
	SubmittedBy string          `json:"submitted_by,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewProofRecord creates the initial proof record for an expense
func NewProofRecord(id ExpenseID, proofHash, submittedBy string) *ProofRecord {
	return &ProofRecord{
		OrgID:       id.OrgID,
		Index:       id.Index,
		ProofHash:   proofHash,
		Votes:       map[string]bool{},
		SubmittedBy: submittedBy,
		UpdatedAt:   time.Now(),
	}
}

// Score computes the trust score from the full vote set. The ledger keeps a
// running counter as a cache; this recount is the authoritative definition.
func (p *ProofRecord) Score() int64 {
	var score int64
	for _, approve := range p.Votes {
		if approve {
			score++
		} else {
			score--
		}
	}
	return score
}
