package ledger

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fundchain/fundchain-backend/model"
)

// VoteResult reports the outcome of a verifyProof call
type VoteResult struct {
	Score  int64
	Status model.ExpenseStatus
	// Approved is true when this vote crossed the threshold and triggered
	// the transition.
	Approved bool
	// ReputationErr reports a failed reputation adjustment after a
	// successful approval, e.g. the vendor was never registered. The payout
	// and the status transition stand regardless.
	ReputationErr error
}

// SubmitProof attaches evidence to a pending expense, replacing any earlier
// hash. Only the expense's vendor or the organization head may submit.
// Replacing the evidence clears the vote set: prior consensus was about the
// old hash.
func (c *Core) SubmitProof(ctx context.Context, caller string, id model.ExpenseID, proofHash string) error {
	if proofHash == "" {
		return fmt.Errorf("%w: proof hash is required", ErrInvalidInput)
	}
	st, ok := c.expense(id)
	if !ok {
		return fmt.Errorf("%w: expense %s", ErrNotFound, id)
	}

	authorized, err := c.isVendorOrHead(caller, id)
	if err != nil {
		return err
	}
	if !authorized {
		return fmt.Errorf("%w: only the expense vendor or the organization head may submit proof", ErrUnauthorized)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.rec.Status != model.ExpenseStatusPending {
		return fmt.Errorf("%w: expense %s is already %s", ErrInvalidState, st.rec.Key, st.rec.Status)
	}

	updated := st.proof
	updated.ProofHash = proofHash
	updated.Votes = map[string]bool{}
	updated.SubmittedBy = caller
	updated.UpdatedAt = time.Now()
	if err := c.journal.SaveProof(ctx, &updated); err != nil {
		return fmt.Errorf("persisting proof for expense %s: %w", st.rec.Key, err)
	}

	st.proof = updated
	st.score = 0

	c.logger.Info("proof submitted",
		zap.String("expense", st.rec.Key),
		zap.String("submitter", caller),
		zap.String("proof_hash", proofHash))
	return nil
}

// VerifyProof records the caller's approve/reject vote on the expense's
// current proof and re-evaluates the approval threshold. A voter has at most
// one standing vote; voting again overwrites it. The vote upsert, threshold
// check, and transition run under the expense lock as one critical section,
// so two concurrent threshold-crossing votes cannot both trigger a payout.
func (c *Core) VerifyProof(ctx context.Context, caller string, id model.ExpenseID, approve bool) (VoteResult, error) {
	if caller == "" {
		return VoteResult{}, fmt.Errorf("%w: caller identity required", ErrInvalidInput)
	}
	st, ok := c.expense(id)
	if !ok {
		return VoteResult{}, fmt.Errorf("%w: expense %s", ErrNotFound, id)
	}

	if !c.cfg.AllowSelfVote {
		interested, err := c.isVendorOrHead(caller, id)
		if err != nil {
			return VoteResult{}, err
		}
		if interested {
			return VoteResult{}, fmt.Errorf("%w: self-interested votes are disabled", ErrUnauthorized)
		}
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.rec.Status != model.ExpenseStatusPending {
		return VoteResult{}, fmt.Errorf("%w: expense %s is already %s", ErrInvalidState, st.rec.Key, st.rec.Status)
	}

	// Upsert the vote and maintain the running score. An overwrite first
	// subtracts the old vote's contribution so the counter always matches a
	// full recount of the vote set.
	prev, had := st.proof.Votes[caller]
	score := st.score
	if had {
		score -= voteWeight(prev)
	}
	score += voteWeight(approve)

	updated := st.proof
	updated.Votes = make(map[string]bool, len(st.proof.Votes)+1)
	for voter, v := range st.proof.Votes {
		updated.Votes[voter] = v
	}
	updated.Votes[caller] = approve
	updated.UpdatedAt = time.Now()
	if err := c.journal.SaveProof(ctx, &updated); err != nil {
		return VoteResult{}, fmt.Errorf("persisting vote on expense %s: %w", st.rec.Key, err)
	}

	st.proof = updated
	st.score = score

	c.logger.Info("vote recorded",
		zap.String("expense", st.rec.Key),
		zap.String("voter", caller),
		zap.Bool("approve", approve),
		zap.Int64("score", score))

	result := VoteResult{Score: score, Status: st.rec.Status}
	if score < c.cfg.ApprovalThreshold {
		return result, nil
	}

	if err := c.transitionToApproved(ctx, st); err != nil {
		// The vote stands; the expense stays pending and a later vote
		// re-evaluates the threshold.
		return result, err
	}
	result.Status = st.rec.Status
	result.Approved = true

	if err := c.adjustReputation(ctx, st.rec.Vendor, c.cfg.ReputationDelta); err != nil {
		c.logger.Warn("reputation adjustment skipped",
			zap.String("expense", st.rec.Key),
			zap.String("vendor", st.rec.Vendor),
			zap.Error(err))
		result.ReputationErr = err
	}
	return result, nil
}

// GetTrustScore returns the current trust score for an expense
func (c *Core) GetTrustScore(id model.ExpenseID) (int64, error) {
	st, ok := c.expense(id)
	if !ok {
		return 0, fmt.Errorf("%w: expense %s", ErrNotFound, id)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.score, nil
}

// GetProof returns a copy of the expense's proof record, votes included
func (c *Core) GetProof(id model.ExpenseID) (model.ProofRecord, error) {
	st, ok := c.expense(id)
	if !ok {
		return model.ProofRecord{}, fmt.Errorf("%w: expense %s", ErrNotFound, id)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	rec := st.proof
	rec.Votes = make(map[string]bool, len(st.proof.Votes))
	for voter, v := range st.proof.Votes {
		rec.Votes[voter] = v
	}
	return rec, nil
}

// GetVendorSnapshot returns the profile of the vendor behind an expense.
// The second return is false when that vendor never registered.
func (c *Core) GetVendorSnapshot(id model.ExpenseID) (model.Vendor, bool, error) {
	st, ok := c.expense(id)
	if !ok {
		return model.Vendor{}, false, fmt.Errorf("%w: expense %s", ErrNotFound, id)
	}
	st.mu.Lock()
	vendor := st.rec.Vendor
	st.mu.Unlock()
	rec, registered := c.GetVendor(vendor)
	return rec, registered, nil
}

func voteWeight(approve bool) int64 {
	if approve {
		return 1
	}
	return -1
}
