package ledger

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fundchain/fundchain-backend/model"
)

// CreateExpense raises a pending expense against the organization's funds.
// Only the organization head may create expenses. The vendor address need
// not be registered: unregistered vendors can be paid, they just cannot
// accrue reputation. The initial proof hash may be empty.
func (c *Core) CreateExpense(ctx context.Context, caller string, orgID uint64, description, vendor string, amount int64, initialProofHash string) (model.ExpenseID, error) {
	if vendor == "" {
		return model.ExpenseID{}, fmt.Errorf("%w: vendor address is required", ErrInvalidInput)
	}
	if amount <= 0 {
		return model.ExpenseID{}, fmt.Errorf("%w: expense amount must be positive", ErrInvalidInput)
	}
	org, ok := c.org(orgID)
	if !ok {
		return model.ExpenseID{}, fmt.Errorf("%w: organization %d", ErrNotFound, orgID)
	}

	org.mu.Lock()
	defer org.mu.Unlock()

	if org.rec.Head != caller {
		return model.ExpenseID{}, fmt.Errorf("%w: only the organization head may create expenses", ErrUnauthorized)
	}

	index := uint64(len(org.expenses))
	rec := model.NewExpense(orgID, index, description, vendor, amount)
	rec.Key = rec.ID().DocumentKey()
	proof := model.NewProofRecord(rec.ID(), initialProofHash, caller)
	proof.Key = rec.Key

	if err := c.journal.SaveExpense(ctx, rec); err != nil {
		return model.ExpenseID{}, fmt.Errorf("persisting expense %s: %w", rec.Key, err)
	}
	if err := c.journal.SaveProof(ctx, proof); err != nil {
		return model.ExpenseID{}, fmt.Errorf("persisting proof for expense %s: %w", rec.Key, err)
	}

	org.expenses = append(org.expenses, &expenseState{rec: *rec, proof: *proof})

	c.logger.Info("expense created",
		zap.Uint64("org_id", orgID),
		zap.Uint64("index", index),
		zap.String("vendor", vendor),
		zap.Int64("amount", amount))
	return rec.ID(), nil
}

// GetExpenses returns the organization's expenses in creation order
func (c *Core) GetExpenses(orgID uint64) ([]model.Expense, error) {
	org, ok := c.org(orgID)
	if !ok {
		return nil, fmt.Errorf("%w: organization %d", ErrNotFound, orgID)
	}

	org.mu.Lock()
	states := make([]*expenseState, len(org.expenses))
	copy(states, org.expenses)
	org.mu.Unlock()

	out := make([]model.Expense, 0, len(states))
	for _, st := range states {
		if st == nil {
			continue
		}
		st.mu.Lock()
		out = append(out, st.rec)
		st.mu.Unlock()
	}
	return out, nil
}

// transitionToApproved flips a pending expense to approved, pays the vendor,
// and adjusts reputation. Callers must hold the expense lock. Calling it on
// an approved expense is a logic error and fails with ErrInvalidState: an
// idempotent no-op here would hide a double payout.
//
// Order matters: the payout happens first, so a rejected transfer aborts the
// transition with the expense still pending. A journal failure after the
// payout is logged and the transition committed anyway, because the value
// has already moved.
func (c *Core) transitionToApproved(ctx context.Context, st *expenseState) error {
	if st.rec.Status != model.ExpenseStatusPending {
		return fmt.Errorf("%w: expense %s is already %s", ErrInvalidState, st.rec.Key, st.rec.Status)
	}

	if err := c.transfers.PayVendor(ctx, st.rec.OrgID, st.rec.Vendor, st.rec.Amount); err != nil {
		return fmt.Errorf("%w: paying vendor %s for expense %s: %v", ErrTransferFailed, st.rec.Vendor, st.rec.Key, err)
	}

	now := time.Now()
	st.rec.Status = model.ExpenseStatusApproved
	st.rec.ApprovedAt = &now
	if err := c.journal.SaveExpense(ctx, &st.rec); err != nil {
		c.logger.Error("journal write failed after payout; expense approved in memory only",
			zap.String("expense", st.rec.Key), zap.Error(err))
	}

	c.logger.Info("expense approved",
		zap.String("expense", st.rec.Key),
		zap.String("vendor", st.rec.Vendor),
		zap.Int64("amount", st.rec.Amount))
	return nil
}
