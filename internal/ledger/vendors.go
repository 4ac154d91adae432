package ledger

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fundchain/fundchain-backend/model"
)

// RegisterVendor registers the caller as a vendor. Re-registration is
// rejected, not silently accepted: accepting it would let a vendor reset
// its reputation history.
func (c *Core) RegisterVendor(ctx context.Context, caller, name, details string) error {
	if caller == "" || name == "" {
		return fmt.Errorf("%w: vendor address and name are required", ErrInvalidInput)
	}

	c.vmu.Lock()
	defer c.vmu.Unlock()

	if _, ok := c.vendors[caller]; ok {
		return fmt.Errorf("%w: vendor %s", ErrAlreadyExists, caller)
	}

	rec := model.NewVendor(caller, name, details)
	rec.Key = caller
	if err := c.journal.SaveVendor(ctx, rec); err != nil {
		return fmt.Errorf("persisting vendor %s: %w", caller, err)
	}
	c.vendors[caller] = &vendorState{rec: *rec}

	c.logger.Info("vendor registered",
		zap.String("address", caller),
		zap.String("name", name))
	return nil
}

// GetVendor returns the vendor record for an address. The second return
// distinguishes "never registered" from a vendor with zero reputation.
func (c *Core) GetVendor(address string) (model.Vendor, bool) {
	c.vmu.RLock()
	st, ok := c.vendors[address]
	c.vmu.RUnlock()
	if !ok {
		return model.Vendor{}, false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.rec, true
}

// adjustReputation moves a vendor's reputation by delta. Internal: only the
// proof trust engine calls this, on approval events. An unregistered vendor
// cannot accrue reputation; that is a valid terminal outcome of an approval,
// reported to the caller but never reversing the payout.
func (c *Core) adjustReputation(ctx context.Context, address string, delta int64) error {
	c.vmu.RLock()
	st, ok := c.vendors[address]
	c.vmu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: vendor %s is not registered", ErrNotFound, address)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	updated := st.rec
	updated.Reputation += delta
	updated.UpdatedAt = time.Now()
	if err := c.journal.SaveVendor(ctx, &updated); err != nil {
		return fmt.Errorf("persisting reputation for vendor %s: %w", address, err)
	}
	st.rec = updated

	c.logger.Info("vendor reputation adjusted",
		zap.String("address", address),
		zap.Int64("delta", delta),
		zap.Int64("reputation", st.rec.Reputation))
	return nil
}
