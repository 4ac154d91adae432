package ledger

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fundchain/fundchain-backend/model"
)

// CreateOrganization registers a new organization with the caller as head.
// Ids are sequential and 1-based; organizations are never deleted.
func (c *Core) CreateOrganization(ctx context.Context, caller, name, details string) (uint64, error) {
	if caller == "" {
		return 0, fmt.Errorf("%w: caller identity required", ErrInvalidInput)
	}
	if name == "" || details == "" {
		return 0, fmt.Errorf("%w: organization name and details are required", ErrInvalidInput)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	orgID := c.nextID
	rec := model.NewOrganization(orgID, name, details, caller)
	rec.Key = fmt.Sprintf("%d", orgID)
	if err := c.journal.SaveOrganization(ctx, rec); err != nil {
		return 0, fmt.Errorf("persisting organization %d: %w", orgID, err)
	}

	c.orgs[orgID] = &orgState{rec: *rec}
	c.nextID++

	c.logger.Info("organization created",
		zap.Uint64("org_id", orgID),
		zap.String("name", name),
		zap.String("head", caller))
	return orgID, nil
}

// Donate accepts a donation into the organization. The transfer acceptance
// and the total-raised increment happen under the organization lock, so no
// reader observes one without the other.
func (c *Core) Donate(ctx context.Context, caller string, orgID uint64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: donation amount must be positive", ErrInvalidInput)
	}
	org, ok := c.org(orgID)
	if !ok {
		return fmt.Errorf("%w: organization %d", ErrNotFound, orgID)
	}

	org.mu.Lock()
	defer org.mu.Unlock()

	updated := org.rec
	updated.TotalRaised += amount
	updated.UpdatedAt = time.Now()
	if err := c.journal.SaveOrganization(ctx, &updated); err != nil {
		return fmt.Errorf("persisting donation to organization %d: %w", orgID, err)
	}
	if err := c.transfers.CreditOrganization(ctx, orgID, amount); err != nil {
		// Roll the journal back to the pre-donation record. The credit never
		// happened, so the counter must not move.
		if rerr := c.journal.SaveOrganization(ctx, &org.rec); rerr != nil {
			c.logger.Error("journal rollback failed after rejected credit",
				zap.Uint64("org_id", orgID), zap.Error(rerr))
		}
		return fmt.Errorf("%w: crediting organization %d: %v", ErrTransferFailed, orgID, err)
	}

	org.rec.TotalRaised = updated.TotalRaised
	org.rec.UpdatedAt = updated.UpdatedAt

	c.logger.Info("donation recorded",
		zap.Uint64("org_id", orgID),
		zap.Int64("amount", amount),
		zap.String("donor", caller),
		zap.Int64("total_raised", org.rec.TotalRaised))
	return nil
}

// GetOrganization returns a copy of the organization record
func (c *Core) GetOrganization(orgID uint64) (model.Organization, error) {
	org, ok := c.org(orgID)
	if !ok {
		return model.Organization{}, fmt.Errorf("%w: organization %d", ErrNotFound, orgID)
	}
	org.mu.Lock()
	defer org.mu.Unlock()
	return org.rec, nil
}

// GetOrganizationCount returns the number of organizations created so far
func (c *Core) GetOrganizationCount() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nextID - 1
}

// GetOrganizations returns all organizations in id order
func (c *Core) GetOrganizations() []model.Organization {
	c.mu.RLock()
	count := c.nextID - 1
	states := make([]*orgState, 0, count)
	for id := uint64(1); id <= count; id++ {
		if st, ok := c.orgs[id]; ok {
			states = append(states, st)
		}
	}
	c.mu.RUnlock()

	out := make([]model.Organization, 0, len(states))
	for _, st := range states {
		st.mu.Lock()
		out = append(out, st.rec)
		st.mu.Unlock()
	}
	return out
}
