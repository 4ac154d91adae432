package ledger

import (
	"fmt"

	"github.com/fundchain/fundchain-backend/model"
)

// Access policy predicates. Authorization questions are answered here, in
// one place, by querying the registries; the mutating operations call these
// before touching any state.

// IsHead reports whether caller is the head of the organization
func (c *Core) IsHead(caller string, orgID uint64) (bool, error) {
	org, ok := c.org(orgID)
	if !ok {
		return false, fmt.Errorf("%w: organization %d", ErrNotFound, orgID)
	}
	org.mu.Lock()
	defer org.mu.Unlock()
	return org.rec.Head == caller, nil
}

// IsVendorOf reports whether caller is the vendor of the expense
func (c *Core) IsVendorOf(caller string, id model.ExpenseID) (bool, error) {
	st, ok := c.expense(id)
	if !ok {
		return false, fmt.Errorf("%w: expense %s", ErrNotFound, id)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.rec.Vendor == caller, nil
}

// IsRegisteredVendor reports whether caller has a vendor registration
func (c *Core) IsRegisteredVendor(caller string) bool {
	c.vmu.RLock()
	defer c.vmu.RUnlock()
	_, ok := c.vendors[caller]
	return ok
}

// isVendorOrHead answers the proof-submission authorization question:
// the expense's vendor and the owning organization's head both qualify.
func (c *Core) isVendorOrHead(caller string, id model.ExpenseID) (bool, error) {
	isVendor, err := c.IsVendorOf(caller, id)
	if err != nil {
		return false, err
	}
	if isVendor {
		return true, nil
	}
	return c.IsHead(caller, id.OrgID)
}
