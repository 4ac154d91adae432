package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundchain/fundchain-backend/model"
)

// memJournal is an in-memory Journal. Setting fail makes every write error,
// which is how the rollback paths are exercised.
type memJournal struct {
	mu       sync.Mutex
	orgs     map[string]model.Organization
	vendors  map[string]model.Vendor
	expenses map[string]model.Expense
	proofs   map[string]model.ProofRecord
	fail     error
}

func newMemJournal() *memJournal {
	return &memJournal{
		orgs:     map[string]model.Organization{},
		vendors:  map[string]model.Vendor{},
		expenses: map[string]model.Expense{},
		proofs:   map[string]model.ProofRecord{},
	}
}

func (j *memJournal) SaveOrganization(_ context.Context, org *model.Organization) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.fail != nil {
		return j.fail
	}
	j.orgs[org.Key] = *org
	return nil
}

func (j *memJournal) SaveVendor(_ context.Context, vendor *model.Vendor) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.fail != nil {
		return j.fail
	}
	j.vendors[vendor.Key] = *vendor
	return nil
}

func (j *memJournal) SaveExpense(_ context.Context, expense *model.Expense) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.fail != nil {
		return j.fail
	}
	j.expenses[expense.Key] = *expense
	return nil
}

func (j *memJournal) SaveProof(_ context.Context, proof *model.ProofRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.fail != nil {
		return j.fail
	}
	j.proofs[proof.Key] = *proof
	return nil
}

type payout struct {
	orgID  uint64
	vendor string
	amount int64
}

// memTreasury is an in-memory ValueTransferLedger with per-organization
// balances and a payout log.
type memTreasury struct {
	mu         sync.Mutex
	balances   map[uint64]int64
	payouts    []payout
	failCredit error
	failPay    error
}

func newMemTreasury() *memTreasury {
	return &memTreasury{balances: map[uint64]int64{}}
}

func (t *memTreasury) CreditOrganization(_ context.Context, orgID uint64, amount int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failCredit != nil {
		return t.failCredit
	}
	t.balances[orgID] += amount
	return nil
}

func (t *memTreasury) PayVendor(_ context.Context, orgID uint64, vendor string, amount int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failPay != nil {
		return t.failPay
	}
	if t.balances[orgID] < amount {
		return fmt.Errorf("insufficient balance for organization %d", orgID)
	}
	t.balances[orgID] -= amount
	t.payouts = append(t.payouts, payout{orgID: orgID, vendor: vendor, amount: amount})
	return nil
}

func (t *memTreasury) payoutCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.payouts)
}

type fixture struct {
	core     *Core
	journal  *memJournal
	treasury *memTreasury
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	journal := newMemJournal()
	treasury := newMemTreasury()
	return &fixture{
		core:     NewCore(cfg, treasury, journal, nil),
		journal:  journal,
		treasury: treasury,
	}
}

func TestCreateOrganization(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	orgID, err := f.core.CreateOrganization(ctx, "0xhead", "Relief Fund", "desc")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), orgID)

	org, err := f.core.GetOrganization(orgID)
	require.NoError(t, err)
	assert.Equal(t, "Relief Fund", org.Name)
	assert.Equal(t, "0xhead", org.Head)
	assert.Zero(t, org.TotalRaised)
	assert.Equal(t, uint64(1), f.core.GetOrganizationCount())

	second, err := f.core.CreateOrganization(ctx, "0xother", "Water Project", "wells")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second)

	_, err = f.core.CreateOrganization(ctx, "0xhead", "", "desc")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.core.CreateOrganization(ctx, "0xhead", "Name", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDonate(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	orgID, err := f.core.CreateOrganization(ctx, "0xhead", "Relief Fund", "desc")
	require.NoError(t, err)

	require.NoError(t, f.core.Donate(ctx, "0xdonor", orgID, 200))

	org, err := f.core.GetOrganization(orgID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), org.TotalRaised)
	assert.Equal(t, int64(200), f.treasury.balances[orgID])

	err = f.core.Donate(ctx, "0xdonor", orgID, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	err = f.core.Donate(ctx, "0xdonor", orgID, -5)
	assert.ErrorIs(t, err, ErrInvalidInput)
	err = f.core.Donate(ctx, "0xdonor", 99, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDonateTransferRejectedLeavesCounterUntouched(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	orgID, err := f.core.CreateOrganization(ctx, "0xhead", "Relief Fund", "desc")
	require.NoError(t, err)

	f.treasury.failCredit = errors.New("ledger offline")
	err = f.core.Donate(ctx, "0xdonor", orgID, 100)
	assert.ErrorIs(t, err, ErrTransferFailed)

	org, err := f.core.GetOrganization(orgID)
	require.NoError(t, err)
	assert.Zero(t, org.TotalRaised)
	assert.Zero(t, f.journal.orgs[org.Key].TotalRaised)
}

func TestDonateJournalFailureAborts(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	orgID, err := f.core.CreateOrganization(ctx, "0xhead", "Relief Fund", "desc")
	require.NoError(t, err)

	f.journal.fail = errors.New("disk full")
	err = f.core.Donate(ctx, "0xdonor", orgID, 100)
	require.Error(t, err)

	org, getErr := f.core.GetOrganization(orgID)
	require.NoError(t, getErr)
	assert.Zero(t, org.TotalRaised)
	assert.Zero(t, f.treasury.balances[orgID], "no credit may happen when the journal write fails")
}

func TestConcurrentDonations(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	orgID, err := f.core.CreateOrganization(ctx, "0xhead", "Relief Fund", "desc")
	require.NoError(t, err)

	const donors = 50
	const amount = int64(7)
	var wg sync.WaitGroup
	for i := 0; i < donors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = f.core.Donate(ctx, fmt.Sprintf("0xdonor%d", i), orgID, amount)
		}(i)
	}
	wg.Wait()

	org, err := f.core.GetOrganization(orgID)
	require.NoError(t, err)
	assert.Equal(t, int64(donors)*amount, org.TotalRaised, "no lost donation updates")
	assert.Equal(t, org.TotalRaised, f.treasury.balances[orgID])
}

func TestRegisterVendor(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, f.core.RegisterVendor(ctx, "0xvendor", "Acme Supplies", "tents and tarps"))

	vendor, ok := f.core.GetVendor("0xvendor")
	require.True(t, ok)
	assert.Equal(t, "Acme Supplies", vendor.Name)
	assert.Zero(t, vendor.Reputation)

	err := f.core.RegisterVendor(ctx, "0xvendor", "Acme Again", "reset attempt")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// The reputation history survives the rejected re-registration.
	vendor, ok = f.core.GetVendor("0xvendor")
	require.True(t, ok)
	assert.Equal(t, "Acme Supplies", vendor.Name)

	_, ok = f.core.GetVendor("0xnobody")
	assert.False(t, ok)

	err = f.core.RegisterVendor(ctx, "0xempty", "", "details")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJournalKeysAreDocumentSafe(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	orgID, err := f.core.CreateOrganization(ctx, "0xhead", "Relief Fund", "desc")
	require.NoError(t, err)
	require.NoError(t, f.core.Donate(ctx, "0xdonor", orgID, 100))
	id, err := f.core.CreateExpense(ctx, "0xhead", orgID, "tents", "0xvendor", 10, "cid1")
	require.NoError(t, err)

	// ArangoDB rejects "/" in a document _key (it is the _id separator),
	// so journal keys use the dash form while String() keeps the display form.
	assert.Contains(t, f.journal.expenses, "1-0")
	assert.Contains(t, f.journal.proofs, "1-0")
	assert.Equal(t, "1/0", id.String())
	assert.Equal(t, "1-0", id.DocumentKey())

	for key := range f.journal.expenses {
		assert.NotContains(t, key, "/")
	}
	for key := range f.journal.proofs {
		assert.NotContains(t, key, "/")
	}
	for key := range f.journal.orgs {
		assert.NotContains(t, key, "/")
	}
}

func TestAccessPolicy(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	orgID, err := f.core.CreateOrganization(ctx, "0xhead", "Relief Fund", "desc")
	require.NoError(t, err)
	require.NoError(t, f.core.Donate(ctx, "0xdonor", orgID, 100))
	id, err := f.core.CreateExpense(ctx, "0xhead", orgID, "tents", "0xvendor", 10, "cid1")
	require.NoError(t, err)
	require.NoError(t, f.core.RegisterVendor(ctx, "0xvendor", "Acme", "supplies"))

	isHead, err := f.core.IsHead("0xhead", orgID)
	require.NoError(t, err)
	assert.True(t, isHead)
	isHead, err = f.core.IsHead("0xvendor", orgID)
	require.NoError(t, err)
	assert.False(t, isHead)
	_, err = f.core.IsHead("0xhead", 99)
	assert.ErrorIs(t, err, ErrNotFound)

	isVendor, err := f.core.IsVendorOf("0xvendor", id)
	require.NoError(t, err)
	assert.True(t, isVendor)
	isVendor, err = f.core.IsVendorOf("0xhead", id)
	require.NoError(t, err)
	assert.False(t, isVendor)

	assert.True(t, f.core.IsRegisteredVendor("0xvendor"))
	assert.False(t, f.core.IsRegisteredVendor("0xhead"))
}

func TestRestore(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	orgID, err := f.core.CreateOrganization(ctx, "0xhead", "Relief Fund", "desc")
	require.NoError(t, err)
	require.NoError(t, f.core.Donate(ctx, "0xdonor", orgID, 500))
	require.NoError(t, f.core.RegisterVendor(ctx, "0xvendor", "Acme", "supplies"))
	id, err := f.core.CreateExpense(ctx, "0xhead", orgID, "tents", "0xvendor", 100, "cid1")
	require.NoError(t, err)
	_, err = f.core.VerifyProof(ctx, "0xvoter1", id, true)
	require.NoError(t, err)
	_, err = f.core.VerifyProof(ctx, "0xvoter2", id, false)
	require.NoError(t, err)

	// Rebuild a fresh core from what the journal captured.
	snap := Snapshot{}
	for _, org := range f.journal.orgs {
		snap.Organizations = append(snap.Organizations, org)
	}
	for _, vendor := range f.journal.vendors {
		snap.Vendors = append(snap.Vendors, vendor)
	}
	for _, expense := range f.journal.expenses {
		snap.Expenses = append(snap.Expenses, expense)
	}
	for _, proof := range f.journal.proofs {
		snap.Proofs = append(snap.Proofs, proof)
	}

	restored := NewCore(DefaultConfig(), newMemTreasury(), newMemJournal(), nil)
	restored.Restore(snap)

	assert.Equal(t, uint64(1), restored.GetOrganizationCount())
	org, err := restored.GetOrganization(orgID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), org.TotalRaised)

	score, err := restored.GetTrustScore(id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), score, "one approve and one reject recount to zero")

	proof, err := restored.GetProof(id)
	require.NoError(t, err)
	assert.Len(t, proof.Votes, 2)
	assert.Equal(t, "cid1", proof.ProofHash)
}
