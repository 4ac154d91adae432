// Package ledger implements the trust-scored expense-approval state machine:
// organization, vendor, and expense bookkeeping, the proof-submission and
// voting protocol, and the transition rules that approve expenses and pay
// vendors. State is held in process and written through a Journal; value
// movement is delegated to a ValueTransferLedger.
package ledger

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fundchain/fundchain-backend/model"
)

// ValueTransferLedger moves value on behalf of the core. Both operations are
// atomic on the collaborator side: they either fully apply or fail cleanly.
type ValueTransferLedger interface {
	// CreditOrganization accepts a donation into the organization's balance.
	CreditOrganization(ctx context.Context, orgID uint64, amount int64) error
	// PayVendor releases amount from the organization's balance to the vendor.
	// Fails when the balance is insufficient or the transfer is rejected.
	PayVendor(ctx context.Context, orgID uint64, vendor string, amount int64) error
}

// Journal persists mutated records. A failed write aborts the mutation that
// produced it, except after an irreversible payout where the in-memory state
// is committed anyway and the failure logged.
type Journal interface {
	SaveOrganization(ctx context.Context, org *model.Organization) error
	SaveVendor(ctx context.Context, vendor *model.Vendor) error
	SaveExpense(ctx context.Context, expense *model.Expense) error
	SaveProof(ctx context.Context, proof *model.ProofRecord) error
}

// Config holds the tunable policy constants of the approval state machine
type Config struct {
	// ApprovalThreshold is the net trust score (approvals minus rejections)
	// at which a pending expense is approved.
	ApprovalThreshold int64
	// ReputationDelta is added to the vendor's reputation on approval.
	ReputationDelta int64
	// AllowSelfVote permits the expense's vendor and the organization head
	// to vote on the expense's proof. Defaults to true.
	AllowSelfVote bool
}

// DefaultConfig returns the standard approval policy
func DefaultConfig() Config {
	return Config{
		ApprovalThreshold: 3,
		ReputationDelta:   1,
		AllowSelfVote:     true,
	}
}

// Core wires the organization registry, vendor registry, expense ledger, and
// proof trust engine over shared state. Mutations lock only the entity they
// touch: the organization table for id allocation, one organization for
// donations and expense creation, one expense for proof and vote traffic,
// one vendor for reputation. Different entities proceed in parallel.
type Core struct {
	cfg       Config
	transfers ValueTransferLedger
	journal   Journal
	logger    *zap.Logger

	mu     sync.RWMutex // guards orgs and nextOrgID
	orgs   map[uint64]*orgState
	nextID uint64

	vmu     sync.RWMutex // guards the vendors map, not the entries
	vendors map[string]*vendorState
}

type orgState struct {
	mu       sync.Mutex // serializes donations and expense creation
	rec      model.Organization
	expenses []*expenseState
}

type expenseState struct {
	mu    sync.Mutex // vote upsert, threshold check, and transition are one critical section
	rec   model.Expense
	proof model.ProofRecord
	score int64 // running cache of proof.Score(), reconciled on vote overwrite
}

type vendorState struct {
	mu  sync.Mutex
	rec model.Vendor
}

// NewCore creates an empty ledger core
func NewCore(cfg Config, transfers ValueTransferLedger, journal Journal, logger *zap.Logger) *Core {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Core{
		cfg:       cfg,
		transfers: transfers,
		journal:   journal,
		logger:    logger,
		orgs:      map[uint64]*orgState{},
		nextID:    1,
		vendors:   map[string]*vendorState{},
	}
}

// Snapshot is the persisted state handed to Restore at startup
type Snapshot struct {
	Organizations []model.Organization
	Vendors       []model.Vendor
	Expenses      []model.Expense
	Proofs        []model.ProofRecord
}

// Restore seeds the core from persisted state. Expenses are slotted by their
// per-organization index; proofs are matched to expenses by id and their
// score cache is recounted from the vote set. Must be called before the core
// is shared between goroutines.
func (c *Core) Restore(snap Snapshot) {
	for _, org := range snap.Organizations {
		st := &orgState{rec: org}
		c.orgs[org.OrgID] = st
		if org.OrgID >= c.nextID {
			c.nextID = org.OrgID + 1
		}
	}
	for _, v := range snap.Vendors {
		c.vendors[v.Address] = &vendorState{rec: v}
	}
	for _, e := range snap.Expenses {
		org, ok := c.orgs[e.OrgID]
		if !ok {
			c.logger.Warn("dropping expense for unknown organization",
				zap.Uint64("org_id", e.OrgID), zap.Uint64("index", e.Index))
			continue
		}
		for uint64(len(org.expenses)) <= e.Index {
			org.expenses = append(org.expenses, nil)
		}
		placeholder := model.NewProofRecord(e.ID(), "", "")
		placeholder.Key = e.Key
		org.expenses[e.Index] = &expenseState{
			rec:   e,
			proof: *placeholder,
		}
	}
	for _, p := range snap.Proofs {
		org, ok := c.orgs[p.OrgID]
		if !ok || p.Index >= uint64(len(org.expenses)) || org.expenses[p.Index] == nil {
			continue
		}
		st := org.expenses[p.Index]
		if p.Votes == nil {
			p.Votes = map[string]bool{}
		}
		st.proof = p
		st.score = p.Score()
	}
}

// org returns the state holder for an organization id
func (c *Core) org(orgID uint64) (*orgState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st, ok := c.orgs[orgID]
	return st, ok
}

// expense returns the state holder for a composite expense id. The brief
// org lock covers the slice read; expense records have their own lock.
func (c *Core) expense(id model.ExpenseID) (*expenseState, bool) {
	org, ok := c.org(id.OrgID)
	if !ok {
		return nil, false
	}
	org.mu.Lock()
	defer org.mu.Unlock()
	if id.Index >= uint64(len(org.expenses)) || org.expenses[id.Index] == nil {
		return nil, false
	}
	return org.expenses[id.Index], true
}
