// Package treasury implements the value-transfer ledger over the transfers
// collection. It is the settlement boundary: the core treats both operations
// as atomic and fallible, and never retries them itself.
package treasury

import (
	"context"
	"fmt"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/google/uuid"

	"github.com/fundchain/fundchain-backend/database"
	"github.com/fundchain/fundchain-backend/model"
)

// Arango is the ArangoDB-backed value-transfer ledger. An organization's
// balance is derived from its transfer history, never stored separately.
type Arango struct {
	DB database.DBConnection
}

// NewArango wraps a database connection as a value-transfer ledger
func NewArango(db database.DBConnection) *Arango {
	return &Arango{DB: db}
}

// CreditOrganization records a donation credit
func (t *Arango) CreditOrganization(ctx context.Context, orgID uint64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	doc := model.Transfer{
		Key:       uuid.New().String(),
		OrgID:     orgID,
		Kind:      model.TransferKindCredit,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	cursor, err := t.DB.Database.Query(ctx, `INSERT @doc IN transfers RETURN NEW._key`, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"doc": doc},
	})
	if err != nil {
		return fmt.Errorf("recording credit for organization %d: %w", orgID, err)
	}
	return cursor.Close()
}

// PayVendor releases funds to a vendor. The balance check and the payout
// insert run inside an exclusive stream transaction on the transfers
// collection: a single AQL query would be atomic but not serializable, and
// two concurrent payouts could each read the same snapshot balance and both
// pass the filter. The exclusive lock serializes them instead, so the second
// payout sees the first one's debit.
func (t *Arango) PayVendor(ctx context.Context, orgID uint64, vendor string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("payout amount must be positive, got %d", amount)
	}
	doc := model.Transfer{
		Key:       uuid.New().String(),
		OrgID:     orgID,
		Kind:      model.TransferKindPayout,
		Vendor:    vendor,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	query := `
		LET balance = SUM(
			FOR t IN transfers
				FILTER t.org_id == @org_id
				RETURN t.kind == "credit" ? t.amount : -t.amount
		)
		FILTER balance >= @amount
		INSERT @doc IN transfers
		RETURN NEW._key`

	cols := arangodb.TransactionCollections{Exclusive: []string{"transfers"}}
	paid := false
	err := t.DB.Database.WithTransaction(ctx, cols, nil, nil, nil,
		func(ctx context.Context, tx arangodb.Transaction) error {
			cursor, err := tx.Query(ctx, query, &arangodb.QueryOptions{
				BindVars: map[string]interface{}{
					"org_id": orgID,
					"amount": amount,
					"doc":    doc,
				},
			})
			if err != nil {
				return err
			}
			defer cursor.Close()
			paid = cursor.HasMore()
			return nil
		})
	if err != nil {
		return fmt.Errorf("recording payout for organization %d: %w", orgID, err)
	}
	if !paid {
		return fmt.Errorf("insufficient balance in organization %d for payout of %d to %s", orgID, amount, vendor)
	}
	return nil
}

// Balance returns the organization's current settlement balance
func (t *Arango) Balance(ctx context.Context, orgID uint64) (int64, error) {
	query := `
		RETURN SUM(
			FOR t IN transfers
				FILTER t.org_id == @org_id
				RETURN t.kind == "credit" ? t.amount : -t.amount
		)`
	cursor, err := t.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"org_id": orgID},
	})
	if err != nil {
		return 0, fmt.Errorf("reading balance for organization %d: %w", orgID, err)
	}
	defer cursor.Close()

	var balance int64
	if _, err := cursor.ReadDocument(ctx, &balance); err != nil {
		return 0, fmt.Errorf("decoding balance for organization %d: %w", orgID, err)
	}
	return balance, nil
}
