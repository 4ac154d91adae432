// Package store persists ledger records to ArangoDB. It implements the
// core's Journal with write-through upserts and reloads the full state at
// startup.
package store

import (
	"context"
	"fmt"

	"github.com/arangodb/go-driver/v2/arangodb"

	"github.com/fundchain/fundchain-backend/database"
	"github.com/fundchain/fundchain-backend/internal/ledger"
	"github.com/fundchain/fundchain-backend/model"
)

// Arango is the ArangoDB-backed Journal
type Arango struct {
	DB database.DBConnection
}

// NewArango wraps a database connection as a Journal
func NewArango(db database.DBConnection) *Arango {
	return &Arango{DB: db}
}

func (s *Arango) upsert(ctx context.Context, collection, key string, doc interface{}) error {
	query := fmt.Sprintf(`
		UPSERT { _key: @key }
		INSERT @doc
		REPLACE @doc
		IN %s`, collection)
	cursor, err := s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"key": key,
			"doc": doc,
		},
	})
	if err != nil {
		return fmt.Errorf("upserting %s/%s: %w", collection, key, err)
	}
	return cursor.Close()
}

// SaveOrganization upserts an organization record
func (s *Arango) SaveOrganization(ctx context.Context, org *model.Organization) error {
	return s.upsert(ctx, "organizations", org.Key, org)
}

// SaveVendor upserts a vendor record
func (s *Arango) SaveVendor(ctx context.Context, vendor *model.Vendor) error {
	return s.upsert(ctx, "vendors", vendor.Key, vendor)
}

// SaveExpense upserts an expense record
func (s *Arango) SaveExpense(ctx context.Context, expense *model.Expense) error {
	return s.upsert(ctx, "expenses", expense.Key, expense)
}

// SaveProof upserts a proof record, votes included
func (s *Arango) SaveProof(ctx context.Context, proof *model.ProofRecord) error {
	return s.upsert(ctx, "proofs", proof.Key, proof)
}

func readAll[T any](ctx context.Context, db database.DBConnection, collection string) ([]T, error) {
	query := fmt.Sprintf("FOR doc IN %s RETURN doc", collection)
	cursor, err := db.Database.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", collection, err)
	}
	defer cursor.Close()

	var out []T
	for cursor.HasMore() {
		var doc T
		if _, err := cursor.ReadDocument(ctx, &doc); err != nil {
			return nil, fmt.Errorf("decoding %s document: %w", collection, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

// LoadSnapshot reads the full persisted ledger state for core startup
func (s *Arango) LoadSnapshot(ctx context.Context) (ledger.Snapshot, error) {
	orgs, err := readAll[model.Organization](ctx, s.DB, "organizations")
	if err != nil {
		return ledger.Snapshot{}, err
	}
	vendors, err := readAll[model.Vendor](ctx, s.DB, "vendors")
	if err != nil {
		return ledger.Snapshot{}, err
	}
	expenses, err := readAll[model.Expense](ctx, s.DB, "expenses")
	if err != nil {
		return ledger.Snapshot{}, err
	}
	proofs, err := readAll[model.ProofRecord](ctx, s.DB, "proofs")
	if err != nil {
		return ledger.Snapshot{}, err
	}
	return ledger.Snapshot{
		Organizations: orgs,
		Vendors:       vendors,
		Expenses:      expenses,
		Proofs:        proofs,
	}, nil
}
