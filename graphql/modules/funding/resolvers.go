// Package funding implements the resolvers for the funding queries.
package funding

import (
	"github.com/fundchain/fundchain-backend/internal/ledger"
	"github.com/fundchain/fundchain-backend/model"
	"github.com/fundchain/fundchain-backend/util"
)

func orgToMap(org model.Organization) map[string]interface{} {
	return map[string]interface{}{
		"org_id":       int(org.OrgID),
		"name":         org.Name,
		"details":      org.Details,
		"total_raised": float64(org.TotalRaised),
		"head":         org.Head,
	}
}

// ResolveOrganizations returns every registered organization
func ResolveOrganizations(core *ledger.Core) (interface{}, error) {
	orgs := core.GetOrganizations()
	result := make([]map[string]interface{}, 0, len(orgs))
	for _, org := range orgs {
		result = append(result, orgToMap(org))
	}
	return result, nil
}

// ResolveOrganization looks up a single organization by its 1-based id
func ResolveOrganization(core *ledger.Core, orgID uint64) (interface{}, error) {
	org, err := core.GetOrganization(orgID)
	if err != nil {
		return nil, err
	}
	return orgToMap(org), nil
}

// ResolveExpenses returns an organization's expenses with their live trust
// scores attached
func ResolveExpenses(core *ledger.Core, orgID uint64) (interface{}, error) {
	expenses, err := core.GetExpenses(orgID)
	if err != nil {
		return nil, err
	}

	result := make([]map[string]interface{}, 0, len(expenses))
	for _, expense := range expenses {
		id := expense.ID()
		score, _ := core.GetTrustScore(id)
		votes := 0
		hash := ""
		if proof, proofErr := core.GetProof(id); proofErr == nil {
			votes = len(proof.Votes)
			hash = proof.ProofHash
		}
		result = append(result, map[string]interface{}{
			"org_id":      int(expense.OrgID),
			"index":       int(expense.Index),
			"description": expense.Description,
			"vendor":      expense.Vendor,
			"amount":      float64(expense.Amount),
			"status":      string(expense.Status),
			"proof_hash":  hash,
			"trust_score": int(score),
			"vote_count":  votes,
		})
	}
	return result, nil
}

// ResolveTrustScore returns the current score of one expense's proof
func ResolveTrustScore(core *ledger.Core, orgID, index uint64) (interface{}, error) {
	score, err := core.GetTrustScore(model.ExpenseID{OrgID: orgID, Index: index})
	if err != nil {
		return nil, err
	}
	return int(score), nil
}

// ResolveVendor looks up a vendor profile; unknown addresses resolve with
// exists=false rather than an error
func ResolveVendor(core *ledger.Core, address string) (interface{}, error) {
	vendor, ok := core.GetVendor(util.NormalizeAddress(address))
	if !ok {
		return map[string]interface{}{
			"address": util.NormalizeAddress(address),
			"exists":  false,
		}, nil
	}
	return map[string]interface{}{
		"address":    vendor.Address,
		"name":       vendor.Name,
		"details":    vendor.Details,
		"reputation": int(vendor.Reputation),
		"exists":     true,
	}, nil
}

// ResolveFundingOverview aggregates the ledger-wide dashboard numbers
func ResolveFundingOverview(core *ledger.Core) (interface{}, error) {
	orgs := core.GetOrganizations()

	var totalRaised, approvedAmount int64
	var totalExpenses, pending, approved int
	for _, org := range orgs {
		totalRaised += org.TotalRaised
		expenses, err := core.GetExpenses(org.OrgID)
		if err != nil {
			continue
		}
		totalExpenses += len(expenses)
		for _, expense := range expenses {
			switch expense.Status {
			case model.ExpenseStatusApproved:
				approved++
				approvedAmount += expense.Amount
			default:
				pending++
			}
		}
	}

	return map[string]interface{}{
		"total_organizations":   len(orgs),
		"total_raised":          float64(totalRaised),
		"total_expenses":        totalExpenses,
		"pending_expenses":      pending,
		"approved_expenses":     approved,
		"total_approved_amount": float64(approvedAmount),
	}, nil
}
