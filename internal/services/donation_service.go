// Package services provides internal service implementations for the
// FundChain backend.
package services

import (
	"context"
	"log"

	funding "github.com/fundchain/fundchain-backend/events/modules/funding"
	"github.com/fundchain/fundchain-backend/internal/ledger"
)

// DonationServiceWrapper implements funding.DonationService
type DonationServiceWrapper struct {
	Core *ledger.Core
}

// RecordDonation credits a donation through the same core logic as the REST
// API, so payment-processor events and interactive donations follow one
// validation and crediting path.
func (w *DonationServiceWrapper) RecordDonation(ctx context.Context, donor string, orgID uint64, amount int64) error {
	log.Printf("Worker: Processing donation of %d to organization %d", amount, orgID)
	return w.Core.Donate(ctx, donor, orgID, amount)
}

// Ensure compile-time interface check
var _ funding.DonationService = (*DonationServiceWrapper)(nil)
