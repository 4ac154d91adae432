// Package funding handles Kafka event processing for donation events.
package funding

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// DonationService defines the interface for crediting donations
type DonationService interface {
	RecordDonation(ctx context.Context, donor string, orgID uint64, amount int64) error
}

// HandleDonationReceivedWithService processes donation.received events from
// the payment processor topic and credits them through the same core logic
// as the REST API.
func HandleDonationReceivedWithService(ctx context.Context, msg []byte, service DonationService) error {
	var event DonationReceivedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal DonationReceivedEvent: %w", err)
	}

	if event.OrgID == 0 || event.Donor == "" || event.Amount <= 0 {
		return fmt.Errorf("invalid event: missing required fields")
	}

	log.Printf("Processing donation of %d to organization %d from %s (event=%s)",
		event.Amount, event.OrgID, event.Donor, event.EventID)

	if err := service.RecordDonation(ctx, event.Donor, event.OrgID, event.Amount); err != nil {
		return fmt.Errorf("failed to record donation for organization %d: %w", event.OrgID, err)
	}

	return nil
}
