// Package funding defines types for Kafka event processing of donation and
// approval events.
package funding

import "time"

// DonationReceivedEvent is consumed from the external payment processor's
// topic. Each event is one settled donation waiting to be credited to an
// organization.
type DonationReceivedEvent struct {
	EventType     string    `json:"event_type"` // "donation.received"
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	OrgID  uint64 `json:"org_id"`
	Donor  string `json:"donor"`
	Amount int64  `json:"amount"`
}

// DonationRecordedEvent is published after a donation has been credited and
// the organization's total updated.
type DonationRecordedEvent struct {
	EventType     string    `json:"event_type"` // "donation.recorded"
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	OrgID       uint64 `json:"org_id"`
	Donor       string `json:"donor"`
	Amount      int64  `json:"amount"`
	TotalRaised int64  `json:"total_raised"`
}

// ExpenseApprovedEvent is published when an expense crosses the approval
// threshold and the vendor has been paid.
type ExpenseApprovedEvent struct {
	EventType     string    `json:"event_type"` // "expense.approved"
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	OrgID      uint64 `json:"org_id"`
	Index      uint64 `json:"index"`
	Vendor     string `json:"vendor"`
	Amount     int64  `json:"amount"`
	TrustScore int64  `json:"trust_score"`
}
