// Package funding handles Kafka event production for donation and approval
// events.
package funding

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Producer handles sending funding events to Kafka
type Producer struct {
	Writer *kafka.Writer
}

// NewProducer initializes a new Kafka writer for funding events
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishDonationRecorded sends a donation.recorded event
func (p *Producer) PublishDonationRecorded(ctx context.Context, orgID uint64, donor string, amount, totalRaised int64) error {
	event := DonationRecordedEvent{
		EventType:     "donation.recorded",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		OrgID:         orgID,
		Donor:         donor,
		Amount:        amount,
		TotalRaised:   totalRaised,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", orgID)),
		Value: payload,
	})
}

// PublishExpenseApproved sends an expense.approved event
func (p *Producer) PublishExpenseApproved(ctx context.Context, orgID, index uint64, vendor string, amount, trustScore int64) error {
	event := ExpenseApprovedEvent{
		EventType:     "expense.approved",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		OrgID:         orgID,
		Index:         index,
		Vendor:        vendor,
		Amount:        amount,
		TrustScore:    trustScore,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("%d/%d", orgID, index)),
		Value: payload,
	})
}

// Close cleans up the Kafka writer
func (p *Producer) Close() error {
	return p.Writer.Close()
}
