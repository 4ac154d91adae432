package kafka

import (
	"context"
	"crypto/tls"
	"log"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	funding "github.com/fundchain/fundchain-backend/events/modules/funding"
	"github.com/fundchain/fundchain-backend/internal/ledger"
	"github.com/fundchain/fundchain-backend/internal/services"
)

// RunEventProcessor consumes donation events from the payment processor
// topic and credits them into the ledger core.
func RunEventProcessor(ctx context.Context, core *ledger.Core, brokers []string, topic string) error {
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	// Configure SASL/PLAIN when credentials are provided
	username := os.Getenv("KAFKA_API_KEY")
	password := os.Getenv("KAFKA_API_SECRET")

	var dialer *kafka.Dialer

	if username != "" && password != "" {
		mechanism := plain.Mechanism{
			Username: username,
			Password: password,
		}

		dialer = &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			SASLMechanism: mechanism,
			TLS:           &tls.Config{},
		}
	} else {
		// Default dialer for local development (no SASL/TLS)
		dialer = &kafka.Dialer{
			Timeout:   10 * time.Second,
			DualStack: true,
		}
	}

	var conn *kafka.Conn
	var err error

	// Retry logic: 3 tries
	for i := 1; i <= 3; i++ {
		log.Printf("Kafka connection attempt %d/3...", i)
		conn, err = dialer.DialContext(ctx, "tcp", brokers[0])
		if err == nil {
			conn.Close()
			break
		}
		if i < 3 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		return err
	}

	readerConfig := kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  "fundchain-backend-worker",
		Topic:    topic,
		MaxBytes: 10e6,
		Dialer:   dialer,
	}

	reader := kafka.NewReader(readerConfig)

	go func() {
		defer reader.Close()
		service := &services.DonationServiceWrapper{Core: core}

		log.Println("Kafka Event Processor started. Listening for donation events...")

		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := reader.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					continue
				}
				if err := funding.HandleDonationReceivedWithService(ctx, msg.Value, service); err != nil {
					log.Printf("Failed to process donation event: %v", err)
				}
			}
		}
	}()

	return nil
}
