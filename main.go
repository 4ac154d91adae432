// package main provides the entry point for the fundchain-backend microservice,
// wiring the disbursement ledger to ArangoDB, Kafka, and the REST/GraphQL API.
package main

import (
	"context"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fundchain/fundchain-backend/config"
	"github.com/fundchain/fundchain-backend/database"
	funding "github.com/fundchain/fundchain-backend/events/modules/funding"
	"github.com/fundchain/fundchain-backend/internal/api"
	"github.com/fundchain/fundchain-backend/internal/kafka"
	"github.com/fundchain/fundchain-backend/internal/ledger"
	"github.com/fundchain/fundchain-backend/internal/store"
	"github.com/fundchain/fundchain-backend/internal/treasury"
)

func main() {
	cfg, err := config.Load(config.GetEnvDefault("FUNDCHAIN_CONFIG", "config.yaml"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db := database.InitializeDatabase()
	logger := database.InitLogger()

	journal := store.NewArango(db)
	transfers := treasury.NewArango(db)

	core := ledger.NewCore(ledger.Config{
		ApprovalThreshold: cfg.Ledger.ApprovalThreshold,
		ReputationDelta:   cfg.Ledger.ReputationDelta,
		AllowSelfVote:     cfg.Ledger.AllowSelfVote,
	}, transfers, journal, logger)

	// Rehydrate the in-memory ledger from the journal collections
	snap, err := journal.LoadSnapshot(context.Background())
	if err != nil {
		log.Fatalf("Failed to load ledger snapshot: %v", err)
	}
	core.Restore(snap)

	// Kafka producer for outbound funding events
	producer := funding.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.FundingTopic)
	defer producer.Close()

	// Consumer loop for externally sourced donations
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := kafka.RunEventProcessor(ctx, core, cfg.Kafka.Brokers, cfg.Kafka.DonationTopic); err != nil {
		log.Printf("WARNING: Kafka event processor not started: %v", err)
	}

	app := api.NewFiberApp(core, db, producer, &cfg)

	log.Printf("Starting server on port %s", cfg.Server.Port)
	log.Printf("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
