// Package config loads the service configuration from a YAML file with
// environment variable overrides for deployment settings.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// LedgerConfig holds the approval policy constants
type LedgerConfig struct {
	// ApprovalThreshold is the net trust score that approves an expense.
	ApprovalThreshold int64 `yaml:"approval_threshold"`
	// ReputationDelta is added to a vendor's reputation per approval.
	ReputationDelta int64 `yaml:"reputation_delta"`
	// AllowSelfVote permits the vendor and the organization head to vote
	// on their own expenses.
	AllowSelfVote bool `yaml:"allow_self_vote"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Port string `yaml:"port"`
}

// KafkaConfig holds event streaming settings
type KafkaConfig struct {
	Brokers       []string `yaml:"brokers"`
	DonationTopic string   `yaml:"donation_topic"`
	FundingTopic  string   `yaml:"funding_topic"`
}

// AdminConfig identifies the bootstrap platform administrator
type AdminConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
}

// Config is the root configuration document
type Config struct {
	Ledger LedgerConfig `yaml:"ledger"`
	Server ServerConfig `yaml:"server"`
	Kafka  KafkaConfig  `yaml:"kafka"`
	Admin  AdminConfig  `yaml:"admin"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		Ledger: LedgerConfig{
			ApprovalThreshold: 3,
			ReputationDelta:   1,
			AllowSelfVote:     true,
		},
		Server: ServerConfig{Port: "8080"},
		Kafka: KafkaConfig{
			Brokers:       []string{"localhost:9092"},
			DonationTopic: "donation-events",
			FundingTopic:  "funding-events",
		},
	}
}

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key)
	if !ex {
		return defVal
	}
	return val
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. Server port and Kafka brokers can additionally be
// overridden through PORT and KAFKA_BROKERS.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) // #nosec G304
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.Server.Port = GetEnvDefault("PORT", cfg.Server.Port)
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}
	cfg.Admin.Address = GetEnvDefault("FUNDCHAIN_ADMIN_ADDRESS", cfg.Admin.Address)
	cfg.Admin.Password = GetEnvDefault("FUNDCHAIN_ADMIN_PASSWORD", cfg.Admin.Password)

	if cfg.Ledger.ApprovalThreshold <= 0 {
		return Config{}, fmt.Errorf("approval_threshold must be positive, got %d", cfg.Ledger.ApprovalThreshold)
	}
	if cfg.Ledger.ReputationDelta < 0 {
		return Config{}, fmt.Errorf("reputation_delta must not be negative, got %d", cfg.Ledger.ReputationDelta)
	}
	return cfg, nil
}
