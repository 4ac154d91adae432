package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), cfg.Ledger.ApprovalThreshold)
	assert.Equal(t, int64(1), cfg.Ledger.ReputationDelta)
	assert.True(t, cfg.Ledger.AllowSelfVote)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
ledger:
  approval_threshold: 5
  reputation_delta: 2
  allow_self_vote: false
server:
  port: "9090"
kafka:
  brokers: ["broker-1:9092", "broker-2:9092"]
  donation_topic: donations
  funding_topic: funding
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), cfg.Ledger.ApprovalThreshold)
	assert.Equal(t, int64(2), cfg.Ledger.ReputationDelta)
	assert.False(t, cfg.Ledger.AllowSelfVote)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "donations", cfg.Kafka.DonationTopic)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
}

func TestLoadRejectsNonPositiveThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger:\n  approval_threshold: 0\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsNegativeReputationDelta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger:\n  reputation_delta: -1\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
