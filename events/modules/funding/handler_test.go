package funding

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedDonation struct {
	donor  string
	orgID  uint64
	amount int64
}

type fakeDonationService struct {
	recorded []recordedDonation
	err      error
}

func (f *fakeDonationService) RecordDonation(_ context.Context, donor string, orgID uint64, amount int64) error {
	if f.err != nil {
		return f.err
	}
	f.recorded = append(f.recorded, recordedDonation{donor: donor, orgID: orgID, amount: amount})
	return nil
}

func TestHandleDonationReceived(t *testing.T) {
	event := DonationReceivedEvent{
		EventType:     "donation.received",
		EventID:       "evt-1",
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		OrgID:         1,
		Donor:         "0xdonor",
		Amount:        250,
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	service := &fakeDonationService{}
	require.NoError(t, HandleDonationReceivedWithService(context.Background(), payload, service))

	require.Len(t, service.recorded, 1)
	assert.Equal(t, recordedDonation{donor: "0xdonor", orgID: 1, amount: 250}, service.recorded[0])
}

func TestHandleDonationReceivedRejectsBadEvents(t *testing.T) {
	service := &fakeDonationService{}

	err := HandleDonationReceivedWithService(context.Background(), []byte("not json"), service)
	assert.Error(t, err)

	missing, _ := json.Marshal(DonationReceivedEvent{OrgID: 1, Amount: 10})
	err = HandleDonationReceivedWithService(context.Background(), missing, service)
	assert.Error(t, err, "events without a donor are rejected")

	negative, _ := json.Marshal(DonationReceivedEvent{OrgID: 1, Donor: "0xd", Amount: -5})
	err = HandleDonationReceivedWithService(context.Background(), negative, service)
	assert.Error(t, err)

	assert.Empty(t, service.recorded)
}

func TestHandleDonationReceivedPropagatesServiceError(t *testing.T) {
	event, _ := json.Marshal(DonationReceivedEvent{OrgID: 7, Donor: "0xd", Amount: 10})
	service := &fakeDonationService{err: errors.New("organization not found")}

	err := HandleDonationReceivedWithService(context.Background(), event, service)
	assert.Error(t, err)
}
