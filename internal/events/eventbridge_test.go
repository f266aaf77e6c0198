package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"accountsvc/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventBridge struct {
	input *eventbridge.PutEventsInput
	out   *eventbridge.PutEventsOutput
	err   error
}

func (f *fakeEventBridge) PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	f.input = params
	return f.out, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEventBridgePublisher_Publish(t *testing.T) {
	fake := &fakeEventBridge{out: &eventbridge.PutEventsOutput{}}
	p := &EventBridgePublisher{client: fake, busName: "default", logger: discardLogger()}

	transaction := &models.Transaction{
		ID:              "tx-1",
		AccountID:       "acct-1",
		Amount:          100,
		TransactionType: models.TransactionTypeInbound,
		Currency:        "USD",
		Balance:         100,
	}
	require.NoError(t, p.Publish(context.Background(), transaction))

	require.NotNil(t, fake.input)
	require.Len(t, fake.input.Entries, 1)
	entry := fake.input.Entries[0]
	assert.Equal(t, Source, *entry.Source)
	assert.Equal(t, DetailTransactionCreated, *entry.DetailType)
	assert.Equal(t, "default", *entry.EventBusName)

	var detail models.Transaction
	require.NoError(t, json.Unmarshal([]byte(*entry.Detail), &detail))
	assert.Equal(t, "tx-1", detail.ID)
	assert.Equal(t, 100.0, detail.Balance)
}

func TestEventBridgePublisher_PublishErrors(t *testing.T) {
	transaction := &models.Transaction{ID: "tx-1"}

	t.Run("client error", func(t *testing.T) {
		fake := &fakeEventBridge{err: errors.New("connection refused")}
		p := &EventBridgePublisher{client: fake, busName: "default", logger: discardLogger()}
		assert.Error(t, p.Publish(context.Background(), transaction))
	})

	t.Run("rejected entry", func(t *testing.T) {
		fake := &fakeEventBridge{out: &eventbridge.PutEventsOutput{FailedEntryCount: 1}}
		p := &EventBridgePublisher{client: fake, busName: "default", logger: discardLogger()}
		assert.Error(t, p.Publish(context.Background(), transaction))
	})
}
