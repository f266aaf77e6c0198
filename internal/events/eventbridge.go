package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"accountsvc/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
)

// eventBridgeAPI is the slice of the EventBridge client we use.
type eventBridgeAPI interface {
	PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// EventBridgePublisher publishes transaction-created events to an AWS
// EventBridge bus.
type EventBridgePublisher struct {
	client  eventBridgeAPI
	busName string
	logger  *slog.Logger
}

// NewEventBridgePublisher builds a publisher against the named event
// bus, resolving credentials and region from the default AWS config
// chain.
func NewEventBridgePublisher(ctx context.Context, region, busName string, logger *slog.Logger) (*EventBridgePublisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &EventBridgePublisher{
		client:  eventbridge.NewFromConfig(cfg),
		busName: busName,
		logger:  logger.With("publisher", "eventbridge"),
	}, nil
}

func (p *EventBridgePublisher) Publish(ctx context.Context, transaction *models.Transaction) error {
	detail, err := json.Marshal(transaction)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction event: %w", err)
	}

	out, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				Source:       aws.String(Source),
				DetailType:   aws.String(DetailTransactionCreated),
				Detail:       aws.String(string(detail)),
				EventBusName: aws.String(p.busName),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if out.FailedEntryCount > 0 {
		return fmt.Errorf("event bus rejected %d entries", out.FailedEntryCount)
	}

	p.logger.Debug("event published", "transaction", transaction.ID, "bus", p.busName)
	return nil
}
