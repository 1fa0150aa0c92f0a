package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"github.com/CamilaNiebles/sls-assesment/application/ports"
	"github.com/CamilaNiebles/sls-assesment/domain/notes"
)

// EventSource identifies this service on the bus.
const EventSource = "notes-api"

// Publisher implements the EventPublisher port on AWS EventBridge.
// Publishing is best effort: the service logs failures and moves on, so a
// broken bus never fails a note operation.
type Publisher struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewPublisher creates a new EventBridge publisher
func NewPublisher(client *eventbridge.Client, eventBusName string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

// Publish sends a single lifecycle event to EventBridge
func (p *Publisher) Publish(ctx context.Context, event notes.Event) error {
	detail, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	entry := types.PutEventsRequestEntry{
		EventBusName: aws.String(p.eventBusName),
		Source:       aws.String(EventSource),
		DetailType:   aws.String(event.EventType()),
		Detail:       aws.String(string(detail)),
		Time:         aws.Time(event.OccurredAt()),
		Resources: []string{
			fmt.Sprintf("arn:aws:notes::%s", event.AggregateID()),
		},
	}

	result, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{entry},
	})
	if err != nil {
		return fmt.Errorf("failed to publish event to EventBridge: %w", err)
	}

	if result.FailedEntryCount > 0 {
		for _, e := range result.Entries {
			if e.ErrorCode != nil {
				p.logger.Error("EventBridge rejected event",
					zap.String("eventType", event.EventType()),
					zap.String("errorCode", *e.ErrorCode),
					zap.String("errorMessage", aws.ToString(e.ErrorMessage)),
				)
			}
		}
		return fmt.Errorf("event %s failed to publish", event.EventType())
	}

	p.logger.Debug("Event published",
		zap.String("eventType", event.EventType()),
		zap.String("eventBus", p.eventBusName),
	)

	return nil
}

var _ ports.EventPublisher = (*Publisher)(nil)
