package events

import (
	"context"
	"koos-service/internal/app/contracts"
)

type noopPublisher struct{}

// NewNoopPublisher is used when RabbitMQ is disabled.
func NewNoopPublisher() contracts.ScoreEventPublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishScoreComputed(ctx context.Context, event *contracts.ScoreComputedEvent) error {
	return nil
}
