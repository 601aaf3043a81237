package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"koos-service/internal/app/contracts"
	"koos-service/internal/pkg/constvars"
	"koos-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	queue    string
	messages []amqp091.Publishing
	err      error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.queue = key
	f.messages = append(f.messages, msg)
	return nil
}

func TestRabbitMQPublisher_PublishScoreComputed(t *testing.T) {
	channel := &fakeChannel{}
	publisher := newRabbitMQPublisher(channel, "koos.score.events", zap.NewNop())

	event := &contracts.ScoreComputedEvent{
		EventID:         "evt-1",
		EventType:       constvars.EventScoreComputed,
		RequestID:       "req-1",
		QuestionnaireID: "koos",
		SectionCount:    2,
		TotalScore:      75,
		Interpretation:  "Mild problems",
		OccurredAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	err := publisher.PublishScoreComputed(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, channel.messages, 1)
	message := channel.messages[0]
	assert.Equal(t, "koos.score.events", channel.queue)
	assert.Equal(t, constvars.MIMEApplicationJSON, message.ContentType)
	assert.Equal(t, amqp091.Persistent, message.DeliveryMode)
	assert.Equal(t, "evt-1", message.MessageId)
	assert.Equal(t, constvars.EventScoreComputed, message.Type)

	var decoded contracts.ScoreComputedEvent
	require.NoError(t, json.Unmarshal(message.Body, &decoded))
	assert.Equal(t, *event, decoded)
}

func TestRabbitMQPublisher_PublishFailure(t *testing.T) {
	publisher := newRabbitMQPublisher(&fakeChannel{err: errors.New("channel closed")}, "q", zap.NewNop())

	err := publisher.PublishScoreComputed(context.Background(), &contracts.ScoreComputedEvent{EventID: "evt-1"})

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NewNoopPublisher().PublishScoreComputed(context.Background(), &contracts.ScoreComputedEvent{}))
}
