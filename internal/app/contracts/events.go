package contracts

import (
	"context"
	"time"
)

// ScoreComputedEvent announces a computed report. It never carries the
// individual responses.
type ScoreComputedEvent struct {
	EventID         string    `json:"event_id"`
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id"`
	QuestionnaireID string    `json:"questionnaire_id"`
	SectionCount    int       `json:"section_count"`
	TotalScore      float64   `json:"total_score"`
	Interpretation  string    `json:"interpretation"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type ScoreEventPublisher interface {
	PublishScoreComputed(ctx context.Context, event *ScoreComputedEvent) error
}
