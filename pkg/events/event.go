package events

import "time"

const (
	TypeSummaryCompleted     = "SUMMARY_COMPLETED"
	TypeSummarySkipped       = "SUMMARY_SKIPPED"
	TypeTranslationCompleted = "TRANSLATION_COMPLETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SUMMARY_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewSummaryCompleted(sessionID, model string, inputWords, summaryWords int) BaseEvent {
	return BaseEvent{
		Type: TypeSummaryCompleted,
		Data: map[string]interface{}{
			"session_id":    sessionID,
			"model":         model,
			"input_words":   inputWords,
			"summary_words": summaryWords,
		},
		OccurredAt: time.Now(),
	}
}

func NewSummarySkipped(sessionID string) BaseEvent {
	return BaseEvent{
		Type:       TypeSummarySkipped,
		Data:       map[string]interface{}{"session_id": sessionID},
		OccurredAt: time.Now(),
	}
}

func NewTranslationCompleted(sessionID, model string, bullets int) BaseEvent {
	return BaseEvent{
		Type: TypeTranslationCompleted,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"model":      model,
			"bullets":    bullets,
		},
		OccurredAt: time.Now(),
	}
}
