package events

import "time"

// Event defines the contract for all workspace events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "FILE_UPLOADED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the standard implementation used by the publishers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
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

// Event type codes for the memo pipeline.
const (
	TypeFileUploaded     = "FILE_UPLOADED"
	TypeModelCall        = "MODEL_CALL_COMPLETED"
	TypeSummaryGenerated = "SUMMARY_GENERATED"
	TypeChatTurn         = "CHAT_TURN_COMPLETED"
	TypeMemoDrafted      = "MEMO_DRAFTED"
	TypeExportProduced   = "EXPORT_PRODUCED"
)

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
