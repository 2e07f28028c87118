package events

// EventType identifies what happened in the verification flow
type EventType string

const (
	// EventTypeVerificationCompleted fires after the role-select step succeeds
	EventTypeVerificationCompleted EventType = "verification_completed"
)

// Event is the base interface for all events
type Event interface {
	GetType() EventType
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type EventType
}

func (e *BaseEvent) GetType() EventType { return e.Type }

// CompletionRecord is the transient summary of a finished wizard
type CompletionRecord struct {
	GuildID       string
	UserID        string
	UserMention   string
	CharacterName string
	ClassName     string
	RoleName      string
}

// VerificationCompletedEvent carries the completion record to listeners
type VerificationCompletedEvent struct {
	BaseEvent
	Record CompletionRecord
}

// NewVerificationCompletedEvent creates the event for a finished wizard
func NewVerificationCompletedEvent(record CompletionRecord) *VerificationCompletedEvent {
	return &VerificationCompletedEvent{
		BaseEvent: BaseEvent{Type: EventTypeVerificationCompleted},
		Record:    record,
	}
}
