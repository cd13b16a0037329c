package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	DocumentUploaded = "DOCUMENT_UPLOADED"
	CheckboxToggled  = "CHECKBOX_TOGGLED"
	DocumentExported = "DOCUMENT_EXPORTED"
	SessionReset     = "SESSION_RESET"
)

// Event is what travels on the bus. ID is unique per occurrence and lets the
// broker drop duplicate publishes.
type Event interface {
	EventID() string
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	ID         string
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{ID: uuid.NewString(), Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventID() string                 { return e.ID }
func (e BaseEvent) EventType() string               { return e.Type }
func (e BaseEvent) Payload() map[string]interface{} { return e.Data }
func (e BaseEvent) Timestamp() time.Time            { return e.OccurredAt }

// DocumentID reads the "document_id" field, which every document event
// carries as a UUID string once it has crossed the wire.
func DocumentID(e Event) (uuid.UUID, bool) {
	switch v := e.Payload()["document_id"].(type) {
	case uuid.UUID:
		return v, true
	case string:
		id, err := uuid.Parse(v)
		return id, err == nil
	}
	return uuid.Nil, false
}
