package events

import "time"

// Event is the contract for everything published on the in-process bus.
type Event interface {
	// EventType returns the unique code for this event (e.g. "CHATBOT_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used by all publishers.
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

// Event type codes consumed by the admin notification worker.
const (
	TypeUserCreated    = "USER_CREATED"
	TypeUserDeleted    = "USER_DELETED"
	TypeUsersImported  = "USERS_IMPORTED"
	TypeChatbotCreated = "CHATBOT_CREATED"
	TypeChatbotUpdated = "CHATBOT_UPDATED"
	TypeChatbotDeleted = "CHATBOT_DELETED"
	TypeChatbotJoined  = "CHATBOT_JOINED"
	TypePasswordReset  = "PASSWORD_RESET"
)

// Mail event codes consumed by the outbound mail worker.
const (
	TypeMailCredentials  = "MAIL_CREDENTIALS"
	TypeMailTempPassword = "MAIL_TEMP_PASSWORD"
)
