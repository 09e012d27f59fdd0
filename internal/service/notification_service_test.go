package service

import (
	"testing"
	"time"

	"eventchat-be/pkg/bus"
	pkgEvents "eventchat-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotificationFromEnvelope(t *testing.T) {
	occurred := time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)
	entityId := uuid.New()

	t.Run("chatbot created", func(t *testing.T) {
		n := notificationFromEnvelope(bus.Envelope{
			Type: pkgEvents.TypeChatbotCreated,
			Data: map[string]interface{}{
				"name":        "Tech Summit Bot",
				"event_name":  "Tech Summit 2026",
				"entity_type": "chatbot",
				"entity_id":   entityId.String(),
			},
			OccurredAt: occurred,
		})

		assert.NotNil(t, n)
		assert.Equal(t, "Chatbot created", n.Title)
		assert.Contains(t, n.Message, "Tech Summit Bot")
		assert.Contains(t, n.Message, "Tech Summit 2026")
		assert.Equal(t, "chatbot", n.EntityType)
		assert.NotNil(t, n.EntityId)
		assert.Equal(t, entityId, *n.EntityId)
		assert.Equal(t, occurred, n.CreatedAt)
	})

	t.Run("users imported counts decoded from json numbers", func(t *testing.T) {
		n := notificationFromEnvelope(bus.Envelope{
			Type: pkgEvents.TypeUsersImported,
			Data: map[string]interface{}{
				"filename": "attendees.xlsx",
				"created":  float64(12),
				"skipped":  float64(3),
			},
			OccurredAt: occurred,
		})

		assert.NotNil(t, n)
		assert.Contains(t, n.Message, "attendees.xlsx")
		assert.Contains(t, n.Message, "12 created")
		assert.Contains(t, n.Message, "3 skipped")
	})

	t.Run("invalid entity id leaves pointer nil", func(t *testing.T) {
		n := notificationFromEnvelope(bus.Envelope{
			Type:       pkgEvents.TypeUserDeleted,
			Data:       map[string]interface{}{"username": "jdoe", "entity_id": "not-a-uuid"},
			OccurredAt: occurred,
		})

		assert.NotNil(t, n)
		assert.Nil(t, n.EntityId)
	})

	t.Run("unknown event types are dropped", func(t *testing.T) {
		n := notificationFromEnvelope(bus.Envelope{
			Type:       "SOMETHING_ELSE",
			OccurredAt: occurred,
		})

		assert.Nil(t, n)
	})
}
