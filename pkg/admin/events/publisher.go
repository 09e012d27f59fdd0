package events

import (
	"context"
	"time"

	"eventchat-be/internal/pkg/logger"
	"eventchat-be/pkg/bus"
	pkgEvents "eventchat-be/pkg/events"

	"github.com/google/uuid"
)

// Publisher abstracts audit event publishing for admin operations. Events
// land in the admin notification feed.
type Publisher interface {
	PublishUserCreated(ctx context.Context, userId uuid.UUID, email, name, source string)
	PublishUserDeleted(ctx context.Context, userId uuid.UUID, username string)
	PublishUsersImported(ctx context.Context, created, skipped int, filename string)
	PublishChatbotCreated(ctx context.Context, chatbotId uuid.UUID, name, eventName string)
	PublishChatbotUpdated(ctx context.Context, chatbotId uuid.UUID, name string)
	PublishChatbotDeleted(ctx context.Context, chatbotId uuid.UUID, name string)
	PublishChatbotJoined(ctx context.Context, chatbotId, userId uuid.UUID, chatbotName, username string)
	PublishPasswordReset(ctx context.Context, userId uuid.UUID, username string)
}

// BusPublisher implements Publisher on the in-process bus.
type BusPublisher struct {
	publisher *bus.Publisher
	logger    logger.ILogger
}

func NewBusPublisher(publisher *bus.Publisher, logger logger.ILogger) *BusPublisher {
	return &BusPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *BusPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *BusPublisher) PublishUserCreated(ctx context.Context, userId uuid.UUID, email, name, source string) {
	p.publish(ctx, pkgEvents.TypeUserCreated, map[string]interface{}{
		"user_id":     userId.String(),
		"email":       email,
		"name":        name,
		"source":      source,
		"entity_type": "user",
		"entity_id":   userId.String(),
	})
}

func (p *BusPublisher) PublishUserDeleted(ctx context.Context, userId uuid.UUID, username string) {
	p.publish(ctx, pkgEvents.TypeUserDeleted, map[string]interface{}{
		"user_id":     userId.String(),
		"username":    username,
		"entity_type": "user",
		"entity_id":   userId.String(),
	})
}

func (p *BusPublisher) PublishUsersImported(ctx context.Context, created, skipped int, filename string) {
	p.publish(ctx, pkgEvents.TypeUsersImported, map[string]interface{}{
		"created":  created,
		"skipped":  skipped,
		"filename": filename,
	})
}

func (p *BusPublisher) PublishChatbotCreated(ctx context.Context, chatbotId uuid.UUID, name, eventName string) {
	p.publish(ctx, pkgEvents.TypeChatbotCreated, map[string]interface{}{
		"chatbot_id":  chatbotId.String(),
		"name":        name,
		"event_name":  eventName,
		"entity_type": "chatbot",
		"entity_id":   chatbotId.String(),
	})
}

func (p *BusPublisher) PublishChatbotUpdated(ctx context.Context, chatbotId uuid.UUID, name string) {
	p.publish(ctx, pkgEvents.TypeChatbotUpdated, map[string]interface{}{
		"chatbot_id":  chatbotId.String(),
		"name":        name,
		"entity_type": "chatbot",
		"entity_id":   chatbotId.String(),
	})
}

func (p *BusPublisher) PublishChatbotDeleted(ctx context.Context, chatbotId uuid.UUID, name string) {
	p.publish(ctx, pkgEvents.TypeChatbotDeleted, map[string]interface{}{
		"chatbot_id":  chatbotId.String(),
		"name":        name,
		"entity_type": "chatbot",
		"entity_id":   chatbotId.String(),
	})
}

func (p *BusPublisher) PublishChatbotJoined(ctx context.Context, chatbotId, userId uuid.UUID, chatbotName, username string) {
	p.publish(ctx, pkgEvents.TypeChatbotJoined, map[string]interface{}{
		"chatbot_id":   chatbotId.String(),
		"chatbot_name": chatbotName,
		"user_id":      userId.String(),
		"username":     username,
		"entity_type":  "chatbot",
		"entity_id":    chatbotId.String(),
	})
}

func (p *BusPublisher) PublishPasswordReset(ctx context.Context, userId uuid.UUID, username string) {
	p.publish(ctx, pkgEvents.TypePasswordReset, map[string]interface{}{
		"user_id":     userId.String(),
		"username":    username,
		"entity_type": "user",
		"entity_id":   userId.String(),
	})
}
