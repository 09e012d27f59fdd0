package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eventchat-be/internal/dto"
	"eventchat-be/internal/entity"
	"eventchat-be/internal/pkg/logger"
	"eventchat-be/internal/repository/specification"
	"eventchat-be/internal/repository/unitofwork"
	"eventchat-be/pkg/bus"
	pkgEvents "eventchat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type INotificationService interface {
	List(ctx context.Context, limit int) (*dto.NotificationListResponse, error)
	MarkAllRead(ctx context.Context) error
	Consume(ctx context.Context) error
}

type notificationService struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewNotificationService(
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) INotificationService {
	return &notificationService{
		pubSub:     pubSub,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// List purges notifications past retention, then returns the newest ones
// with the unread counter.
func (s *notificationService) List(ctx context.Context, limit int) (*dto.NotificationListResponse, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	cutoff := time.Now().Add(-entity.NotificationRetention)
	if err := uow.NotificationRepository().DeleteOlderThan(ctx, cutoff); err != nil {
		s.logger.Warn("NOTIFICATION", "Failed to purge old notifications", map[string]interface{}{"error": err.Error()})
	}

	notifications, err := uow.NotificationRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: 0},
	)
	if err != nil {
		return nil, err
	}

	unread, err := uow.NotificationRepository().CountUnread(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, dto.NotificationResponse{
			Id:         n.Id,
			Title:      n.Title,
			Message:    n.Message,
			EntityType: n.EntityType,
			EntityId:   n.EntityId,
			Metadata:   n.Metadata,
			IsRead:     n.IsRead,
			CreatedAt:  n.CreatedAt,
		})
	}

	return &dto.NotificationListResponse{
		Notifications: items,
		UnreadCount:   unread,
	}, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllRead(ctx)
}

// Consume subscribes to the admin events topic and materializes each event
// as a notification row.
func (s *notificationService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, bus.TopicAdminEvents)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *notificationService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope bus.Envelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		s.logger.Error("NOTIFICATION", "Failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed payloads never become valid on retry
		return
	}

	notification := notificationFromEnvelope(envelope)
	if notification == nil {
		msg.Ack()
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		s.logger.Error("NOTIFICATION", "Failed to store notification", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	msg.Ack()
}

func stringField(data map[string]interface{}, key string) string {
	v, _ := data[key].(string)
	return v
}

// notificationFromEnvelope translates a bus event into the row shown on
// the admin feed. Unknown event types are dropped.
func notificationFromEnvelope(envelope bus.Envelope) *entity.AdminNotification {
	data := envelope.Data
	if data == nil {
		data = map[string]interface{}{}
	}

	var title, text string
	switch envelope.Type {
	case pkgEvents.TypeUserCreated:
		title = "User created"
		text = fmt.Sprintf("Account %s was created", stringField(data, "email"))
	case pkgEvents.TypeUserDeleted:
		title = "User deleted"
		text = fmt.Sprintf("Account %s was deleted", stringField(data, "username"))
	case pkgEvents.TypeUsersImported:
		title = "Users imported"
		created, _ := data["created"].(float64)
		skipped, _ := data["skipped"].(float64)
		text = fmt.Sprintf("Import of %s finished: %d created, %d skipped",
			stringField(data, "filename"), int(created), int(skipped))
	case pkgEvents.TypeChatbotCreated:
		title = "Chatbot created"
		text = fmt.Sprintf("Chatbot %q was created for %s",
			stringField(data, "name"), stringField(data, "event_name"))
	case pkgEvents.TypeChatbotUpdated:
		title = "Chatbot updated"
		text = fmt.Sprintf("Chatbot %q was updated", stringField(data, "name"))
	case pkgEvents.TypeChatbotDeleted:
		title = "Chatbot deleted"
		text = fmt.Sprintf("Chatbot %q was deleted", stringField(data, "name"))
	case pkgEvents.TypeChatbotJoined:
		title = "New participant"
		text = fmt.Sprintf("%s joined %q",
			stringField(data, "username"), stringField(data, "chatbot_name"))
	case pkgEvents.TypePasswordReset:
		title = "Password reset"
		text = fmt.Sprintf("Password was reset for %s", stringField(data, "username"))
	default:
		return nil
	}

	notification := &entity.AdminNotification{
		Id:         uuid.New(),
		Title:      title,
		Message:    text,
		EntityType: stringField(data, "entity_type"),
		Metadata:   data,
		CreatedAt:  envelope.OccurredAt,
	}
	if raw := stringField(data, "entity_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			notification.EntityId = &id
		}
	}
	return notification
}
