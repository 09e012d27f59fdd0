package service

import (
	"context"
	"encoding/json"

	"eventchat-be/internal/pkg/logger"
	"eventchat-be/internal/pkg/mailer"
	"eventchat-be/pkg/bus"
	pkgEvents "eventchat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IMailConsumerService interface {
	Consume(ctx context.Context) error
}

// mailConsumerService drains the outbound mail topic so SMTP latency never
// sits on a request path.
type mailConsumerService struct {
	pubSub       *gochannel.GoChannel
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewMailConsumerService(
	pubSub *gochannel.GoChannel,
	emailService mailer.IEmailService,
	logger logger.ILogger,
) IMailConsumerService {
	return &mailConsumerService{
		pubSub:       pubSub,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *mailConsumerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, bus.TopicMailOutbound)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *mailConsumerService) processMessage(msg *message.Message) {
	var envelope bus.Envelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		s.logger.Error("MAILER", "Failed to unmarshal mail event", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	data := envelope.Data
	email := stringField(data, "email")
	name := stringField(data, "name")

	var err error
	switch envelope.Type {
	case pkgEvents.TypeMailCredentials:
		err = s.emailService.SendCredentials(email, name, stringField(data, "username"), stringField(data, "password"))
	case pkgEvents.TypeMailTempPassword:
		err = s.emailService.SendTemporaryPassword(email, name, stringField(data, "password"))
	default:
		s.logger.Warn("MAILER", "Unknown mail event type", map[string]interface{}{"type": envelope.Type})
	}

	if err != nil {
		// Delivery is best effort; the credentials were already returned to
		// the admin in the API response.
		s.logger.Error("MAILER", "Failed to send mail", map[string]interface{}{
			"type":  envelope.Type,
			"to":    email,
			"error": err.Error(),
		})
	}

	msg.Ack()
}
