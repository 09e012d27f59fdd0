package contract

import (
	"context"
	"time"

	"eventchat-be/internal/entity"
	"eventchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAllByChatbot(ctx context.Context, chatbotId uuid.UUID) error
	DeleteAllByUser(ctx context.Context, userId uuid.UUID) error
}

type ParticipantRepository interface {
	Create(ctx context.Context, participant *entity.ChatbotParticipant) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatbotParticipant, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatbotParticipant, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	RecordActivity(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteAllByChatbot(ctx context.Context, chatbotId uuid.UUID) error
	DeleteAllByUser(ctx context.Context, userId uuid.UUID) error
}
