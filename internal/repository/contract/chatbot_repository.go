package contract

import (
	"context"

	"eventchat-be/internal/entity"
	"eventchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatbotRepository interface {
	Create(ctx context.Context, chatbot *entity.Chatbot) error
	Update(ctx context.Context, chatbot *entity.Chatbot) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chatbot, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chatbot, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type GuestRepository interface {
	Create(ctx context.Context, guest *entity.Guest) error
	Update(ctx context.Context, guest *entity.Guest) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Guest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Guest, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAllByChatbot(ctx context.Context, chatbotId uuid.UUID) error
	DeleteAllByUser(ctx context.Context, userId uuid.UUID) error
	UnlinkUser(ctx context.Context, userId uuid.UUID) error
}
