package contract

import (
	"context"
	"time"

	"eventchat-be/internal/entity"
	"eventchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error
	UpdateLastLogin(ctx context.Context, userId uuid.UUID, at time.Time) error

	// Session tokens live with the user aggregate.
	CreateSessionToken(ctx context.Context, token *entity.SessionToken) error
	FindSessionToken(ctx context.Context, specs ...specification.Specification) (*entity.SessionToken, error)
	DeleteSessionToken(ctx context.Context, id uuid.UUID) error
	DeleteSessionTokensByUser(ctx context.Context, userId uuid.UUID) error
}
