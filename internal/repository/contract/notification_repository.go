package contract

import (
	"context"
	"time"

	"eventchat-be/internal/entity"
	"eventchat-be/internal/repository/specification"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.AdminNotification) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AdminNotification, error)
	CountUnread(ctx context.Context) (int64, error)
	MarkAllRead(ctx context.Context) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) error
}
