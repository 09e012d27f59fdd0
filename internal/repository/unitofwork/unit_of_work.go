package unitofwork

import (
	"context"

	"eventchat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatbotRepository() contract.ChatbotRepository
	GuestRepository() contract.GuestRepository
	MessageRepository() contract.MessageRepository
	ParticipantRepository() contract.ParticipantRepository
	NotificationRepository() contract.NotificationRepository
}
