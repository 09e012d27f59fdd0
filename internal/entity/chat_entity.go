package entity

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id            uuid.UUID
	ChatbotId     uuid.UUID
	UserId        uuid.UUID
	Content       string
	IsUserMessage bool
	CreatedAt     time.Time
}

type ChatbotParticipant struct {
	Id           uuid.UUID
	ChatbotId    uuid.UUID
	UserId       uuid.UUID
	JoinedAt     time.Time
	LastActive   time.Time
	MessageCount int
}
