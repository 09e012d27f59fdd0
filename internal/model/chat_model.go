package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatbotId     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Content       string    `gorm:"type:text;not null"`
	IsUserMessage bool      `gorm:"default:true"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}

// ChatbotParticipant tracks which users have joined which chatbots.
// The (chatbot_id, user_id) pair is unique.
type ChatbotParticipant struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatbotId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_chatbot_participant,priority:1"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_chatbot_participant,priority:2"`
	JoinedAt     time.Time `gorm:"autoCreateTime"`
	LastActive   time.Time `gorm:"autoCreateTime"`
	MessageCount int       `gorm:"default:0"`
}

func (ChatbotParticipant) TableName() string {
	return "chatbot_participants"
}
