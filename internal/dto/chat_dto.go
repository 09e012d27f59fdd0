package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

type MessageResponse struct {
	Id            uuid.UUID `json:"id"`
	ChatbotId     uuid.UUID `json:"chatbot_id"`
	UserId        uuid.UUID `json:"user_id"`
	Content       string    `json:"content"`
	IsUserMessage bool      `json:"is_user_message"`
	CreatedAt     time.Time `json:"created_at"`
}

type SendMessageResponse struct {
	UserMessage MessageResponse `json:"user_message"`
	BotReply    MessageResponse `json:"bot_reply"`
}

type JoinChatbotResponse struct {
	ChatbotId uuid.UUID `json:"chatbot_id"`
	JoinedAt  time.Time `json:"joined_at"`
}

type ParticipantResponse struct {
	Id           uuid.UUID `json:"id"`
	ChatbotId    uuid.UUID `json:"chatbot_id"`
	UserId       uuid.UUID `json:"user_id"`
	JoinedAt     time.Time `json:"joined_at"`
	LastActive   time.Time `json:"last_active"`
	MessageCount int       `json:"message_count"`
}
