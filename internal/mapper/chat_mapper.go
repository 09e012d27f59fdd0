package mapper

import (
	"eventchat-be/internal/entity"
	"eventchat-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:            msg.Id,
		ChatbotId:     msg.ChatbotId,
		UserId:        msg.UserId,
		Content:       msg.Content,
		IsUserMessage: msg.IsUserMessage,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:            msg.Id,
		ChatbotId:     msg.ChatbotId,
		UserId:        msg.UserId,
		Content:       msg.Content,
		IsUserMessage: msg.IsUserMessage,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}

func (m *ChatMapper) ParticipantToEntity(p *model.ChatbotParticipant) *entity.ChatbotParticipant {
	if p == nil {
		return nil
	}
	return &entity.ChatbotParticipant{
		Id:           p.Id,
		ChatbotId:    p.ChatbotId,
		UserId:       p.UserId,
		JoinedAt:     p.JoinedAt,
		LastActive:   p.LastActive,
		MessageCount: p.MessageCount,
	}
}

func (m *ChatMapper) ParticipantToModel(p *entity.ChatbotParticipant) *model.ChatbotParticipant {
	if p == nil {
		return nil
	}
	return &model.ChatbotParticipant{
		Id:           p.Id,
		ChatbotId:    p.ChatbotId,
		UserId:       p.UserId,
		JoinedAt:     p.JoinedAt,
		LastActive:   p.LastActive,
		MessageCount: p.MessageCount,
	}
}

func (m *ChatMapper) ParticipantsToEntities(parts []*model.ChatbotParticipant) []*entity.ChatbotParticipant {
	entities := make([]*entity.ChatbotParticipant, len(parts))
	for i, p := range parts {
		entities[i] = m.ParticipantToEntity(p)
	}
	return entities
}
