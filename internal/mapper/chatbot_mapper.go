package mapper

import (
	"eventchat-be/internal/entity"
	"eventchat-be/internal/model"
)

type ChatbotMapper struct{}

func NewChatbotMapper() *ChatbotMapper {
	return &ChatbotMapper{}
}

func (m *ChatbotMapper) ToEntity(c *model.Chatbot) *entity.Chatbot {
	if c == nil {
		return nil
	}
	return &entity.Chatbot{
		Id:                   c.Id,
		Name:                 c.Name,
		EventName:            c.EventName,
		Description:          c.Description,
		StartDate:            c.StartDate,
		EndDate:              c.EndDate,
		SystemPrompt:         c.SystemPrompt,
		SinglePersonPrompt:   c.SinglePersonPrompt,
		MultiplePersonPrompt: c.MultiplePersonPrompt,
		BackgroundImage:      c.BackgroundImage,
		Public:               c.Public,
		Active:               c.Active,
		CreatedById:          c.CreatedById,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func (m *ChatbotMapper) ToModel(c *entity.Chatbot) *model.Chatbot {
	if c == nil {
		return nil
	}
	return &model.Chatbot{
		Id:                   c.Id,
		Name:                 c.Name,
		EventName:            c.EventName,
		Description:          c.Description,
		StartDate:            c.StartDate,
		EndDate:              c.EndDate,
		SystemPrompt:         c.SystemPrompt,
		SinglePersonPrompt:   c.SinglePersonPrompt,
		MultiplePersonPrompt: c.MultiplePersonPrompt,
		BackgroundImage:      c.BackgroundImage,
		Public:               c.Public,
		Active:               c.Active,
		CreatedById:          c.CreatedById,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func (m *ChatbotMapper) ToEntities(bots []*model.Chatbot) []*entity.Chatbot {
	entities := make([]*entity.Chatbot, len(bots))
	for i, c := range bots {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

// Guest Mappers

func (m *ChatbotMapper) GuestToEntity(g *model.Guest) *entity.Guest {
	if g == nil {
		return nil
	}
	return &entity.Guest{
		Id:           g.Id,
		ChatbotId:    g.ChatbotId,
		UserId:       g.UserId,
		Name:         g.Name,
		Title:        g.Title,
		Description:  g.Description,
		Photo:        g.Photo,
		Organization: g.Organization,
		Email:        g.Email,
		IsSpeaker:    g.IsSpeaker,
		IsModerator:  g.IsModerator,
		CreatedAt:    g.CreatedAt,
	}
}

func (m *ChatbotMapper) GuestToModel(g *entity.Guest) *model.Guest {
	if g == nil {
		return nil
	}
	return &model.Guest{
		Id:           g.Id,
		ChatbotId:    g.ChatbotId,
		UserId:       g.UserId,
		Name:         g.Name,
		Title:        g.Title,
		Description:  g.Description,
		Photo:        g.Photo,
		Organization: g.Organization,
		Email:        g.Email,
		IsSpeaker:    g.IsSpeaker,
		IsModerator:  g.IsModerator,
		CreatedAt:    g.CreatedAt,
	}
}

func (m *ChatbotMapper) GuestsToEntities(guests []*model.Guest) []*entity.Guest {
	entities := make([]*entity.Guest, len(guests))
	for i, g := range guests {
		entities[i] = m.GuestToEntity(g)
	}
	return entities
}
