package mapper

import (
	"encoding/json"

	"eventchat-be/internal/entity"
	"eventchat-be/internal/model"

	"gorm.io/datatypes"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.AdminNotification) *entity.AdminNotification {
	if n == nil {
		return nil
	}
	var meta map[string]interface{}
	if len(n.Metadata) > 0 {
		_ = json.Unmarshal(n.Metadata, &meta)
	}
	return &entity.AdminNotification{
		Id:         n.Id,
		Title:      n.Title,
		Message:    n.Message,
		EntityType: n.EntityType,
		EntityId:   n.EntityId,
		Metadata:   meta,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(n *entity.AdminNotification) *model.AdminNotification {
	if n == nil {
		return nil
	}
	var meta datatypes.JSON
	if n.Metadata != nil {
		raw, err := json.Marshal(n.Metadata)
		if err == nil {
			meta = datatypes.JSON(raw)
		}
	}
	return &model.AdminNotification{
		Id:         n.Id,
		Title:      n.Title,
		Message:    n.Message,
		EntityType: n.EntityType,
		EntityId:   n.EntityId,
		Metadata:   meta,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntities(ns []*model.AdminNotification) []*entity.AdminNotification {
	entities := make([]*entity.AdminNotification, len(ns))
	for i, n := range ns {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
