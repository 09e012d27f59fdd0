package mapper

import (
	"eventchat-be/internal/entity"
	"eventchat-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:             u.Id,
		Username:       u.Username,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		Name:           u.Name,
		Role:           entity.UserRole(u.Role),
		Active:         u.Active,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		Organization:   u.Organization,
		LastLogin:      u.LastLogin,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:             u.Id,
		Username:       u.Username,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		Name:           u.Name,
		Role:           string(u.Role),
		Active:         u.Active,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		Organization:   u.Organization,
		LastLogin:      u.LastLogin,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

// Session Token Mappers

func (m *UserMapper) SessionTokenToEntity(t *model.SessionToken) *entity.SessionToken {
	if t == nil {
		return nil
	}
	return &entity.SessionToken{
		Id:        t.Id,
		UserId:    t.UserId,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
}

func (m *UserMapper) SessionTokenToModel(t *entity.SessionToken) *model.SessionToken {
	if t == nil {
		return nil
	}
	return &model.SessionToken{
		Id:        t.Id,
		UserId:    t.UserId,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
}
