package controller

import (
	"eventchat-be/internal/dto"
	"eventchat-be/internal/entity"
)

func profileFromUser(u *entity.User) dto.UserProfileResponse {
	res := dto.UserProfileResponse{
		Id:        u.Id,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Active:    u.Active,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
	if u.ProfilePicture != nil {
		res.ProfilePicture = *u.ProfilePicture
	}
	if u.Bio != nil {
		res.Bio = *u.Bio
	}
	if u.Organization != nil {
		res.Organization = *u.Organization
	}
	return res
}
