package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatbotResponse struct {
	Id                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	EventName            string    `json:"event_name"`
	Description          string    `json:"description,omitempty"`
	StartDate            string    `json:"start_date"`
	EndDate              string    `json:"end_date,omitempty"`
	Status               string    `json:"status"`
	SystemPrompt         string    `json:"system_prompt,omitempty"`
	SinglePersonPrompt   string    `json:"single_person_prompt,omitempty"`
	MultiplePersonPrompt string    `json:"multiple_person_prompt,omitempty"`
	BackgroundImage      string    `json:"background_image,omitempty"`
	Public               bool      `json:"public"`
	Active               bool      `json:"active"`
	CreatedById          uuid.UUID `json:"created_by_id"`
	GuestCount           int64     `json:"guest_count"`
	ParticipantCount     int64     `json:"participant_count"`
	CreatedAt            time.Time `json:"created_at"`
}

type GuestResponse struct {
	Id           uuid.UUID `json:"id"`
	ChatbotId    uuid.UUID `json:"chatbot_id"`
	Name         string    `json:"name"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Email        string    `json:"email,omitempty"`
	Photo        string    `json:"photo,omitempty"`
	IsSpeaker    bool      `json:"is_speaker"`
	IsModerator  bool      `json:"is_moderator"`
}

// ChatbotForm carries the non-file fields of the multipart create/update
// request. Dates use the 2006-01-02 layout; an empty end_date means the
// event never expires.
type ChatbotForm struct {
	Name                 string `form:"name" validate:"required,min=2"`
	EventName            string `form:"event_name" validate:"required,min=2"`
	Description          string `form:"description"`
	StartDate            string `form:"start_date" validate:"required"`
	EndDate              string `form:"end_date"`
	SystemPrompt         string `form:"system_prompt"`
	SinglePersonPrompt   string `form:"single_person_prompt"`
	MultiplePersonPrompt string `form:"multiple_person_prompt"`
	Public               string `form:"public"`
	Active               string `form:"active"`
	Guests               string `form:"guests"`
	UpdateGuests         string `form:"update_guests"`
	DeleteGuests         string `form:"delete_guests"`
}

// ChatbotUpdateForm carries the non-file fields of the multipart update
// request. Nil fields are left untouched. An end_date supplied as an empty
// string clears the expiry to the no-expiry sentinel.
type ChatbotUpdateForm struct {
	Name                 *string `form:"name" validate:"omitempty,min=2"`
	EventName            *string `form:"event_name" validate:"omitempty,min=2"`
	Description          *string `form:"description"`
	StartDate            *string `form:"start_date"`
	EndDate              *string `form:"end_date"`
	SystemPrompt         *string `form:"system_prompt"`
	SinglePersonPrompt   *string `form:"single_person_prompt"`
	MultiplePersonPrompt *string `form:"multiple_person_prompt"`
	Public               *string `form:"public"`
	Active               *string `form:"active"`
	Guests               string  `form:"guests"`
	UpdateGuests         string  `form:"update_guests"`
	DeleteGuests         string  `form:"delete_guests"`
}

// GuestInput is one element of the manual guests JSON array on the
// multipart form. PhotoKey links the row to a guest_photo_<key> form file.
type GuestInput struct {
	Name         string `json:"name" validate:"required"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	PhotoKey     string `json:"photo_key"`
	IsSpeaker    bool   `json:"is_speaker"`
	IsModerator  bool   `json:"is_moderator"`
}

// GuestUpdate is one element of the update_guests JSON array. Nil fields
// are left untouched.
type GuestUpdate struct {
	Id           uuid.UUID `json:"id" validate:"required"`
	Name         *string   `json:"name"`
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Organization *string   `json:"organization"`
	Email        *string   `json:"email"`
	PhotoKey     string    `json:"photo_key"`
	IsSpeaker    *bool     `json:"is_speaker"`
	IsModerator  *bool     `json:"is_moderator"`
}

// GuestForm carries the non-file fields of a single-guest create or update.
type GuestForm struct {
	Name         string `form:"name" validate:"required"`
	Title        string `form:"title"`
	Description  string `form:"description"`
	Organization string `form:"organization"`
	Email        string `form:"email" validate:"omitempty,email"`
	IsSpeaker    string `form:"is_speaker"`
	IsModerator  string `form:"is_moderator"`
}

type ChatbotDetailResponse struct {
	Chatbot ChatbotResponse `json:"chatbot"`
	Guests  []GuestResponse `json:"guests"`
}

// ChatbotSettingsResponse is the admin settings snapshot.
type ChatbotSettingsResponse struct {
	Id                   uuid.UUID `json:"id"`
	SystemPrompt         string    `json:"system_prompt"`
	SinglePersonPrompt   string    `json:"single_person_prompt"`
	MultiplePersonPrompt string    `json:"multiple_person_prompt"`
	Public               bool      `json:"public"`
	Active               bool      `json:"active"`
	StartDate            string    `json:"start_date"`
	EndDate              string    `json:"end_date,omitempty"`
	IsInfiniteEndDate    bool      `json:"is_infinite_end_date"`
}

// ChatbotStatsResponse splits message traffic and membership counts.
type ChatbotStatsResponse struct {
	ChatbotId        uuid.UUID `json:"chatbot_id"`
	TotalMessages    int64     `json:"total_messages"`
	UserMessages     int64     `json:"user_messages"`
	BotMessages      int64     `json:"bot_messages"`
	GuestCount       int64     `json:"guest_count"`
	ParticipantCount int64     `json:"participant_count"`
}
