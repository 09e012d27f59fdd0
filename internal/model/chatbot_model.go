package model

import (
	"time"

	"github.com/google/uuid"
)

type Chatbot struct {
	Id                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                 string    `gorm:"type:varchar(255);not null;index"`
	EventName            string    `gorm:"type:varchar(255);not null"`
	Description          string    `gorm:"type:text"`
	StartDate            time.Time `gorm:"type:date;not null"`
	EndDate              time.Time `gorm:"type:date;not null"`
	SystemPrompt         string    `gorm:"type:text;not null"`
	SinglePersonPrompt   string    `gorm:"type:text;not null"`
	MultiplePersonPrompt string    `gorm:"type:text;not null"`
	BackgroundImage      string    `gorm:"type:varchar(255);not null"`
	Public               bool      `gorm:"default:true"`
	Active               bool      `gorm:"default:true"`
	CreatedById          uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (Chatbot) TableName() string {
	return "chatbots"
}

type Guest struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatbotId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserId       *uuid.UUID `gorm:"type:uuid;index"`
	Name         string     `gorm:"type:varchar(255);not null"`
	Title        string     `gorm:"type:varchar(255)"`
	Description  string     `gorm:"type:text"`
	Photo        string     `gorm:"type:varchar(255)"`
	Organization string     `gorm:"type:varchar(255)"`
	Email        string     `gorm:"type:varchar(255)"`
	IsSpeaker    bool       `gorm:"default:false"`
	IsModerator  bool       `gorm:"default:false"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
}

func (Guest) TableName() string {
	return "guests"
}
