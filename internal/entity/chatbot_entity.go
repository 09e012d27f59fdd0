// FILE: internal/entity/chatbot_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatbotStatus string

const (
	ChatbotStatusPending ChatbotStatus = "pending"
	ChatbotStatusActive  ChatbotStatus = "active"
	ChatbotStatusExpired ChatbotStatus = "expired"
)

// InfiniteEndDateYear marks an event with no expiry. A chatbot whose end date
// falls in this year is treated as never expiring.
const InfiniteEndDateYear = 9999

// InfiniteEndDate returns the sentinel end date stored for open-ended events.
func InfiniteEndDate() time.Time {
	return time.Date(InfiniteEndDateYear, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// Default prompt templates applied when the admin leaves them blank.
const (
	DefaultSinglePersonPrompt   = "Generate a professional portrait of the guest speaker described below, suitable for an event program."
	DefaultMultiplePersonPrompt = "Generate a group photo of the listed guest speakers on the event stage, suitable for an event program."
)

type Chatbot struct {
	Id                   uuid.UUID
	Name                 string
	EventName            string
	Description          string
	StartDate            time.Time
	EndDate              time.Time
	SystemPrompt         string
	SinglePersonPrompt   string
	MultiplePersonPrompt string
	BackgroundImage      string
	Public               bool
	Active               bool
	CreatedById          uuid.UUID
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsInfiniteEndDate reports whether the end date is the no-expiry sentinel.
func (c *Chatbot) IsInfiniteEndDate() bool {
	return c.EndDate.Year() >= InfiniteEndDateYear
}

// StatusAt derives the chatbot lifecycle status from the event date range.
// The comparison is by calendar date: expired only when today is strictly
// after a non-sentinel end date.
func (c *Chatbot) StatusAt(now time.Time) ChatbotStatus {
	today := truncateToDate(now)
	if today.Before(truncateToDate(c.StartDate)) {
		return ChatbotStatusPending
	}
	if !c.IsInfiniteEndDate() && today.After(truncateToDate(c.EndDate)) {
		return ChatbotStatusExpired
	}
	return ChatbotStatusActive
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type Guest struct {
	Id           uuid.UUID
	ChatbotId    uuid.UUID
	UserId       *uuid.UUID
	Name         string
	Title        string
	Description  string
	Photo        string
	Organization string
	Email        string
	IsSpeaker    bool
	IsModerator  bool
	CreatedAt    time.Time
}
