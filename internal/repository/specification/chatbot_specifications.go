package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PublicAndActive narrows chatbots to those discoverable by end users.
type PublicAndActive struct{}

func (s PublicAndActive) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("public = ? AND active = ?", true, true)
}

// SearchText applies a case-insensitive substring search across the
// chatbot name, event name and description.
type SearchText struct {
	Query string
}

func (s SearchText) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("name ILIKE ? OR event_name ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
}

// ByChatbot filters rows by their owning chatbot
type ByChatbot struct {
	ChatbotID uuid.UUID
}

func (s ByChatbot) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chatbot_id = ?", s.ChatbotID)
}

// ByCreator filters chatbots by their creating admin
type ByCreator struct {
	UserID uuid.UUID
}

func (s ByCreator) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_by_id = ?", s.UserID)
}

// UserMessages narrows messages to the user- or bot-authored half.
type UserMessages struct {
	FromUser bool
}

func (s UserMessages) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_user_message = ?", s.FromUser)
}

// StartsAfter filters chatbots whose event begins after the given date.
type StartsAfter struct {
	Date string // YYYY-MM-DD
}

func (s StartsAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("start_date > ?", s.Date)
}
