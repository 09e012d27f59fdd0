package dto

import (
	"time"

	"github.com/google/uuid"
)

type DashboardStatsResponse struct {
	TotalChatbots     int64 `json:"total_chatbots"`
	ActiveChatbots    int64 `json:"active_chatbots"`
	TotalUsers        int64 `json:"total_users"`
	ActiveUsers       int64 `json:"active_users"`
	TotalMessages     int64 `json:"total_messages"`
	UpcomingEvents    int64 `json:"upcoming_events"`
	UsersThisMonth    int64 `json:"users_this_month"`
	ChatbotsThisMonth int64 `json:"chatbots_this_month"`
}

// AdminUserDetailResponse is the single-user admin view with usage counts.
type AdminUserDetailResponse struct {
	UserProfileResponse
	ChatbotsCreated int64 `json:"chatbots_created"`
	MessagesSent    int64 `json:"messages_sent"`
}

type NotificationResponse struct {
	Id         uuid.UUID              `json:"id"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	EntityType string                 `json:"entity_type,omitempty"`
	EntityId   *uuid.UUID             `json:"entity_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	IsRead     bool                   `json:"is_read"`
	CreatedAt  time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}
