package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationRetention is how long admin notifications are kept before the
// lazy purge removes them.
const NotificationRetention = 7 * 24 * time.Hour

type AdminNotification struct {
	Id         uuid.UUID
	Title      string
	Message    string
	EntityType string
	EntityId   *uuid.UUID
	Metadata   map[string]interface{}
	IsRead     bool
	CreatedAt  time.Time
}
