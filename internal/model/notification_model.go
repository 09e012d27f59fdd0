package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdminNotification is an append-only system event log entry shown on the
// admin dashboard. Rows older than the retention window are purged lazily.
type AdminNotification struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title      string         `gorm:"type:varchar(200);not null"`
	Message    string         `gorm:"type:text;not null"`
	EntityType string         `gorm:"type:varchar(50);index"`
	EntityId   *uuid.UUID     `gorm:"type:uuid"`
	Metadata   datatypes.JSON `gorm:"type:jsonb"`
	IsRead     bool           `gorm:"default:false;index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index"`
}

func (AdminNotification) TableName() string {
	return "admin_notifications"
}
