package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChatSession is schema-only for now; no chat endpoints are served by the core.
type ChatSession struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Messages  datatypes.JSON `gorm:"type:jsonb" json:"messages"`
	CreatedAt time.Time      `json:"created_at"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
