package models

import (
	"time"

	"gorm.io/datatypes"
)

// Document is the metadata row for an uploaded file. UserID is advisory at
// this layer: it is recorded as sent, not checked against users.
type Document struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	FilePath     string         `gorm:"not null;type:text" json:"file_path"`
	DocumentType string         `gorm:"size:100" json:"document_type"`
	ParsedData   datatypes.JSON `gorm:"type:jsonb" json:"parsed_data,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (Document) TableName() string {
	return "documents"
}
