package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Document is an uploaded original. Content holds the structural document as
// JSONB and is never rewritten by edits; exports replay onto it.
type Document struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Content        datatypes.JSON `gorm:"type:jsonb;not null"`
	Preview        string         `gorm:"type:text"`
	CheckboxCount  int            `gorm:"not null;default:0"`
	ExportCount    int            `gorm:"not null;default:0"`
	LastExportedAt *time.Time
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
