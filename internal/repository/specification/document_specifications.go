package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// TitleContains is a case-insensitive substring match on the title.
type TitleContains struct {
	Query string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	q := strings.TrimSpace(s.Query)
	if q == "" {
		return db
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
	return db.Where("title ILIKE ?", "%"+escaped+"%")
}

// WithCheckboxes keeps documents that contain at least one checkbox.
type WithCheckboxes struct{}

func (s WithCheckboxes) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("checkbox_count > 0")
}

// ExportedOnly keeps documents exported at least once.
type ExportedOnly struct{}

func (s ExportedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("export_count > 0")
}
