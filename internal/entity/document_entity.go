package entity

import (
	"time"

	"docedit-be/pkg/docmodel"

	"github.com/google/uuid"
)

type Document struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Title          string
	Content        docmodel.Document
	Preview        string
	CheckboxCount  int
	ExportCount    int
	LastExportedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
