package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"docedit-be/internal/entity"
	"docedit-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) (*entity.Document, error) {
	if d == nil {
		return nil, nil
	}

	e := &entity.Document{
		Id:             d.Id,
		UserId:         d.UserId,
		Title:          d.Title,
		Preview:        d.Preview,
		CheckboxCount:  d.CheckboxCount,
		ExportCount:    d.ExportCount,
		LastExportedAt: d.LastExportedAt,
		CreatedAt:      d.CreatedAt,
		IsDeleted:      d.DeletedAt.Valid,
	}
	if len(d.Content) > 0 {
		if err := json.Unmarshal(d.Content, &e.Content); err != nil {
			return nil, fmt.Errorf("decode content of document %s: %w", d.Id, err)
		}
	}
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		e.DeletedAt = &t
	}
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		e.UpdatedAt = &t
	}
	return e, nil
}

func (m *DocumentMapper) ToModel(d *entity.Document) (*model.Document, error) {
	if d == nil {
		return nil, nil
	}

	content, err := json.Marshal(d.Content)
	if err != nil {
		return nil, fmt.Errorf("encode content of document %s: %w", d.Id, err)
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:             d.Id,
		UserId:         d.UserId,
		Title:          d.Title,
		Content:        datatypes.JSON(content),
		Preview:        d.Preview,
		CheckboxCount:  d.CheckboxCount,
		ExportCount:    d.ExportCount,
		LastExportedAt: d.LastExportedAt,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}, nil
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) ([]*entity.Document, error) {
	entities := make([]*entity.Document, len(documents))
	for i, d := range documents {
		e, err := m.ToEntity(d)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
