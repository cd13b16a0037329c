package implementation

import (
	"context"
	"errors"
	"time"

	"docedit-be/internal/entity"
	"docedit-be/internal/mapper"
	"docedit-be/internal/model"
	"docedit-be/internal/repository/contract"
	"docedit-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentRepositoryImpl) save(ctx context.Context, document *entity.Document, write func(*gorm.DB, *model.Document) error) error {
	m, err := r.mapper.ToModel(document)
	if err != nil {
		return err
	}
	if err := write(r.db.WithContext(ctx), m); err != nil {
		return err
	}
	saved, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*document = *saved
	return nil
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, document *entity.Document) error {
	return r.save(ctx, document, func(db *gorm.DB, m *model.Document) error {
		return db.Create(m).Error
	})
}

func (r *DocumentRepositoryImpl) Update(ctx context.Context, document *entity.Document) error {
	return r.save(ctx, document, func(db *gorm.DB, m *model.Document) error {
		return db.Save(m).Error
	})
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Document{}, id).Error
}

// UpdatePreview touches only the preview column so it never races with a
// concurrent metadata update.
func (r *DocumentRepositoryImpl) UpdatePreview(ctx context.Context, id uuid.UUID, preview string) error {
	return r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ?", id).
		Update("preview", preview).Error
}

func (r *DocumentRepositoryImpl) MarkExported(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"export_count":     gorm.Expr("export_count + 1"),
			"last_exported_at": at,
		}).Error
}

func (r *DocumentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	var m model.Document
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *DocumentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var models []*model.Document
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

func (r *DocumentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Document{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
