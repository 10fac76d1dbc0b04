package repository

import (
	"context"
	"strings"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, template *domain.Template) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error) {
	var template domain.Template
	err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// GetWithContents loads a template together with its variables and its
// categories and their elements, categories and elements in position order.
// This is the shape the cloning and sync engines consume.
func (r *TemplateRepository) GetWithContents(ctx context.Context, id uuid.UUID) (*domain.Template, error) {
	var template domain.Template
	err := r.db.WithContext(ctx).
		Preload("Variables", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Categories.Elements", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepository) Update(ctx context.Context, template *domain.Template) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *TemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Template{}, "id = ?", id).Error
}

func (r *TemplateRepository) List(ctx context.Context, page, pageSize int, search string) ([]domain.Template, int64, error) {
	var templates []domain.Template
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Template{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&templates).Error

	return templates, total, err
}
