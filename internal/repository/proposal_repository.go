package repository

import (
	"context"
	"strings"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

func (r *ProposalRepository) Create(ctx context.Context, proposal *domain.Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *ProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	var proposal domain.Proposal
	err := r.db.WithContext(ctx).First(&proposal, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// GetWithContents loads a proposal with its direct categories (and their
// elements) in position order, plus direct variables.
func (r *ProposalRepository) GetWithContents(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	var proposal domain.Proposal
	err := r.db.WithContext(ctx).
		Preload("DirectCategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("DirectCategories.Elements", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("DirectVariables", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		First(&proposal, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepository) Update(ctx context.Context, proposal *domain.Proposal) error {
	return r.db.WithContext(ctx).Save(proposal).Error
}

func (r *ProposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Proposal{}, "id = ?", id).Error
}

func (r *ProposalRepository) List(ctx context.Context, page, pageSize int, search string) ([]domain.Proposal, int64, error) {
	var proposals []domain.Proposal
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Proposal{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&proposals).Error

	return proposals, total, err
}

// ListTemplateLinked returns the ids of all proposals that still reference a
// template. The auto-sync job iterates these.
func (r *ProposalRepository) ListTemplateLinked(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.Proposal{}).
		Where("template_id IS NOT NULL").
		Order("created_at").
		Pluck("id", &ids).Error
	return ids, err
}
