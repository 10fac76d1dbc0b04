package repository

import (
	"context"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ElementValueRepository struct {
	db *gorm.DB
}

func NewElementValueRepository(db *gorm.DB) *ElementValueRepository {
	return &ElementValueRepository{db: db}
}

func (r *ElementValueRepository) Create(ctx context.Context, value *domain.ElementValue) error {
	return r.db.WithContext(ctx).Create(value).Error
}

func (r *ElementValueRepository) ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]domain.ElementValue, error) {
	var values []domain.ElementValue
	err := r.db.WithContext(ctx).
		Preload("Element").
		Preload("Element.Category").
		Where("proposal_id = ?", proposalID).
		Order("created_at").
		Find(&values).Error
	return values, err
}
