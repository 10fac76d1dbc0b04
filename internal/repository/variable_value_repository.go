package repository

import (
	"context"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VariableValueRepository struct {
	db *gorm.DB
}

func NewVariableValueRepository(db *gorm.DB) *VariableValueRepository {
	return &VariableValueRepository{db: db}
}

func (r *VariableValueRepository) Create(ctx context.Context, value *domain.VariableValue) error {
	return r.db.WithContext(ctx).Create(value).Error
}

func (r *VariableValueRepository) GetByPair(ctx context.Context, proposalID, variableID uuid.UUID) (*domain.VariableValue, error) {
	var value domain.VariableValue
	err := r.db.WithContext(ctx).
		Where("proposal_id = ? AND variable_id = ?", proposalID, variableID).
		First(&value).Error
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func (r *VariableValueRepository) ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]domain.VariableValue, error) {
	var values []domain.VariableValue
	err := r.db.WithContext(ctx).
		Preload("Variable").
		Where("proposal_id = ?", proposalID).
		Order("created_at").
		Find(&values).Error
	return values, err
}

func (r *VariableValueRepository) Update(ctx context.Context, value *domain.VariableValue) error {
	return r.db.WithContext(ctx).Save(value).Error
}
