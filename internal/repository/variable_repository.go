package repository

import (
	"context"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VariableRepository struct {
	db *gorm.DB
}

func NewVariableRepository(db *gorm.DB) *VariableRepository {
	return &VariableRepository{db: db}
}

func (r *VariableRepository) Create(ctx context.Context, variable *domain.Variable) error {
	return r.db.WithContext(ctx).Create(variable).Error
}

func (r *VariableRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Variable, error) {
	var variable domain.Variable
	err := r.db.WithContext(ctx).First(&variable, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &variable, nil
}

func (r *VariableRepository) ListByOwner(ctx context.Context, owner domain.Owner) ([]domain.Variable, error) {
	var variables []domain.Variable
	query := r.db.WithContext(ctx)
	if owner.IsTemplate() {
		query = query.Where("template_id = ?", owner.ID)
	} else {
		query = query.Where("proposal_id = ?", owner.ID)
	}
	err := query.Order("created_at").Find(&variables).Error
	return variables, err
}

func (r *VariableRepository) Update(ctx context.Context, variable *domain.Variable) error {
	return r.db.WithContext(ctx).Save(variable).Error
}

func (r *VariableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Variable{}, "id = ?", id).Error
}
