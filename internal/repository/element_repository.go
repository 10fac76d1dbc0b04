package repository

import (
	"context"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ElementRepository struct {
	db *gorm.DB
}

func NewElementRepository(db *gorm.DB) *ElementRepository {
	return &ElementRepository{db: db}
}

func (r *ElementRepository) Create(ctx context.Context, element *domain.Element) error {
	return r.db.WithContext(ctx).Create(element).Error
}

func (r *ElementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Element, error) {
	var element domain.Element
	err := r.db.WithContext(ctx).First(&element, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &element, nil
}

func (r *ElementRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.Element, error) {
	var elements []domain.Element
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("position").
		Find(&elements).Error
	return elements, err
}

// FindForProposalByName looks up a proposal-owned element by name within a
// category. Used by the sync engine's get-or-create matching.
func (r *ElementRepository) FindForProposalByName(ctx context.Context, proposalID, categoryID uuid.UUID, name string) (*domain.Element, error) {
	var element domain.Element
	err := r.db.WithContext(ctx).
		Where("proposal_id = ? AND category_id = ? AND name = ?", proposalID, categoryID, name).
		First(&element).Error
	if err != nil {
		return nil, err
	}
	return &element, nil
}

func (r *ElementRepository) Update(ctx context.Context, element *domain.Element) error {
	return r.db.WithContext(ctx).Save(element).Error
}

func (r *ElementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Element{}, "id = ?", id).Error
}
