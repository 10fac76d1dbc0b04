package repository

import (
	"context"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) ListByOwner(ctx context.Context, owner domain.Owner) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.ownerScope(r.db.WithContext(ctx), owner).
		Order("position").
		Find(&categories).Error
	return categories, err
}

// GetOrCreateForProposal finds a proposal-owned category by name, creating it
// at the given position if absent. Position is seeded on creation only; an
// existing category keeps its position. Returns whether a row was created.
func (r *CategoryRepository) GetOrCreateForProposal(ctx context.Context, proposalID uuid.UUID, name string, position int) (*domain.Category, bool, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).
		Where("proposal_id = ? AND name = ?", proposalID, name).
		First(&category).Error
	if err == nil {
		return &category, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	created := domain.NewCategory(domain.ProposalOwner(proposalID), name, position)
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id).Error
}

func (r *CategoryRepository) ownerScope(query *gorm.DB, owner domain.Owner) *gorm.DB {
	if owner.IsTemplate() {
		return query.Where("template_id = ?", owner.ID)
	}
	return query.Where("proposal_id = ?", owner.ID)
}
