package repository

import (
	"context"
	"fmt"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	var contract domain.Contract
	err := r.db.WithContext(ctx).First(&contract, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepository) List(ctx context.Context, page, pageSize int) ([]domain.Contract, int64, error) {
	var contracts []domain.Contract
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Contract{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&contracts).Error

	return contracts, total, err
}

func (r *ContractRepository) ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]domain.Contract, error) {
	var contracts []domain.Contract
	err := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("version DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *ContractRepository) GetActiveByProposal(ctx context.Context, proposalID uuid.UUID) (*domain.Contract, error) {
	var contract domain.Contract
	err := r.db.WithContext(ctx).
		Where("proposal_id = ? AND is_active = ?", proposalID, true).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// Promote inserts contract as the new current version for its proposal. In one
// transaction it demotes every active contract, assigns version max+1 (1 when
// the proposal has no contracts yet), and creates the row with is_active set.
func (r *ContractRepository) Promote(ctx context.Context, contract *domain.Contract) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Contract{}).
			Where("proposal_id = ? AND is_active = ?", contract.ProposalID, true).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to demote active contracts: %w", err)
		}

		var maxVersion *int
		if err := tx.Model(&domain.Contract{}).
			Where("proposal_id = ?", contract.ProposalID).
			Select("MAX(version)").
			Scan(&maxVersion).Error; err != nil {
			return fmt.Errorf("failed to determine contract version: %w", err)
		}

		contract.Version = 1
		if maxVersion != nil {
			contract.Version = *maxVersion + 1
		}
		contract.IsActive = true

		if err := tx.Create(contract).Error; err != nil {
			return fmt.Errorf("failed to create contract: %w", err)
		}
		return nil
	})
}

func (r *ContractRepository) Update(ctx context.Context, contract *domain.Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

func (r *ContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Contract{}, "id = ?", id).Error
}
