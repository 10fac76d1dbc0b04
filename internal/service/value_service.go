package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/crestline-remodeling/proposal-api/internal/mapper"
	"github.com/crestline-remodeling/proposal-api/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ValueService resolves variable and element values on a proposal. Items with
// a nil id are specs for entities that do not exist yet; they are created
// proposal-direct inside the same transaction as the value write. Batches are
// all-or-nothing: any item failure rolls back the whole batch.
type ValueService struct {
	db                *gorm.DB
	proposalRepo      *repository.ProposalRepository
	variableValueRepo *repository.VariableValueRepository
	elementValueRepo  *repository.ElementValueRepository
	logger            *zap.Logger
}

// NewValueService creates a new ValueService instance
func NewValueService(
	db *gorm.DB,
	proposalRepo *repository.ProposalRepository,
	variableValueRepo *repository.VariableValueRepository,
	elementValueRepo *repository.ElementValueRepository,
	logger *zap.Logger,
) *ValueService {
	return &ValueService{
		db:                db,
		proposalRepo:      proposalRepo,
		variableValueRepo: variableValueRepo,
		elementValueRepo:  elementValueRepo,
		logger:            logger,
	}
}

// SetVariableValues records a batch of variable values on a proposal. Items
// referencing an existing variable upsert its value row; items without an id
// create a proposal-direct variable first, seeding its default at the given
// value.
func (s *ValueService) SetVariableValues(ctx context.Context, proposalID uuid.UUID, items []domain.SetVariableValueItem) ([]domain.ResolvedVariableValueDTO, error) {
	if _, err := s.proposalRepo.GetByID(ctx, proposalID); err != nil {
		return nil, fmt.Errorf("proposal not found: %w", err)
	}

	resolved := make([]domain.ResolvedVariableValueDTO, 0, len(items))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var variable *domain.Variable

			if item.VariableID == nil {
				if item.VariableName == "" || item.VariableType == "" {
					return fmt.Errorf("%w: variable_name and variable_type are required", ErrInvalidInput)
				}
				if !domain.IsValidVariableType(item.VariableType) {
					return fmt.Errorf("%w: unknown variable type %q", ErrInvalidInput, item.VariableType)
				}
				variable = domain.NewVariable(
					domain.ProposalOwner(proposalID),
					item.VariableName,
					domain.VariableType(item.VariableType),
					item.Value,
				)
				if err := tx.Create(variable).Error; err != nil {
					return fmt.Errorf("failed to create variable %s: %w", item.VariableName, err)
				}
			} else {
				variable = &domain.Variable{}
				if err := tx.First(variable, "id = ?", *item.VariableID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("variable with ID %s not found: %w", *item.VariableID, err)
					}
					return fmt.Errorf("failed to load variable: %w", err)
				}
			}

			value, err := upsertVariableValue(tx, proposalID, variable.ID, item.Value)
			if err != nil {
				return err
			}

			resolved = append(resolved, mapper.ToResolvedVariableValueDTO(value, variable))
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to set variable values",
			zap.String("proposalId", proposalID.String()),
			zap.Int("items", len(items)),
			zap.Error(err))
		return nil, err
	}

	return resolved, nil
}

// ListVariableValues returns every resolved variable value on a proposal
func (s *ValueService) ListVariableValues(ctx context.Context, proposalID uuid.UUID) ([]domain.ResolvedVariableValueDTO, error) {
	if _, err := s.proposalRepo.GetByID(ctx, proposalID); err != nil {
		return nil, fmt.Errorf("proposal not found: %w", err)
	}

	values, err := s.variableValueRepo.ListByProposal(ctx, proposalID)
	if err != nil {
		s.logger.Error("Failed to list variable values", zap.Error(err))
		return nil, fmt.Errorf("failed to list variable values: %w", err)
	}

	resolved := make([]domain.ResolvedVariableValueDTO, 0, len(values))
	for i := range values {
		if values[i].Variable == nil {
			continue
		}
		resolved = append(resolved, mapper.ToResolvedVariableValueDTO(&values[i], values[i].Variable))
	}
	return resolved, nil
}

// UpdateElementValues records a batch of computed element costs on a
// proposal. Items without an id create a proposal-direct element with zeroed
// raw cost strings, resolving or creating its category by name; items with an
// id may also rename, reposition or recategorize the element in place.
func (s *ValueService) UpdateElementValues(ctx context.Context, proposalID uuid.UUID, items []domain.UpdateElementValueItem) ([]domain.ResolvedElementValueDTO, error) {
	if _, err := s.proposalRepo.GetByID(ctx, proposalID); err != nil {
		return nil, fmt.Errorf("proposal not found: %w", err)
	}

	resolved := make([]domain.ResolvedElementValueDTO, 0, len(items))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			element, category, err := s.resolveElement(tx, proposalID, item)
			if err != nil {
				return err
			}

			value, err := upsertElementValue(tx, proposalID, element.ID, item)
			if err != nil {
				return err
			}

			element.Category = category
			resolved = append(resolved, mapper.ToResolvedElementValueDTO(value, element))
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to update element values",
			zap.String("proposalId", proposalID.String()),
			zap.Int("items", len(items)),
			zap.Error(err))
		return nil, err
	}

	return resolved, nil
}

// ListElementValues returns every resolved element value on a proposal
func (s *ValueService) ListElementValues(ctx context.Context, proposalID uuid.UUID) ([]domain.ResolvedElementValueDTO, error) {
	if _, err := s.proposalRepo.GetByID(ctx, proposalID); err != nil {
		return nil, fmt.Errorf("proposal not found: %w", err)
	}

	values, err := s.elementValueRepo.ListByProposal(ctx, proposalID)
	if err != nil {
		s.logger.Error("Failed to list element values", zap.Error(err))
		return nil, fmt.Errorf("failed to list element values: %w", err)
	}

	resolved := make([]domain.ResolvedElementValueDTO, 0, len(values))
	for i := range values {
		if values[i].Element == nil {
			continue
		}
		resolved = append(resolved, mapper.ToResolvedElementValueDTO(&values[i], values[i].Element))
	}
	return resolved, nil
}

// resolveElement returns the element an item targets, creating or updating it
// as the item dictates. The returned category is the element's resolved
// category, if any.
func (s *ValueService) resolveElement(tx *gorm.DB, proposalID uuid.UUID, item domain.UpdateElementValueItem) (*domain.Element, *domain.Category, error) {
	if item.ElementID == nil {
		if item.ElementName == "" {
			return nil, nil, fmt.Errorf("%w: element_name is required", ErrInvalidInput)
		}

		var category *domain.Category
		var categoryID *uuid.UUID
		if item.CategoryName != "" {
			position := 0
			if item.CategoryPosition != nil {
				position = *item.CategoryPosition
			}
			var err error
			category, err = getOrCreateCategory(tx, proposalID, item.CategoryName, position)
			if err != nil {
				return nil, nil, err
			}
			categoryID = &category.ID
		}

		position := 0
		if item.Position != nil {
			position = *item.Position
		}

		// Raw cost strings stay zeroed: the computed value row is the only
		// place ad hoc elements carry costs.
		element := domain.NewProposalElement(proposalID, categoryID, item.ElementName, "0", "0", item.MarkupPercentage, position)
		if err := tx.Create(element).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to create element %s: %w", item.ElementName, err)
		}
		return element, category, nil
	}

	element := &domain.Element{}
	if err := tx.First(element, "id = ?", *item.ElementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("element with ID %s not found: %w", *item.ElementID, err)
		}
		return nil, nil, fmt.Errorf("failed to load element: %w", err)
	}

	if item.ElementName != "" {
		element.Name = item.ElementName
	}
	if item.Position != nil {
		element.Position = *item.Position
	}

	var category *domain.Category
	if element.CategoryID != nil {
		category = &domain.Category{}
		if err := tx.First(category, "id = ?", *element.CategoryID).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to load category: %w", err)
		}
	}

	// Switch category only when the resolved name differs from the current one
	if item.CategoryName != "" && (category == nil || category.Name != item.CategoryName) {
		position := 0
		if item.CategoryPosition != nil {
			position = *item.CategoryPosition
		}
		var err error
		category, err = getOrCreateCategory(tx, proposalID, item.CategoryName, position)
		if err != nil {
			return nil, nil, err
		}
		element.CategoryID = &category.ID
	}

	if err := tx.Save(element).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to update element %s: %w", element.Name, err)
	}
	return element, category, nil
}

func upsertVariableValue(tx *gorm.DB, proposalID, variableID uuid.UUID, value decimal.Decimal) (*domain.VariableValue, error) {
	var existing domain.VariableValue
	err := tx.Where("proposal_id = ? AND variable_id = ?", proposalID, variableID).First(&existing).Error
	switch {
	case err == nil:
		existing.Value = value
		if err := tx.Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to update variable value: %w", err)
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		created := domain.VariableValue{ProposalID: proposalID, VariableID: variableID, Value: value}
		if err := tx.Create(&created).Error; err != nil {
			return nil, fmt.Errorf("failed to create variable value: %w", err)
		}
		return &created, nil
	default:
		return nil, fmt.Errorf("failed to load variable value: %w", err)
	}
}

func upsertElementValue(tx *gorm.DB, proposalID, elementID uuid.UUID, item domain.UpdateElementValueItem) (*domain.ElementValue, error) {
	var existing domain.ElementValue
	err := tx.Where("proposal_id = ? AND element_id = ?", proposalID, elementID).First(&existing).Error
	switch {
	case err == nil:
		existing.CalculatedMaterialCost = item.CalculatedMaterialCost
		existing.CalculatedLaborCost = item.CalculatedLaborCost
		existing.MarkupPercentage = item.MarkupPercentage
		if err := tx.Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to update element value: %w", err)
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		created := domain.ElementValue{
			ProposalID:             proposalID,
			ElementID:              elementID,
			CalculatedMaterialCost: item.CalculatedMaterialCost,
			CalculatedLaborCost:    item.CalculatedLaborCost,
			MarkupPercentage:       item.MarkupPercentage,
		}
		if err := tx.Create(&created).Error; err != nil {
			return nil, fmt.Errorf("failed to create element value: %w", err)
		}
		return &created, nil
	default:
		return nil, fmt.Errorf("failed to load element value: %w", err)
	}
}

func getOrCreateCategory(tx *gorm.DB, proposalID uuid.UUID, name string, position int) (*domain.Category, error) {
	var category domain.Category
	err := tx.Where("proposal_id = ? AND name = ?", proposalID, name).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load category %s: %w", name, err)
	}

	created := domain.NewCategory(domain.ProposalOwner(proposalID), name, position)
	if err := tx.Create(created).Error; err != nil {
		return nil, fmt.Errorf("failed to create category %s: %w", name, err)
	}
	return created, nil
}
