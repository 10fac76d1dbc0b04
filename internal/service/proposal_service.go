package service

import (
	"context"
	"fmt"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/crestline-remodeling/proposal-api/internal/mapper"
	"github.com/crestline-remodeling/proposal-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProposalService handles proposal lifecycle: instantiation from a template
// or from scratch, plain CRUD, and read access to a proposal's direct
// categories and variables.
type ProposalService struct {
	db           *gorm.DB
	proposalRepo *repository.ProposalRepository
	templateRepo *repository.TemplateRepository
	categoryRepo *repository.CategoryRepository
	variableRepo *repository.VariableRepository
	logger       *zap.Logger
}

// NewProposalService creates a new ProposalService instance
func NewProposalService(
	db *gorm.DB,
	proposalRepo *repository.ProposalRepository,
	templateRepo *repository.TemplateRepository,
	categoryRepo *repository.CategoryRepository,
	variableRepo *repository.VariableRepository,
	logger *zap.Logger,
) *ProposalService {
	return &ProposalService{
		db:           db,
		proposalRepo: proposalRepo,
		templateRepo: templateRepo,
		categoryRepo: categoryRepo,
		variableRepo: variableRepo,
		logger:       logger,
	}
}

// CreateFromTemplate instantiates a proposal by cloning a template. In one
// transaction it creates the proposal, seeds a variable value at every
// template variable's default, copies each category in position order, copies
// each category's elements onto the copy, and records an element value per
// copied element with costs parsed from the source cost strings (zero when
// the string is not a plain decimal). Any failure rolls back the whole clone.
func (s *ProposalService) CreateFromTemplate(ctx context.Context, req domain.CreateProposalFromTemplateRequest) (*domain.ProposalDTO, error) {
	template, err := s.templateRepo.GetWithContents(ctx, req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}

	proposal := &domain.Proposal{
		Name:                   req.Name,
		GlobalMarkupPercentage: req.GlobalMarkupPercentage,
		TemplateID:             &template.ID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(proposal).Error; err != nil {
			return fmt.Errorf("failed to create proposal: %w", err)
		}

		for i := range template.Variables {
			variable := &template.Variables[i]
			value := &domain.VariableValue{
				ProposalID: proposal.ID,
				VariableID: variable.ID,
				Value:      variable.DefaultValue,
			}
			if err := tx.Create(value).Error; err != nil {
				return fmt.Errorf("failed to seed value for variable %s: %w", variable.Name, err)
			}
		}

		for i := range template.Categories {
			source := &template.Categories[i]
			cloned := domain.NewCategory(domain.ProposalOwner(proposal.ID), source.Name, source.Position)
			if err := tx.Create(cloned).Error; err != nil {
				return fmt.Errorf("failed to clone category %s: %w", source.Name, err)
			}

			for j := range source.Elements {
				elem := &source.Elements[j]
				clonedElem := domain.NewProposalElement(
					proposal.ID, &cloned.ID,
					elem.Name, elem.MaterialCost, elem.LaborCost,
					elem.MarkupPercentage, elem.Position,
				)
				if err := tx.Create(clonedElem).Error; err != nil {
					return fmt.Errorf("failed to clone element %s: %w", elem.Name, err)
				}

				value := &domain.ElementValue{
					ProposalID:             proposal.ID,
					ElementID:              clonedElem.ID,
					CalculatedMaterialCost: domain.ParseCost(elem.MaterialCost),
					CalculatedLaborCost:    domain.ParseCost(elem.LaborCost),
					MarkupPercentage:       elem.MarkupPercentage,
				}
				if err := tx.Create(value).Error; err != nil {
					return fmt.Errorf("failed to seed value for element %s: %w", elem.Name, err)
				}
			}
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Failed to instantiate proposal from template",
			zap.String("templateId", template.ID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Proposal instantiated from template",
		zap.String("proposalId", proposal.ID.String()),
		zap.String("templateId", template.ID.String()),
		zap.Int("categories", len(template.Categories)),
		zap.Int("variables", len(template.Variables)),
	)

	dto := mapper.ToProposalDTO(proposal)
	return &dto, nil
}

// CreateFromScratch creates an empty proposal with no template link
func (s *ProposalService) CreateFromScratch(ctx context.Context, req domain.CreateProposalFromScratchRequest) (*domain.ProposalDTO, error) {
	proposal := &domain.Proposal{
		Name:                   req.Name,
		GlobalMarkupPercentage: req.GlobalMarkupPercentage,
	}

	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		s.logger.Error("Failed to create proposal", zap.Error(err))
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}

	dto := mapper.ToProposalDTO(proposal)
	return &dto, nil
}

// GetByID retrieves a proposal by ID
func (s *ProposalService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProposalDTO, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("proposal not found: %w", err)
	}

	dto := mapper.ToProposalDTO(proposal)
	return &dto, nil
}

// List returns proposals with pagination and optional name search
func (s *ProposalService) List(ctx context.Context, page, pageSize int, search string) ([]domain.ProposalDTO, int64, error) {
	proposals, total, err := s.proposalRepo.List(ctx, page, pageSize, search)
	if err != nil {
		s.logger.Error("Failed to list proposals", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list proposals: %w", err)
	}

	dtos := make([]domain.ProposalDTO, len(proposals))
	for i := range proposals {
		dtos[i] = mapper.ToProposalDTO(&proposals[i])
	}
	return dtos, total, nil
}

// Update applies the provided fields to a proposal
func (s *ProposalService) Update(ctx context.Context, id uuid.UUID, req domain.UpdateProposalRequest) (*domain.ProposalDTO, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("proposal not found: %w", err)
	}

	if req.Name != nil {
		proposal.Name = *req.Name
	}
	if req.GlobalMarkupPercentage != nil {
		proposal.GlobalMarkupPercentage = *req.GlobalMarkupPercentage
	}

	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		s.logger.Error("Failed to update proposal", zap.Error(err))
		return nil, fmt.Errorf("failed to update proposal: %w", err)
	}

	dto := mapper.ToProposalDTO(proposal)
	return &dto, nil
}

// Delete removes a proposal and, via cascade, its direct entities, values
// and contracts
func (s *ProposalService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.proposalRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("proposal not found: %w", err)
	}

	if err := s.proposalRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete proposal", zap.String("id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete proposal: %w", err)
	}
	return nil
}

// ListCategories returns the proposal's direct categories with their elements
// in position order
func (s *ProposalService) ListCategories(ctx context.Context, proposalID uuid.UUID) ([]domain.CategoryDTO, error) {
	proposal, err := s.proposalRepo.GetWithContents(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("proposal not found: %w", err)
	}

	dtos := make([]domain.CategoryDTO, len(proposal.DirectCategories))
	for i := range proposal.DirectCategories {
		dtos[i] = mapper.ToCategoryDTO(&proposal.DirectCategories[i])
	}
	return dtos, nil
}

// ListVariables returns the proposal's direct (ad hoc) variables
func (s *ProposalService) ListVariables(ctx context.Context, proposalID uuid.UUID) ([]domain.VariableDTO, error) {
	if _, err := s.proposalRepo.GetByID(ctx, proposalID); err != nil {
		return nil, fmt.Errorf("proposal not found: %w", err)
	}

	variables, err := s.variableRepo.ListByOwner(ctx, domain.ProposalOwner(proposalID))
	if err != nil {
		s.logger.Error("Failed to list proposal variables", zap.Error(err))
		return nil, fmt.Errorf("failed to list variables: %w", err)
	}

	dtos := make([]domain.VariableDTO, len(variables))
	for i := range variables {
		dtos[i] = mapper.ToVariableDTO(&variables[i])
	}
	return dtos, nil
}
