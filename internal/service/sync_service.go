package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/crestline-remodeling/proposal-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SyncService reconciles a proposal against its source template after the
// template has changed. Unlike the value resolver's all-or-nothing batches,
// sync is deliberately best-effort: an error on one variable or element is
// logged and skipped so the rest of the sync proceeds. There is no enclosing
// transaction; partial progress is an accepted outcome.
type SyncService struct {
	proposalRepo      *repository.ProposalRepository
	templateRepo      *repository.TemplateRepository
	categoryRepo      *repository.CategoryRepository
	elementRepo       *repository.ElementRepository
	variableValueRepo *repository.VariableValueRepository
	elementValueRepo  *repository.ElementValueRepository
	logger            *zap.Logger
}

// NewSyncService creates a new SyncService instance
func NewSyncService(
	proposalRepo *repository.ProposalRepository,
	templateRepo *repository.TemplateRepository,
	categoryRepo *repository.CategoryRepository,
	elementRepo *repository.ElementRepository,
	variableValueRepo *repository.VariableValueRepository,
	elementValueRepo *repository.ElementValueRepository,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		proposalRepo:      proposalRepo,
		templateRepo:      templateRepo,
		categoryRepo:      categoryRepo,
		elementRepo:       elementRepo,
		variableValueRepo: variableValueRepo,
		elementValueRepo:  elementValueRepo,
		logger:            logger,
	}
}

// SyncWithTemplate pulls template changes into a proposal. Variables: values
// are created at the template default when missing, and overwritten when they
// differ from the current default. Categories and elements: matched by name
// scoped to the proposal, created when missing with costs seeded from the
// template; pre-existing proposal elements and their values are never touched.
// Returns the names of everything added or updated.
func (s *SyncService) SyncWithTemplate(ctx context.Context, proposalID uuid.UUID) (*domain.SyncReportDTO, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("proposal not found: %w", err)
	}
	if proposal.TemplateID == nil {
		return nil, ErrNoTemplate
	}

	template, err := s.templateRepo.GetWithContents(ctx, *proposal.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}

	report := &domain.SyncReportDTO{
		AddedVariables:   []string{},
		UpdatedVariables: []string{},
		AddedElements:    []string{},
	}

	s.syncVariables(ctx, proposal.ID, template, report)
	s.syncElements(ctx, proposal.ID, template, report)

	s.logger.Info("Proposal synced with template",
		zap.String("proposalId", proposal.ID.String()),
		zap.String("templateId", template.ID.String()),
		zap.Int("addedVariables", len(report.AddedVariables)),
		zap.Int("updatedVariables", len(report.UpdatedVariables)),
		zap.Int("addedElements", len(report.AddedElements)),
	)

	return report, nil
}

func (s *SyncService) syncVariables(ctx context.Context, proposalID uuid.UUID, template *domain.Template, report *domain.SyncReportDTO) {
	for i := range template.Variables {
		variable := &template.Variables[i]

		existing, err := s.variableValueRepo.GetByPair(ctx, proposalID, variable.ID)
		switch {
		case err == nil:
			if existing.Value.Equal(variable.DefaultValue) {
				continue
			}
			// Blunt merge: a customized value that drifted from the template
			// default is overwritten and reported, not preserved.
			existing.Value = variable.DefaultValue
			if err := s.variableValueRepo.Update(ctx, existing); err != nil {
				s.logger.Warn("Sync skipped variable after update failure",
					zap.String("variable", variable.Name), zap.Error(err))
				continue
			}
			report.UpdatedVariables = append(report.UpdatedVariables, variable.Name)

		case errors.Is(err, gorm.ErrRecordNotFound):
			value := &domain.VariableValue{
				ProposalID: proposalID,
				VariableID: variable.ID,
				Value:      variable.DefaultValue,
			}
			if err := s.variableValueRepo.Create(ctx, value); err != nil {
				s.logger.Warn("Sync skipped variable after create failure",
					zap.String("variable", variable.Name), zap.Error(err))
				continue
			}
			report.AddedVariables = append(report.AddedVariables, variable.Name)

		default:
			s.logger.Warn("Sync skipped variable after lookup failure",
				zap.String("variable", variable.Name), zap.Error(err))
		}
	}
}

func (s *SyncService) syncElements(ctx context.Context, proposalID uuid.UUID, template *domain.Template, report *domain.SyncReportDTO) {
	for i := range template.Categories {
		sourceCategory := &template.Categories[i]

		category, _, err := s.categoryRepo.GetOrCreateForProposal(ctx, proposalID, sourceCategory.Name, sourceCategory.Position)
		if err != nil {
			s.logger.Warn("Sync skipped category after get-or-create failure",
				zap.String("category", sourceCategory.Name), zap.Error(err))
			continue
		}

		for j := range sourceCategory.Elements {
			sourceElem := &sourceCategory.Elements[j]

			_, err := s.elementRepo.FindForProposalByName(ctx, proposalID, category.ID, sourceElem.Name)
			if err == nil {
				// Existing proposal elements keep their costs; sync only
				// introduces missing ones.
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("Sync skipped element after lookup failure",
					zap.String("element", sourceElem.Name), zap.Error(err))
				continue
			}

			element := domain.NewProposalElement(
				proposalID, &category.ID,
				sourceElem.Name, sourceElem.MaterialCost, sourceElem.LaborCost,
				sourceElem.MarkupPercentage, sourceElem.Position,
			)
			if err := s.elementRepo.Create(ctx, element); err != nil {
				s.logger.Warn("Sync skipped element after create failure",
					zap.String("element", sourceElem.Name), zap.Error(err))
				continue
			}

			value := &domain.ElementValue{
				ProposalID:             proposalID,
				ElementID:              element.ID,
				CalculatedMaterialCost: domain.ParseCost(sourceElem.MaterialCost),
				CalculatedLaborCost:    domain.ParseCost(sourceElem.LaborCost),
				MarkupPercentage:       sourceElem.MarkupPercentage,
			}
			if err := s.elementValueRepo.Create(ctx, value); err != nil {
				s.logger.Warn("Sync created element but failed its value",
					zap.String("element", sourceElem.Name), zap.Error(err))
			}

			report.AddedElements = append(report.AddedElements, sourceElem.Name)
		}
	}
}
