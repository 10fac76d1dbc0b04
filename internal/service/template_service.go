package service

import (
	"context"
	"fmt"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/crestline-remodeling/proposal-api/internal/mapper"
	"github.com/crestline-remodeling/proposal-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TemplateService handles business logic for templates and their owned
// categories, variables and elements.
type TemplateService struct {
	templateRepo *repository.TemplateRepository
	categoryRepo *repository.CategoryRepository
	variableRepo *repository.VariableRepository
	elementRepo  *repository.ElementRepository
	logger       *zap.Logger
}

// NewTemplateService creates a new TemplateService instance
func NewTemplateService(
	templateRepo *repository.TemplateRepository,
	categoryRepo *repository.CategoryRepository,
	variableRepo *repository.VariableRepository,
	elementRepo *repository.ElementRepository,
	logger *zap.Logger,
) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		categoryRepo: categoryRepo,
		variableRepo: variableRepo,
		elementRepo:  elementRepo,
		logger:       logger,
	}
}

// Create creates a new template
func (s *TemplateService) Create(ctx context.Context, req domain.CreateTemplateRequest) (*domain.TemplateDTO, error) {
	template := &domain.Template{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.templateRepo.Create(ctx, template); err != nil {
		s.logger.Error("Failed to create template", zap.Error(err))
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	dto := mapper.ToTemplateDTO(template)
	return &dto, nil
}

// GetByID retrieves a template by ID
func (s *TemplateService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TemplateDTO, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}

	dto := mapper.ToTemplateDTO(template)
	return &dto, nil
}

// List returns templates with pagination and optional name search
func (s *TemplateService) List(ctx context.Context, page, pageSize int, search string) ([]domain.TemplateDTO, int64, error) {
	templates, total, err := s.templateRepo.List(ctx, page, pageSize, search)
	if err != nil {
		s.logger.Error("Failed to list templates", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list templates: %w", err)
	}

	dtos := make([]domain.TemplateDTO, len(templates))
	for i := range templates {
		dtos[i] = mapper.ToTemplateDTO(&templates[i])
	}
	return dtos, total, nil
}

// Update updates an existing template
func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, req domain.UpdateTemplateRequest) (*domain.TemplateDTO, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}

	template.Name = req.Name
	template.Description = req.Description

	if err := s.templateRepo.Update(ctx, template); err != nil {
		s.logger.Error("Failed to update template", zap.Error(err))
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	dto := mapper.ToTemplateDTO(template)
	return &dto, nil
}

// Delete removes a template. Proposals cloned from it survive; the database
// nulls their template reference.
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.templateRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("template not found: %w", err)
	}

	if err := s.templateRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete template", zap.String("id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// AddCategory creates a category owned by the template
func (s *TemplateService) AddCategory(ctx context.Context, templateID uuid.UUID, req domain.CreateCategoryRequest) (*domain.CategoryDTO, error) {
	if _, err := s.templateRepo.GetByID(ctx, templateID); err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}

	category := domain.NewCategory(domain.TemplateOwner(templateID), req.Name, req.Position)
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	dto := mapper.ToCategoryDTO(category)
	return &dto, nil
}

// ListCategories returns the template's categories in position order
func (s *TemplateService) ListCategories(ctx context.Context, templateID uuid.UUID) ([]domain.CategoryDTO, error) {
	if _, err := s.templateRepo.GetByID(ctx, templateID); err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}

	categories, err := s.categoryRepo.ListByOwner(ctx, domain.TemplateOwner(templateID))
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	dtos := make([]domain.CategoryDTO, len(categories))
	for i := range categories {
		dtos[i] = mapper.ToCategoryDTO(&categories[i])
	}
	return dtos, nil
}

// UpdateCategory updates a category's name and position
func (s *TemplateService) UpdateCategory(ctx context.Context, categoryID uuid.UUID, req domain.CreateCategoryRequest) (*domain.CategoryDTO, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("category not found: %w", err)
	}

	category.Name = req.Name
	category.Position = req.Position

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		s.logger.Error("Failed to update category", zap.Error(err))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	dto := mapper.ToCategoryDTO(category)
	return &dto, nil
}

// DeleteCategory removes a category and, via cascade, its elements
func (s *TemplateService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return fmt.Errorf("category not found: %w", err)
	}

	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		s.logger.Error("Failed to delete category", zap.Error(err))
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// AddVariable creates a variable owned by the template
func (s *TemplateService) AddVariable(ctx context.Context, templateID uuid.UUID, req domain.CreateVariableRequest) (*domain.VariableDTO, error) {
	if _, err := s.templateRepo.GetByID(ctx, templateID); err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}

	variable := domain.NewVariable(domain.TemplateOwner(templateID), req.Name, domain.VariableType(req.Type), req.DefaultValue)
	if err := s.variableRepo.Create(ctx, variable); err != nil {
		s.logger.Error("Failed to create variable", zap.Error(err))
		return nil, fmt.Errorf("failed to create variable: %w", err)
	}

	dto := mapper.ToVariableDTO(variable)
	return &dto, nil
}

// ListVariables returns the template's variables
func (s *TemplateService) ListVariables(ctx context.Context, templateID uuid.UUID) ([]domain.VariableDTO, error) {
	if _, err := s.templateRepo.GetByID(ctx, templateID); err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}

	variables, err := s.variableRepo.ListByOwner(ctx, domain.TemplateOwner(templateID))
	if err != nil {
		s.logger.Error("Failed to list variables", zap.Error(err))
		return nil, fmt.Errorf("failed to list variables: %w", err)
	}

	dtos := make([]domain.VariableDTO, len(variables))
	for i := range variables {
		dtos[i] = mapper.ToVariableDTO(&variables[i])
	}
	return dtos, nil
}

// UpdateVariable updates a variable's name, type and default value
func (s *TemplateService) UpdateVariable(ctx context.Context, variableID uuid.UUID, req domain.CreateVariableRequest) (*domain.VariableDTO, error) {
	variable, err := s.variableRepo.GetByID(ctx, variableID)
	if err != nil {
		return nil, fmt.Errorf("variable not found: %w", err)
	}

	variable.Name = req.Name
	variable.Type = domain.VariableType(req.Type)
	variable.DefaultValue = req.DefaultValue

	if err := s.variableRepo.Update(ctx, variable); err != nil {
		s.logger.Error("Failed to update variable", zap.Error(err))
		return nil, fmt.Errorf("failed to update variable: %w", err)
	}

	dto := mapper.ToVariableDTO(variable)
	return &dto, nil
}

// DeleteVariable removes a variable
func (s *TemplateService) DeleteVariable(ctx context.Context, variableID uuid.UUID) error {
	if _, err := s.variableRepo.GetByID(ctx, variableID); err != nil {
		return fmt.Errorf("variable not found: %w", err)
	}

	if err := s.variableRepo.Delete(ctx, variableID); err != nil {
		s.logger.Error("Failed to delete variable", zap.Error(err))
		return fmt.Errorf("failed to delete variable: %w", err)
	}
	return nil
}

// AddElement creates an element under a template-owned category
func (s *TemplateService) AddElement(ctx context.Context, categoryID uuid.UUID, req domain.CreateElementRequest) (*domain.ElementDTO, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("category not found: %w", err)
	}
	if !category.Owner().IsTemplate() {
		return nil, fmt.Errorf("%w: category does not belong to a template", ErrInvalidInput)
	}

	element := domain.NewTemplateElement(category.ID, req.Name, req.MaterialCost, req.LaborCost, req.MarkupPercentage, req.Position)
	if err := s.elementRepo.Create(ctx, element); err != nil {
		s.logger.Error("Failed to create element", zap.Error(err))
		return nil, fmt.Errorf("failed to create element: %w", err)
	}

	dto := mapper.ToElementDTO(element)
	return &dto, nil
}

// ListElements returns a category's elements in position order
func (s *TemplateService) ListElements(ctx context.Context, categoryID uuid.UUID) ([]domain.ElementDTO, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, fmt.Errorf("category not found: %w", err)
	}

	elements, err := s.elementRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		s.logger.Error("Failed to list elements", zap.Error(err))
		return nil, fmt.Errorf("failed to list elements: %w", err)
	}

	dtos := make([]domain.ElementDTO, len(elements))
	for i := range elements {
		dtos[i] = mapper.ToElementDTO(&elements[i])
	}
	return dtos, nil
}

// UpdateElement updates an element's fields
func (s *TemplateService) UpdateElement(ctx context.Context, elementID uuid.UUID, req domain.CreateElementRequest) (*domain.ElementDTO, error) {
	element, err := s.elementRepo.GetByID(ctx, elementID)
	if err != nil {
		return nil, fmt.Errorf("element not found: %w", err)
	}

	element.Name = req.Name
	element.MaterialCost = req.MaterialCost
	element.LaborCost = req.LaborCost
	element.MarkupPercentage = req.MarkupPercentage
	element.Position = req.Position

	if err := s.elementRepo.Update(ctx, element); err != nil {
		s.logger.Error("Failed to update element", zap.Error(err))
		return nil, fmt.Errorf("failed to update element: %w", err)
	}

	dto := mapper.ToElementDTO(element)
	return &dto, nil
}

// DeleteElement removes an element
func (s *TemplateService) DeleteElement(ctx context.Context, elementID uuid.UUID) error {
	if _, err := s.elementRepo.GetByID(ctx, elementID); err != nil {
		return fmt.Errorf("element not found: %w", err)
	}

	if err := s.elementRepo.Delete(ctx, elementID); err != nil {
		s.logger.Error("Failed to delete element", zap.Error(err))
		return fmt.Errorf("failed to delete element: %w", err)
	}
	return nil
}
