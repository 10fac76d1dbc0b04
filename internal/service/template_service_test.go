package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/crestline-remodeling/proposal-api/internal/repository"
	"github.com/crestline-remodeling/proposal-api/internal/service"
	"github.com/crestline-remodeling/proposal-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createTemplateService(db *gorm.DB) *service.TemplateService {
	return service.NewTemplateService(
		repository.NewTemplateRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewVariableRepository(db),
		repository.NewElementRepository(db),
		zap.NewNop(),
	)
}

func TestTemplateService_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTemplateService(db)
	ctx := context.Background()

	dto, err := svc.Create(ctx, domain.CreateTemplateRequest{
		Name:        "Kitchen Remodel",
		Description: "Standard kitchen scope",
	})
	require.NoError(t, err)
	assert.Equal(t, "Kitchen Remodel", dto.Name)

	t.Run("get", func(t *testing.T) {
		got, err := svc.GetByID(ctx, dto.ID)
		require.NoError(t, err)
		assert.Equal(t, dto.ID, got.ID)
	})

	t.Run("update", func(t *testing.T) {
		updated, err := svc.Update(ctx, dto.ID, domain.UpdateTemplateRequest{
			Name:        "Kitchen Remodel v2",
			Description: "Expanded scope",
		})
		require.NoError(t, err)
		assert.Equal(t, "Kitchen Remodel v2", updated.Name)
	})

	t.Run("list with search", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateTemplateRequest{Name: "Bathroom Remodel"})
		require.NoError(t, err)

		dtos, total, err := svc.List(ctx, 1, 20, "bathroom")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, dtos, 1)
		assert.Equal(t, "Bathroom Remodel", dtos[0].Name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, dto.ID))
		_, err := svc.GetByID(ctx, dto.ID)
		require.Error(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.GetByID(ctx, uuid.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestTemplateService_Structure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTemplateService(db)
	ctx := context.Background()

	template, err := svc.Create(ctx, domain.CreateTemplateRequest{Name: "Kitchen Remodel"})
	require.NoError(t, err)

	category, err := svc.AddCategory(ctx, template.ID, domain.CreateCategoryRequest{Name: "Flooring", Position: 0})
	require.NoError(t, err)

	t.Run("categories are listed in position order", func(t *testing.T) {
		_, err := svc.AddCategory(ctx, template.ID, domain.CreateCategoryRequest{Name: "Cabinets", Position: 1})
		require.NoError(t, err)

		categories, err := svc.ListCategories(ctx, template.ID)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "Flooring", categories[0].Name)
		assert.Equal(t, "Cabinets", categories[1].Name)
	})

	t.Run("variables", func(t *testing.T) {
		variable, err := svc.AddVariable(ctx, template.ID, domain.CreateVariableRequest{
			Name:         "sqft",
			Type:         "SQUARE_FEET",
			DefaultValue: decimal.NewFromInt(120),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.VariableTypeSquareFeet, variable.Type)

		variables, err := svc.ListVariables(ctx, template.ID)
		require.NoError(t, err)
		require.Len(t, variables, 1)

		updated, err := svc.UpdateVariable(ctx, variable.ID, domain.CreateVariableRequest{
			Name:         "floor_sqft",
			Type:         "SQUARE_FEET",
			DefaultValue: decimal.NewFromInt(140),
		})
		require.NoError(t, err)
		assert.Equal(t, "floor_sqft", updated.Name)
		assert.True(t, decimal.NewFromInt(140).Equal(updated.DefaultValue))

		require.NoError(t, svc.DeleteVariable(ctx, variable.ID))
		variables, err = svc.ListVariables(ctx, template.ID)
		require.NoError(t, err)
		assert.Empty(t, variables)
	})

	t.Run("elements", func(t *testing.T) {
		element, err := svc.AddElement(ctx, category.ID, domain.CreateElementRequest{
			Name:             "Tile",
			MaterialCost:     "450.50",
			LaborCost:        "250",
			MarkupPercentage: decimal.NewFromInt(10),
			Position:         0,
		})
		require.NoError(t, err)
		assert.Equal(t, "450.50", element.MaterialCost)

		elements, err := svc.ListElements(ctx, category.ID)
		require.NoError(t, err)
		require.Len(t, elements, 1)

		updated, err := svc.UpdateElement(ctx, element.ID, domain.CreateElementRequest{
			Name:         "Porcelain Tile",
			MaterialCost: "500",
			LaborCost:    "275",
			Position:     0,
		})
		require.NoError(t, err)
		assert.Equal(t, "Porcelain Tile", updated.Name)

		require.NoError(t, svc.DeleteElement(ctx, element.ID))
		elements, err = svc.ListElements(ctx, category.ID)
		require.NoError(t, err)
		assert.Empty(t, elements)
	})

	t.Run("element under proposal-owned category is rejected", func(t *testing.T) {
		proposal := testutil.CreateTestProposal(t, db, "Ad Hoc", nil)
		proposalCategory := domain.NewCategory(domain.ProposalOwner(proposal.ID), "Extras", 0)
		require.NoError(t, db.Create(proposalCategory).Error)

		_, err := svc.AddElement(ctx, proposalCategory.ID, domain.CreateElementRequest{
			Name:         "Rogue",
			MaterialCost: "1",
			LaborCost:    "1",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrInvalidInput))
	})

	t.Run("category update and delete", func(t *testing.T) {
		updated, err := svc.UpdateCategory(ctx, category.ID, domain.CreateCategoryRequest{Name: "Hard Surfaces", Position: 4})
		require.NoError(t, err)
		assert.Equal(t, "Hard Surfaces", updated.Name)
		assert.Equal(t, 4, updated.Position)

		require.NoError(t, svc.DeleteCategory(ctx, category.ID))
		_, err = svc.ListElements(ctx, category.ID)
		require.Error(t, err)
	})
}
