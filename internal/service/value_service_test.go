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

func createValueService(db *gorm.DB) *service.ValueService {
	return service.NewValueService(
		db,
		repository.NewProposalRepository(db),
		repository.NewVariableValueRepository(db),
		repository.NewElementValueRepository(db),
		zap.NewNop(),
	)
}

func TestValueService_SetVariableValues(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createValueService(db)
	ctx := context.Background()

	proposal := testutil.CreateTestProposal(t, db, "Smith Kitchen", nil)
	sqft := domain.NewVariable(domain.ProposalOwner(proposal.ID), "sqft", domain.VariableTypeSquareFeet, decimal.NewFromInt(100))
	require.NoError(t, db.Create(sqft).Error)

	t.Run("set by id creates value row", func(t *testing.T) {
		resolved, err := svc.SetVariableValues(ctx, proposal.ID, []domain.SetVariableValueItem{
			{VariableID: &sqft.ID, Value: decimal.NewFromInt(150)},
		})
		require.NoError(t, err)
		require.Len(t, resolved, 1)
		assert.Equal(t, sqft.ID, resolved[0].VariableID)
		assert.Equal(t, "sqft", resolved[0].VariableName)
		assert.True(t, decimal.NewFromInt(150).Equal(resolved[0].Value))
	})

	t.Run("re-setting overwrites instead of duplicating", func(t *testing.T) {
		_, err := svc.SetVariableValues(ctx, proposal.ID, []domain.SetVariableValueItem{
			{VariableID: &sqft.ID, Value: decimal.NewFromInt(175)},
		})
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&domain.VariableValue{}).
			Where("proposal_id = ? AND variable_id = ?", proposal.ID, sqft.ID).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)

		var value domain.VariableValue
		require.NoError(t, db.Where("proposal_id = ? AND variable_id = ?", proposal.ID, sqft.ID).First(&value).Error)
		assert.True(t, decimal.NewFromInt(175).Equal(value.Value))
	})

	t.Run("nil id creates proposal-direct variable", func(t *testing.T) {
		resolved, err := svc.SetVariableValues(ctx, proposal.ID, []domain.SetVariableValueItem{
			{VariableName: "ceiling_height", VariableType: "LINEAR_FEET", Value: decimal.NewFromInt(9)},
		})
		require.NoError(t, err)
		require.Len(t, resolved, 1)
		assert.Equal(t, "ceiling_height", resolved[0].VariableName)
		assert.Equal(t, domain.VariableTypeLinearFeet, resolved[0].VariableType)

		var created domain.Variable
		require.NoError(t, db.Where("proposal_id = ? AND name = ?", proposal.ID, "ceiling_height").First(&created).Error)
		assert.True(t, decimal.NewFromInt(9).Equal(created.DefaultValue), "default seeded at the supplied value")
		assert.Nil(t, created.TemplateID)
	})

	t.Run("nil id without name fails the whole batch", func(t *testing.T) {
		_, err := svc.SetVariableValues(ctx, proposal.ID, []domain.SetVariableValueItem{
			{VariableID: &sqft.ID, Value: decimal.NewFromInt(999)},
			{VariableType: "COUNT", Value: decimal.NewFromInt(2)},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrInvalidInput))

		// First item must have been rolled back.
		var value domain.VariableValue
		require.NoError(t, db.Where("proposal_id = ? AND variable_id = ?", proposal.ID, sqft.ID).First(&value).Error)
		assert.True(t, decimal.NewFromInt(175).Equal(value.Value))
	})

	t.Run("unknown variable type", func(t *testing.T) {
		_, err := svc.SetVariableValues(ctx, proposal.ID, []domain.SetVariableValueItem{
			{VariableName: "paint", VariableType: "GALLONS", Value: decimal.NewFromInt(3)},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrInvalidInput))
	})

	t.Run("unknown variable id", func(t *testing.T) {
		missing := uuid.New()
		_, err := svc.SetVariableValues(ctx, proposal.ID, []domain.SetVariableValueItem{
			{VariableID: &missing, Value: decimal.NewFromInt(1)},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("unknown proposal", func(t *testing.T) {
		_, err := svc.SetVariableValues(ctx, uuid.New(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestValueService_UpdateElementValues(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createValueService(db)
	ctx := context.Background()

	proposal := testutil.CreateTestProposal(t, db, "Smith Kitchen", nil)

	t.Run("nil id creates element and category by name", func(t *testing.T) {
		resolved, err := svc.UpdateElementValues(ctx, proposal.ID, []domain.UpdateElementValueItem{
			{
				ElementName:            "Tile",
				CategoryName:           "Flooring",
				CalculatedMaterialCost: decimal.NewFromInt(450),
				CalculatedLaborCost:    decimal.NewFromInt(250),
				MarkupPercentage:       decimal.NewFromInt(10),
			},
		})
		require.NoError(t, err)
		require.Len(t, resolved, 1)
		assert.Equal(t, "Tile", resolved[0].ElementName)
		assert.Equal(t, "Flooring", resolved[0].CategoryName)
		assert.True(t, decimal.NewFromInt(700).Equal(resolved[0].TotalCost))
		assert.True(t, decimal.NewFromInt(770).Equal(resolved[0].TotalWithMarkup), "got %s", resolved[0].TotalWithMarkup)

		var element domain.Element
		require.NoError(t, db.Where("proposal_id = ? AND name = ?", proposal.ID, "Tile").First(&element).Error)
		assert.Equal(t, "0", element.MaterialCost, "ad hoc elements carry zeroed raw costs")
		assert.Equal(t, "0", element.LaborCost)
	})

	t.Run("same category name is reused not duplicated", func(t *testing.T) {
		_, err := svc.UpdateElementValues(ctx, proposal.ID, []domain.UpdateElementValueItem{
			{
				ElementName:            "Grout",
				CategoryName:           "Flooring",
				CalculatedMaterialCost: decimal.NewFromInt(40),
				CalculatedLaborCost:    decimal.NewFromInt(60),
			},
		})
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&domain.Category{}).
			Where("proposal_id = ? AND name = ?", proposal.ID, "Flooring").
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("re-submitting overwrites the value row", func(t *testing.T) {
		var element domain.Element
		require.NoError(t, db.Where("proposal_id = ? AND name = ?", proposal.ID, "Tile").First(&element).Error)

		resolved, err := svc.UpdateElementValues(ctx, proposal.ID, []domain.UpdateElementValueItem{
			{
				ElementID:              &element.ID,
				CalculatedMaterialCost: decimal.NewFromInt(500),
				CalculatedLaborCost:    decimal.NewFromInt(300),
				MarkupPercentage:       decimal.NewFromInt(20),
			},
		})
		require.NoError(t, err)
		require.Len(t, resolved, 1)
		assert.True(t, decimal.NewFromInt(960).Equal(resolved[0].TotalWithMarkup))

		var count int64
		require.NoError(t, db.Model(&domain.ElementValue{}).
			Where("proposal_id = ? AND element_id = ?", proposal.ID, element.ID).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("existing element can be renamed and recategorized", func(t *testing.T) {
		var element domain.Element
		require.NoError(t, db.Where("proposal_id = ? AND name = ?", proposal.ID, "Grout").First(&element).Error)

		position := 3
		resolved, err := svc.UpdateElementValues(ctx, proposal.ID, []domain.UpdateElementValueItem{
			{
				ElementID:              &element.ID,
				ElementName:            "Epoxy Grout",
				CategoryName:           "Finishing",
				Position:               &position,
				CalculatedMaterialCost: decimal.NewFromInt(90),
				CalculatedLaborCost:    decimal.NewFromInt(60),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "Epoxy Grout", resolved[0].ElementName)
		assert.Equal(t, "Finishing", resolved[0].CategoryName)

		var reloaded domain.Element
		require.NoError(t, db.First(&reloaded, "id = ?", element.ID).Error)
		assert.Equal(t, "Epoxy Grout", reloaded.Name)
		assert.Equal(t, 3, reloaded.Position)
	})

	t.Run("nil id without element name fails the batch", func(t *testing.T) {
		_, err := svc.UpdateElementValues(ctx, proposal.ID, []domain.UpdateElementValueItem{
			{CategoryName: "Flooring", CalculatedMaterialCost: decimal.NewFromInt(1)},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrInvalidInput))
	})

	t.Run("unknown element id", func(t *testing.T) {
		missing := uuid.New()
		_, err := svc.UpdateElementValues(ctx, proposal.ID, []domain.UpdateElementValueItem{
			{ElementID: &missing, CalculatedMaterialCost: decimal.NewFromInt(1)},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestValueService_ListValues(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createValueService(db)
	ctx := context.Background()

	proposal := testutil.CreateTestProposal(t, db, "Smith Kitchen", nil)

	_, err := svc.SetVariableValues(ctx, proposal.ID, []domain.SetVariableValueItem{
		{VariableName: "sqft", VariableType: "SQUARE_FEET", Value: decimal.NewFromInt(120)},
	})
	require.NoError(t, err)

	_, err = svc.UpdateElementValues(ctx, proposal.ID, []domain.UpdateElementValueItem{
		{
			ElementName:            "Tile",
			CategoryName:           "Flooring",
			CalculatedMaterialCost: decimal.NewFromInt(450),
			CalculatedLaborCost:    decimal.NewFromInt(250),
			MarkupPercentage:       decimal.NewFromInt(10),
		},
	})
	require.NoError(t, err)

	t.Run("variable values", func(t *testing.T) {
		values, err := svc.ListVariableValues(ctx, proposal.ID)
		require.NoError(t, err)
		require.Len(t, values, 1)
		assert.Equal(t, "sqft", values[0].VariableName)
		assert.True(t, decimal.NewFromInt(120).Equal(values[0].Value))
	})

	t.Run("element values carry derived totals", func(t *testing.T) {
		values, err := svc.ListElementValues(ctx, proposal.ID)
		require.NoError(t, err)
		require.Len(t, values, 1)
		assert.Equal(t, "Tile", values[0].ElementName)
		assert.Equal(t, "Flooring", values[0].CategoryName)
		assert.True(t, decimal.NewFromInt(770).Equal(values[0].TotalWithMarkup))
	})

	t.Run("unknown proposal", func(t *testing.T) {
		_, err := svc.ListVariableValues(ctx, uuid.New())
		require.Error(t, err)
	})
}
