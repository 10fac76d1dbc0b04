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

func createSyncService(db *gorm.DB) *service.SyncService {
	return service.NewSyncService(
		repository.NewProposalRepository(db),
		repository.NewTemplateRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewElementRepository(db),
		repository.NewVariableValueRepository(db),
		repository.NewElementValueRepository(db),
		zap.NewNop(),
	)
}

func TestSyncService_SyncWithTemplate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	proposalSvc := createProposalService(db)
	syncSvc := createSyncService(db)
	ctx := context.Background()

	template := seedKitchenTemplate(t, db)
	dto, err := proposalSvc.CreateFromTemplate(ctx, domain.CreateProposalFromTemplateRequest{
		Name:       "Smith Kitchen",
		TemplateID: template.ID,
	})
	require.NoError(t, err)
	proposalID := dto.ID

	t.Run("freshly cloned proposal syncs to an empty report", func(t *testing.T) {
		report, err := syncSvc.SyncWithTemplate(ctx, proposalID)
		require.NoError(t, err)
		assert.Empty(t, report.AddedVariables)
		assert.Empty(t, report.UpdatedVariables)
		assert.Empty(t, report.AddedElements)
	})

	t.Run("new template variable is seeded at its default", func(t *testing.T) {
		testutil.CreateTestVariable(t, db, template.ID, "backsplash_sqft", "24")

		report, err := syncSvc.SyncWithTemplate(ctx, proposalID)
		require.NoError(t, err)
		assert.Equal(t, []string{"backsplash_sqft"}, report.AddedVariables)

		var variable domain.Variable
		require.NoError(t, db.Where("template_id = ? AND name = ?", template.ID, "backsplash_sqft").First(&variable).Error)

		var value domain.VariableValue
		require.NoError(t, db.Where("proposal_id = ? AND variable_id = ?", proposalID, variable.ID).First(&value).Error)
		assert.True(t, decimal.NewFromInt(24).Equal(value.Value))
	})

	t.Run("customized value is overwritten and reported", func(t *testing.T) {
		var variable domain.Variable
		require.NoError(t, db.Where("template_id = ? AND name = ?", template.ID, "sqft").First(&variable).Error)

		require.NoError(t, db.Model(&domain.VariableValue{}).
			Where("proposal_id = ? AND variable_id = ?", proposalID, variable.ID).
			Update("value", decimal.NewFromInt(999)).Error)

		report, err := syncSvc.SyncWithTemplate(ctx, proposalID)
		require.NoError(t, err)
		assert.Equal(t, []string{"sqft"}, report.UpdatedVariables)

		var value domain.VariableValue
		require.NoError(t, db.Where("proposal_id = ? AND variable_id = ?", proposalID, variable.ID).First(&value).Error)
		assert.True(t, variable.DefaultValue.Equal(value.Value))
	})

	t.Run("new template element lands in the matching proposal category", func(t *testing.T) {
		var flooring domain.Category
		require.NoError(t, db.Where("template_id = ? AND name = ?", template.ID, "Flooring").First(&flooring).Error)
		testutil.CreateTestElement(t, db, flooring.ID, "Baseboard", "320", "180", "5", 2)

		report, err := syncSvc.SyncWithTemplate(ctx, proposalID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Baseboard"}, report.AddedElements)

		var proposalFlooring domain.Category
		require.NoError(t, db.Where("proposal_id = ? AND name = ?", proposalID, "Flooring").First(&proposalFlooring).Error)

		var element domain.Element
		require.NoError(t, db.Where("proposal_id = ? AND name = ?", proposalID, "Baseboard").First(&element).Error)
		require.NotNil(t, element.CategoryID)
		assert.Equal(t, proposalFlooring.ID, *element.CategoryID)

		var value domain.ElementValue
		require.NoError(t, db.Where("proposal_id = ? AND element_id = ?", proposalID, element.ID).First(&value).Error)
		assert.True(t, decimal.NewFromInt(320).Equal(value.CalculatedMaterialCost))
		assert.True(t, decimal.NewFromInt(180).Equal(value.CalculatedLaborCost))
	})

	t.Run("existing proposal elements keep their costs", func(t *testing.T) {
		var tile domain.Element
		require.NoError(t, db.Where("proposal_id = ? AND name = ?", proposalID, "Tile").First(&tile).Error)

		require.NoError(t, db.Model(&domain.ElementValue{}).
			Where("proposal_id = ? AND element_id = ?", proposalID, tile.ID).
			Update("calculated_material_cost", decimal.NewFromInt(9999)).Error)

		_, err := syncSvc.SyncWithTemplate(ctx, proposalID)
		require.NoError(t, err)

		var value domain.ElementValue
		require.NoError(t, db.Where("proposal_id = ? AND element_id = ?", proposalID, tile.ID).First(&value).Error)
		assert.True(t, decimal.NewFromInt(9999).Equal(value.CalculatedMaterialCost))
	})

	t.Run("sync is idempotent", func(t *testing.T) {
		report, err := syncSvc.SyncWithTemplate(ctx, proposalID)
		require.NoError(t, err)
		assert.Empty(t, report.AddedVariables)
		assert.Empty(t, report.UpdatedVariables)
		assert.Empty(t, report.AddedElements)

		var elements int64
		require.NoError(t, db.Model(&domain.Element{}).Where("proposal_id = ?", proposalID).Count(&elements).Error)
		assert.Equal(t, int64(4), elements)
	})

	t.Run("new template category is created for the proposal", func(t *testing.T) {
		lighting := testutil.CreateTestCategory(t, db, template.ID, "Lighting", 5)
		testutil.CreateTestElement(t, db, lighting.ID, "Recessed Cans", "75", "125", "0", 0)

		report, err := syncSvc.SyncWithTemplate(ctx, proposalID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Recessed Cans"}, report.AddedElements)

		var category domain.Category
		require.NoError(t, db.Where("proposal_id = ? AND name = ?", proposalID, "Lighting").First(&category).Error)
		assert.Equal(t, 5, category.Position)
	})
}

func TestSyncService_Errors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	syncSvc := createSyncService(db)
	ctx := context.Background()

	t.Run("proposal without template", func(t *testing.T) {
		proposal := testutil.CreateTestProposal(t, db, "From Scratch", nil)

		_, err := syncSvc.SyncWithTemplate(ctx, proposal.ID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrNoTemplate))
	})

	t.Run("unknown proposal", func(t *testing.T) {
		_, err := syncSvc.SyncWithTemplate(ctx, uuid.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
