package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerColumns(t *testing.T) {
	id := uuid.New()

	t.Run("template owner sets only template_id", func(t *testing.T) {
		templateID, proposalID := TemplateOwner(id).columns()
		require.NotNil(t, templateID)
		assert.Equal(t, id, *templateID)
		assert.Nil(t, proposalID)
	})

	t.Run("proposal owner sets only proposal_id", func(t *testing.T) {
		templateID, proposalID := ProposalOwner(id).columns()
		assert.Nil(t, templateID)
		require.NotNil(t, proposalID)
		assert.Equal(t, id, *proposalID)
	})
}

func TestOwnerRoundTrip(t *testing.T) {
	id := uuid.New()

	category := NewCategory(TemplateOwner(id), "Flooring", 0)
	assert.True(t, category.Owner().IsTemplate())
	assert.Equal(t, id, category.Owner().ID)

	variable := NewVariable(ProposalOwner(id), "sqft", VariableTypeSquareFeet, decimal.NewFromInt(120))
	assert.False(t, variable.Owner().IsTemplate())
	assert.Equal(t, id, variable.Owner().ID)
}

func TestIsValidVariableType(t *testing.T) {
	for _, typ := range []string{"LINEAR_FEET", "SQUARE_FEET", "CUBIC_FEET", "COUNT"} {
		assert.True(t, IsValidVariableType(typ), typ)
	}
	assert.False(t, IsValidVariableType("GALLONS"))
	assert.False(t, IsValidVariableType("square_feet"))
	assert.False(t, IsValidVariableType(""))
}

func TestContractFullyExecuted(t *testing.T) {
	c := &Contract{}
	assert.False(t, c.FullyExecuted())

	now := time.Now().UTC()
	c.ClientSignedAt = &now
	assert.False(t, c.FullyExecuted())

	c.ContractorSignedAt = &now
	assert.True(t, c.FullyExecuted())
}
