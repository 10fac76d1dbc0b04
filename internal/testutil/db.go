// Package testutil provides shared helpers for package tests. Tests run
// against an in-memory SQLite database migrated with the same gorm models the
// service uses against PostgreSQL.
package testutil

import (
	"testing"

	"github.com/crestline-remodeling/proposal-api/internal/database"
	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh in-memory SQLite database and migrates the full
// schema. Each call returns an isolated database. Foreign keys are enforced
// so the SET NULL and CASCADE actions behave as they do on PostgreSQL.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second connection would see its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db), "failed to migrate schema")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// Decimal parses a decimal literal, failing the test on bad input.
func Decimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// CreateTestTemplate creates a template with no contents.
func CreateTestTemplate(t *testing.T, db *gorm.DB, name string) *domain.Template {
	t.Helper()

	template := &domain.Template{Name: name, Description: "test template"}
	require.NoError(t, db.Create(template).Error)
	return template
}

// CreateTestVariable attaches a template-owned variable with the given default.
func CreateTestVariable(t *testing.T, db *gorm.DB, templateID uuid.UUID, name, defaultValue string) *domain.Variable {
	t.Helper()

	variable := domain.NewVariable(
		domain.TemplateOwner(templateID),
		name,
		domain.VariableTypeSquareFeet,
		Decimal(t, defaultValue),
	)
	require.NoError(t, db.Create(variable).Error)
	return variable
}

// CreateTestCategory attaches a template-owned category at the given position.
func CreateTestCategory(t *testing.T, db *gorm.DB, templateID uuid.UUID, name string, position int) *domain.Category {
	t.Helper()

	category := domain.NewCategory(domain.TemplateOwner(templateID), name, position)
	require.NoError(t, db.Create(category).Error)
	return category
}

// CreateTestElement attaches an element to a template-owned category.
func CreateTestElement(t *testing.T, db *gorm.DB, categoryID uuid.UUID, name, materialCost, laborCost, markup string, position int) *domain.Element {
	t.Helper()

	element := domain.NewTemplateElement(categoryID, name, materialCost, laborCost, Decimal(t, markup), position)
	require.NoError(t, db.Create(element).Error)
	return element
}

// CreateTestProposal creates a proposal, optionally linked to a template.
func CreateTestProposal(t *testing.T, db *gorm.DB, name string, templateID *uuid.UUID) *domain.Proposal {
	t.Helper()

	proposal := &domain.Proposal{
		Name:                   name,
		GlobalMarkupPercentage: decimal.Zero,
		TemplateID:             templateID,
	}
	require.NoError(t, db.Create(proposal).Error)
	return proposal
}
