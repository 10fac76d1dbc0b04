package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key so the models work on both PostgreSQL
// and the in-memory SQLite database used in tests.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// VariableType classifies the measurement a proposal variable represents
type VariableType string

const (
	VariableTypeLinearFeet VariableType = "LINEAR_FEET"
	VariableTypeSquareFeet VariableType = "SQUARE_FEET"
	VariableTypeCubicFeet  VariableType = "CUBIC_FEET"
	VariableTypeCount      VariableType = "COUNT"
)

// IsValidVariableType reports whether s names a known variable type
func IsValidVariableType(s string) bool {
	switch VariableType(s) {
	case VariableTypeLinearFeet, VariableTypeSquareFeet, VariableTypeCubicFeet, VariableTypeCount:
		return true
	}
	return false
}

// Template is a reusable blueprint of categories, variables and elements with
// default costs. Deleting a template never deletes proposals cloned from it;
// their template reference is nulled instead.
type Template struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null;index"`
	Description string `gorm:"type:text"`

	Categories []Category `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	Variables  []Variable `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}

// Proposal is a concrete, editable cost estimation for one job, optionally
// originated from a template.
type Proposal struct {
	BaseModel
	Name                   string          `gorm:"type:varchar(255);not null;index"`
	GlobalMarkupPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:global_markup_percentage"`
	TemplateID             *uuid.UUID      `gorm:"type:uuid;column:template_id;index"`
	Template               *Template       `gorm:"foreignKey:TemplateID;constraint:OnDelete:SET NULL"`

	DirectCategories []Category      `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
	DirectVariables  []Variable      `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
	DirectElements   []Element       `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
	VariableValues   []VariableValue `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
	ElementValues    []ElementValue  `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
	Contracts        []Contract      `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
}

// Category is a named, position-ordered grouping of elements. It is owned by
// exactly one template or one proposal; the migration enforces the exclusivity
// with a CHECK constraint.
type Category struct {
	BaseModel
	Name       string     `gorm:"type:varchar(255);not null"`
	Position   int        `gorm:"not null;default:0"`
	TemplateID *uuid.UUID `gorm:"type:uuid;column:template_id;index"`
	ProposalID *uuid.UUID `gorm:"type:uuid;column:proposal_id;index"`

	Elements []Element `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// NewCategory constructs a category under the given owner.
func NewCategory(owner Owner, name string, position int) *Category {
	c := &Category{Name: name, Position: position}
	c.TemplateID, c.ProposalID = owner.columns()
	return c
}

// Owner returns the exclusive owner of the category.
func (c *Category) Owner() Owner {
	return ownerOf(c.TemplateID, c.ProposalID)
}

func (Category) TableName() string { return "proposal_categories" }

// Variable is a named numeric input (linear feet, square feet, ...) with a
// default, used to parametrize element costs. Same exclusive ownership rule as
// Category.
type Variable struct {
	BaseModel
	Name         string          `gorm:"type:varchar(255);not null"`
	Type         VariableType    `gorm:"type:varchar(20);not null"`
	DefaultValue decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;column:default_value"`
	TemplateID   *uuid.UUID      `gorm:"type:uuid;column:template_id;index"`
	ProposalID   *uuid.UUID      `gorm:"type:uuid;column:proposal_id;index"`
}

// NewVariable constructs a variable under the given owner.
func NewVariable(owner Owner, name string, typ VariableType, defaultValue decimal.Decimal) *Variable {
	v := &Variable{Name: name, Type: typ, DefaultValue: defaultValue}
	v.TemplateID, v.ProposalID = owner.columns()
	return v
}

// Owner returns the exclusive owner of the variable.
func (v *Variable) Owner() Owner {
	return ownerOf(v.TemplateID, v.ProposalID)
}

func (Variable) TableName() string { return "proposal_variables" }

// Element is a single line-item cost. MaterialCost and LaborCost hold "formula
// or fixed value" strings; this service only ever interprets them as decimal
// literals (see ParseCost). A proposal-owned element may additionally reference
// a category for grouping, but the proposal_id column is the authoritative
// ownership field.
type Element struct {
	BaseModel
	Name             string          `gorm:"type:varchar(255);not null"`
	MaterialCost     string          `gorm:"type:varchar(255);not null;column:material_cost"`
	LaborCost        string          `gorm:"type:varchar(255);not null;column:labor_cost"`
	MarkupPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:markup_percentage"`
	Position         int             `gorm:"not null;default:0"`
	CategoryID       *uuid.UUID      `gorm:"type:uuid;column:category_id;index"`
	Category         *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	ProposalID       *uuid.UUID      `gorm:"type:uuid;column:proposal_id;index"`
}

// NewTemplateElement constructs an element under a template-owned category.
// Template-level elements carry no proposal reference.
func NewTemplateElement(categoryID uuid.UUID, name, materialCost, laborCost string, markup decimal.Decimal, position int) *Element {
	return &Element{
		Name:             name,
		MaterialCost:     materialCost,
		LaborCost:        laborCost,
		MarkupPercentage: markup,
		Position:         position,
		CategoryID:       &categoryID,
	}
}

// NewProposalElement constructs a proposal-owned element, optionally grouped
// under a category.
func NewProposalElement(proposalID uuid.UUID, categoryID *uuid.UUID, name, materialCost, laborCost string, markup decimal.Decimal, position int) *Element {
	return &Element{
		Name:             name,
		MaterialCost:     materialCost,
		LaborCost:        laborCost,
		MarkupPercentage: markup,
		Position:         position,
		CategoryID:       categoryID,
		ProposalID:       &proposalID,
	}
}

func (Element) TableName() string { return "proposal_elements" }

// VariableValue is the recorded value of one variable within one proposal.
// At most one row exists per (proposal, variable) pair; re-setting overwrites.
type VariableValue struct {
	BaseModel
	ProposalID uuid.UUID       `gorm:"type:uuid;not null;column:proposal_id;uniqueIndex:idx_variable_value_pair"`
	VariableID uuid.UUID       `gorm:"type:uuid;not null;column:variable_id;uniqueIndex:idx_variable_value_pair"`
	Variable   *Variable       `gorm:"foreignKey:VariableID;constraint:OnDelete:CASCADE"`
	Value      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (VariableValue) TableName() string { return "proposal_variable_values" }

// ElementValue is the computed cost of one element within one proposal, as
// opposed to the element's raw cost strings. Unique per (proposal, element).
type ElementValue struct {
	BaseModel
	ProposalID             uuid.UUID       `gorm:"type:uuid;not null;column:proposal_id;uniqueIndex:idx_element_value_pair"`
	ElementID              uuid.UUID       `gorm:"type:uuid;not null;column:element_id;uniqueIndex:idx_element_value_pair"`
	Element                *Element        `gorm:"foreignKey:ElementID;constraint:OnDelete:CASCADE"`
	CalculatedMaterialCost decimal.Decimal `gorm:"type:decimal(10,2);not null;column:calculated_material_cost"`
	CalculatedLaborCost    decimal.Decimal `gorm:"type:decimal(10,2);not null;column:calculated_labor_cost"`
	MarkupPercentage       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:markup_percentage"`
}

func (ElementValue) TableName() string { return "proposal_element_values" }

// SignerRole distinguishes the two independent signing parties on a contract
type SignerRole string

const (
	SignerClient     SignerRole = "client"
	SignerContractor SignerRole = "contractor"
)

// Contract is a versioned, signable document generated from a proposal.
// Versions are append-only per proposal; at most one carries is_active at any
// time (the migration enforces this with a partial unique index). Contracts are
// never deleted automatically.
type Contract struct {
	BaseModel
	ProposalID          uuid.UUID  `gorm:"type:uuid;not null;column:proposal_id;index"`
	IsActive            bool       `gorm:"not null;default:true;column:is_active"`
	Version             int        `gorm:"not null;default:1"`
	ClientName          string     `gorm:"type:varchar(255);not null;column:client_name"`
	ClientSignature     string     `gorm:"type:varchar(500);column:client_signature"`
	ClientInitials      string     `gorm:"type:varchar(10);column:client_initials"`
	ClientSignedAt      *time.Time `gorm:"column:client_signed_at"`
	ContractorName      string     `gorm:"type:varchar(255);not null;column:contractor_name"`
	ContractorSignature string     `gorm:"type:varchar(500);column:contractor_signature"`
	ContractorInitials  string     `gorm:"type:varchar(10);column:contractor_initials"`
	ContractorSignedAt  *time.Time `gorm:"column:contractor_signed_at"`
	TermsAndConditions  string     `gorm:"type:text;not null;column:terms_and_conditions"`
}

// FullyExecuted reports whether both parties have signed. The service never
// stores this; callers derive it.
func (c *Contract) FullyExecuted() bool {
	return c.ClientSignedAt != nil && c.ContractorSignedAt != nil
}
