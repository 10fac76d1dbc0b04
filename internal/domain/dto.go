package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Response DTOs

type TemplateDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type CategoryDTO struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"name"`
	Position int          `json:"position"`
	Elements []ElementDTO `json:"elements,omitempty"`
}

type VariableDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Type         VariableType    `json:"type"`
	DefaultValue decimal.Decimal `json:"defaultValue"`
}

type ElementDTO struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	MaterialCost     string          `json:"materialCost"`
	LaborCost        string          `json:"laborCost"`
	MarkupPercentage decimal.Decimal `json:"markupPercentage"`
	Position         int             `json:"position"`
	CategoryID       *uuid.UUID      `json:"categoryId,omitempty"`
}

type ProposalDTO struct {
	ID                     uuid.UUID       `json:"id"`
	Name                   string          `json:"name"`
	GlobalMarkupPercentage decimal.Decimal `json:"globalMarkupPercentage"`
	TemplateID             *uuid.UUID      `json:"templateId,omitempty"`
	CreatedAt              string          `json:"createdAt"`
	UpdatedAt              string          `json:"updatedAt"`
}

// ResolvedVariableValueDTO is the per-item result of setting or listing
// variable values: the variable identity joined with its recorded value.
type ResolvedVariableValueDTO struct {
	VariableID   uuid.UUID       `json:"variableId"`
	VariableName string          `json:"variableName"`
	VariableType VariableType    `json:"variableType"`
	Value        decimal.Decimal `json:"value"`
}

// ResolvedElementValueDTO carries an element's computed costs within a
// proposal plus the derived totals. TotalCost and TotalWithMarkup are
// computed on the way out, never stored.
type ResolvedElementValueDTO struct {
	ElementID              uuid.UUID       `json:"elementId"`
	ElementName            string          `json:"elementName"`
	CategoryID             *uuid.UUID      `json:"categoryId,omitempty"`
	CategoryName           string          `json:"categoryName,omitempty"`
	CalculatedMaterialCost decimal.Decimal `json:"calculatedMaterialCost"`
	CalculatedLaborCost    decimal.Decimal `json:"calculatedLaborCost"`
	MarkupPercentage       decimal.Decimal `json:"markupPercentage"`
	TotalCost              decimal.Decimal `json:"totalCost"`
	TotalWithMarkup        decimal.Decimal `json:"totalWithMarkup"`
}

// SyncReportDTO summarizes what a template re-sync changed on a proposal.
type SyncReportDTO struct {
	AddedVariables   []string `json:"addedVariables"`
	UpdatedVariables []string `json:"updatedVariables"`
	AddedElements    []string `json:"addedElements"`
}

type ContractDTO struct {
	ID                  uuid.UUID `json:"id"`
	ProposalID          uuid.UUID `json:"proposalId"`
	IsActive            bool      `json:"isActive"`
	Version             int       `json:"version"`
	ClientName          string    `json:"clientName"`
	ClientSignature     string    `json:"clientSignature,omitempty"`
	ClientInitials      string    `json:"clientInitials,omitempty"`
	ClientSignedAt      *string   `json:"clientSignedAt,omitempty"`
	ContractorName      string    `json:"contractorName"`
	ContractorSignature string    `json:"contractorSignature,omitempty"`
	ContractorInitials  string    `json:"contractorInitials,omitempty"`
	ContractorSignedAt  *string   `json:"contractorSignedAt,omitempty"`
	TermsAndConditions  string    `json:"termsAndConditions"`
	FullyExecuted       bool      `json:"fullyExecuted"`
	CreatedAt           string    `json:"createdAt"`
}

// Pagination response wrapper
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Request DTOs

type CreateTemplateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty"`
}

type UpdateTemplateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty"`
}

type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Position int    `json:"position" validate:"gte=0"`
}

type CreateVariableRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	Type         string          `json:"type" validate:"required,oneof=LINEAR_FEET SQUARE_FEET CUBIC_FEET COUNT"`
	DefaultValue decimal.Decimal `json:"defaultValue"`
}

type CreateElementRequest struct {
	Name             string          `json:"name" validate:"required,max=255"`
	MaterialCost     string          `json:"materialCost" validate:"required,max=255"`
	LaborCost        string          `json:"laborCost" validate:"required,max=255"`
	MarkupPercentage decimal.Decimal `json:"markupPercentage"`
	Position         int             `json:"position" validate:"gte=0"`
}

type CreateProposalFromTemplateRequest struct {
	Name                   string          `json:"name" validate:"required,max=255"`
	TemplateID             uuid.UUID       `json:"templateId" validate:"required"`
	GlobalMarkupPercentage decimal.Decimal `json:"globalMarkupPercentage"`
}

type CreateProposalFromScratchRequest struct {
	Name                   string          `json:"name" validate:"required,max=255"`
	GlobalMarkupPercentage decimal.Decimal `json:"globalMarkupPercentage"`
}

type UpdateProposalRequest struct {
	Name                   *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	GlobalMarkupPercentage *decimal.Decimal `json:"globalMarkupPercentage,omitempty"`
}

// SetVariableValueItem records one variable's value on a proposal. When
// VariableID is nil the item is a new-variable spec: VariableName and
// VariableType are required and a proposal-owned variable is created with
// DefaultValue = Value.
type SetVariableValueItem struct {
	VariableID   *uuid.UUID      `json:"variableId,omitempty"`
	VariableName string          `json:"variableName,omitempty"`
	VariableType string          `json:"variableType,omitempty"`
	Value        decimal.Decimal `json:"value"`
}

// UpdateElementValueItem updates one element's computed costs on a proposal.
// A nil ElementID marks a new-element spec (ElementName required, category
// resolved or created by name). For an existing element, name, position and
// category are updated in place only when supplied.
type UpdateElementValueItem struct {
	ElementID              *uuid.UUID      `json:"elementId,omitempty"`
	ElementName            string          `json:"elementName,omitempty"`
	CategoryName           string          `json:"categoryName,omitempty"`
	CategoryPosition       *int            `json:"categoryPosition,omitempty"`
	Position               *int            `json:"position,omitempty"`
	CalculatedMaterialCost decimal.Decimal `json:"calculatedMaterialCost"`
	CalculatedLaborCost    decimal.Decimal `json:"calculatedLaborCost"`
	MarkupPercentage       decimal.Decimal `json:"markupPercentage"`
}

type GenerateContractRequest struct {
	ClientName         string `json:"clientName" validate:"required,max=255"`
	ClientInitials     string `json:"clientInitials,omitempty" validate:"max=10"`
	ContractorName     string `json:"contractorName" validate:"required,max=255"`
	ContractorInitials string `json:"contractorInitials,omitempty" validate:"max=10"`
	TermsAndConditions string `json:"termsAndConditions" validate:"required"`
}

// SignContractRequest carries an optional base64-encoded signature image and
// optional initials. Signing always stamps a fresh timestamp even when both
// fields are empty.
type SignContractRequest struct {
	Signature string `json:"signature,omitempty" validate:"omitempty,base64"`
	Initials  string `json:"initials,omitempty" validate:"max=10"`
}
