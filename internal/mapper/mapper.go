package mapper

import (
	"github.com/crestline-remodeling/proposal-api/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"

// ToTemplateDTO converts Template to TemplateDTO
func ToTemplateDTO(template *domain.Template) domain.TemplateDTO {
	return domain.TemplateDTO{
		ID:          template.ID,
		Name:        template.Name,
		Description: template.Description,
		CreatedAt:   template.CreatedAt.Format(timeFormat),
		UpdatedAt:   template.UpdatedAt.Format(timeFormat),
	}
}

// ToCategoryDTO converts Category to CategoryDTO, including its elements
// when they are loaded
func ToCategoryDTO(category *domain.Category) domain.CategoryDTO {
	dto := domain.CategoryDTO{
		ID:       category.ID,
		Name:     category.Name,
		Position: category.Position,
	}
	for i := range category.Elements {
		dto.Elements = append(dto.Elements, ToElementDTO(&category.Elements[i]))
	}
	return dto
}

// ToVariableDTO converts Variable to VariableDTO
func ToVariableDTO(variable *domain.Variable) domain.VariableDTO {
	return domain.VariableDTO{
		ID:           variable.ID,
		Name:         variable.Name,
		Type:         variable.Type,
		DefaultValue: variable.DefaultValue,
	}
}

// ToElementDTO converts Element to ElementDTO
func ToElementDTO(element *domain.Element) domain.ElementDTO {
	return domain.ElementDTO{
		ID:               element.ID,
		Name:             element.Name,
		MaterialCost:     element.MaterialCost,
		LaborCost:        element.LaborCost,
		MarkupPercentage: element.MarkupPercentage,
		Position:         element.Position,
		CategoryID:       element.CategoryID,
	}
}

// ToProposalDTO converts Proposal to ProposalDTO
func ToProposalDTO(proposal *domain.Proposal) domain.ProposalDTO {
	return domain.ProposalDTO{
		ID:                     proposal.ID,
		Name:                   proposal.Name,
		GlobalMarkupPercentage: proposal.GlobalMarkupPercentage,
		TemplateID:             proposal.TemplateID,
		CreatedAt:              proposal.CreatedAt.Format(timeFormat),
		UpdatedAt:              proposal.UpdatedAt.Format(timeFormat),
	}
}

// ToResolvedVariableValueDTO joins a value row with its variable identity
func ToResolvedVariableValueDTO(value *domain.VariableValue, variable *domain.Variable) domain.ResolvedVariableValueDTO {
	return domain.ResolvedVariableValueDTO{
		VariableID:   variable.ID,
		VariableName: variable.Name,
		VariableType: variable.Type,
		Value:        value.Value,
	}
}

// ToResolvedElementValueDTO joins a value row with its element, deriving
// total cost and markup-inclusive total on the way out
func ToResolvedElementValueDTO(value *domain.ElementValue, element *domain.Element) domain.ResolvedElementValueDTO {
	dto := domain.ResolvedElementValueDTO{
		ElementID:              element.ID,
		ElementName:            element.Name,
		CategoryID:             element.CategoryID,
		CalculatedMaterialCost: value.CalculatedMaterialCost,
		CalculatedLaborCost:    value.CalculatedLaborCost,
		MarkupPercentage:       value.MarkupPercentage,
		TotalCost:              domain.TotalCost(value.CalculatedMaterialCost, value.CalculatedLaborCost),
		TotalWithMarkup:        domain.TotalWithMarkup(value.CalculatedMaterialCost, value.CalculatedLaborCost, value.MarkupPercentage),
	}
	if element.Category != nil {
		dto.CategoryName = element.Category.Name
	}
	return dto
}

// ToContractDTO converts Contract to ContractDTO
func ToContractDTO(contract *domain.Contract) domain.ContractDTO {
	dto := domain.ContractDTO{
		ID:                  contract.ID,
		ProposalID:          contract.ProposalID,
		IsActive:            contract.IsActive,
		Version:             contract.Version,
		ClientName:          contract.ClientName,
		ClientSignature:     contract.ClientSignature,
		ClientInitials:      contract.ClientInitials,
		ContractorName:      contract.ContractorName,
		ContractorSignature: contract.ContractorSignature,
		ContractorInitials:  contract.ContractorInitials,
		TermsAndConditions:  contract.TermsAndConditions,
		FullyExecuted:       contract.FullyExecuted(),
		CreatedAt:           contract.CreatedAt.Format(timeFormat),
	}
	if contract.ClientSignedAt != nil {
		s := contract.ClientSignedAt.Format(timeFormat)
		dto.ClientSignedAt = &s
	}
	if contract.ContractorSignedAt != nil {
		s := contract.ContractorSignedAt.Format(timeFormat)
		dto.ContractorSignedAt = &s
	}
	return dto
}
