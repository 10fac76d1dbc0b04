package domain

import "github.com/google/uuid"

// OwnerKind identifies which side of the template/proposal split owns an entity.
type OwnerKind string

const (
	OwnerTemplate OwnerKind = "template"
	OwnerProposal OwnerKind = "proposal"
)

// Owner is the exclusive owner of a category, variable or element: a template
// (reusable blueprint) or a proposal (instantiated copy or ad hoc entry).
// Constructing entities through Owner makes the "both set" and "neither set"
// states unrepresentable; the nullable foreign keys only exist at the storage
// layer.
type Owner struct {
	Kind OwnerKind
	ID   uuid.UUID
}

// TemplateOwner returns an Owner referencing a template.
func TemplateOwner(id uuid.UUID) Owner {
	return Owner{Kind: OwnerTemplate, ID: id}
}

// ProposalOwner returns an Owner referencing a proposal.
func ProposalOwner(id uuid.UUID) Owner {
	return Owner{Kind: OwnerProposal, ID: id}
}

// IsTemplate reports whether the owner is a template.
func (o Owner) IsTemplate() bool {
	return o.Kind == OwnerTemplate
}

// columns splits the owner into the nullable template_id/proposal_id pair used
// by the storage layer. Exactly one of the returned pointers is non-nil.
func (o Owner) columns() (templateID, proposalID *uuid.UUID) {
	id := o.ID
	if o.Kind == OwnerTemplate {
		return &id, nil
	}
	return nil, &id
}

// ownerOf reconstructs the Owner from the stored column pair.
func ownerOf(templateID, proposalID *uuid.UUID) Owner {
	if templateID != nil {
		return TemplateOwner(*templateID)
	}
	if proposalID != nil {
		return ProposalOwner(*proposalID)
	}
	return Owner{}
}
