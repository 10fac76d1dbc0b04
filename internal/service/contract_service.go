package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/crestline-remodeling/proposal-api/internal/mapper"
	"github.com/crestline-remodeling/proposal-api/internal/repository"
	"github.com/crestline-remodeling/proposal-api/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContractService handles contract versioning and the signature workflow.
// Contracts are append-only per proposal with a single active version;
// client and contractor sign independently and a contract may stay
// half-signed indefinitely.
type ContractService struct {
	contractRepo *repository.ContractRepository
	proposalRepo *repository.ProposalRepository
	store        storage.Storage
	logger       *zap.Logger
	now          func() time.Time
}

// NewContractService creates a new ContractService instance. The clock is
// injected so signing timestamps are deterministic under test.
func NewContractService(
	contractRepo *repository.ContractRepository,
	proposalRepo *repository.ProposalRepository,
	store storage.Storage,
	logger *zap.Logger,
	now func() time.Time,
) *ContractService {
	if now == nil {
		now = time.Now
	}
	return &ContractService{
		contractRepo: contractRepo,
		proposalRepo: proposalRepo,
		store:        store,
		logger:       logger,
		now:          now,
	}
}

// Generate creates a new contract version for a proposal. Any previously
// active contract is demoted and the new version number assigned atomically.
func (s *ContractService) Generate(ctx context.Context, proposalID uuid.UUID, req domain.GenerateContractRequest) (*domain.ContractDTO, error) {
	if _, err := s.proposalRepo.GetByID(ctx, proposalID); err != nil {
		return nil, fmt.Errorf("proposal not found: %w", err)
	}

	contract := &domain.Contract{
		ProposalID:         proposalID,
		ClientName:         req.ClientName,
		ClientInitials:     req.ClientInitials,
		ContractorName:     req.ContractorName,
		ContractorInitials: req.ContractorInitials,
		TermsAndConditions: req.TermsAndConditions,
	}

	if err := s.contractRepo.Promote(ctx, contract); err != nil {
		s.logger.Error("Failed to generate contract",
			zap.String("proposalId", proposalID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to generate contract: %w", err)
	}

	s.logger.Info("Contract generated",
		zap.String("contractId", contract.ID.String()),
		zap.String("proposalId", proposalID.String()),
		zap.Int("version", contract.Version),
	)

	dto := mapper.ToContractDTO(contract)
	return &dto, nil
}

// GetByID retrieves a contract by ID
func (s *ContractService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContractDTO, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("contract not found: %w", err)
	}

	dto := mapper.ToContractDTO(contract)
	return &dto, nil
}

// List returns contracts across all proposals, newest first
func (s *ContractService) List(ctx context.Context, page, pageSize int) ([]domain.ContractDTO, int64, error) {
	contracts, total, err := s.contractRepo.List(ctx, page, pageSize)
	if err != nil {
		s.logger.Error("Failed to list contracts", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list contracts: %w", err)
	}

	dtos := make([]domain.ContractDTO, len(contracts))
	for i := range contracts {
		dtos[i] = mapper.ToContractDTO(&contracts[i])
	}
	return dtos, total, nil
}

// ListByProposal returns a proposal's contract history, newest version first
func (s *ContractService) ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]domain.ContractDTO, error) {
	if _, err := s.proposalRepo.GetByID(ctx, proposalID); err != nil {
		return nil, fmt.Errorf("proposal not found: %w", err)
	}

	contracts, err := s.contractRepo.ListByProposal(ctx, proposalID)
	if err != nil {
		s.logger.Error("Failed to list contracts", zap.Error(err))
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}

	dtos := make([]domain.ContractDTO, len(contracts))
	for i := range contracts {
		dtos[i] = mapper.ToContractDTO(&contracts[i])
	}
	return dtos, nil
}

// GetActiveByProposal returns the proposal's current contract version
func (s *ContractService) GetActiveByProposal(ctx context.Context, proposalID uuid.UUID) (*domain.ContractDTO, error) {
	contract, err := s.contractRepo.GetActiveByProposal(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("active contract not found: %w", err)
	}

	dto := mapper.ToContractDTO(contract)
	return &dto, nil
}

// Sign records a signature for one party. The signed-at timestamp is stamped
// unconditionally on every call, even when re-signing; the signature image
// and initials are updated only when supplied. A supplied signature is
// persisted to blob storage and only its path is stored on the record.
func (s *ContractService) Sign(ctx context.Context, contractID uuid.UUID, role domain.SignerRole, req domain.SignContractRequest) (*domain.ContractDTO, error) {
	if role != domain.SignerClient && role != domain.SignerContractor {
		return nil, fmt.Errorf("%w: unknown signer role %q", ErrInvalidInput, role)
	}

	contract, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("contract not found: %w", err)
	}

	var signaturePath string
	if req.Signature != "" {
		data, err := base64.StdEncoding.DecodeString(req.Signature)
		if err != nil {
			return nil, fmt.Errorf("%w: signature is not valid base64", ErrInvalidInput)
		}

		signaturePath = storage.SignaturePath(contract.ID.String(), string(role))
		if err := s.store.Save(ctx, signaturePath, "image/png", bytes.NewReader(data)); err != nil {
			s.logger.Error("Failed to store signature image",
				zap.String("contractId", contract.ID.String()),
				zap.String("role", string(role)),
				zap.Error(err))
			return nil, fmt.Errorf("failed to store signature: %w", err)
		}
	}

	signedAt := s.now().UTC()
	switch role {
	case domain.SignerClient:
		contract.ClientSignedAt = &signedAt
		if signaturePath != "" {
			contract.ClientSignature = signaturePath
		}
		if req.Initials != "" {
			contract.ClientInitials = req.Initials
		}
	case domain.SignerContractor:
		contract.ContractorSignedAt = &signedAt
		if signaturePath != "" {
			contract.ContractorSignature = signaturePath
		}
		if req.Initials != "" {
			contract.ContractorInitials = req.Initials
		}
	}

	if err := s.contractRepo.Update(ctx, contract); err != nil {
		s.logger.Error("Failed to update contract after signing", zap.Error(err))
		return nil, fmt.Errorf("failed to sign contract: %w", err)
	}

	s.logger.Info("Contract signed",
		zap.String("contractId", contract.ID.String()),
		zap.String("role", string(role)),
		zap.Bool("fullyExecuted", contract.FullyExecuted()),
	)

	dto := mapper.ToContractDTO(contract)
	return &dto, nil
}

// GetSignature streams a party's stored signature image from blob storage.
// The caller is responsible for closing the returned reader.
func (s *ContractService) GetSignature(ctx context.Context, contractID uuid.UUID, role domain.SignerRole) (io.ReadCloser, error) {
	if role != domain.SignerClient && role != domain.SignerContractor {
		return nil, fmt.Errorf("%w: unknown signer role %q", ErrInvalidInput, role)
	}

	contract, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("contract not found: %w", err)
	}

	path := contract.ClientSignature
	if role == domain.SignerContractor {
		path = contract.ContractorSignature
	}
	if path == "" {
		return nil, fmt.Errorf("%w: no %s signature recorded", ErrNotFound, role)
	}

	reader, err := s.store.Open(ctx, path)
	if err != nil {
		s.logger.Error("Failed to open signature image",
			zap.String("contractId", contract.ID.String()),
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("failed to open signature: %w", err)
	}
	return reader, nil
}

// Delete removes a contract. Attached signature blobs are deleted best-effort
// first; a blob delete failure is logged and the record deletion proceeds.
func (s *ContractService) Delete(ctx context.Context, id uuid.UUID) error {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("contract not found: %w", err)
	}

	for _, path := range []string{contract.ClientSignature, contract.ContractorSignature} {
		if path == "" {
			continue
		}
		if err := s.store.Delete(ctx, path); err != nil {
			s.logger.Warn("Failed to delete signature blob",
				zap.String("contractId", contract.ID.String()),
				zap.String("path", path),
				zap.Error(err))
		}
	}

	if err := s.contractRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete contract", zap.Error(err))
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	return nil
}
