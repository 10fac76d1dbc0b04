package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/crestline-remodeling/proposal-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContractHandler struct {
	contractService *service.ContractService
	logger          *zap.Logger
}

func NewContractHandler(contractService *service.ContractService, logger *zap.Logger) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
		logger:          logger,
	}
}

// Generate godoc
// @Summary Generate contract
// @Description Create a new contract version for a proposal. Any previously active contract is demoted atomically.
// @Tags Contracts
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID"
// @Param contract body domain.GenerateContractRequest true "Contract data"
// @Success 201 {object} domain.ContractDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id}/contracts [post]
func (h *ContractHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	var req domain.GenerateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	contract, err := h.contractService.Generate(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, contract)
}

// List godoc
// @Summary List contracts
// @Tags Contracts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ContractDTO}
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contracts [get]
func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	contracts, total, err := h.contractService.List(r.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("failed to list contracts", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(contracts, total, page, pageSize))
}

// ListByProposal godoc
// @Summary List proposal contracts
// @Description Get a proposal's contract history, newest version first
// @Tags Contracts
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {array} domain.ContractDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id}/contracts [get]
func (h *ContractHandler) ListByProposal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	contracts, err := h.contractService.ListByProposal(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, contracts)
}

// GetActive godoc
// @Summary Get active contract
// @Tags Contracts
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} domain.ContractDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id}/contracts/active [get]
func (h *ContractHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	contract, err := h.contractService.GetActiveByProposal(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, contract)
}

// GetByID godoc
// @Summary Get contract
// @Tags Contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} domain.ContractDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contracts/{id} [get]
func (h *ContractHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contract ID format")
		return
	}

	contract, err := h.contractService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, contract)
}

// Sign godoc
// @Summary Sign contract
// @Description Record a signature for one party (client or contractor). Stamps a fresh signed-at timestamp on every call; signature image and initials update only when supplied.
// @Tags Contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param role path string true "Signer role" Enums(client, contractor)
// @Param signature body domain.SignContractRequest true "Signature data"
// @Success 200 {object} domain.ContractDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contracts/{id}/sign/{role} [post]
func (h *ContractHandler) Sign(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contract ID format")
		return
	}

	role := domain.SignerRole(chi.URLParam(r, "role"))
	if role != domain.SignerClient && role != domain.SignerContractor {
		respondWithError(w, http.StatusBadRequest, "Signer role must be client or contractor")
		return
	}

	var req domain.SignContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	contract, err := h.contractService.Sign(r.Context(), id, role, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, contract)
}

// GetSignature godoc
// @Summary Get signature image
// @Description Stream a party's stored signature image as PNG
// @Tags Contracts
// @Produce png
// @Param id path string true "Contract ID"
// @Param role path string true "Signer role" Enums(client, contractor)
// @Success 200 {file} binary
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contracts/{id}/signature/{role} [get]
func (h *ContractHandler) GetSignature(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contract ID format")
		return
	}

	role := domain.SignerRole(chi.URLParam(r, "role"))
	if role != domain.SignerClient && role != domain.SignerContractor {
		respondWithError(w, http.StatusBadRequest, "Signer role must be client or contractor")
		return
	}

	image, err := h.contractService.GetSignature(r.Context(), id, role)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer image.Close()

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, image); err != nil {
		h.logger.Warn("failed to stream signature image",
			zap.String("contractId", id.String()), zap.Error(err))
	}
}

// Delete godoc
// @Summary Delete contract
// @Description Delete a contract. Attached signature blobs are removed best-effort first.
// @Tags Contracts
// @Param id path string true "Contract ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contracts/{id} [delete]
func (h *ContractHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contract ID format")
		return
	}

	if err := h.contractService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
