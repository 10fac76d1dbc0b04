package handler

import (
	"encoding/json"
	"net/http"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/crestline-remodeling/proposal-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProposalHandler struct {
	proposalService *service.ProposalService
	valueService    *service.ValueService
	syncService     *service.SyncService
	logger          *zap.Logger
}

func NewProposalHandler(
	proposalService *service.ProposalService,
	valueService *service.ValueService,
	syncService *service.SyncService,
	logger *zap.Logger,
) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
		valueService:    valueService,
		syncService:     syncService,
		logger:          logger,
	}
}

// CreateFromTemplate godoc
// @Summary Instantiate proposal from template
// @Description Clone a template into a new proposal: categories and elements are copied, variable values seeded at template defaults, element values parsed from cost strings. Atomic.
// @Tags Proposals
// @Accept json
// @Produce json
// @Param proposal body domain.CreateProposalFromTemplateRequest true "Proposal data"
// @Success 201 {object} domain.ProposalDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/from-template [post]
func (h *ProposalHandler) CreateFromTemplate(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProposalFromTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	proposal, err := h.proposalService.CreateFromTemplate(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, proposal)
}

// Create godoc
// @Summary Create proposal from scratch
// @Description Create an empty proposal with no template link
// @Tags Proposals
// @Accept json
// @Produce json
// @Param proposal body domain.CreateProposalFromScratchRequest true "Proposal data"
// @Success 201 {object} domain.ProposalDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals [post]
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProposalFromScratchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	proposal, err := h.proposalService.CreateFromScratch(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to create proposal", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, proposal)
}

// List godoc
// @Summary List proposals
// @Tags Proposals
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by name"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ProposalDTO}
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals [get]
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	search := r.URL.Query().Get("search")

	proposals, total, err := h.proposalService.List(r.Context(), page, pageSize, search)
	if err != nil {
		h.logger.Error("failed to list proposals", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(proposals, total, page, pageSize))
}

// GetByID godoc
// @Summary Get proposal
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} domain.ProposalDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id} [get]
func (h *ProposalHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	proposal, err := h.proposalService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, proposal)
}

// Update godoc
// @Summary Update proposal
// @Tags Proposals
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID"
// @Param proposal body domain.UpdateProposalRequest true "Fields to update"
// @Success 200 {object} domain.ProposalDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id} [put]
func (h *ProposalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	var req domain.UpdateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	proposal, err := h.proposalService.Update(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, proposal)
}

// Delete godoc
// @Summary Delete proposal
// @Tags Proposals
// @Param id path string true "Proposal ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id} [delete]
func (h *ProposalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	if err := h.proposalService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// ListCategories godoc
// @Summary List proposal categories
// @Description Get the proposal's direct categories with their elements in position order
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {array} domain.CategoryDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id}/categories [get]
func (h *ProposalHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	categories, err := h.proposalService.ListCategories(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

// ListVariables godoc
// @Summary List proposal variables
// @Description Get the proposal's ad hoc (proposal-direct) variables
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {array} domain.VariableDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id}/variables [get]
func (h *ProposalHandler) ListVariables(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	variables, err := h.proposalService.ListVariables(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, variables)
}

// SetVariableValues godoc
// @Summary Set variable values
// @Description Record a batch of variable values. Items without a variableId create a proposal-direct variable. All-or-nothing: any item failure rolls back the batch.
// @Tags Values
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID"
// @Param items body []domain.SetVariableValueItem true "Value items"
// @Success 200 {array} domain.ResolvedVariableValueDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id}/variable-values [post]
func (h *ProposalHandler) SetVariableValues(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	var items []domain.SetVariableValueItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resolved, err := h.valueService.SetVariableValues(r.Context(), id, items)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resolved)
}

// ListVariableValues godoc
// @Summary List variable values
// @Tags Values
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {array} domain.ResolvedVariableValueDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id}/variable-values [get]
func (h *ProposalHandler) ListVariableValues(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	resolved, err := h.valueService.ListVariableValues(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resolved)
}

// UpdateElementValues godoc
// @Summary Update element values
// @Description Record a batch of computed element costs. Items without an elementId create a proposal-direct element, resolving or creating its category by name. All-or-nothing.
// @Tags Values
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID"
// @Param items body []domain.UpdateElementValueItem true "Value items"
// @Success 200 {array} domain.ResolvedElementValueDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id}/element-values [post]
func (h *ProposalHandler) UpdateElementValues(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	var items []domain.UpdateElementValueItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resolved, err := h.valueService.UpdateElementValues(r.Context(), id, items)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resolved)
}

// ListElementValues godoc
// @Summary List element values
// @Description Get every element value on the proposal with derived totals
// @Tags Values
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {array} domain.ResolvedElementValueDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id}/element-values [get]
func (h *ProposalHandler) ListElementValues(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	resolved, err := h.valueService.ListElementValues(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resolved)
}

// Sync godoc
// @Summary Sync proposal with template
// @Description Pull template changes into the proposal. Best-effort: individual variable or element failures are skipped. Fails if the proposal has no template.
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} domain.SyncReportDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id}/sync [post]
func (h *ProposalHandler) Sync(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	report, err := h.syncService.SyncWithTemplate(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}
