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

type TemplateHandler struct {
	templateService *service.TemplateService
	logger          *zap.Logger
}

func NewTemplateHandler(templateService *service.TemplateService, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
		logger:          logger,
	}
}

// Create godoc
// @Summary Create template
// @Description Create a new reusable proposal template
// @Tags Templates
// @Accept json
// @Produce json
// @Param template body domain.CreateTemplateRequest true "Template data"
// @Success 201 {object} domain.TemplateDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /templates [post]
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	template, err := h.templateService.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to create template", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, template)
}

// List godoc
// @Summary List templates
// @Description Get paginated list of templates with optional name search
// @Tags Templates
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by name"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.TemplateDTO}
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /templates [get]
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	search := r.URL.Query().Get("search")

	templates, total, err := h.templateService.List(r.Context(), page, pageSize, search)
	if err != nil {
		h.logger.Error("failed to list templates", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(templates, total, page, pageSize))
}

// GetByID godoc
// @Summary Get template
// @Tags Templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} domain.TemplateDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	template, err := h.templateService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, template)
}

// Update godoc
// @Summary Update template
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param template body domain.UpdateTemplateRequest true "Template data"
// @Success 200 {object} domain.TemplateDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /templates/{id} [put]
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var req domain.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	template, err := h.templateService.Update(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, template)
}

// Delete godoc
// @Summary Delete template
// @Description Delete a template. Proposals cloned from it survive with a nulled template link.
// @Tags Templates
// @Param id path string true "Template ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /templates/{id} [delete]
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	if err := h.templateService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// AddCategory godoc
// @Summary Add category to template
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param category body domain.CreateCategoryRequest true "Category data"
// @Success 201 {object} domain.CategoryDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /templates/{id}/categories [post]
func (h *TemplateHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var req domain.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	category, err := h.templateService.AddCategory(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

// ListCategories godoc
// @Summary List template categories
// @Tags Templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {array} domain.CategoryDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /templates/{id}/categories [get]
func (h *TemplateHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	categories, err := h.templateService.ListCategories(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

// AddVariable godoc
// @Summary Add variable to template
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param variable body domain.CreateVariableRequest true "Variable data"
// @Success 201 {object} domain.VariableDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /templates/{id}/variables [post]
func (h *TemplateHandler) AddVariable(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var req domain.CreateVariableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	variable, err := h.templateService.AddVariable(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, variable)
}

// ListVariables godoc
// @Summary List template variables
// @Tags Templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {array} domain.VariableDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /templates/{id}/variables [get]
func (h *TemplateHandler) ListVariables(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	variables, err := h.templateService.ListVariables(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, variables)
}

// UpdateCategory godoc
// @Summary Update category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body domain.CreateCategoryRequest true "Category data"
// @Success 200 {object} domain.CategoryDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /categories/{id} [put]
func (h *TemplateHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var req domain.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	category, err := h.templateService.UpdateCategory(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete category
// @Tags Categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /categories/{id} [delete]
func (h *TemplateHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	if err := h.templateService.DeleteCategory(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// AddElement godoc
// @Summary Add element to category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param element body domain.CreateElementRequest true "Element data"
// @Success 201 {object} domain.ElementDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /categories/{id}/elements [post]
func (h *TemplateHandler) AddElement(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var req domain.CreateElementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	element, err := h.templateService.AddElement(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, element)
}

// ListElements godoc
// @Summary List category elements
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {array} domain.ElementDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /categories/{id}/elements [get]
func (h *TemplateHandler) ListElements(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	elements, err := h.templateService.ListElements(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, elements)
}

// UpdateElement godoc
// @Summary Update element
// @Tags Elements
// @Accept json
// @Produce json
// @Param id path string true "Element ID"
// @Param element body domain.CreateElementRequest true "Element data"
// @Success 200 {object} domain.ElementDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /elements/{id} [put]
func (h *TemplateHandler) UpdateElement(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid element ID format")
		return
	}

	var req domain.CreateElementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	element, err := h.templateService.UpdateElement(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, element)
}

// DeleteElement godoc
// @Summary Delete element
// @Tags Elements
// @Param id path string true "Element ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /elements/{id} [delete]
func (h *TemplateHandler) DeleteElement(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid element ID format")
		return
	}

	if err := h.templateService.DeleteElement(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// UpdateVariable godoc
// @Summary Update variable
// @Tags Variables
// @Accept json
// @Produce json
// @Param id path string true "Variable ID"
// @Param variable body domain.CreateVariableRequest true "Variable data"
// @Success 200 {object} domain.VariableDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /variables/{id} [put]
func (h *TemplateHandler) UpdateVariable(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid variable ID format")
		return
	}

	var req domain.CreateVariableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	variable, err := h.templateService.UpdateVariable(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, variable)
}

// DeleteVariable godoc
// @Summary Delete variable
// @Tags Variables
// @Param id path string true "Variable ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /variables/{id} [delete]
func (h *TemplateHandler) DeleteVariable(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid variable ID format")
		return
	}

	if err := h.templateService.DeleteVariable(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
