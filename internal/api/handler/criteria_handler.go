package handler

import (
	"encoding/json"
	"net/http"

	"github.com/garydamm/hackathon-manager/internal/api/middleware"
	"github.com/garydamm/hackathon-manager/internal/app/service"
	"github.com/garydamm/hackathon-manager/internal/common"

	"github.com/go-chi/chi/v5"
)

type CriteriaHandler struct {
	criteriaService *service.CriteriaService
}

func NewCriteriaHandler(cs *service.CriteriaService) *CriteriaHandler {
	return &CriteriaHandler{criteriaService: cs}
}

func (h *CriteriaHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listCriteria)
	r.Post("/", h.createCriterion)
	r.Put("/{criterionID}", h.updateCriterion)
	r.Delete("/{criterionID}", h.deleteCriterion)
}

func (h *CriteriaHandler) listCriteria(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.criteriaService.ListCriteria(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, criteria)
}

func (h *CriteriaHandler) createCriterion(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CriterionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	criterion, err := h.criteriaService.CreateCriterion(r.Context(), chi.URLParam(r, "eventID"), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, criterion)
}

func (h *CriteriaHandler) updateCriterion(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CriterionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	criterion, err := h.criteriaService.UpdateCriterion(r.Context(), chi.URLParam(r, "criterionID"), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, criterion)
}

func (h *CriteriaHandler) deleteCriterion(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := h.criteriaService.DeleteCriterion(r.Context(), chi.URLParam(r, "criterionID"), userID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
