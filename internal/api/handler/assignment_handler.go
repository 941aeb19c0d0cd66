package handler

import (
	"encoding/json"
	"net/http"

	"github.com/garydamm/hackathon-manager/internal/api/middleware"
	"github.com/garydamm/hackathon-manager/internal/app/service"
	"github.com/garydamm/hackathon-manager/internal/common"

	"github.com/go-chi/chi/v5"
)

type AssignmentHandler struct {
	assignmentService *service.AssignmentService
	scoringService    *service.ScoringService
}

func NewAssignmentHandler(as *service.AssignmentService, ss *service.ScoringService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: as, scoringService: ss}
}

func (h *AssignmentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{assignmentID}", h.getAssignment)
	r.Post("/{assignmentID}/scores", h.submitScores)
}

// ListMyAssignments is mounted under /events/{eventID}/assignments. Fetching
// the list also provisions any assignments that are still missing for the
// calling judge.
func (h *AssignmentHandler) ListMyAssignments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	assignments, err := h.assignmentService.EnsureAssignments(r.Context(), chi.URLParam(r, "eventID"), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, assignments)
}

func (h *AssignmentHandler) getAssignment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	assignment, err := h.assignmentService.GetAssignment(r.Context(), chi.URLParam(r, "assignmentID"), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) submitScores(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req struct {
		Scores []service.ScoreSubmission `json:"scores"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	assignment, err := h.scoringService.SubmitScores(r.Context(), chi.URLParam(r, "assignmentID"), userID, req.Scores)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, assignment)
}
