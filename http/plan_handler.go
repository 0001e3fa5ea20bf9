package http

import (
	"context"
	"log/slog"
	"net/http"

	"goal-planner/domain"
)

type PlanSaver interface {
	SaveGoal(ctx context.Context, goal domain.GoalRequest) (domain.SavedPlan, error)
	ListPlans(ctx context.Context) ([]domain.SavedPlan, error)
}

// SaveResponse acknowledges a saved goal.
type SaveResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type PlanHandler struct {
	service PlanSaver
	log     *slog.Logger
}

func NewPlanHandler(service PlanSaver, log *slog.Logger) *PlanHandler {
	return &PlanHandler{service: service, log: log}
}

func (h *PlanHandler) SaveGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var goal domain.GoalRequest
	if err := decodeJSON(w, r, &goal); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, err := h.service.SaveGoal(r.Context(), goal)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.log.Error("saving goal failed", "err", err)
			writeError(w, status, "internal server error")
			return
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, h.log, http.StatusCreated, SaveResponse{
		ID:      plan.ID.String(),
		Message: "Data saved successfully!",
	})
}

func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		h.log.Error("listing plans failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, h.log, http.StatusOK, plans)
}
