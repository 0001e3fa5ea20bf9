package http

import (
	"context"
	"log/slog"
	"net/http"

	"goal-planner/domain"
)

// GoalSubmitter computes a projection for a goal.
type GoalSubmitter interface {
	SubmitGoal(ctx context.Context, req domain.GoalRequest) (domain.GoalResult, error)
}

type GoalHandler struct {
	service GoalSubmitter
	log     *slog.Logger
}

func NewGoalHandler(service GoalSubmitter, log *slog.Logger) *GoalHandler {
	return &GoalHandler{service: service, log: log}
}

func (h *GoalHandler) SubmitGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var input domain.GoalRequest
	if err := decodeJSON(w, r, &input); err != nil {
		h.log.Debug("error decoding goal", "err", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.SubmitGoal(r.Context(), input)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.log.Error("goal projection failed", "err", err)
			writeError(w, status, "internal server error")
			return
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}
