package http

import (
	"log/slog"
	"net/http"

	"goal-planner/domain"
	"goal-planner/service"
)

type LoanHandler struct {
	service *service.LoanService
	log     *slog.Logger
}

func NewLoanHandler(service *service.LoanService, log *slog.Logger) *LoanHandler {
	return &LoanHandler{service: service, log: log}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var input domain.LoanInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.CalculateLoan(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}
