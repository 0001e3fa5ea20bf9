package http

import (
	"log/slog"
	"net/http"
	"strings"

	"goal-planner/domain"
	"goal-planner/service"
)

type TermRecommendationHandler struct {
	service *service.TermRecommendationService
	log     *slog.Logger
}

func NewTermRecommendationHandler(service *service.TermRecommendationService, log *slog.Logger) *TermRecommendationHandler {
	return &TermRecommendationHandler{service: service, log: log}
}

func (h *TermRecommendationHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var input domain.TermRecommendationInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.log.Debug("error decoding request body", "err", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.RecommendTerm(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}
