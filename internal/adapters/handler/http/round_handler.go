package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/ports"
)

type RoundHandler struct {
	service ports.RoundService
}

func NewRoundHandler(service ports.RoundService) *RoundHandler {
	return &RoundHandler{
		service: service,
	}
}

func (h *RoundHandler) GetCurrentRound(w http.ResponseWriter, r *http.Request) {
	activityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid activity id", http.StatusBadRequest)
		return
	}

	round, err := h.service.CurrentRound(r.Context(), activityID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(round); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
