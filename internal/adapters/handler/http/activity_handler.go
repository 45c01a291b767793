package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
	"github.com/vncsmyrnk/engage/internal/core/ports"
)

type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		service: service,
	}
}

type createActivityRequest struct {
	EventID            uuid.UUID             `json:"event_id"`
	Type               domain.ActivityType   `json:"type"`
	Title              string                `json:"title"`
	Status             domain.ActivityStatus `json:"status"`
	ScheduledStartTime *time.Time            `json:"scheduled_start_time,omitempty"`
	Config             domain.ActivityConfig `json:"config"`
}

func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreateActivityInput{
		EventID:            req.EventID,
		Type:               req.Type,
		Title:              req.Title,
		Status:             req.Status,
		ScheduledStartTime: req.ScheduledStartTime,
		Config:             req.Config,
	}

	activity, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(activity); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing activity id", http.StatusBadRequest)
		return
	}

	activity, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(activity); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *ActivityHandler) ListEventActivities(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	activities, err := h.service.ListByEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if activities == nil {
		activities = []*domain.Activity{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(activities); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

type updateActivityRequest struct {
	Title              *string                `json:"title,omitempty"`
	Status             *domain.ActivityStatus `json:"status,omitempty"`
	ScheduledStartTime *time.Time             `json:"scheduled_start_time,omitempty"`
	Config             *domain.ActivityConfig `json:"config,omitempty"`
}

func (h *ActivityHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid activity id", http.StatusBadRequest)
		return
	}

	var req updateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.UpdateActivityInput{
		Title:              req.Title,
		Status:             req.Status,
		ScheduledStartTime: req.ScheduledStartTime,
		Config:             req.Config,
	}

	activity, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(activity); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *ActivityHandler) StartActivity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid activity id", http.StatusBadRequest)
		return
	}

	activity, err := h.service.Start(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(activity); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *ActivityHandler) EndActivity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid activity id", http.StatusBadRequest)
		return
	}

	activity, err := h.service.End(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(activity); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *ActivityHandler) AdvanceRound(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid activity id", http.StatusBadRequest)
		return
	}

	result, err := h.service.AdvanceRound(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid activity id", http.StatusBadRequest)
		return
	}

	if err := h.service.Remove(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type seedLogosRequest struct {
	Logos []logoItemRequest `json:"logos"`
}

type logoItemRequest struct {
	CompanyName    string   `json:"company_name"`
	LogoURL        string   `json:"logo_url"`
	Hints          []string `json:"hints,omitempty"`
	AlternateNames []string `json:"alternate_names,omitempty"`
}

func (h *ActivityHandler) SeedLogos(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid activity id", http.StatusBadRequest)
		return
	}

	var req seedLogosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	items := make([]domain.LogoItem, len(req.Logos))
	for i, l := range req.Logos {
		items[i] = domain.LogoItem{
			CompanyName:    l.CompanyName,
			LogoURL:        l.LogoURL,
			Hints:          l.Hints,
			AlternateNames: l.AlternateNames,
		}
	}

	if err := h.service.SeedLogoItems(r.Context(), id, items); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
