package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"feedertrack/internal/auth"
	readingsapp "feedertrack/internal/readings/application"
	readings "feedertrack/internal/readings/domain"
)

// Handler serves reading submissions under /api/v1/readings.
type Handler struct {
	service *readingsapp.Service
}

// NewHandler constructs a handler.
func NewHandler(service *readingsapp.Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("readings handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP routes reading requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/v1/readings" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		h.handleGet(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FeederID                    string  `json:"feeder_id"`
		Date                        string  `json:"date"`
		CumulativeEnergyConsumption float64 `json:"cumulative_energy_consumption"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	recordedBy := auth.SubjectFromContext(r.Context())
	if recordedBy == "" {
		recordedBy = "unknown"
	}

	reading, corrected, err := h.service.Submit(r.Context(), req.FeederID, date, req.CumulativeEnergyConsumption, recordedBy)
	if err != nil {
		respondError(w, err)
		return
	}

	status := http.StatusCreated
	if corrected {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":                            reading.ID,
		"feeder_id":                     reading.FeederID,
		"date":                          reading.Date.Format("2006-01-02"),
		"cumulative_energy_consumption": reading.CumulativeEnergyConsumption,
		"corrected":                     corrected,
		"history_entries":               len(reading.History),
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, err := time.Parse("2006-01-02", q.Get("date"))
	if err != nil {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	reading, err := h.service.Get(r.Context(), q.Get("feeder_id"), date)
	if err != nil {
		respondError(w, err)
		return
	}
	if reading == nil {
		http.Error(w, "reading not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reading)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, readings.ErrEmptyFeederRef),
		errors.Is(err, readings.ErrInvalidDate),
		errors.Is(err, readings.ErrEmptyRecorder):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
