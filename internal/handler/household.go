package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/energydash/internal/dashboard"
)

// HouseholdHandler serves the JSON API.
type HouseholdHandler struct {
	svc    *dashboard.Service
	logger *slog.Logger
}

func NewHouseholdHandler(svc *dashboard.Service, logger *slog.Logger) *HouseholdHandler {
	return &HouseholdHandler{svc: svc, logger: logger}
}

func (h *HouseholdHandler) List(w http.ResponseWriter, r *http.Request) {
	households, err := h.svc.Households()
	if err != nil {
		h.logger.Error("list households", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list households"})
		return
	}
	writeJSON(w, http.StatusOK, households)
}

// Stats returns the statistics record for a household. Charts are not
// regenerated.
func (h *HouseholdHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	home, stats, err := h.svc.Stats(id)
	if errors.Is(err, dashboard.ErrHouseholdNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "household not found"})
		return
	}
	if err != nil {
		h.logger.Error("compute stats", "household_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute stats"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"household": home,
		"stats":     stats,
	})
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
