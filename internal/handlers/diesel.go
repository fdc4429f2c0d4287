package handlers

import (
	"net/http"

	"github.com/heinrichnel/fleetops/internal/importer"
	"github.com/heinrichnel/fleetops/internal/models"
	"github.com/heinrichnel/fleetops/internal/rules"
)

// Diesel handles the diesel record collection: list (enhanced with
// efficiency classification) and create.
func (h *Handler) Diesel(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		recs := h.Watcher.Snapshot().DieselRecords
		writeJSON(w, http.StatusOK, rules.EnhanceDieselRecords(recs, h.Norms))
	case http.MethodPost:
		var rec models.DieselConsumptionRecord
		if err := decodeJSON(r, &rec); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if msg := validateDieselRecord(rec); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		res, err := h.Engine.AddDieselRecord(r.Context(), h.Watcher.Snapshot(), rec)
		if err != nil {
			http.Error(w, "Failed to add diesel record", http.StatusInternalServerError)
			return
		}
		h.Publisher.Publish("system_update", "diesel", res.ID, "create", rec)
		writeJSON(w, http.StatusCreated, res)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func validateDieselRecord(rec models.DieselConsumptionRecord) string {
	if rec.FleetNumber == "" {
		return "fleetNumber is required"
	}
	if rec.LitresFilled <= 0 {
		return "litresFilled must be positive"
	}
	if rec.PreviousKmReading != nil && rec.KmReading <= *rec.PreviousKmReading {
		return "kmReading must be greater than previousKmReading"
	}
	return ""
}

// DieselSubtree routes /api/diesel/{id} and its subresources, plus the
// template and summary endpoints.
func (h *Handler) DieselSubtree(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r.URL.Path, "/api/diesel/")
	if len(parts) == 0 {
		http.NotFound(w, r)
		return
	}
	switch {
	case parts[0] == "template" && len(parts) == 1:
		h.dieselTemplate(w, r)
	case parts[0] == "summary" && len(parts) == 1:
		h.dieselSummary(w, r)
	case len(parts) == 1:
		h.dieselByID(w, r, parts[0])
	case parts[1] == "allocate" && len(parts) == 2:
		h.dieselAllocate(w, r, parts[0])
	case parts[1] == "debrief" && len(parts) == 2:
		h.dieselDebrief(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) dieselByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		for _, rec := range h.Watcher.Snapshot().DieselRecords {
			if rec.ID == id {
				writeJSON(w, http.StatusOK, rules.EnhanceDieselRecord(rec, h.Norms))
				return
			}
		}
		http.Error(w, "Diesel record not found", http.StatusNotFound)
	case http.MethodPut:
		var rec models.DieselConsumptionRecord
		if err := decodeJSON(r, &rec); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rec.ID = id
		if msg := validateDieselRecord(rec); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		res, err := h.Engine.UpdateDieselRecord(r.Context(), h.Watcher.Snapshot(), rec)
		if err != nil {
			http.Error(w, "Failed to update diesel record", http.StatusInternalServerError)
			return
		}
		h.Publisher.Publish("system_update", "diesel", id, "update", rec)
		writeResult(w, res)
	case http.MethodDelete:
		res, err := h.Engine.DeleteDieselRecord(r.Context(), h.Watcher.Snapshot(), id)
		if err != nil {
			http.Error(w, "Failed to delete diesel record", http.StatusInternalServerError)
			return
		}
		h.Publisher.Publish("system_update", "diesel", id, "delete", nil)
		writeResult(w, res)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) dieselAllocate(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodPost:
		var req struct {
			TripID string `json:"tripId"`
		}
		if err := decodeJSON(r, &req); err != nil || req.TripID == "" {
			http.Error(w, "tripId is required", http.StatusBadRequest)
			return
		}
		res, err := h.Engine.AllocateDieselToTrip(r.Context(), h.Watcher.Snapshot(), id, req.TripID)
		if err != nil {
			http.Error(w, "Failed to allocate diesel cost", http.StatusInternalServerError)
			return
		}
		h.Publisher.Publish("cost_update", "diesel", id, "update", req)
		writeResult(w, res)
	case http.MethodDelete:
		res, err := h.Engine.RemoveDieselFromTrip(r.Context(), h.Watcher.Snapshot(), id)
		if err != nil {
			http.Error(w, "Failed to remove diesel allocation", http.StatusInternalServerError)
			return
		}
		h.Publisher.Publish("cost_update", "diesel", id, "update", nil)
		writeResult(w, res)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) dieselDebrief(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var upd rules.DebriefUpdate
	if err := decodeJSON(r, &upd); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.Engine.UpdateDieselDebrief(r.Context(), h.Watcher.Snapshot(), id, upd)
	if err != nil {
		http.Error(w, "Failed to update debrief", http.StatusInternalServerError)
		return
	}
	writeResult(w, res)
}

func (h *Handler) dieselTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="diesel-import-template.csv"`)
	w.Write([]byte(importer.DieselTemplate))
}

func (h *Handler) dieselSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	enhanced := rules.EnhanceDieselRecords(h.Watcher.Snapshot().DieselRecords, h.Norms)
	writeJSON(w, http.StatusOK, rules.SummarizeDieselRecords(enhanced))
}
