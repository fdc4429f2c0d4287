package handlers

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/heinrichnel/fleetops/internal/importer"
)

// ImportTrips accepts a CSV body and creates every parsed trip. The batch
// is all or nothing: a parse failure imports no rows.
func (h *Handler) ImportTrips(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	trips, err := importer.ParseTrips(string(body))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	imported := 0
	for _, trip := range trips {
		if _, err := h.Engine.AddTrip(r.Context(), trip); err != nil {
			log.WithError(err).WithField("imported", imported).Error("trip import aborted on write failure")
			http.Error(w, "Import failed", http.StatusInternalServerError)
			return
		}
		imported++
	}
	h.Publisher.Publish("trip_update", "trip", "", "create", map[string]int{"imported": imported})
	writeJSON(w, http.StatusOK, map[string]int{"imported": imported})
}

// ImportDiesel accepts a CSV body and creates every parsed diesel record.
func (h *Handler) ImportDiesel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	recs, err := importer.ParseDieselRecords(string(body))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snap := h.Watcher.Snapshot()
	imported := 0
	for _, rec := range recs {
		if _, err := h.Engine.AddDieselRecord(r.Context(), snap, rec); err != nil {
			log.WithError(err).WithField("imported", imported).Error("diesel import aborted on write failure")
			http.Error(w, "Import failed", http.StatusInternalServerError)
			return
		}
		imported++
	}
	h.Publisher.Publish("system_update", "diesel", "", "create", map[string]int{"imported": imported})
	writeJSON(w, http.StatusOK, map[string]int{"imported": imported})
}
