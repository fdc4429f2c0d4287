// Package handlers exposes the dashboard API over plain net/http: JSON
// in, JSON out, explicit method checks per route.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/heinrichnel/fleetops/internal/db"
	"github.com/heinrichnel/fleetops/internal/events"
	"github.com/heinrichnel/fleetops/internal/models"
	"github.com/heinrichnel/fleetops/internal/rules"
)

// Handler serves the operational API. Reads come from the watcher's
// snapshot; writes go through the rule engine.
type Handler struct {
	Watcher   *db.Watcher
	Engine    *rules.Engine
	Publisher *events.Publisher
	Norms     []models.DieselNorm
}

// NewHandler wires the API over the given snapshot watcher and engine.
func NewHandler(watcher *db.Watcher, engine *rules.Engine, publisher *events.Publisher) *Handler {
	return &Handler{
		Watcher:   watcher,
		Engine:    engine,
		Publisher: publisher,
		Norms:     models.DefaultDieselNorms(),
	}
}

// Routes registers every API route on the mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/api/trips", h.Trips)
	mux.HandleFunc("/api/trips/", h.TripSubtree)
	mux.HandleFunc("/api/diesel", h.Diesel)
	mux.HandleFunc("/api/diesel/", h.DieselSubtree)
	mux.HandleFunc("/api/missed-loads", h.MissedLoads)
	mux.HandleFunc("/api/missed-loads/", h.MissedLoadByID)
	mux.HandleFunc("/api/reports/fleet", h.FleetReport)
	mux.HandleFunc("/api/reports/fleet.csv", h.FleetReportCSV)
	mux.HandleFunc("/api/reports/aging", h.InvoiceAging)
	mux.HandleFunc("/api/reports/customers", h.CustomerPerformance)
	mux.HandleFunc("/api/reports/flagged", h.FlaggedCosts)
	mux.HandleFunc("/api/import/trips", h.ImportTrips)
	mux.HandleFunc("/api/import/diesel", h.ImportDiesel)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeResult maps an engine result to a response: applied is 200,
// skipped is 404 because the referenced record was gone from the caller's
// view.
func writeResult(w http.ResponseWriter, res rules.Result) {
	if res.Outcome == rules.OutcomeSkipped {
		writeJSON(w, http.StatusNotFound, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// pathParts splits the path remainder after a prefix into segments.
func pathParts(path, prefix string) []string {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
