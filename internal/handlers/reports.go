package handlers

import (
	"net/http"
	"time"

	"github.com/heinrichnel/fleetops/internal/export"
	"github.com/heinrichnel/fleetops/internal/metrics"
	"github.com/heinrichnel/fleetops/internal/models"
)

// reportCurrency reads and validates the ?currency= query parameter.
func reportCurrency(r *http.Request) (models.Currency, bool) {
	switch models.Currency(r.URL.Query().Get("currency")) {
	case models.CurrencyUSD:
		return models.CurrencyUSD, true
	case models.CurrencyZAR, "":
		return models.CurrencyZAR, true
	default:
		return "", false
	}
}

// FleetReport returns the per-currency fleet performance report.
func (h *Handler) FleetReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	currency, ok := reportCurrency(r)
	if !ok {
		http.Error(w, "currency must be USD or ZAR", http.StatusBadRequest)
		return
	}
	report := metrics.GenerateCurrencyFleetReport(h.Watcher.Snapshot().Trips, currency)
	writeJSON(w, http.StatusOK, report)
}

// FleetReportCSV returns the fleet report as a CSV download.
func (h *Handler) FleetReportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	currency, ok := reportCurrency(r)
	if !ok {
		http.Error(w, "currency must be USD or ZAR", http.StatusBadRequest)
		return
	}
	now := time.Now()
	report := metrics.GenerateCurrencyFleetReport(h.Watcher.Snapshot().Trips, currency)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FleetReportFilename(currency, now)+`"`)
	w.Write([]byte(export.FleetReportCSV(report, now)))
}

// InvoiceAging returns the receivables aging view for invoiced trips.
func (h *Handler) InvoiceAging(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	aging := metrics.GenerateInvoiceAging(h.Watcher.Snapshot().Trips, time.Now())
	writeJSON(w, http.StatusOK, aging)
}

// CustomerPerformance returns the per-client revenue and payment view.
func (h *Handler) CustomerPerformance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	currency, ok := reportCurrency(r)
	if !ok {
		http.Error(w, "currency must be USD or ZAR", http.StatusBadRequest)
		return
	}
	perf := metrics.GenerateCustomerPerformance(h.Watcher.Snapshot().Trips, currency, time.Now())
	writeJSON(w, http.StatusOK, perf)
}

// FlaggedCosts returns every flagged cost across all trips, pending first.
func (h *Handler) FlaggedCosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, metrics.AllFlaggedCosts(h.Watcher.Snapshot().Trips))
}

// MissedLoads handles the missed load collection: list and create.
func (h *Handler) MissedLoads(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.Watcher.Snapshot().MissedLoads)
	case http.MethodPost:
		var load models.MissedLoad
		if err := decodeJSON(r, &load); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if load.CustomerName == "" || load.Route == "" {
			http.Error(w, "customerName and route are required", http.StatusBadRequest)
			return
		}
		res, err := h.Engine.AddMissedLoad(r.Context(), load)
		if err != nil {
			http.Error(w, "Failed to record missed load", http.StatusInternalServerError)
			return
		}
		h.Publisher.Publish("system_update", "missed_load", res.ID, "create", load)
		writeJSON(w, http.StatusCreated, res)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// MissedLoadByID handles update and delete for a single missed load.
func (h *Handler) MissedLoadByID(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r.URL.Path, "/api/missed-loads/")
	if len(parts) != 1 {
		http.NotFound(w, r)
		return
	}
	id := parts[0]
	switch r.Method {
	case http.MethodPut:
		var load models.MissedLoad
		if err := decodeJSON(r, &load); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		load.ID = id
		res, err := h.Engine.UpdateMissedLoad(r.Context(), load)
		if err != nil {
			http.Error(w, "Failed to update missed load", http.StatusInternalServerError)
			return
		}
		h.Publisher.Publish("system_update", "missed_load", id, "update", load)
		writeResult(w, res)
	case http.MethodDelete:
		res, err := h.Engine.DeleteMissedLoad(r.Context(), id)
		if err != nil {
			http.Error(w, "Failed to delete missed load", http.StatusInternalServerError)
			return
		}
		h.Publisher.Publish("system_update", "missed_load", id, "delete", nil)
		writeResult(w, res)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
