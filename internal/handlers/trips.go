package handlers

import (
	"net/http"

	"github.com/heinrichnel/fleetops/internal/export"
	"github.com/heinrichnel/fleetops/internal/metrics"
	"github.com/heinrichnel/fleetops/internal/models"
	"github.com/heinrichnel/fleetops/internal/rules"
)

// Trips handles the trip collection: list and create.
func (h *Handler) Trips(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.Watcher.Snapshot().Trips)
	case http.MethodPost:
		var trip models.Trip
		if err := decodeJSON(r, &trip); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if trip.FleetNumber == "" || trip.ClientName == "" || trip.Route == "" {
			http.Error(w, "fleetNumber, clientName and route are required", http.StatusBadRequest)
			return
		}
		res, err := h.Engine.AddTrip(r.Context(), trip)
		if err != nil {
			http.Error(w, "Failed to create trip", http.StatusInternalServerError)
			return
		}
		h.Publisher.Publish("trip_update", "trip", res.ID, "create", trip)
		writeJSON(w, http.StatusCreated, res)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// TripSubtree routes /api/trips/{id} and its subresources.
func (h *Handler) TripSubtree(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r.URL.Path, "/api/trips/")
	if len(parts) == 0 {
		http.NotFound(w, r)
		return
	}
	tripID := parts[0]
	switch {
	case len(parts) == 1:
		h.tripByID(w, r, tripID)
	case parts[1] == "costs":
		h.tripCosts(w, r, tripID, parts[2:])
	case parts[1] == "additional-costs":
		h.tripAdditionalCosts(w, r, tripID, parts[2:])
	case parts[1] == "delays" && len(parts) == 2:
		h.tripDelays(w, r, tripID)
	case parts[1] == "invoice" && len(parts) == 2:
		h.tripInvoice(w, r, tripID)
	case parts[1] == "payment" && len(parts) == 2:
		h.tripPayment(w, r, tripID)
	case parts[1] == "follow-ups" && len(parts) == 2:
		h.tripFollowUps(w, r, tripID)
	case parts[1] == "report" && len(parts) == 2:
		h.tripReport(w, r, tripID)
	case parts[1] == "report.pdf" && len(parts) == 2:
		h.tripReportPDF(w, r, tripID)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) findTrip(id string) (models.Trip, bool) {
	for _, t := range h.Watcher.Snapshot().Trips {
		if t.ID == id {
			return t, true
		}
	}
	return models.Trip{}, false
}

func (h *Handler) tripByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		trip, ok := h.findTrip(id)
		if !ok {
			http.Error(w, "Trip not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, trip)
	case http.MethodPut:
		var trip models.Trip
		if err := decodeJSON(r, &trip); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		trip.ID = id
		res, err := h.Engine.UpdateTrip(r.Context(), trip)
		if err != nil {
			http.Error(w, "Failed to update trip", http.StatusInternalServerError)
			return
		}
		h.Publisher.Publish("trip_update", "trip", id, "update", trip)
		writeResult(w, res)
	case http.MethodDelete:
		var req struct {
			DeletedBy string `json:"deletedBy"`
			Reason    string `json:"reason"`
		}
		decodeJSON(r, &req)
		res, err := h.Engine.DeleteTrip(r.Context(), h.Watcher.Snapshot(), id, req.DeletedBy, req.Reason)
		if err != nil {
			http.Error(w, "Failed to delete trip", http.StatusInternalServerError)
			return
		}
		if res.Outcome == rules.OutcomeApplied {
			h.Publisher.Publish("trip_update", "trip", id, "delete", nil)
		}
		writeResult(w, res)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) tripCosts(w http.ResponseWriter, r *http.Request, tripID string, rest []string) {
	switch {
	case len(rest) == 0 && r.Method == http.MethodPost:
		var entry models.CostEntry
		if err := decodeJSON(r, &entry); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		entry.TripID = tripID
		if entry.Category == "" || entry.Amount <= 0 {
			http.Error(w, "category and a positive amount are required", http.StatusBadRequest)
			return
		}
		res, err := h.Engine.AddCostEntry(r.Context(), h.Watcher.Snapshot(), entry)
		if err != nil {
			http.Error(w, "Failed to add cost entry", http.StatusInternalServerError)
			return
		}
		h.Publisher.Publish("cost_update", "trip", tripID, "update", entry)
		writeResult(w, res)
	case len(rest) == 1 && r.Method == http.MethodPut:
		var entry models.CostEntry
		if err := decodeJSON(r, &entry); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		entry.TripID = tripID
		entry.ID = rest[0]
		res, err := h.Engine.UpdateCostEntry(r.Context(), h.Watcher.Snapshot(), entry)
		if err != nil {
			http.Error(w, "Failed to update cost entry", http.StatusInternalServerError)
			return
		}
		h.Publisher.Publish("cost_update", "trip", tripID, "update", entry)
		writeResult(w, res)
	case len(rest) == 1 && r.Method == http.MethodDelete:
		res, err := h.Engine.DeleteCostEntry(r.Context(), h.Watcher.Snapshot(), tripID, rest[0])
		if err != nil {
			http.Error(w, "Failed to delete cost entry", http.StatusInternalServerError)
			return
		}
		h.Publisher.Publish("cost_update", "trip", tripID, "update", nil)
		writeResult(w, res)
	case len(rest) == 2 && rest[1] == "attachments" && r.Method == http.MethodPost:
		var att models.Attachment
		if err := decodeJSON(r, &att); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		res, err := h.Engine.AddAttachment(r.Context(), h.Watcher.Snapshot(), tripID, rest[0], att)
		if err != nil {
			http.Error(w, "Failed to add attachment", http.StatusInternalServerError)
			return
		}
		writeResult(w, res)
	case len(rest) == 3 && rest[1] == "attachments" && r.Method == http.MethodDelete:
		res, err := h.Engine.DeleteAttachment(r.Context(), h.Watcher.Snapshot(), tripID, rest[0], rest[2])
		if err != nil {
			http.Error(w, "Failed to delete attachment", http.StatusInternalServerError)
			return
		}
		writeResult(w, res)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) tripAdditionalCosts(w http.ResponseWriter, r *http.Request, tripID string, rest []string) {
	switch {
	case len(rest) == 0 && r.Method == http.MethodPost:
		var cost models.AdditionalCost
		if err := decodeJSON(r, &cost); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		cost.TripID = tripID
		if cost.Amount <= 0 {
			http.Error(w, "a positive amount is required", http.StatusBadRequest)
			return
		}
		res, err := h.Engine.AddAdditionalCost(r.Context(), h.Watcher.Snapshot(), cost)
		if err != nil {
			http.Error(w, "Failed to add additional cost", http.StatusInternalServerError)
			return
		}
		h.Publisher.Publish("cost_update", "trip", tripID, "update", cost)
		writeResult(w, res)
	case len(rest) == 1 && r.Method == http.MethodDelete:
		res, err := h.Engine.RemoveAdditionalCost(r.Context(), h.Watcher.Snapshot(), tripID, rest[0])
		if err != nil {
			http.Error(w, "Failed to remove additional cost", http.StatusInternalServerError)
			return
		}
		writeResult(w, res)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) tripDelays(w http.ResponseWriter, r *http.Request, tripID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var delay models.DelayReason
	if err := decodeJSON(r, &delay); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	delay.TripID = tripID
	if delay.DelayDuration <= 0 {
		http.Error(w, "delayDuration must be positive", http.StatusBadRequest)
		return
	}
	res, err := h.Engine.AddDelayReason(r.Context(), h.Watcher.Snapshot(), delay)
	if err != nil {
		http.Error(w, "Failed to add delay reason", http.StatusInternalServerError)
		return
	}
	writeResult(w, res)
}

func (h *Handler) tripInvoice(w http.ResponseWriter, r *http.Request, tripID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var sub rules.InvoiceSubmission
	if err := decodeJSON(r, &sub); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if sub.InvoiceNumber == "" {
		http.Error(w, "invoiceNumber is required", http.StatusBadRequest)
		return
	}
	res, err := h.Engine.SubmitInvoice(r.Context(), h.Watcher.Snapshot(), tripID, sub)
	if err != nil {
		http.Error(w, "Failed to submit invoice", http.StatusInternalServerError)
		return
	}
	h.Publisher.Publish("invoice_update", "trip", tripID, "update", sub)
	writeResult(w, res)
}

func (h *Handler) tripPayment(w http.ResponseWriter, r *http.Request, tripID string) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var upd rules.PaymentUpdate
	if err := decodeJSON(r, &upd); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	switch upd.Status {
	case models.PaymentUnpaid, models.PaymentPartial, models.PaymentPaid:
	default:
		http.Error(w, "Invalid payment status", http.StatusBadRequest)
		return
	}
	res, err := h.Engine.UpdateInvoicePayment(r.Context(), h.Watcher.Snapshot(), tripID, upd)
	if err != nil {
		http.Error(w, "Failed to update payment", http.StatusInternalServerError)
		return
	}
	h.Publisher.Publish("payment_update", "trip", tripID, "update", upd)
	writeResult(w, res)
}

func (h *Handler) tripFollowUps(w http.ResponseWriter, r *http.Request, tripID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var record models.FollowUpRecord
	if err := decodeJSON(r, &record); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	record.TripID = tripID
	res, err := h.Engine.AddFollowUp(r.Context(), h.Watcher.Snapshot(), record)
	if err != nil {
		http.Error(w, "Failed to add follow-up", http.StatusInternalServerError)
		return
	}
	writeResult(w, res)
}

func (h *Handler) tripReport(w http.ResponseWriter, r *http.Request, tripID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	trip, ok := h.findTrip(tripID)
	if !ok {
		http.Error(w, "Trip not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, metrics.GenerateTripReport(trip))
}

func (h *Handler) tripReportPDF(w http.ResponseWriter, r *http.Request, tripID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	trip, ok := h.findTrip(tripID)
	if !ok {
		http.Error(w, "Trip not found", http.StatusNotFound)
		return
	}
	pdf, filename, err := export.TripReportPDF(trip, metrics.GenerateTripReport(trip))
	if err != nil {
		http.Error(w, "Failed to render PDF", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(pdf)
}
