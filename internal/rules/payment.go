package rules

import (
	"context"
	"fmt"
	"time"

	"github.com/heinrichnel/fleetops/internal/db"
	"github.com/heinrichnel/fleetops/internal/models"
)

// InvoiceSubmission carries the fields set when a completed trip is
// submitted for invoicing.
type InvoiceSubmission struct {
	InvoiceNumber   string     `json:"invoiceNumber"`
	InvoiceDate     time.Time  `json:"invoiceDate"`
	InvoiceDueDate  *time.Time `json:"invoiceDueDate,omitempty"`
	SubmittedBy     string     `json:"submittedBy"`
	ValidationNotes string     `json:"validationNotes,omitempty"`

	FinalArrival   *time.Time `json:"finalArrivalDateTime,omitempty"`
	FinalOffload   *time.Time `json:"finalOffloadDateTime,omitempty"`
	FinalDeparture *time.Time `json:"finalDepartureDateTime,omitempty"`
}

// SubmitInvoice moves a completed trip to invoiced and stamps the invoice
// fields. The final timeline, when supplied, supersedes the actual one for
// billing disputes.
func (e *Engine) SubmitInvoice(ctx context.Context, snap db.Snapshot, tripID string, sub InvoiceSubmission) (Result, error) {
	trip, ok := findTrip(snap, tripID)
	if !ok {
		return skipped("trip not found: " + tripID), nil
	}
	now := e.now()
	trip.Status = models.TripInvoiced
	trip.InvoiceNumber = sub.InvoiceNumber
	trip.InvoiceDate = &sub.InvoiceDate
	trip.InvoiceDueDate = sub.InvoiceDueDate
	trip.InvoiceSubmittedAt = &now
	trip.InvoiceSubmittedBy = sub.SubmittedBy
	trip.InvoiceValidationNotes = sub.ValidationNotes
	if sub.FinalArrival != nil {
		trip.FinalArrival = sub.FinalArrival
	}
	if sub.FinalOffload != nil {
		trip.FinalOffload = sub.FinalOffload
	}
	if sub.FinalDeparture != nil {
		trip.FinalDeparture = sub.FinalDeparture
	}
	if err := e.trips.UpdateTrip(ctx, trip); err != nil {
		return Result{}, err
	}
	return applied(tripID), nil
}

// PaymentUpdate carries a change to an invoiced trip's settlement state.
type PaymentUpdate struct {
	Status        models.PaymentStatus `json:"paymentStatus"`
	Amount        *float64             `json:"paymentAmount,omitempty"`
	ReceivedDate  *time.Time           `json:"paymentReceivedDate,omitempty"`
	Method        string               `json:"paymentMethod,omitempty"`
	BankReference string               `json:"bankReference,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	UpdatedBy     string               `json:"updatedBy,omitempty"`
}

// UpdateInvoicePayment applies a settlement change. A full payment moves
// the trip to paid, and any received money appends a completed Finance Team
// follow-up so the chase history reflects the outcome.
func (e *Engine) UpdateInvoicePayment(ctx context.Context, snap db.Snapshot, tripID string, upd PaymentUpdate) (Result, error) {
	trip, ok := findTrip(snap, tripID)
	if !ok {
		return skipped("trip not found: " + tripID), nil
	}
	now := e.now()
	trip.PaymentStatus = upd.Status
	if upd.Amount != nil {
		trip.PaymentAmount = upd.Amount
	}
	if upd.ReceivedDate != nil {
		trip.PaymentReceivedDate = upd.ReceivedDate
	}
	if upd.Method != "" {
		trip.PaymentMethod = upd.Method
	}
	if upd.BankReference != "" {
		trip.BankReference = upd.BankReference
	}
	if upd.Status == models.PaymentPaid {
		trip.Status = models.TripPaid
	}

	if upd.Status == models.PaymentPaid || upd.Status == models.PaymentPartial {
		outcome := "payment_received"
		if upd.Status == models.PaymentPartial {
			outcome = "partial_payment"
		}
		summary := fmt.Sprintf("Payment status updated to %s", upd.Status)
		if upd.Notes != "" {
			summary += ". " + upd.Notes
		}
		trip.FollowUpHistory = append(trip.FollowUpHistory, models.FollowUpRecord{
			ID:               "FU" + e.newID(),
			TripID:           tripID,
			FollowUpDate:     now,
			ContactMethod:    "call",
			ResponsibleStaff: "Finance Team",
			ResponseSummary:  summary,
			Status:           "completed",
			Priority:         "medium",
			Outcome:          outcome,
		})
		trip.LastFollowUpDate = &now
	}

	if err := e.trips.UpdateTrip(ctx, trip); err != nil {
		return Result{}, err
	}
	return applied(tripID), nil
}

// AddFollowUp records a manual payment chase on a trip.
func (e *Engine) AddFollowUp(ctx context.Context, snap db.Snapshot, record models.FollowUpRecord) (Result, error) {
	trip, ok := findTrip(snap, record.TripID)
	if !ok {
		return skipped("trip not found: " + record.TripID), nil
	}
	if record.ID == "" {
		record.ID = "FU" + e.newID()
	}
	if record.FollowUpDate.IsZero() {
		record.FollowUpDate = e.now()
	}
	trip.FollowUpHistory = append(trip.FollowUpHistory, record)
	trip.LastFollowUpDate = &record.FollowUpDate
	if err := e.trips.UpdateTrip(ctx, trip); err != nil {
		return Result{}, err
	}
	return applied(record.ID), nil
}
