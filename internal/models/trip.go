package models

import (
	"time"
)

// Currency is one of the two currencies the fleet invoices in.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyZAR Currency = "ZAR"
)

// TripStatus tracks the forward-only trip lifecycle.
type TripStatus string

const (
	TripActive    TripStatus = "active"
	TripCompleted TripStatus = "completed"
	TripInvoiced  TripStatus = "invoiced"
	TripPaid      TripStatus = "paid"
)

// PaymentStatus tracks invoice settlement.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// ClientType distinguishes internal group clients from external customers.
type ClientType string

const (
	ClientInternal ClientType = "internal"
	ClientExternal ClientType = "external"
)

// Trip is the root aggregate for costs and revenue: a single fleet movement
// from origin to destination.
type Trip struct {
	ID              string     `json:"id" bson:"_id"`
	FleetNumber     string     `json:"fleetNumber" bson:"fleet_number"`
	DriverName      string     `json:"driverName" bson:"driver_name"`
	ClientName      string     `json:"clientName" bson:"client_name"`
	ClientType      ClientType `json:"clientType" bson:"client_type"`
	StartDate       time.Time  `json:"startDate" bson:"start_date"`
	EndDate         time.Time  `json:"endDate" bson:"end_date"`
	Route           string     `json:"route" bson:"route"`
	Description     string     `json:"description,omitempty" bson:"description,omitempty"`
	BaseRevenue     float64    `json:"baseRevenue" bson:"base_revenue"`
	RevenueCurrency Currency   `json:"revenueCurrency" bson:"revenue_currency"`
	DistanceKm      *float64   `json:"distanceKm,omitempty" bson:"distance_km,omitempty"`
	Status          TripStatus `json:"status" bson:"status"`

	Costs           []CostEntry      `json:"costs" bson:"costs"`
	AdditionalCosts []AdditionalCost `json:"additionalCosts" bson:"additional_costs"`
	DelayReasons    []DelayReason    `json:"delayReasons,omitempty" bson:"delay_reasons,omitempty"`
	FollowUpHistory []FollowUpRecord `json:"followUpHistory" bson:"follow_up_history"`

	CompletedAt         *time.Time `json:"completedAt,omitempty" bson:"completed_at,omitempty"`
	CompletedBy         string     `json:"completedBy,omitempty" bson:"completed_by,omitempty"`
	AutoCompletedAt     *time.Time `json:"autoCompletedAt,omitempty" bson:"auto_completed_at,omitempty"`
	AutoCompletedReason string     `json:"autoCompletedReason,omitempty" bson:"auto_completed_reason,omitempty"`

	HasInvestigation   bool   `json:"hasInvestigation,omitempty" bson:"has_investigation,omitempty"`
	InvestigationNotes string `json:"investigationNotes,omitempty" bson:"investigation_notes,omitempty"`

	// Planned vs actual vs final timestamp triples, confirmed before invoicing.
	PlannedArrival      *time.Time `json:"plannedArrivalDateTime,omitempty" bson:"planned_arrival,omitempty"`
	PlannedOffload      *time.Time `json:"plannedOffloadDateTime,omitempty" bson:"planned_offload,omitempty"`
	PlannedDeparture    *time.Time `json:"plannedDepartureDateTime,omitempty" bson:"planned_departure,omitempty"`
	ActualArrival       *time.Time `json:"actualArrivalDateTime,omitempty" bson:"actual_arrival,omitempty"`
	ActualOffload       *time.Time `json:"actualOffloadDateTime,omitempty" bson:"actual_offload,omitempty"`
	ActualDeparture     *time.Time `json:"actualDepartureDateTime,omitempty" bson:"actual_departure,omitempty"`
	FinalArrival        *time.Time `json:"finalArrivalDateTime,omitempty" bson:"final_arrival,omitempty"`
	FinalOffload        *time.Time `json:"finalOffloadDateTime,omitempty" bson:"final_offload,omitempty"`
	FinalDeparture      *time.Time `json:"finalDepartureDateTime,omitempty" bson:"final_departure,omitempty"`
	TimelineValidated   bool       `json:"timelineValidated,omitempty" bson:"timeline_validated,omitempty"`
	TimelineValidatedBy string     `json:"timelineValidatedBy,omitempty" bson:"timeline_validated_by,omitempty"`
	TimelineValidatedAt *time.Time `json:"timelineValidatedAt,omitempty" bson:"timeline_validated_at,omitempty"`

	// Invoice and payment tracking.
	InvoiceNumber          string        `json:"invoiceNumber,omitempty" bson:"invoice_number,omitempty"`
	InvoiceDate            *time.Time    `json:"invoiceDate,omitempty" bson:"invoice_date,omitempty"`
	InvoiceDueDate         *time.Time    `json:"invoiceDueDate,omitempty" bson:"invoice_due_date,omitempty"`
	InvoiceSubmittedAt     *time.Time    `json:"invoiceSubmittedAt,omitempty" bson:"invoice_submitted_at,omitempty"`
	InvoiceSubmittedBy     string        `json:"invoiceSubmittedBy,omitempty" bson:"invoice_submitted_by,omitempty"`
	InvoiceValidationNotes string        `json:"invoiceValidationNotes,omitempty" bson:"invoice_validation_notes,omitempty"`
	PaymentStatus          PaymentStatus `json:"paymentStatus" bson:"payment_status"`
	PaymentReceivedDate    *time.Time    `json:"paymentReceivedDate,omitempty" bson:"payment_received_date,omitempty"`
	PaymentAmount          *float64      `json:"paymentAmount,omitempty" bson:"payment_amount,omitempty"`
	PaymentMethod          string        `json:"paymentMethod,omitempty" bson:"payment_method,omitempty"`
	BankReference          string        `json:"bankReference,omitempty" bson:"bank_reference,omitempty"`
	LastFollowUpDate       *time.Time    `json:"lastFollowUpDate,omitempty" bson:"last_follow_up_date,omitempty"`

	ProofOfDelivery []Attachment `json:"proofOfDelivery,omitempty" bson:"proof_of_delivery,omitempty"`
	SignedInvoice   []Attachment `json:"signedInvoice,omitempty" bson:"signed_invoice,omitempty"`

	EditHistory    []TripEditRecord    `json:"editHistory,omitempty" bson:"edit_history,omitempty"`
	DeletionRecord *TripDeletionRecord `json:"deletionRecord,omitempty" bson:"deletion_record,omitempty"`
}

// TripEditRecord is an audit entry for a manual edit on a trip.
type TripEditRecord struct {
	ID           string    `json:"id" bson:"id"`
	TripID       string    `json:"tripId" bson:"trip_id"`
	EditedBy     string    `json:"editedBy" bson:"edited_by"`
	EditedAt     time.Time `json:"editedAt" bson:"edited_at"`
	Reason       string    `json:"reason" bson:"reason"`
	FieldChanged string    `json:"fieldChanged" bson:"field_changed"`
	OldValue     string    `json:"oldValue" bson:"old_value"`
	NewValue     string    `json:"newValue" bson:"new_value"`
	ChangeType   string    `json:"changeType" bson:"change_type"` // "update", "status_change", "completion", "auto_completion"
}

// TripDeletionRecord captures what a trip looked like when a user deleted it.
// Deletion is unrecoverable in the store; this record is the only trace kept.
type TripDeletionRecord struct {
	ID                string    `json:"id" bson:"id"`
	TripID            string    `json:"tripId" bson:"trip_id"`
	DeletedBy         string    `json:"deletedBy" bson:"deleted_by"`
	DeletedAt         time.Time `json:"deletedAt" bson:"deleted_at"`
	Reason            string    `json:"reason" bson:"reason"`
	TotalRevenue      float64   `json:"totalRevenue" bson:"total_revenue"`
	TotalCosts        float64   `json:"totalCosts" bson:"total_costs"`
	CostEntriesCount  int       `json:"costEntriesCount" bson:"cost_entries_count"`
	FlaggedItemsCount int       `json:"flaggedItemsCount" bson:"flagged_items_count"`
}
