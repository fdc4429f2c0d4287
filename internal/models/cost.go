package models

import (
	"time"
)

// InvestigationStatus tracks a flagged cost entry's review state.
type InvestigationStatus string

const (
	InvestigationPending    InvestigationStatus = "pending"
	InvestigationInProgress InvestigationStatus = "in-progress"
	InvestigationResolved   InvestigationStatus = "resolved"
)

// CostOriginKind distinguishes manually captured entries from entries the
// system derived from another record.
type CostOriginKind string

const (
	OriginManual        CostOriginKind = "manual"
	OriginDieselDerived CostOriginKind = "diesel-derived"
)

// CostOrigin records where a cost entry came from. Diesel-derived entries
// carry the source record's id so allocation can find and remove them
// without parsing reference numbers.
type CostOrigin struct {
	Kind           CostOriginKind `json:"kind" bson:"kind"`
	DieselRecordID string         `json:"dieselRecordId,omitempty" bson:"diesel_record_id,omitempty"`
}

// CostEntry is a single expense line item attributed to a trip. Its currency
// may differ from the trip's revenue currency; costs are incurred in either.
type CostEntry struct {
	ID              string       `json:"id" bson:"id"`
	TripID          string       `json:"tripId" bson:"trip_id"`
	Category        string       `json:"category" bson:"category"`
	SubCategory     string       `json:"subCategory" bson:"sub_category"`
	Amount          float64      `json:"amount" bson:"amount"`
	Currency        Currency     `json:"currency" bson:"currency"`
	ReferenceNumber string       `json:"referenceNumber" bson:"reference_number"`
	Date            time.Time    `json:"date" bson:"date"`
	Notes           string       `json:"notes,omitempty" bson:"notes,omitempty"`
	Attachments     []Attachment `json:"attachments" bson:"attachments"`

	IsFlagged           bool                `json:"isFlagged" bson:"is_flagged"`
	FlagReason          string              `json:"flagReason,omitempty" bson:"flag_reason,omitempty"`
	InvestigationStatus InvestigationStatus `json:"investigationStatus,omitempty" bson:"investigation_status,omitempty"`
	InvestigationNotes  string              `json:"investigationNotes,omitempty" bson:"investigation_notes,omitempty"`
	NoDocumentReason    string              `json:"noDocumentReason,omitempty" bson:"no_document_reason,omitempty"`
	FlaggedAt           *time.Time          `json:"flaggedAt,omitempty" bson:"flagged_at,omitempty"`
	FlaggedBy           string              `json:"flaggedBy,omitempty" bson:"flagged_by,omitempty"`
	ResolvedAt          *time.Time          `json:"resolvedAt,omitempty" bson:"resolved_at,omitempty"`
	ResolvedBy          string              `json:"resolvedBy,omitempty" bson:"resolved_by,omitempty"`

	Origin             CostOrigin       `json:"origin" bson:"origin"`
	IsSystemGenerated  bool             `json:"isSystemGenerated,omitempty" bson:"is_system_generated,omitempty"`
	SystemCostType     string           `json:"systemCostType,omitempty" bson:"system_cost_type,omitempty"` // "per-km" or "per-day"
	CalculationDetails string           `json:"calculationDetails,omitempty" bson:"calculation_details,omitempty"`
	EditHistory        []CostEditRecord `json:"editHistory,omitempty" bson:"edit_history,omitempty"`
}

// CostEditRecord is an audit entry for a manual edit on a cost entry.
type CostEditRecord struct {
	ID           string    `json:"id" bson:"id"`
	CostID       string    `json:"costId" bson:"cost_id"`
	EditedBy     string    `json:"editedBy" bson:"edited_by"`
	EditedAt     time.Time `json:"editedAt" bson:"edited_at"`
	Reason       string    `json:"reason" bson:"reason"`
	FieldChanged string    `json:"fieldChanged" bson:"field_changed"`
	OldValue     string    `json:"oldValue" bson:"old_value"`
	NewValue     string    `json:"newValue" bson:"new_value"`
	ChangeType   string    `json:"changeType" bson:"change_type"` // "update", "flag_status", "investigation"
}

// Attachment is metadata for an uploaded supporting document. File contents
// live in external storage; only the reference is kept here.
type Attachment struct {
	ID          string    `json:"id" bson:"id"`
	CostEntryID string    `json:"costEntryId,omitempty" bson:"cost_entry_id,omitempty"`
	TripID      string    `json:"tripId,omitempty" bson:"trip_id,omitempty"`
	Filename    string    `json:"filename" bson:"filename"`
	FileURL     string    `json:"fileUrl" bson:"file_url"`
	FileType    string    `json:"fileType" bson:"file_type"`
	FileSize    int64     `json:"fileSize,omitempty" bson:"file_size,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt" bson:"uploaded_at"`
}

// AdditionalCostType is the fixed taxonomy for pre-invoice extras.
type AdditionalCostType string

const (
	CostDemurrage    AdditionalCostType = "demurrage"
	CostClearingFees AdditionalCostType = "clearing_fees"
	CostTollCharges  AdditionalCostType = "toll_charges"
	CostDetention    AdditionalCostType = "detention"
	CostEscortFees   AdditionalCostType = "escort_fees"
	CostStorage      AdditionalCostType = "storage"
	CostOther        AdditionalCostType = "other"
)

// AdditionalCost is a typed extra charged to the client before invoicing.
type AdditionalCost struct {
	ID                  string             `json:"id" bson:"id"`
	TripID              string             `json:"tripId" bson:"trip_id"`
	CostType            AdditionalCostType `json:"costType" bson:"cost_type"`
	Amount              float64            `json:"amount" bson:"amount"`
	Currency            Currency           `json:"currency" bson:"currency"`
	SupportingDocuments []Attachment       `json:"supportingDocuments" bson:"supporting_documents"`
	Notes               string             `json:"notes,omitempty" bson:"notes,omitempty"`
	AddedAt             time.Time          `json:"addedAt" bson:"added_at"`
	AddedBy             string             `json:"addedBy" bson:"added_by"`
}

// DelaySeverity grades a delay's impact.
type DelaySeverity string

const (
	DelayMinor    DelaySeverity = "minor"
	DelayModerate DelaySeverity = "moderate"
	DelayMajor    DelaySeverity = "major"
)

// DelayReason records a delay on a trip, in hours.
type DelayReason struct {
	ID              string        `json:"id" bson:"id"`
	TripID          string        `json:"tripId" bson:"trip_id"`
	DelayType       string        `json:"delayType" bson:"delay_type"` // one of DelayReasonTypes
	Description     string        `json:"description" bson:"description"`
	DelayDuration   float64       `json:"delayDuration" bson:"delay_duration"` // hours
	Severity        DelaySeverity `json:"severity" bson:"severity"`
	ReportedAt      time.Time     `json:"reportedAt" bson:"reported_at"`
	ReportedBy      string        `json:"reportedBy" bson:"reported_by"`
	ResolvedAt      *time.Time    `json:"resolvedAt,omitempty" bson:"resolved_at,omitempty"`
	ResolutionNotes string        `json:"resolutionNotes,omitempty" bson:"resolution_notes,omitempty"`
}

// FollowUpRecord tracks a payment chase on an invoiced trip.
type FollowUpRecord struct {
	ID               string     `json:"id" bson:"id"`
	TripID           string     `json:"tripId" bson:"trip_id"`
	FollowUpDate     time.Time  `json:"followUpDate" bson:"follow_up_date"`
	ContactMethod    string     `json:"contactMethod" bson:"contact_method"` // "call", "email", "whatsapp", "in_person", "sms"
	ResponsibleStaff string     `json:"responsibleStaff" bson:"responsible_staff"`
	ResponseSummary  string     `json:"responseSummary" bson:"response_summary"`
	NextFollowUpDate *time.Time `json:"nextFollowUpDate,omitempty" bson:"next_follow_up_date,omitempty"`
	Status           string     `json:"status" bson:"status"`     // "pending", "completed", "escalated"
	Priority         string     `json:"priority" bson:"priority"` // "low", "medium", "high", "urgent"
	Outcome          string     `json:"outcome" bson:"outcome"`   // "no_response", "promised_payment", "dispute", "payment_received", "partial_payment"
}
