package models

import (
	"time"
)

// MissedLoadReason is the fixed taxonomy for why a load was not carried.
type MissedLoadReason string

const (
	MissedNoVehicle         MissedLoadReason = "no_vehicle"
	MissedLateResponse      MissedLoadReason = "late_response"
	MissedMechanicalIssue   MissedLoadReason = "mechanical_issue"
	MissedDriverUnavailable MissedLoadReason = "driver_unavailable"
	MissedCustomerCancelled MissedLoadReason = "customer_cancelled"
	MissedRateDisagreement  MissedLoadReason = "rate_disagreement"
	MissedOther             MissedLoadReason = "other"
)

// ResolutionStatus tracks what became of a missed load.
type ResolutionStatus string

const (
	ResolutionPending         ResolutionStatus = "pending"
	ResolutionResolved        ResolutionStatus = "resolved"
	ResolutionLostOpportunity ResolutionStatus = "lost_opportunity"
	ResolutionRescheduled     ResolutionStatus = "rescheduled"
)

// ImpactLevel grades the business impact of a missed load.
type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "low"
	ImpactMedium ImpactLevel = "medium"
	ImpactHigh   ImpactLevel = "high"
)

// MissedLoad records a customer request the fleet could not serve.
type MissedLoad struct {
	ID                    string           `json:"id" bson:"_id"`
	CustomerName          string           `json:"customerName" bson:"customer_name"`
	LoadRequestDate       time.Time        `json:"loadRequestDate" bson:"load_request_date"`
	RequestedPickupDate   time.Time        `json:"requestedPickupDate" bson:"requested_pickup_date"`
	RequestedDeliveryDate time.Time        `json:"requestedDeliveryDate" bson:"requested_delivery_date"`
	Route                 string           `json:"route" bson:"route"`
	EstimatedRevenue      float64          `json:"estimatedRevenue" bson:"estimated_revenue"`
	Currency              Currency         `json:"currency" bson:"currency"`
	Reason                MissedLoadReason `json:"reason" bson:"reason"`
	ReasonDescription     string           `json:"reasonDescription,omitempty" bson:"reason_description,omitempty"`
	ResolutionStatus      ResolutionStatus `json:"resolutionStatus" bson:"resolution_status"`
	FollowUpRequired      bool             `json:"followUpRequired" bson:"follow_up_required"`
	CompetitorWon         bool             `json:"competitorWon,omitempty" bson:"competitor_won,omitempty"`
	RecordedBy            string           `json:"recordedBy" bson:"recorded_by"`
	RecordedAt            time.Time        `json:"recordedAt" bson:"recorded_at"`
	Impact                ImpactLevel      `json:"impact" bson:"impact"`

	ResolutionNotes     string     `json:"resolutionNotes,omitempty" bson:"resolution_notes,omitempty"`
	ResolvedAt          *time.Time `json:"resolvedAt,omitempty" bson:"resolved_at,omitempty"`
	ResolvedBy          string     `json:"resolvedBy,omitempty" bson:"resolved_by,omitempty"`
	CompensationOffered *float64   `json:"compensationOffered,omitempty" bson:"compensation_offered,omitempty"`
	CompensationNotes   string     `json:"compensationNotes,omitempty" bson:"compensation_notes,omitempty"`
}
