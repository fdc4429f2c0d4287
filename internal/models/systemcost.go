package models

import (
	"time"
)

// PerKmCosts are overhead rates charged per kilometre driven.
type PerKmCosts struct {
	RepairMaintenance float64 `json:"repairMaintenance" bson:"repair_maintenance"`
	TyreCost          float64 `json:"tyreCost" bson:"tyre_cost"`
}

// PerDayCosts are overhead rates charged per trip day.
type PerDayCosts struct {
	GITInsurance          float64 `json:"gitInsurance" bson:"git_insurance"`
	ShortTermInsurance    float64 `json:"shortTermInsurance" bson:"short_term_insurance"`
	TrackingCost          float64 `json:"trackingCost" bson:"tracking_cost"`
	FleetManagementSystem float64 `json:"fleetManagementSystem" bson:"fleet_management_system"`
	Licensing             float64 `json:"licensing" bson:"licensing"`
	VIDRoadworthy         float64 `json:"vidRoadworthy" bson:"vid_roadworthy"`
	Wages                 float64 `json:"wages" bson:"wages"`
	Depreciation          float64 `json:"depreciation" bson:"depreciation"`
}

// SystemCostRates holds the per-currency fixed overhead rates with audit
// fields.
type SystemCostRates struct {
	Currency      Currency    `json:"currency" bson:"currency"`
	PerKmCosts    PerKmCosts  `json:"perKmCosts" bson:"per_km_costs"`
	PerDayCosts   PerDayCosts `json:"perDayCosts" bson:"per_day_costs"`
	LastUpdated   time.Time   `json:"lastUpdated" bson:"last_updated"`
	UpdatedBy     string      `json:"updatedBy" bson:"updated_by"`
	EffectiveDate time.Time   `json:"effectiveDate" bson:"effective_date"`
}

// DefaultSystemCostRates returns the stock overhead rates per currency.
func DefaultSystemCostRates() map[Currency]SystemCostRates {
	now := time.Now()
	return map[Currency]SystemCostRates{
		CurrencyUSD: {
			Currency:   CurrencyUSD,
			PerKmCosts: PerKmCosts{RepairMaintenance: 0.11, TyreCost: 0.03},
			PerDayCosts: PerDayCosts{
				GITInsurance:          10.21,
				ShortTermInsurance:    7.58,
				TrackingCost:          2.47,
				FleetManagementSystem: 1.34,
				Licensing:             1.32,
				VIDRoadworthy:         0.41,
				Wages:                 16.88,
				Depreciation:          321.17,
			},
			LastUpdated:   now,
			UpdatedBy:     "System Default",
			EffectiveDate: now,
		},
		CurrencyZAR: {
			Currency:   CurrencyZAR,
			PerKmCosts: PerKmCosts{RepairMaintenance: 2.05, TyreCost: 0.64},
			PerDayCosts: PerDayCosts{
				GITInsurance:          134.82,
				ShortTermInsurance:    181.52,
				TrackingCost:          49.91,
				FleetManagementSystem: 23.02,
				Licensing:             23.52,
				VIDRoadworthy:         11.89,
				Wages:                 300.15,
				Depreciation:          634.45,
			},
			LastUpdated:   now,
			UpdatedBy:     "System Default",
			EffectiveDate: now,
		},
	}
}

// SystemCostReminder schedules periodic review of the overhead rates.
type SystemCostReminder struct {
	ID                    string     `json:"id" bson:"_id"`
	NextReminderDate      time.Time  `json:"nextReminderDate" bson:"next_reminder_date"`
	LastReminderDate      *time.Time `json:"lastReminderDate,omitempty" bson:"last_reminder_date,omitempty"`
	ReminderFrequencyDays int        `json:"reminderFrequencyDays" bson:"reminder_frequency_days"`
	IsActive              bool       `json:"isActive" bson:"is_active"`
	CreatedAt             time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt             time.Time  `json:"updatedAt" bson:"updated_at"`
}

// AgingBucket is one receivables-risk band for invoice aging.
type AgingBucket string

const (
	AgingCurrent  AgingBucket = "current"
	AgingWarning  AgingBucket = "warning"
	AgingCritical AgingBucket = "critical"
	AgingOverdue  AgingBucket = "overdue"
)

// AgingThreshold bounds one aging bucket in days past due.
type AgingThreshold struct {
	Min int
	Max int // -1 means unbounded
}

// AgingThresholds maps currency to its receivables-risk bands. ZAR terms are
// longer than USD terms.
var AgingThresholds = map[Currency]map[AgingBucket]AgingThreshold{
	CurrencyZAR: {
		AgingCurrent:  {Min: 0, Max: 20},
		AgingWarning:  {Min: 21, Max: 29},
		AgingCritical: {Min: 30, Max: 30},
		AgingOverdue:  {Min: 31, Max: -1},
	},
	CurrencyUSD: {
		AgingCurrent:  {Min: 0, Max: 10},
		AgingWarning:  {Min: 11, Max: 13},
		AgingCritical: {Min: 14, Max: 14},
		AgingOverdue:  {Min: 15, Max: -1},
	},
}

// FollowUpThresholdDays is the age in days past which an unpaid invoice
// needs a payment follow-up.
var FollowUpThresholdDays = map[Currency]int{
	CurrencyZAR: 20,
	CurrencyUSD: 12,
}
