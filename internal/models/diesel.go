package models

import (
	"time"
)

// PerformanceStatus classifies a diesel record's efficiency against its
// fleet norm.
type PerformanceStatus string

const (
	PerformanceNormal    PerformanceStatus = "normal"
	PerformancePoor      PerformanceStatus = "poor"
	PerformanceExcellent PerformanceStatus = "excellent"
)

// DieselConsumptionRecord is a single fuel purchase for a fleet vehicle.
// Derived fields (distance, km/L, cost/L) are computed at ingestion.
type DieselConsumptionRecord struct {
	ID                string    `json:"id" bson:"_id"`
	FleetNumber       string    `json:"fleetNumber" bson:"fleet_number"`
	Date              time.Time `json:"date" bson:"date"`
	KmReading         float64   `json:"kmReading" bson:"km_reading"`
	PreviousKmReading *float64  `json:"previousKmReading,omitempty" bson:"previous_km_reading,omitempty"`
	LitresFilled      float64   `json:"litresFilled" bson:"litres_filled"`
	CostPerLitre      float64   `json:"costPerLitre" bson:"cost_per_litre"`
	TotalCost         float64   `json:"totalCost" bson:"total_cost"`
	FuelStation       string    `json:"fuelStation" bson:"fuel_station"`
	DriverName        string    `json:"driverName" bson:"driver_name"`
	Notes             string    `json:"notes,omitempty" bson:"notes,omitempty"`

	DistanceTravelled *float64 `json:"distanceTravelled,omitempty" bson:"distance_travelled,omitempty"`
	KmPerLitre        *float64 `json:"kmPerLitre,omitempty" bson:"km_per_litre,omitempty"`

	// Link to a trip for cost allocation. Non-empty means a synthetic
	// "Diesel" cost entry exists on that trip.
	TripID string `json:"tripId,omitempty" bson:"trip_id,omitempty"`

	DebriefDate     *time.Time `json:"debriefDate,omitempty" bson:"debrief_date,omitempty"`
	DebriefNotes    string     `json:"debriefNotes,omitempty" bson:"debrief_notes,omitempty"`
	DebriefSignedBy string     `json:"debriefSignedBy,omitempty" bson:"debrief_signed_by,omitempty"`
	DebriefSignedAt *time.Time `json:"debriefSignedAt,omitempty" bson:"debrief_signed_at,omitempty"`
}

// DieselNorm is the expected fuel efficiency configured per fleet vehicle.
// Norms are reporting configuration held in memory, not persisted.
type DieselNorm struct {
	FleetNumber         string    `json:"fleetNumber"`
	ExpectedKmPerLitre  float64   `json:"expectedKmPerLitre"`
	TolerancePercentage float64   `json:"tolerancePercentage"`
	LastUpdated         time.Time `json:"lastUpdated"`
	UpdatedBy           string    `json:"updatedBy"`
}

// Fallbacks when a fleet has no configured norm.
const (
	DefaultExpectedKmPerLitre  = 3.0
	DefaultTolerancePercentage = 10.0
)

// DefaultDieselNorms returns the stock per-fleet efficiency norms.
func DefaultDieselNorms() []DieselNorm {
	now := time.Now()
	norms := []struct {
		fleet     string
		kmPerL    float64
		tolerance float64
	}{
		{"4H", 3.5, 10}, {"6H", 3.2, 10}, {"21H", 3.0, 10}, {"22H", 3.1, 10},
		{"23H", 3.0, 10}, {"24H", 2.9, 10}, {"26H", 3.5, 10}, {"28H", 3.3, 10},
		{"29H", 3.2, 10}, {"30H", 3.1, 10}, {"31H", 3.0, 10}, {"32H", 3.2, 10},
		{"33H", 3.1, 10}, {"UD", 2.8, 15},
	}
	out := make([]DieselNorm, 0, len(norms))
	for _, n := range norms {
		out = append(out, DieselNorm{
			FleetNumber:         n.fleet,
			ExpectedKmPerLitre:  n.kmPerL,
			TolerancePercentage: n.tolerance,
			LastUpdated:         now,
			UpdatedBy:           "System Default",
		})
	}
	return out
}
