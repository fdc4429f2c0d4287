package rules

import (
	"math"

	"github.com/heinrichnel/fleetops/internal/models"
)

// ApplyDerivedFields computes the fields a diesel record carries but the
// operator never types: distance since the previous fill, km per litre,
// and cost per litre when only the total was captured.
func ApplyDerivedFields(rec *models.DieselConsumptionRecord) {
	rec.DistanceTravelled = nil
	rec.KmPerLitre = nil
	if rec.PreviousKmReading != nil {
		d := rec.KmReading - *rec.PreviousKmReading
		if d > 0 {
			rec.DistanceTravelled = &d
			if rec.LitresFilled > 0 {
				kpl := d / rec.LitresFilled
				rec.KmPerLitre = &kpl
			}
		}
	}
	if rec.CostPerLitre == 0 && rec.LitresFilled > 0 {
		rec.CostPerLitre = rec.TotalCost / rec.LitresFilled
	}
}

// NormForFleet returns the configured efficiency norm for a fleet number,
// or the fallback norm when none is configured.
func NormForFleet(norms []models.DieselNorm, fleetNumber string) models.DieselNorm {
	for _, n := range norms {
		if n.FleetNumber == fleetNumber {
			return n
		}
	}
	return models.DieselNorm{
		FleetNumber:         fleetNumber,
		ExpectedKmPerLitre:  models.DefaultExpectedKmPerLitre,
		TolerancePercentage: models.DefaultTolerancePercentage,
	}
}

// EnhancedDieselRecord is a diesel record together with its efficiency
// classification against the fleet norm.
type EnhancedDieselRecord struct {
	models.DieselConsumptionRecord

	CostPerKm          *float64                 `json:"costPerKm,omitempty"`
	ExpectedKmPerLitre float64                  `json:"expectedKmPerLitre"`
	EfficiencyVariance float64                  `json:"efficiencyVariance"`
	PerformanceStatus  models.PerformanceStatus `json:"performanceStatus"`
	RequiresDebrief    bool                     `json:"requiresDebrief"`
	ToleranceRange     float64                  `json:"toleranceRange"`
}

// EnhanceDieselRecord classifies a record against the norms. Records with
// no usable distance read as normal; there is nothing to judge.
func EnhanceDieselRecord(rec models.DieselConsumptionRecord, norms []models.DieselNorm) EnhancedDieselRecord {
	norm := NormForFleet(norms, rec.FleetNumber)
	out := EnhancedDieselRecord{
		DieselConsumptionRecord: rec,
		ExpectedKmPerLitre:      norm.ExpectedKmPerLitre,
		PerformanceStatus:       models.PerformanceNormal,
		ToleranceRange:          norm.TolerancePercentage,
	}
	if rec.DistanceTravelled != nil && *rec.DistanceTravelled > 0 {
		cpk := rec.TotalCost / *rec.DistanceTravelled
		out.CostPerKm = &cpk
	}
	if rec.KmPerLitre == nil || norm.ExpectedKmPerLitre == 0 {
		return out
	}
	out.EfficiencyVariance = (*rec.KmPerLitre - norm.ExpectedKmPerLitre) / norm.ExpectedKmPerLitre * 100
	switch {
	case out.EfficiencyVariance < -norm.TolerancePercentage:
		out.PerformanceStatus = models.PerformancePoor
	case out.EfficiencyVariance > norm.TolerancePercentage:
		out.PerformanceStatus = models.PerformanceExcellent
	}
	out.RequiresDebrief = math.Abs(out.EfficiencyVariance) > norm.TolerancePercentage
	return out
}

// EnhanceDieselRecords classifies a batch against the norms.
func EnhanceDieselRecords(recs []models.DieselConsumptionRecord, norms []models.DieselNorm) []EnhancedDieselRecord {
	out := make([]EnhancedDieselRecord, 0, len(recs))
	for _, r := range recs {
		out = append(out, EnhanceDieselRecord(r, norms))
	}
	return out
}

// DieselFleetSummary aggregates fuel spend and efficiency across a set of
// enhanced records.
type DieselFleetSummary struct {
	TotalRecords            int     `json:"totalRecords"`
	TotalLitres             float64 `json:"totalLitres"`
	TotalCost               float64 `json:"totalCost"`
	TotalDistance           float64 `json:"totalDistance"`
	AvgKmPerLitre           float64 `json:"avgKmPerLitre"`
	AvgCostPerLitre         float64 `json:"avgCostPerLitre"`
	RecordsRequiringDebrief int     `json:"recordsRequiringDebrief"`
	PoorPerformanceRecords  int     `json:"poorPerformanceRecords"`
	ExcellentRecords        int     `json:"excellentRecords"`
}

// SummarizeDieselRecords rolls a batch of enhanced records up into fleet
// totals. The average km/L is distance-weighted over the records that have
// a distance, not a mean of per-record ratios.
func SummarizeDieselRecords(recs []EnhancedDieselRecord) DieselFleetSummary {
	s := DieselFleetSummary{TotalRecords: len(recs)}
	var litresWithDistance float64
	for _, r := range recs {
		s.TotalLitres += r.LitresFilled
		s.TotalCost += r.TotalCost
		if r.DistanceTravelled != nil {
			s.TotalDistance += *r.DistanceTravelled
			litresWithDistance += r.LitresFilled
		}
		if r.RequiresDebrief {
			s.RecordsRequiringDebrief++
		}
		switch r.PerformanceStatus {
		case models.PerformancePoor:
			s.PoorPerformanceRecords++
		case models.PerformanceExcellent:
			s.ExcellentRecords++
		}
	}
	if litresWithDistance > 0 {
		s.AvgKmPerLitre = s.TotalDistance / litresWithDistance
	}
	if s.TotalLitres > 0 {
		s.AvgCostPerLitre = s.TotalCost / s.TotalLitres
	}
	return s
}
