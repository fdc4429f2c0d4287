package metrics

import (
	"math"
	"sort"

	"github.com/heinrichnel/fleetops/internal/models"
)

// AdditionalCostsCategory is the pseudo-category additional costs fold into
// in the per-trip cost breakdown.
const AdditionalCostsCategory = "Additional Costs"

// CostBreakdownItem is one category's slice of a trip's total expenses.
type CostBreakdownItem struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TripReport is the full per-trip report: KPIs plus a category breakdown,
// documentation gaps and a compliance score.
type TripReport struct {
	TripKPIs
	CostBreakdown   []CostBreakdownItem `json:"costBreakdown"`
	HasAttachments  bool                `json:"hasAttachments"`
	MissingReceipts []models.CostEntry  `json:"missingReceipts"`
	FlaggedCosts    []models.CostEntry  `json:"flaggedCosts"`
	ComplianceScore float64             `json:"complianceScore"`
}

// GenerateTripReport wraps CalculateKPIs with a cost breakdown by category
// (descending by total), the cost entries lacking receipts, the flagged
// entries, and the compliance score.
func GenerateTripReport(trip models.Trip) TripReport {
	kpis := CalculateKPIs(trip)

	index := map[string]int{}
	var breakdown []CostBreakdownItem
	add := func(category string, amount float64) {
		i, ok := index[category]
		if !ok {
			i = len(breakdown)
			index[category] = i
			breakdown = append(breakdown, CostBreakdownItem{Category: category})
		}
		breakdown[i].Total += amount
		breakdown[i].Count++
	}
	for _, cost := range trip.Costs {
		add(cost.Category, cost.Amount)
	}
	for _, cost := range trip.AdditionalCosts {
		add(AdditionalCostsCategory, cost.Amount)
	}

	for i := range breakdown {
		if kpis.TotalExpenses > 0 {
			breakdown[i].Percentage = breakdown[i].Total / kpis.TotalExpenses * 100
		}
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Total > breakdown[j].Total
	})

	var missing, flagged []models.CostEntry
	hasAttachments := false
	for _, cost := range trip.Costs {
		if len(cost.Attachments) > 0 {
			hasAttachments = true
		} else {
			missing = append(missing, cost)
		}
		if cost.IsFlagged {
			flagged = append(flagged, cost)
		}
	}

	return TripReport{
		TripKPIs:        kpis,
		CostBreakdown:   breakdown,
		HasAttachments:  hasAttachments,
		MissingReceipts: missing,
		FlaggedCosts:    flagged,
		ComplianceScore: ComplianceScore(trip),
	}
}

// ComplianceScore grades a trip out of 100. Late arrival against plan costs
// 20/10/5 points for deviations over 4h/2h/1h (widest band only); delay
// reasons cost 2 points per hour capped at 30; undocumented cost entries
// cost 5 points each capped at 20. Clamped to [0, 100].
func ComplianceScore(trip models.Trip) float64 {
	score := 100.0

	if trip.PlannedArrival != nil && trip.ActualArrival != nil {
		diffHours := math.Abs(trip.ActualArrival.Sub(*trip.PlannedArrival).Hours())
		switch {
		case diffHours > 4:
			score -= 20
		case diffHours > 2:
			score -= 10
		case diffHours > 1:
			score -= 5
		}
	}

	if len(trip.DelayReasons) > 0 {
		var totalDelayHours float64
		for _, delay := range trip.DelayReasons {
			totalDelayHours += delay.DelayDuration
		}
		score -= math.Min(30, totalDelayHours*2)
	}

	costsWithoutDocs := 0
	for _, cost := range trip.Costs {
		if len(cost.Attachments) == 0 {
			costsWithoutDocs++
		}
	}
	if costsWithoutDocs > 0 {
		score -= math.Min(20, float64(costsWithoutDocs)*5)
	}

	return math.Max(0, math.Min(100, score))
}
