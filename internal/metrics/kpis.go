// Package metrics computes reporting values from entity collections already
// held in memory. Every function here is pure: no I/O, no mutation, no
// hidden state. Callers pass the latest snapshot and get deterministic
// output.
package metrics

import (
	"time"

	"github.com/heinrichnel/fleetops/internal/models"
)

// TripKPIs are the headline numbers for a single trip.
//
// Amounts are summed regardless of each entry's currency field; costs in
// both currencies land in one total. That mirrors how operations reads the
// numbers today and is tracked as an open product question, not fixed here.
type TripKPIs struct {
	TotalRevenue  float64         `json:"totalRevenue"`
	TotalExpenses float64         `json:"totalExpenses"`
	NetProfit     float64         `json:"netProfit"`
	ProfitMargin  float64         `json:"profitMargin"`
	CostPerKm     float64         `json:"costPerKm"`
	Currency      models.Currency `json:"currency"`
}

// TotalCosts sums cost entry amounts.
func TotalCosts(costs []models.CostEntry) float64 {
	var sum float64
	for _, c := range costs {
		sum += c.Amount
	}
	return sum
}

// TotalAdditionalCosts sums additional cost amounts.
func TotalAdditionalCosts(costs []models.AdditionalCost) float64 {
	var sum float64
	for _, c := range costs {
		sum += c.Amount
	}
	return sum
}

// CalculateKPIs computes revenue, expense, margin and cost-per-km figures
// for one trip. Margin is 0 when revenue is 0; cost/km is 0 without a
// positive distance.
func CalculateKPIs(trip models.Trip) TripKPIs {
	totalRevenue := trip.BaseRevenue
	totalExpenses := TotalCosts(trip.Costs) + TotalAdditionalCosts(trip.AdditionalCosts)
	netProfit := totalRevenue - totalExpenses

	var profitMargin float64
	if totalRevenue > 0 {
		profitMargin = netProfit / totalRevenue * 100
	}

	var costPerKm float64
	if trip.DistanceKm != nil && *trip.DistanceKm > 0 {
		costPerKm = totalExpenses / *trip.DistanceKm
	}

	return TripKPIs{
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetProfit:     netProfit,
		ProfitMargin:  profitMargin,
		CostPerKm:     costPerKm,
		Currency:      trip.RevenueCurrency,
	}
}

// FlaggedCount counts flagged cost entries.
func FlaggedCount(costs []models.CostEntry) int {
	n := 0
	for _, c := range costs {
		if c.IsFlagged {
			n++
		}
	}
	return n
}

// UnresolvedFlagCount counts flagged cost entries whose investigation is
// still open.
func UnresolvedFlagCount(costs []models.CostEntry) int {
	n := 0
	for _, c := range costs {
		if c.IsFlagged && c.InvestigationStatus != models.InvestigationResolved {
			n++
		}
	}
	return n
}

// CanCompleteTrip reports whether a trip has no open investigations blocking
// completion.
func CanCompleteTrip(trip models.Trip) bool {
	return UnresolvedFlagCount(trip.Costs) == 0
}

// FilterTripsByCurrency keeps trips whose revenue currency matches.
func FilterTripsByCurrency(trips []models.Trip, currency models.Currency) []models.Trip {
	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if t.RevenueCurrency == currency {
			out = append(out, t)
		}
	}
	return out
}

// FilterTripsByClient keeps trips for one client. Empty client means all.
func FilterTripsByClient(trips []models.Trip, client string) []models.Trip {
	if client == "" {
		return trips
	}
	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if t.ClientName == client {
			out = append(out, t)
		}
	}
	return out
}

// FilterTripsByDateRange keeps trips whose start date falls in [from, to].
// A zero from or to leaves that side of the range open.
func FilterTripsByDateRange(trips []models.Trip, from, to time.Time) []models.Trip {
	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if !from.IsZero() && t.StartDate.Before(from) {
			continue
		}
		if !to.IsZero() && t.StartDate.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterTripsByDriver keeps trips for one driver. Empty driver means all.
func FilterTripsByDriver(trips []models.Trip, driver string) []models.Trip {
	if driver == "" {
		return trips
	}
	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if t.DriverName == driver {
			out = append(out, t)
		}
	}
	return out
}
