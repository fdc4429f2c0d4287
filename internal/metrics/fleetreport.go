package metrics

import (
	"sort"
	"time"

	"github.com/heinrichnel/fleetops/internal/models"
)

// Resolution pairs missing a flagged/resolved timestamp count as this many
// days in the average.
const fallbackResolutionDays = 3.0

// DriverStats aggregates one driver's numbers inside a currency report.
type DriverStats struct {
	Trips         int     `json:"trips"`
	Revenue       float64 `json:"revenue"`
	Expenses      float64 `json:"expenses"`
	Flags         int     `json:"flags"`
	InternalTrips int     `json:"internalTrips"`
	ExternalTrips int     `json:"externalTrips"`
}

// FleetReport is the per-currency fleet performance summary.
type FleetReport struct {
	Currency models.Currency `json:"currency"`

	TotalTrips     int `json:"totalTrips"`
	ActiveTrips    int `json:"activeTrips"`
	CompletedTrips int `json:"completedTrips"`

	TotalRevenue  float64 `json:"totalRevenue"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"`
	ProfitMargin  float64 `json:"profitMargin"`

	AvgRevenuePerTrip float64 `json:"avgRevenuePerTrip"`
	AvgCostPerTrip    float64 `json:"avgCostPerTrip"`

	InternalTrips        int     `json:"internalTrips"`
	ExternalTrips        int     `json:"externalTrips"`
	InternalRevenue      float64 `json:"internalRevenue"`
	InternalProfitMargin float64 `json:"internalProfitMargin"`
	ExternalRevenue      float64 `json:"externalRevenue"`
	ExternalProfitMargin float64 `json:"externalProfitMargin"`

	TotalFlags              int     `json:"totalFlags"`
	UnresolvedFlags         int     `json:"unresolvedFlags"`
	TripsWithInvestigations int     `json:"tripsWithInvestigations"`
	InvestigationRate       float64 `json:"investigationRate"`
	AvgFlagsPerTrip         float64 `json:"avgFlagsPerTrip"`
	AvgResolutionDays       float64 `json:"avgResolutionDays"`

	DriverStats map[string]*DriverStats `json:"driverStats"`
}

func tripExpenses(trip models.Trip) float64 {
	return TotalCosts(trip.Costs) + TotalAdditionalCosts(trip.AdditionalCosts)
}

func margin(revenue, expenses float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return (revenue - expenses) / revenue * 100
}

// GenerateCurrencyFleetReport aggregates trips whose revenue currency
// matches into a fleet performance report: totals, client-type breakdown,
// investigation metrics and per-driver statistics.
func GenerateCurrencyFleetReport(trips []models.Trip, currency models.Currency) FleetReport {
	currencyTrips := FilterTripsByCurrency(trips, currency)

	r := FleetReport{
		Currency:    currency,
		TotalTrips:  len(currencyTrips),
		DriverStats: map[string]*DriverStats{},
	}

	var internalRevenue, internalExpenses float64
	var externalRevenue, externalExpenses float64

	for _, trip := range currencyTrips {
		switch trip.Status {
		case models.TripActive:
			r.ActiveTrips++
		case models.TripCompleted:
			r.CompletedTrips++
		}

		expenses := tripExpenses(trip)
		r.TotalRevenue += trip.BaseRevenue
		r.TotalExpenses += expenses

		if trip.ClientType == models.ClientInternal {
			r.InternalTrips++
			internalRevenue += trip.BaseRevenue
			internalExpenses += expenses
		} else {
			r.ExternalTrips++
			externalRevenue += trip.BaseRevenue
			externalExpenses += expenses
		}

		ds := r.DriverStats[trip.DriverName]
		if ds == nil {
			ds = &DriverStats{}
			r.DriverStats[trip.DriverName] = ds
		}
		ds.Trips++
		ds.Revenue += trip.BaseRevenue
		ds.Expenses += expenses
		ds.Flags += FlaggedCount(trip.Costs)
		if trip.ClientType == models.ClientInternal {
			ds.InternalTrips++
		} else {
			ds.ExternalTrips++
		}
	}

	r.NetProfit = r.TotalRevenue - r.TotalExpenses
	r.ProfitMargin = margin(r.TotalRevenue, r.TotalExpenses)
	r.InternalRevenue = internalRevenue
	r.InternalProfitMargin = margin(internalRevenue, internalExpenses)
	r.ExternalRevenue = externalRevenue
	r.ExternalProfitMargin = margin(externalRevenue, externalExpenses)

	if r.TotalTrips > 0 {
		r.AvgRevenuePerTrip = r.TotalRevenue / float64(r.TotalTrips)
		r.AvgCostPerTrip = r.TotalExpenses / float64(r.TotalTrips)
	}

	// Investigation metrics.
	var resolvedCount int
	var resolutionDays float64
	for _, trip := range currencyTrips {
		flagged := FlaggedCount(trip.Costs)
		if flagged > 0 {
			r.TripsWithInvestigations++
		}
		r.TotalFlags += flagged
		r.UnresolvedFlags += UnresolvedFlagCount(trip.Costs)

		for _, cost := range trip.Costs {
			if !cost.IsFlagged || cost.InvestigationStatus != models.InvestigationResolved {
				continue
			}
			resolvedCount++
			if cost.FlaggedAt != nil && cost.ResolvedAt != nil {
				resolutionDays += cost.ResolvedAt.Sub(*cost.FlaggedAt).Hours() / 24
			} else {
				resolutionDays += fallbackResolutionDays
			}
		}
	}
	if r.TotalTrips > 0 {
		r.InvestigationRate = float64(r.TripsWithInvestigations) / float64(r.TotalTrips) * 100
		r.AvgFlagsPerTrip = float64(r.TotalFlags) / float64(r.TotalTrips)
	}
	if resolvedCount > 0 {
		r.AvgResolutionDays = resolutionDays / float64(resolvedCount)
	}

	return r
}

// FlaggedCost is a cost entry annotated with its trip context, for the
// cross-trip investigations view.
type FlaggedCost struct {
	models.CostEntry
	TripFleetNumber string `json:"tripFleetNumber"`
	TripRoute       string `json:"tripRoute"`
	TripDriverName  string `json:"tripDriverName"`
}

// AllFlaggedCosts gathers every flagged cost entry across trips, pending
// investigations first, then newest flag first.
func AllFlaggedCosts(trips []models.Trip) []FlaggedCost {
	var flagged []FlaggedCost
	for _, trip := range trips {
		for _, cost := range trip.Costs {
			if cost.IsFlagged {
				flagged = append(flagged, FlaggedCost{
					CostEntry:       cost,
					TripFleetNumber: trip.FleetNumber,
					TripRoute:       trip.Route,
					TripDriverName:  trip.DriverName,
				})
			}
		}
	}
	sortFlagged(flagged)
	return flagged
}

func sortFlagged(flagged []FlaggedCost) {
	flagTime := func(fc FlaggedCost) time.Time {
		if fc.FlaggedAt != nil {
			return *fc.FlaggedAt
		}
		return fc.Date
	}
	sort.SliceStable(flagged, func(i, j int) bool {
		a, b := flagged[i], flagged[j]
		aPending := a.InvestigationStatus == models.InvestigationPending
		bPending := b.InvestigationStatus == models.InvestigationPending
		if aPending != bPending {
			return aPending
		}
		return flagTime(a).After(flagTime(b))
	})
}
