package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heinrichnel/fleetops/internal/models"
)

func TestGenerateCurrencyFleetReport(t *testing.T) {
	trips := []models.Trip{
		{
			Status:          models.TripActive,
			ClientType:      models.ClientExternal,
			DriverName:      "Enock Mukonyerwa",
			BaseRevenue:     40000,
			RevenueCurrency: models.CurrencyZAR,
			Costs:           []models.CostEntry{{Amount: 10000}},
		},
		{
			Status:          models.TripCompleted,
			ClientType:      models.ClientInternal,
			DriverName:      "Jonathan Bepete",
			BaseRevenue:     20000,
			RevenueCurrency: models.CurrencyZAR,
			Costs: []models.CostEntry{
				{Amount: 5000, IsFlagged: true, InvestigationStatus: models.InvestigationPending},
			},
		},
		{
			Status:          models.TripActive,
			BaseRevenue:     9000,
			RevenueCurrency: models.CurrencyUSD,
		},
	}

	r := GenerateCurrencyFleetReport(trips, models.CurrencyZAR)

	assert.Equal(t, models.CurrencyZAR, r.Currency)
	assert.Equal(t, 2, r.TotalTrips)
	assert.Equal(t, 1, r.ActiveTrips)
	assert.Equal(t, 1, r.CompletedTrips)
	assert.Equal(t, 60000.0, r.TotalRevenue)
	assert.Equal(t, 15000.0, r.TotalExpenses)
	assert.Equal(t, 45000.0, r.NetProfit)
	assert.InDelta(t, 75, r.ProfitMargin, 0.001)
	assert.Equal(t, 30000.0, r.AvgRevenuePerTrip)

	assert.Equal(t, 1, r.InternalTrips)
	assert.Equal(t, 1, r.ExternalTrips)
	assert.Equal(t, 20000.0, r.InternalRevenue)
	assert.InDelta(t, 75, r.InternalProfitMargin, 0.001)
	assert.Equal(t, 40000.0, r.ExternalRevenue)

	assert.Equal(t, 1, r.TotalFlags)
	assert.Equal(t, 1, r.UnresolvedFlags)
	assert.Equal(t, 1, r.TripsWithInvestigations)
	assert.InDelta(t, 50, r.InvestigationRate, 0.001)
	assert.InDelta(t, 0.5, r.AvgFlagsPerTrip, 0.001)

	require.Contains(t, r.DriverStats, "Jonathan Bepete")
	ds := r.DriverStats["Jonathan Bepete"]
	assert.Equal(t, 1, ds.Trips)
	assert.Equal(t, 20000.0, ds.Revenue)
	assert.Equal(t, 1, ds.Flags)
	assert.Equal(t, 1, ds.InternalTrips)
}

func TestAvgResolutionDays(t *testing.T) {
	flaggedAt := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	resolvedAt := flaggedAt.Add(4 * 24 * time.Hour)
	trips := []models.Trip{{
		RevenueCurrency: models.CurrencyZAR,
		Costs: []models.CostEntry{
			{
				IsFlagged:           true,
				InvestigationStatus: models.InvestigationResolved,
				FlaggedAt:           &flaggedAt,
				ResolvedAt:          &resolvedAt,
			},
			// no timestamps, counts as the fallback 3 days
			{IsFlagged: true, InvestigationStatus: models.InvestigationResolved},
		},
	}}

	r := GenerateCurrencyFleetReport(trips, models.CurrencyZAR)
	assert.InDelta(t, 3.5, r.AvgResolutionDays, 0.001)
}

func TestAllFlaggedCostsOrdering(t *testing.T) {
	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	trips := []models.Trip{
		{
			FleetNumber: "6H",
			Route:       "JHB - Harare",
			Costs: []models.CostEntry{
				{ID: "resolved-old", IsFlagged: true, InvestigationStatus: models.InvestigationResolved, FlaggedAt: &old},
				{ID: "pending-old", IsFlagged: true, InvestigationStatus: models.InvestigationPending, FlaggedAt: &old},
				{ID: "not flagged"},
			},
		},
		{
			FleetNumber: "26H",
			Costs: []models.CostEntry{
				{ID: "pending-recent", IsFlagged: true, InvestigationStatus: models.InvestigationPending, FlaggedAt: &recent},
			},
		},
	}

	flagged := AllFlaggedCosts(trips)
	require.Len(t, flagged, 3)
	assert.Equal(t, "pending-recent", flagged[0].ID)
	assert.Equal(t, "pending-old", flagged[1].ID)
	assert.Equal(t, "resolved-old", flagged[2].ID)
	assert.Equal(t, "26H", flagged[0].TripFleetNumber)
	assert.Equal(t, "JHB - Harare", flagged[1].TripRoute)
}
