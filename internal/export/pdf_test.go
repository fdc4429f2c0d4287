package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heinrichnel/fleetops/internal/metrics"
	"github.com/heinrichnel/fleetops/internal/models"
)

func TestTripReportPDF(t *testing.T) {
	trip := models.Trip{
		FleetNumber:     "6H",
		Route:           "JHB - Harare",
		ClientName:      "Teralco",
		ClientType:      models.ClientExternal,
		DriverName:      "Enock Mukonyerwa",
		Status:          models.TripCompleted,
		BaseRevenue:     45000,
		RevenueCurrency: models.CurrencyZAR,
		StartDate:       time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
		Costs: []models.CostEntry{
			{Category: "Diesel", Amount: 8325},
			{Category: "Tolls", Amount: 675, IsFlagged: true},
		},
	}

	pdf, filename, err := TripReportPDF(trip, metrics.GenerateTripReport(trip))
	require.NoError(t, err)
	assert.Equal(t, "Trip_Report_6H_2025-02-01.pdf", filename)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
