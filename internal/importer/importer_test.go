package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heinrichnel/fleetops/internal/models"
)

func TestParseTrips(t *testing.T) {
	csv := "fleetNumber,route,clientName,baseRevenue,revenueCurrency,startDate,endDate,driverName,clientType,distanceKm\n" +
		"6H,JHB - Harare,Teralco,45000,USD,2025-02-01,2025-02-05,Enock Mukonyerwa,internal,1200\n" +
		"26H,Harare - Lusaka,Makandi,30000,,2025-02-03,,Jonathan Bepete,,\n"

	trips, err := ParseTrips(csv)
	require.NoError(t, err)
	require.Len(t, trips, 2)

	first := trips[0]
	assert.Equal(t, "6H", first.FleetNumber)
	assert.Equal(t, "JHB - Harare", first.Route)
	assert.Equal(t, "Teralco", first.ClientName)
	assert.Equal(t, 45000.0, first.BaseRevenue)
	assert.Equal(t, models.CurrencyUSD, first.RevenueCurrency)
	assert.Equal(t, models.ClientInternal, first.ClientType)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), first.StartDate)
	require.NotNil(t, first.DistanceKm)
	assert.Equal(t, 1200.0, *first.DistanceKm)

	second := trips[1]
	assert.Equal(t, models.CurrencyZAR, second.RevenueCurrency, "currency defaults to ZAR")
	assert.Equal(t, models.ClientExternal, second.ClientType, "client type defaults to external")
	assert.True(t, second.EndDate.IsZero())
	assert.Nil(t, second.DistanceKm)
}

func TestParseTripsAliases(t *testing.T) {
	csv := "fleet,client,revenue,currency,driver,distance\n" +
		"22H,City Logistics,15000,ZAR,Lovemore Qochiwe,800\n"

	trips, err := ParseTrips(csv)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "22H", trips[0].FleetNumber)
	assert.Equal(t, "City Logistics", trips[0].ClientName)
	assert.Equal(t, 15000.0, trips[0].BaseRevenue)
	assert.Equal(t, "Lovemore Qochiwe", trips[0].DriverName)
	require.NotNil(t, trips[0].DistanceKm)
	assert.Equal(t, 800.0, *trips[0].DistanceKm)
}

func TestParseTripsShortRows(t *testing.T) {
	csv := "fleetNumber,route,clientName,baseRevenue\n6H,JHB - Durban\n"

	trips, err := ParseTrips(csv)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "", trips[0].ClientName)
	assert.Equal(t, 0.0, trips[0].BaseRevenue)
}

func TestParseTripsLeadingBlankLines(t *testing.T) {
	csv := "\n\nfleetNumber,route,clientName\n6H,JHB - Durban,Teralco\n"

	trips, err := ParseTrips(csv)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "6H", trips[0].FleetNumber)
	assert.Equal(t, "Teralco", trips[0].ClientName)
}

func TestParseTripsEmpty(t *testing.T) {
	_, err := ParseTrips("fleetNumber,route\n\n")
	assert.ErrorIs(t, err, ErrEmptyCSV)

	_, err = ParseTrips("")
	assert.ErrorIs(t, err, ErrEmptyCSV)
}

func TestParseDieselRecords(t *testing.T) {
	csv := "fleetNumber,date,kmReading,previousKmReading,litresFilled,costPerLitre,totalCost,fuelStation,driverName,notes\n" +
		"6H,2025-01-15,125000,123560,450,18.50,8325,RAM Petroleum Harare,Enock Mukonyerwa,Full tank\n"

	recs, err := ParseDieselRecords(csv)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "6H", rec.FleetNumber)
	assert.Equal(t, 125000.0, rec.KmReading)
	require.NotNil(t, rec.PreviousKmReading)
	assert.Equal(t, 123560.0, *rec.PreviousKmReading)
	assert.Equal(t, 450.0, rec.LitresFilled)
	assert.Equal(t, 18.50, rec.CostPerLitre)
	assert.Equal(t, 8325.0, rec.TotalCost)
	assert.Equal(t, "RAM Petroleum Harare", rec.FuelStation)
	assert.Equal(t, "Full tank", rec.Notes)
	// derived fields are the rule engine's job
	assert.Nil(t, rec.DistanceTravelled)
	assert.Nil(t, rec.KmPerLitre)
}

func TestParseDieselAliases(t *testing.T) {
	csv := "fleet,km,previousKm,litres,pricePerLitre,cost,station\n" +
		"26H,89000,87670,380,19.20,7296,Engen Beitbridge\n"

	recs, err := ParseDieselRecords(csv)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "26H", recs[0].FleetNumber)
	assert.Equal(t, 89000.0, recs[0].KmReading)
	require.NotNil(t, recs[0].PreviousKmReading)
	assert.Equal(t, 380.0, recs[0].LitresFilled)
	assert.Equal(t, "Engen Beitbridge", recs[0].FuelStation)
}

func TestDieselTemplateParses(t *testing.T) {
	recs, err := ParseDieselRecords(DieselTemplate)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "6H", recs[0].FleetNumber)
	assert.Equal(t, "26H", recs[1].FleetNumber)
	assert.Equal(t, "22H", recs[2].FleetNumber)
	require.NotNil(t, recs[0].PreviousKmReading)
	assert.Equal(t, 123560.0, *recs[0].PreviousKmReading)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), recs[0].Date)
}
