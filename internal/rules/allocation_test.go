package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heinrichnel/fleetops/internal/models"
)

func dieselCostsOn(trip models.Trip, dieselID string) []models.CostEntry {
	var out []models.CostEntry
	for _, c := range trip.Costs {
		if isDieselCostFor(c, dieselID) {
			out = append(out, c)
		}
	}
	return out
}

func TestAllocateDieselToTrip(t *testing.T) {
	stores := newFakeStores()
	e := newTestEngine(stores)
	stores.trips["T1"] = models.Trip{ID: "T1", FleetNumber: "6H", Status: models.TripActive}
	stores.diesel["D1"] = models.DieselConsumptionRecord{
		ID:           "D1",
		FleetNumber:  "6H",
		FuelStation:  "RAM Petroleum Harare",
		LitresFilled: 450,
		KmReading:    125000,
		TotalCost:    8325,
	}

	res, err := e.AllocateDieselToTrip(context.Background(), stores.snapshot(), "D1", "T1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)

	trip := stores.trips["T1"]
	costs := dieselCostsOn(trip, "D1")
	require.Len(t, costs, 1)
	c := costs[0]
	assert.Equal(t, DieselCostCategory, c.Category)
	assert.Equal(t, "RAM Petroleum Harare - 6H", c.SubCategory)
	assert.Equal(t, 8325.0, c.Amount)
	assert.Equal(t, models.CurrencyZAR, c.Currency)
	assert.Equal(t, "FUEL-D1", c.ReferenceNumber)
	assert.True(t, c.IsSystemGenerated)
	assert.Equal(t, models.OriginDieselDerived, c.Origin.Kind)
	assert.Equal(t, "D1", c.Origin.DieselRecordID)

	assert.Equal(t, "T1", stores.diesel["D1"].TripID)
}

func TestAllocateDieselIsIdempotent(t *testing.T) {
	stores := newFakeStores()
	e := newTestEngine(stores)
	stores.trips["T1"] = models.Trip{ID: "T1", Status: models.TripActive}
	stores.diesel["D1"] = models.DieselConsumptionRecord{ID: "D1", TotalCost: 5000}

	for i := 0; i < 3; i++ {
		_, err := e.AllocateDieselToTrip(context.Background(), stores.snapshot(), "D1", "T1")
		require.NoError(t, err)
	}
	assert.Len(t, dieselCostsOn(stores.trips["T1"], "D1"), 1)
}

func TestReallocateDieselMovesCost(t *testing.T) {
	stores := newFakeStores()
	e := newTestEngine(stores)
	stores.trips["T1"] = models.Trip{ID: "T1", Status: models.TripActive}
	stores.trips["T2"] = models.Trip{ID: "T2", Status: models.TripActive}
	stores.diesel["D1"] = models.DieselConsumptionRecord{ID: "D1", TotalCost: 5000}

	_, err := e.AllocateDieselToTrip(context.Background(), stores.snapshot(), "D1", "T1")
	require.NoError(t, err)
	_, err = e.AllocateDieselToTrip(context.Background(), stores.snapshot(), "D1", "T2")
	require.NoError(t, err)

	assert.Empty(t, dieselCostsOn(stores.trips["T1"], "D1"))
	assert.Len(t, dieselCostsOn(stores.trips["T2"], "D1"), 1)
	assert.Equal(t, "T2", stores.diesel["D1"].TripID)
}

func TestRemoveDieselFromTrip(t *testing.T) {
	stores := newFakeStores()
	e := newTestEngine(stores)
	stores.trips["T1"] = models.Trip{ID: "T1", Status: models.TripActive}
	stores.diesel["D1"] = models.DieselConsumptionRecord{ID: "D1", TotalCost: 5000}

	_, err := e.AllocateDieselToTrip(context.Background(), stores.snapshot(), "D1", "T1")
	require.NoError(t, err)

	res, err := e.RemoveDieselFromTrip(context.Background(), stores.snapshot(), "D1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Empty(t, dieselCostsOn(stores.trips["T1"], "D1"))
	assert.Equal(t, "", stores.diesel["D1"].TripID)
}

func TestAllocateDieselStaleRefs(t *testing.T) {
	stores := newFakeStores()
	e := newTestEngine(stores)
	stores.trips["T1"] = models.Trip{ID: "T1"}

	res, err := e.AllocateDieselToTrip(context.Background(), stores.snapshot(), "nope", "T1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, res.Outcome)

	stores.diesel["D1"] = models.DieselConsumptionRecord{ID: "D1"}
	res, err = e.AllocateDieselToTrip(context.Background(), stores.snapshot(), "D1", "nope")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, res.Outcome)
}

func TestAddDieselRecordWithTripLink(t *testing.T) {
	stores := newFakeStores()
	e := newTestEngine(stores)
	stores.trips["T1"] = models.Trip{ID: "T1", Status: models.TripActive}

	prev := 123560.0
	res, err := e.AddDieselRecord(context.Background(), stores.snapshot(), models.DieselConsumptionRecord{
		FleetNumber:       "6H",
		TripID:            "T1",
		KmReading:         125000,
		PreviousKmReading: &prev,
		LitresFilled:      450,
		TotalCost:         8325,
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)

	rec := stores.diesel[res.ID]
	require.NotNil(t, rec.DistanceTravelled)
	assert.InDelta(t, 1440, *rec.DistanceTravelled, 0.001)
	require.NotNil(t, rec.KmPerLitre)
	assert.InDelta(t, 3.2, *rec.KmPerLitre, 0.001)

	assert.Len(t, dieselCostsOn(stores.trips["T1"], rec.ID), 1)
}

func TestDeleteDieselRecordStripsCost(t *testing.T) {
	stores := newFakeStores()
	e := newTestEngine(stores)
	stores.trips["T1"] = models.Trip{ID: "T1", Status: models.TripActive}
	stores.diesel["D1"] = models.DieselConsumptionRecord{ID: "D1", TotalCost: 5000}

	_, err := e.AllocateDieselToTrip(context.Background(), stores.snapshot(), "D1", "T1")
	require.NoError(t, err)

	res, err := e.DeleteDieselRecord(context.Background(), stores.snapshot(), "D1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Empty(t, dieselCostsOn(stores.trips["T1"], "D1"))
	_, exists := stores.diesel["D1"]
	assert.False(t, exists)
}

func TestUpdateDieselDebrief(t *testing.T) {
	stores := newFakeStores()
	e := newTestEngine(stores)
	stores.diesel["D1"] = models.DieselConsumptionRecord{ID: "D1"}

	res, err := e.UpdateDieselDebrief(context.Background(), stores.snapshot(), "D1", DebriefUpdate{
		Notes:    "Driver confirmed detour via Chirundu",
		SignedBy: "Fleet Manager",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)

	rec := stores.diesel["D1"]
	require.NotNil(t, rec.DebriefDate)
	assert.Equal(t, "Driver confirmed detour via Chirundu", rec.DebriefNotes)
	assert.Equal(t, "Fleet Manager", rec.DebriefSignedBy)
	require.NotNil(t, rec.DebriefSignedAt)
}
