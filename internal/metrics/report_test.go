package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heinrichnel/fleetops/internal/models"
)

func TestGenerateTripReportBreakdown(t *testing.T) {
	trip := models.Trip{
		BaseRevenue: 20000,
		Costs: []models.CostEntry{
			{Category: "Diesel", Amount: 6000, Attachments: []models.Attachment{{ID: "A1"}}},
			{Category: "Diesel", Amount: 2000},
			{Category: "Tolls", Amount: 1000},
		},
		AdditionalCosts: []models.AdditionalCost{{Amount: 1000}},
	}

	report := GenerateTripReport(trip)
	require.Len(t, report.CostBreakdown, 3)

	// descending by total
	assert.Equal(t, "Diesel", report.CostBreakdown[0].Category)
	assert.Equal(t, 8000.0, report.CostBreakdown[0].Total)
	assert.Equal(t, 2, report.CostBreakdown[0].Count)
	assert.InDelta(t, 80, report.CostBreakdown[0].Percentage, 0.001)

	assert.Equal(t, "Tolls", report.CostBreakdown[1].Category)
	assert.Equal(t, AdditionalCostsCategory, report.CostBreakdown[2].Category)
	assert.InDelta(t, 10, report.CostBreakdown[2].Percentage, 0.001)

	assert.True(t, report.HasAttachments)
	require.Len(t, report.MissingReceipts, 2)
}

func TestGenerateTripReportFlagged(t *testing.T) {
	trip := models.Trip{
		Costs: []models.CostEntry{
			{ID: "C1", IsFlagged: true},
			{ID: "C2"},
		},
	}
	report := GenerateTripReport(trip)
	require.Len(t, report.FlaggedCosts, 1)
	assert.Equal(t, "C1", report.FlaggedCosts[0].ID)
}

func TestComplianceScore(t *testing.T) {
	planned := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	at := func(h float64) *time.Time {
		v := planned.Add(time.Duration(h * float64(time.Hour)))
		return &v
	}

	cases := []struct {
		name string
		trip models.Trip
		want float64
	}{
		{"clean trip", models.Trip{}, 100},
		{"on time", models.Trip{PlannedArrival: &planned, ActualArrival: at(0.5)}, 100},
		{"over an hour late", models.Trip{PlannedArrival: &planned, ActualArrival: at(1.5)}, 95},
		{"over two hours late", models.Trip{PlannedArrival: &planned, ActualArrival: at(3)}, 90},
		{"over four hours late", models.Trip{PlannedArrival: &planned, ActualArrival: at(5)}, 80},
		{"early counts as deviation", models.Trip{PlannedArrival: &planned, ActualArrival: at(-5)}, 80},
		{
			"delays cost two points per hour",
			models.Trip{DelayReasons: []models.DelayReason{{DelayDuration: 4}}},
			92,
		},
		{
			"delay penalty capped at 30",
			models.Trip{DelayReasons: []models.DelayReason{{DelayDuration: 40}}},
			70,
		},
		{
			"undocumented costs capped at 20",
			models.Trip{Costs: []models.CostEntry{{}, {}, {}, {}, {}}},
			80,
		},
		{
			"combined penalties",
			models.Trip{
				PlannedArrival: &planned,
				ActualArrival:  at(5),
				DelayReasons:   []models.DelayReason{{DelayDuration: 40}},
				Costs:          []models.CostEntry{{}, {}, {}, {}, {}},
			},
			30,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ComplianceScore(tc.trip), 0.001)
		})
	}
}
