// Package export renders reports for download: the per-currency fleet
// performance CSV and the per-trip PDF.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/heinrichnel/fleetops/internal/format"
	"github.com/heinrichnel/fleetops/internal/metrics"
	"github.com/heinrichnel/fleetops/internal/models"
)

// FleetReportCSV renders the per-currency fleet performance report in the
// dashboard's download layout: titled sections followed by a driver table.
func FleetReportCSV(report metrics.FleetReport, generatedAt time.Time) string {
	cur := report.Currency
	lines := []string{
		fmt.Sprintf("%s Fleet Performance Report", cur),
		fmt.Sprintf("Generated on: %s", format.Date(generatedAt)),
		"",
		"Summary",
		fmt.Sprintf("Total Trips,%d", report.TotalTrips),
		fmt.Sprintf("Active Trips,%d", report.ActiveTrips),
		fmt.Sprintf("Completed Trips,%d", report.CompletedTrips),
		fmt.Sprintf("Total Revenue,%s", format.Currency(report.TotalRevenue, cur)),
		fmt.Sprintf("Total Expenses,%s", format.Currency(report.TotalExpenses, cur)),
		fmt.Sprintf("Net Profit,%s", format.Currency(report.NetProfit, cur)),
		fmt.Sprintf("Profit Margin,%.2f%%", report.ProfitMargin),
		"",
		"Client Type Breakdown",
		fmt.Sprintf("Internal Trips,%d", report.InternalTrips),
		fmt.Sprintf("Internal Revenue,%s", format.Currency(report.InternalRevenue, cur)),
		fmt.Sprintf("Internal Profit Margin,%.2f%%", report.InternalProfitMargin),
		fmt.Sprintf("External Trips,%d", report.ExternalTrips),
		fmt.Sprintf("External Revenue,%s", format.Currency(report.ExternalRevenue, cur)),
		fmt.Sprintf("External Profit Margin,%.2f%%", report.ExternalProfitMargin),
		"",
		"Investigation Metrics",
		fmt.Sprintf("Total Flags,%d", report.TotalFlags),
		fmt.Sprintf("Unresolved Flags,%d", report.UnresolvedFlags),
		fmt.Sprintf("Trips with Investigations,%d", report.TripsWithInvestigations),
		fmt.Sprintf("Investigation Rate,%.2f%%", report.InvestigationRate),
		fmt.Sprintf("Average Resolution Time,%.1f days", report.AvgResolutionDays),
		"",
		"Driver Performance",
		"Driver,Trips,Revenue,Expenses,Net Profit,Margin %,Flags,Internal Trips,External Trips",
	}

	drivers := make([]string, 0, len(report.DriverStats))
	for name := range report.DriverStats {
		drivers = append(drivers, name)
	}
	sort.Strings(drivers)
	for _, name := range drivers {
		stats := report.DriverStats[name]
		netProfit := stats.Revenue - stats.Expenses
		marginPct := 0.0
		if stats.Revenue > 0 {
			marginPct = netProfit / stats.Revenue * 100
		}
		lines = append(lines, fmt.Sprintf("%s,%d,%s,%s,%s,%.2f%%,%d,%d,%d",
			name, stats.Trips,
			format.Currency(stats.Revenue, cur),
			format.Currency(stats.Expenses, cur),
			format.Currency(netProfit, cur),
			marginPct, stats.Flags, stats.InternalTrips, stats.ExternalTrips))
	}
	return strings.Join(lines, "\n")
}

// FleetReportFilename names the download for a currency and date.
func FleetReportFilename(currency models.Currency, generatedAt time.Time) string {
	return fmt.Sprintf("%s_Fleet_Report_%s.csv", currency, generatedAt.Format("2006-01-02"))
}
