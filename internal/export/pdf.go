package export

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/heinrichnel/fleetops/internal/format"
	"github.com/heinrichnel/fleetops/internal/metrics"
	"github.com/heinrichnel/fleetops/internal/models"
)

// TripReportPDF renders a trip's report as a one-page PDF: headline KPIs,
// the cost breakdown, and documentation gaps.
func TripReportPDF(trip models.Trip, report metrics.TripReport) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP REPORT")
	pdf.Ln(12)

	cur := trip.RevenueCurrency
	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Fleet          : %s", trip.FleetNumber),
		fmt.Sprintf("Route          : %s", trip.Route),
		fmt.Sprintf("Client         : %s (%s)", trip.ClientName, trip.ClientType),
		fmt.Sprintf("Driver         : %s", trip.DriverName),
		fmt.Sprintf("Dates          : %s to %s", format.Date(trip.StartDate), format.Date(trip.EndDate)),
		fmt.Sprintf("Status         : %s", trip.Status),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Financials")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	financials := []string{
		fmt.Sprintf("Revenue        : %s", format.Currency(report.TotalRevenue, cur)),
		fmt.Sprintf("Expenses       : %s", format.Currency(report.TotalExpenses, cur)),
		fmt.Sprintf("Net Profit     : %s", format.Currency(report.NetProfit, cur)),
		fmt.Sprintf("Profit Margin  : %.2f%%", report.ProfitMargin),
		fmt.Sprintf("Cost per KM    : %.2f", report.CostPerKm),
		fmt.Sprintf("Compliance     : %.0f / 100", report.ComplianceScore),
	}
	for _, s := range financials {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Cost Breakdown")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range report.CostBreakdown {
		pdf.Cell(0, 6, fmt.Sprintf("%-28s %s  (%d entries, %.1f%%)",
			item.Category, format.Currency(item.Total, cur), item.Count, item.Percentage))
		pdf.Ln(6)
	}

	if len(report.MissingReceipts) > 0 || len(report.FlaggedCosts) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Exceptions")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, fmt.Sprintf("Costs without documentation: %d", len(report.MissingReceipts)))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Flagged costs: %d", len(report.FlaggedCosts)))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("Trip_Report_%s_%s.pdf", trip.FleetNumber, trip.StartDate.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
