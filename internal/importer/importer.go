// Package importer parses the dashboard's CSV batch formats for trips and
// diesel records. The format is deliberately simple: comma-separated fields
// with no quoting, a header row naming the columns, and a small set of
// accepted header aliases. Missing values fall back to zero or empty.
package importer

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/heinrichnel/fleetops/internal/models"
)

// ErrEmptyCSV is returned when the input has no data rows.
var ErrEmptyCSV = errors.New("csv contains no data rows")

// parseRows splits the raw text into header-keyed rows. The header is the
// first non-empty line; blank lines are skipped; short rows leave their
// trailing columns empty.
func parseRows(text string) []map[string]string {
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil
	}
	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	var rows []map[string]string
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.Split(line, ",")
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = strings.TrimSpace(values[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// field returns the first non-empty value among the aliased column names.
func field(row map[string]string, names ...string) string {
	for _, n := range names {
		if v := row[n]; v != "" {
			return v
		}
	}
	return ""
}

// num parses the first non-empty aliased value as a float, zero on failure.
func num(row map[string]string, names ...string) float64 {
	v, err := strconv.ParseFloat(field(row, names...), 64)
	if err != nil {
		return 0
	}
	return v
}

// date parses the first non-empty aliased value as a date. Both plain
// dates and RFC 3339 timestamps are accepted; anything else reads as the
// zero time.
func date(row map[string]string, names ...string) time.Time {
	v := field(row, names...)
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t
	}
	return time.Time{}
}

// ParseTrips maps CSV text to trips. Currency defaults to ZAR and client
// type to external when the columns are absent. The batch is all or
// nothing: the caller inserts every returned trip or none.
func ParseTrips(text string) ([]models.Trip, error) {
	rows := parseRows(text)
	if len(rows) == 0 {
		return nil, ErrEmptyCSV
	}
	trips := make([]models.Trip, 0, len(rows))
	for _, row := range rows {
		trip := models.Trip{
			FleetNumber:     field(row, "fleetNumber", "fleet"),
			Route:           field(row, "route"),
			ClientName:      field(row, "clientName", "client"),
			BaseRevenue:     num(row, "baseRevenue", "revenue"),
			RevenueCurrency: models.Currency(field(row, "revenueCurrency", "currency")),
			StartDate:       date(row, "startDate"),
			EndDate:         date(row, "endDate"),
			DriverName:      field(row, "driverName", "driver"),
			ClientType:      models.ClientType(field(row, "clientType")),
			Description:     field(row, "description"),
		}
		if trip.RevenueCurrency == "" {
			trip.RevenueCurrency = models.CurrencyZAR
		}
		if trip.ClientType == "" {
			trip.ClientType = models.ClientExternal
		}
		if d := num(row, "distanceKm", "distance"); d > 0 {
			trip.DistanceKm = &d
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// ParseDieselRecords maps CSV text to diesel records. Derived fields
// (distance, km/L, cost/L) are computed by the rule engine at ingestion,
// not here.
func ParseDieselRecords(text string) ([]models.DieselConsumptionRecord, error) {
	rows := parseRows(text)
	if len(rows) == 0 {
		return nil, ErrEmptyCSV
	}
	recs := make([]models.DieselConsumptionRecord, 0, len(rows))
	for _, row := range rows {
		rec := models.DieselConsumptionRecord{
			FleetNumber:  field(row, "fleetNumber", "fleet"),
			Date:         date(row, "date"),
			KmReading:    num(row, "kmReading", "km"),
			LitresFilled: num(row, "litresFilled", "litres"),
			CostPerLitre: num(row, "costPerLitre", "pricePerLitre"),
			TotalCost:    num(row, "totalCost", "cost"),
			FuelStation:  field(row, "fuelStation", "station"),
			DriverName:   field(row, "driverName", "driver"),
			Notes:        field(row, "notes"),
		}
		if prev := num(row, "previousKmReading", "previousKm"); prev > 0 {
			rec.PreviousKmReading = &prev
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// DieselTemplate is the downloadable sample CSV for diesel imports.
const DieselTemplate = `fleetNumber,date,kmReading,previousKmReading,litresFilled,costPerLitre,totalCost,fuelStation,driverName,notes
6H,2025-01-15,125000,123560,450,18.50,8325,RAM Petroleum Harare,Enock Mukonyerwa,Full tank before long trip
26H,2025-01-16,89000,87670,380,19.20,7296,Engen Beitbridge,Jonathan Bepete,Border crossing fill-up
22H,2025-01-17,156000,154824,420,18.75,7875,Shell Mutare,Lovemore Qochiwe,Regular refuel`
