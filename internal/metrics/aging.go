package metrics

import (
	"sort"
	"time"

	"github.com/heinrichnel/fleetops/internal/models"
)

// InvoiceAging is one invoiced trip's receivables position as of a given
// date.
type InvoiceAging struct {
	TripID        string               `json:"tripId"`
	InvoiceNumber string               `json:"invoiceNumber"`
	CustomerName  string               `json:"customerName"`
	InvoiceDate   time.Time            `json:"invoiceDate"`
	DueDate       time.Time            `json:"dueDate"`
	Amount        float64              `json:"amount"`
	Currency      models.Currency      `json:"currency"`
	AgingDays     int                  `json:"agingDays"`
	Status        models.AgingBucket   `json:"status"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	LastFollowUp  *time.Time           `json:"lastFollowUp,omitempty"`
	FollowUpCount int                  `json:"followUpCount"`
	RiskLevel     models.ImpactLevel   `json:"riskLevel"`
}

// AgingBucketFor places days-past-due into the currency's risk band.
func AgingBucketFor(currency models.Currency, agingDays int) models.AgingBucket {
	thresholds, ok := models.AgingThresholds[currency]
	if !ok {
		thresholds = models.AgingThresholds[models.CurrencyZAR]
	}
	for _, bucket := range []models.AgingBucket{
		models.AgingCurrent, models.AgingWarning, models.AgingCritical,
	} {
		t := thresholds[bucket]
		if agingDays >= t.Min && agingDays <= t.Max {
			return bucket
		}
	}
	return models.AgingOverdue
}

func riskForBucket(bucket models.AgingBucket) models.ImpactLevel {
	switch bucket {
	case models.AgingCurrent:
		return models.ImpactLow
	case models.AgingWarning:
		return models.ImpactMedium
	default:
		return models.ImpactHigh
	}
}

// GenerateInvoiceAging builds the receivables view for every invoiced trip
// that is not fully paid, oldest debt first. Trips without invoice dates are
// skipped; aging is clamped at zero before the due date.
func GenerateInvoiceAging(trips []models.Trip, asOf time.Time) []InvoiceAging {
	var out []InvoiceAging
	for _, trip := range trips {
		if trip.InvoiceDate == nil || trip.InvoiceDueDate == nil {
			continue
		}
		if trip.PaymentStatus == models.PaymentPaid {
			continue
		}
		agingDays := int(asOf.Sub(*trip.InvoiceDueDate).Hours() / 24)
		if agingDays < 0 {
			agingDays = 0
		}
		bucket := AgingBucketFor(trip.RevenueCurrency, agingDays)
		kpis := CalculateKPIs(trip)
		out = append(out, InvoiceAging{
			TripID:        trip.ID,
			InvoiceNumber: trip.InvoiceNumber,
			CustomerName:  trip.ClientName,
			InvoiceDate:   *trip.InvoiceDate,
			DueDate:       *trip.InvoiceDueDate,
			Amount:        kpis.TotalRevenue,
			Currency:      trip.RevenueCurrency,
			AgingDays:     agingDays,
			Status:        bucket,
			PaymentStatus: trip.PaymentStatus,
			LastFollowUp:  trip.LastFollowUpDate,
			FollowUpCount: len(trip.FollowUpHistory),
			RiskLevel:     riskForBucket(bucket),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AgingDays > out[j].AgingDays
	})
	return out
}

// NeedsFollowUp reports whether an unpaid invoice has aged past the
// currency's follow-up threshold.
func NeedsFollowUp(aging InvoiceAging) bool {
	threshold, ok := models.FollowUpThresholdDays[aging.Currency]
	if !ok {
		threshold = models.FollowUpThresholdDays[models.CurrencyZAR]
	}
	return aging.AgingDays > threshold
}

// CustomerPerformance is a per-client retention and payment-behaviour
// summary within one currency.
type CustomerPerformance struct {
	CustomerName       string             `json:"customerName"`
	TotalTrips         int                `json:"totalTrips"`
	TotalRevenue       float64            `json:"totalRevenue"`
	Currency           models.Currency    `json:"currency"`
	AveragePaymentDays float64            `json:"averagePaymentDays"`
	PaymentScore       float64            `json:"paymentScore"`
	LastTripDate       time.Time          `json:"lastTripDate"`
	RiskLevel          models.ImpactLevel `json:"riskLevel"`
	IsAtRisk           bool               `json:"isAtRisk"`
	IsProfitable       bool               `json:"isProfitable"`
	IsTopClient        bool               `json:"isTopClient"`
}

// GenerateCustomerPerformance summarises payment behaviour and retention
// per client for trips in the given currency. Payment score starts at 100
// and loses 2 points per average day paid late; the top client by revenue
// is flagged.
func GenerateCustomerPerformance(trips []models.Trip, currency models.Currency, asOf time.Time) []CustomerPerformance {
	type acc struct {
		trips        int
		revenue      float64
		expenses     float64
		paidInvoices int
		lateDays     float64
		lastTrip     time.Time
	}
	accs := map[string]*acc{}

	for _, trip := range FilterTripsByCurrency(trips, currency) {
		a := accs[trip.ClientName]
		if a == nil {
			a = &acc{}
			accs[trip.ClientName] = a
		}
		a.trips++
		a.revenue += trip.BaseRevenue
		a.expenses += tripExpenses(trip)
		if trip.EndDate.After(a.lastTrip) {
			a.lastTrip = trip.EndDate
		}
		if trip.InvoiceDueDate != nil && trip.PaymentReceivedDate != nil {
			a.paidInvoices++
			late := trip.PaymentReceivedDate.Sub(*trip.InvoiceDueDate).Hours() / 24
			if late > 0 {
				a.lateDays += late
			}
		}
	}

	var out []CustomerPerformance
	var topRevenue float64
	for name, a := range accs {
		avgLate := 0.0
		if a.paidInvoices > 0 {
			avgLate = a.lateDays / float64(a.paidInvoices)
		}
		score := 100 - avgLate*2
		if score < 0 {
			score = 0
		}
		risk := models.ImpactLow
		switch {
		case score < 50:
			risk = models.ImpactHigh
		case score < 80:
			risk = models.ImpactMedium
		}
		// A client that has gone quiet is a retention risk even if they
		// always paid on time.
		dormant := asOf.Sub(a.lastTrip) > 90*24*time.Hour
		out = append(out, CustomerPerformance{
			CustomerName:       name,
			TotalTrips:         a.trips,
			TotalRevenue:       a.revenue,
			Currency:           currency,
			AveragePaymentDays: avgLate,
			PaymentScore:       score,
			LastTripDate:       a.lastTrip,
			RiskLevel:          risk,
			IsAtRisk:           risk == models.ImpactHigh || dormant,
			IsProfitable:       a.revenue > a.expenses,
		})
		if a.revenue > topRevenue {
			topRevenue = a.revenue
		}
	}
	for i := range out {
		out[i].IsTopClient = out[i].TotalRevenue == topRevenue && topRevenue > 0
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalRevenue > out[j].TotalRevenue
	})
	return out
}
