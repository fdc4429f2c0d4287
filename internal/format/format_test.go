package format

import (
	"testing"
	"time"

	"github.com/heinrichnel/fleetops/internal/models"
)

func TestCurrency(t *testing.T) {
	cases := []struct {
		amount   float64
		currency models.Currency
		want     string
	}{
		{0, models.CurrencyZAR, "R0.00"},
		{8325, models.CurrencyZAR, "R8,325.00"},
		{1200.5, models.CurrencyUSD, "$1,200.50"},
		{999.994, models.CurrencyZAR, "R999.99"},
		{1234567.89, models.CurrencyZAR, "R1,234,567.89"},
		{-4500, models.CurrencyUSD, "-$4,500.00"},
		{123, models.CurrencyZAR, "R123.00"},
	}
	for _, tc := range cases {
		if got := Currency(tc.amount, tc.currency); got != tc.want {
			t.Errorf("Currency(%v, %s) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestDate(t *testing.T) {
	d := time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC)
	if got := Date(d); got != "Jan 15, 2025" {
		t.Errorf("Date = %q", got)
	}
	if got := DateTime(d); got != "Jan 15, 2025 02:30 PM" {
		t.Errorf("DateTime = %q", got)
	}
}
