package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/heinrichnel/fleetops/internal/models"
)

// Currency renders an amount with its currency symbol, two decimals and
// thousands separators, e.g. "R8,325.00" or "$1,200.50".
func Currency(amount float64, currency models.Currency) string {
	symbol := "R"
	if currency == models.CurrencyUSD {
		symbol = "$"
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(s, ".", 2)
	return sign + symbol + groupThousands(parts[0]) + "." + parts[1]
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Date renders a calendar date, e.g. "Jan 15, 2025".
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// DateTime renders a timestamp, e.g. "Jan 15, 2025 02:30 PM".
func DateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 03:04 PM")
}
