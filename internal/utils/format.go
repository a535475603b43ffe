package utils

import (
	"strconv"
	"strings"
	"time"
)

// FormatCurrency formats an integer Rupiah amount with Indonesian
// thousands grouping, e.g. 1500000 -> "Rp 1.500.000"
func FormatCurrency(amount int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.Itoa(amount)

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	if negative {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}

// FormatDate renders a catalog date string (YYYY-MM-DD) as a readable
// date, e.g. "17 Oct 2026". Unparseable input is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("2 Jan 2006")
}

// FormatTimestamp renders an order timestamp for display
func FormatTimestamp(t time.Time) string {
	return t.Format("2 Jan 2006 15:04")
}
