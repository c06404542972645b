package analytics

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// money formats a currency amount with thousands separators and a
// fixed two-decimal fraction, e.g. 1234567.891 -> "$1,234,567.89".
func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// count formats an integer with thousands separators
func count(n int) string {
	return humanize.Comma(int64(n))
}

// plainMoney formats a currency amount without separators
func plainMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
