// Package format renders scores, currency amounts, and ROI figures for
// terminal output. All functions are pure string formatting; rounding for
// display never feeds back into stored values.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"stackshift/internal/model"
)

// FormatMoney formats a currency amount with a dollar sign and
// comma-separated thousands. Whole amounts drop the cents.
// Example: 52000 → "$52,000", 8400.5 → "$8,400.50", -1400 → "-$1,400".
func FormatMoney(m model.Money) string {
	d := m.Decimal
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	if d.Equal(d.Truncate(0)) {
		return sign + "$" + insertCommas(d.StringFixed(0))
	}
	fixed := d.StringFixed(2)
	parts := strings.SplitN(fixed, ".", 2)
	return sign + "$" + insertCommas(parts[0]) + "." + parts[1]
}

// FormatPercent formats a percentage to one decimal place with an explicit
// sign, so gains and losses read apart in a column.
// Example: 130.4 → "+130.4%", -13.6 → "-13.6%", 0 → "0.0%".
func FormatPercent(d decimal.Decimal) string {
	s := d.StringFixed(1)
	if d.IsPositive() {
		return "+" + s + "%"
	}
	return s + "%"
}

// FormatMonths formats a payback figure to one decimal place. Undefined
// payback (no monthly savings to recover the spend) renders as "never".
func FormatMonths(months decimal.Decimal, defined bool) string {
	if !defined {
		return "never"
	}
	return months.StringFixed(1) + " mo"
}

// FormatScore renders a total score against the 100-point ceiling.
// Example: 55 → "55/100".
func FormatScore(total int) string {
	return fmt.Sprintf("%d/100", total)
}

// FormatRate formats a req/sec rate with comma-separated thousands and one
// decimal place. Example: 1204.3 → "1,204.3 /s", 0 → "0 /s".
func FormatRate(reqPerSec float64) string {
	if reqPerSec == 0 {
		return "0 /s"
	}
	return formatCommaFloat(reqPerSec) + " /s"
}

// FormatLatency formats a latency budget in milliseconds. Values >= 1000 ms
// are shown as seconds with 2 decimal places.
func FormatLatency(ms float64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.2f s", ms/1000)
	}
	return fmt.Sprintf("%.2f ms", ms)
}

// FormatNumber formats an integer with locale-style comma separators.
// Example: 12345678 → "12,345,678".
// Uses strconv.FormatInt directly to avoid abs64 overflow for math.MinInt64.
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		// s starts with "-"; strip it, insert commas, restore sign.
		return "-" + insertCommas(s[1:])
	}
	return insertCommas(s)
}

// formatCommaFloat formats a float with comma-separated thousands and one decimal place.
func formatCommaFloat(f float64) string {
	// Format with one decimal place first
	formatted := fmt.Sprintf("%.1f", f)
	// Strip leading minus before inserting commas, then restore it
	sign := ""
	if len(formatted) > 0 && formatted[0] == '-' {
		sign = "-"
		formatted = formatted[1:]
	}
	// Split on decimal point
	parts := strings.SplitN(formatted, ".", 2)
	intPart := insertCommas(parts[0])
	if len(parts) == 2 {
		return sign + intPart + "." + parts[1]
	}
	return sign + intPart
}

// insertCommas inserts comma separators into a digit string every 3 digits from the right.
func insertCommas(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var buf strings.Builder
	lead := n % 3
	if lead > 0 {
		buf.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(s[i : i+3])
	}
	return buf.String()
}
