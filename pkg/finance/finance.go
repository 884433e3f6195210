// Package finance holds the marketplace's money arithmetic and the small
// lookup tables the dashboards render from.
package finance

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// ExpectedReturn is simple interest at a flat monthly rate over the whole
// term: principal × (annualPct/100/12) × months. Not amortized.
func ExpectedReturn(principal, annualPct float64, months int) float64 {
	monthlyRate := annualPct / 100 / 12
	return principal * monthlyRate * float64(months)
}

// FundingPercent is the label value: round(funded/requested × 100), not clamped.
func FundingPercent(funded, requested float64) int {
	if requested <= 0 {
		return 0
	}
	return int(math.Round(funded / requested * 100))
}

// ProgressWidth is the bar width in percent, clamped to 100.
func ProgressWidth(funded, requested float64) float64 {
	if requested <= 0 {
		return 0
	}
	return math.Min(funded/requested*100, 100)
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Risk maps a risk score to its badge. A missing score reads as low.
func Risk(score *int) RiskLevel {
	s := 0
	if score != nil {
		s = *score
	}
	switch {
	case s < 40:
		return RiskLow
	case s < 70:
		return RiskMedium
	default:
		return RiskHigh
	}
}

type Badge struct {
	Variant string `json:"variant"`
	Label   string `json:"label"`
}

var statusVariants = map[string]string{
	"pending":      "outline",
	"under_review": "secondary",
	"approved":     "default",
	"funded":       "default",
	"active":       "default",
	"rejected":     "destructive",
	"completed":    "outline",
	"defaulted":    "destructive",
}

// StatusBadge renders a loan status; unknown statuses get the outline variant.
func StatusBadge(status string) Badge {
	v, ok := statusVariants[status]
	if !ok {
		v = "outline"
	}
	return Badge{Variant: v, Label: strings.Replace(status, "_", " ", 1)}
}

// FormatCurrency renders whole US dollars, e.g. "$12,500" or "-$40".
func FormatCurrency(amount float64) string {
	n := int64(math.Round(amount))
	if n < 0 {
		return "-$" + humanize.Comma(-n)
	}
	return "$" + humanize.Comma(n)
}

// FormatMoney renders an amount with cents, e.g. "$1,000.20".
func FormatMoney(amount float64) string {
	if amount < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -amount)
	}
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

// Cents converts a 2-decimal money amount to integer cents. Funding checks
// compare cents so 1000.30 - 1000.10 leaves exactly 20.
func Cents(amount float64) int64 { return int64(math.Round(amount * 100)) }

// FromCents is the inverse of Cents.
func FromCents(c int64) float64 { return float64(c) / 100 }
