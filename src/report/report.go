// Package report renders the cost summary and recommendations as plain text
// suitable for an email body.
package report

import (
	"fmt"
	"strings"
	"time"

	"cost-optimizer/src/costs"
	"cost-optimizer/src/recommendation"
	"cost-optimizer/src/shared/constants"

	"github.com/shopspring/decimal"
)

const (
	topServices       = 5
	timestampLayout   = "2006-01-02 15:04:05"
	NoRecommendations = "No optimization recommendations found at this time."
)

var hundred = decimal.NewFromInt(100)

// Report is rendered once per run and never modified.
type Report struct {
	Project         string
	Environment     string
	GeneratedAt     time.Time
	Costs           *costs.ServiceCosts
	Recommendations []recommendation.Recommendation
}

// Percentage is cost as a share of total, zero when total is not positive.
func Percentage(cost, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return cost.Div(total).Mul(hundred)
}

func (r Report) String() string {
	var b strings.Builder
	total := r.Costs.Total()

	fmt.Fprintf(&b, "\nCost Optimization Report for %s (%s)\n", r.Project, r.Environment)
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format(timestampLayout))
	fmt.Fprintf(&b, "COST SUMMARY (Last %d days):\n", constants.ANALYSIS_WINDOW_DAYS)
	fmt.Fprintf(&b, "Total Cost: $%s\n\n", total.StringFixedBank(2))
	b.WriteString("Top Services by Cost:\n")

	for _, sc := range r.Costs.Top(topServices) {
		fmt.Fprintf(&b, "  • %s: $%s (%s%%)\n",
			sc.Service, sc.Amount.StringFixedBank(2), Percentage(sc.Amount, total).StringFixedBank(1))
	}

	if len(r.Recommendations) > 0 {
		fmt.Fprintf(&b, "\nOPTIMIZATION RECOMMENDATIONS (%d found):\n", len(r.Recommendations))
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&b, "\n%d. %s\n", i+1, rec.Type.Title())
			if rec.Resource != "" {
				fmt.Fprintf(&b, "   Resource: %s\n", rec.Resource)
			}
			fmt.Fprintf(&b, "   Recommendation: %s\n", rec.Recommendation)
			if rec.PotentialSavings != "" {
				fmt.Fprintf(&b, "   Potential Savings: %s\n", rec.PotentialSavings)
			}
		}
	} else {
		fmt.Fprintf(&b, "\n%s\n", NoRecommendations)
	}

	fmt.Fprintf(&b, "\nNext analysis scheduled in %d days.\n", constants.NEXT_ANALYSIS_DAYS)
	return b.String()
}
