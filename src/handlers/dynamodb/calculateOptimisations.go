package dynamodb

import (
	awsclient "cost-optimizer/src/aws"

	"github.com/shopspring/decimal"
)

const lowUtilizationPct = 50.0

var (
	rcuPrice = decimal.RequireFromString("0.00013") // $ per RCU-hour
	wcuPrice = decimal.RequireFromString("0.00065") // $ per WCU-hour
)

type capacityAnalysis struct {
	UtilizationPct   float64
	CurrentCost      decimal.Decimal
	PotentialSavings decimal.Decimal
}

// analyzeProvisionedTable prices provisioned against consumed capacity over
// hours. ok is false when the table has no provisioned capacity to compare.
func analyzeProvisionedTable(t awsclient.TableInfo, hours int) (capacityAnalysis, bool) {
	if t.ReadCapacityUnits <= 0 && t.WriteCapacityUnits <= 0 {
		return capacityAnalysis{}, false
	}

	h := decimal.NewFromInt(int64(hours))
	currentCost := decimal.NewFromInt(t.ReadCapacityUnits).Mul(rcuPrice).
		Add(decimal.NewFromInt(t.WriteCapacityUnits).Mul(wcuPrice)).
		Mul(h)
	actualCost := decimal.NewFromFloat(t.AvgConsumedRead).Mul(rcuPrice).
		Add(decimal.NewFromFloat(t.AvgConsumedWrite).Mul(wcuPrice)).
		Mul(h)

	savings := currentCost.Sub(actualCost)
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	var ratios []float64
	if t.ReadCapacityUnits > 0 {
		ratios = append(ratios, t.AvgConsumedRead/float64(t.ReadCapacityUnits))
	}
	if t.WriteCapacityUnits > 0 {
		ratios = append(ratios, t.AvgConsumedWrite/float64(t.WriteCapacityUnits))
	}
	var sum float64
	for _, r := range ratios {
		sum += r
	}

	return capacityAnalysis{
		UtilizationPct:   sum / float64(len(ratios)) * 100,
		CurrentCost:      currentCost,
		PotentialSavings: savings,
	}, true
}
