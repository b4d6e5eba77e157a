package storagecost

import (
	"context"

	"cost-optimizer/src/costs"
	"cost-optimizer/src/recommendation"
	"cost-optimizer/src/shared/constants"

	"github.com/shopspring/decimal"
)

// Analyzer works from the cost mapping alone and emits at most one
// recommendation per storage kind.
type Analyzer struct {
	objectThreshold decimal.Decimal
	blockThreshold  decimal.Decimal
}

func NewAnalyzer(objectThreshold, blockThreshold decimal.Decimal) *Analyzer {
	return &Analyzer{objectThreshold: objectThreshold, blockThreshold: blockThreshold}
}

func (a *Analyzer) Name() string { return "storage" }

func (a *Analyzer) Analyze(_ context.Context, serviceCosts *costs.ServiceCosts) ([]recommendation.Recommendation, error) {
	var recs []recommendation.Recommendation

	if serviceCosts.Get(constants.SERVICE_S3).GreaterThan(a.objectThreshold) {
		recs = append(recs, recommendation.Recommendation{
			Type:             recommendation.S3LifecycleOptimization,
			Recommendation:   "Implement S3 lifecycle policies to transition old objects to cheaper storage classes",
			PotentialSavings: "Up to 60% on storage costs for infrequently accessed data",
		})
	}

	if serviceCosts.Get(constants.SERVICE_EBS).GreaterThan(a.blockThreshold) {
		recs = append(recs, recommendation.Recommendation{
			Type:             recommendation.EBSOptimization,
			Recommendation:   "Review EBS volumes for unused or oversized volumes, consider gp3 over gp2",
			PotentialSavings: "Up to 20% on EBS costs",
		})
	}

	return recs, nil
}
