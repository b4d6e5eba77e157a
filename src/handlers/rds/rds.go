package rds

import (
	"context"
	"fmt"
	"strings"

	awsclient "cost-optimizer/src/aws"
	"cost-optimizer/src/costs"
	"cost-optimizer/src/recommendation"
	"cost-optimizer/src/shared/constants"

	"github.com/shopspring/decimal"
)

const maxBackupRetentionDays = 7

type DBInstanceLister interface {
	ListDBInstances(ctx context.Context) ([]awsclient.DBInstance, error)
}

type Analyzer struct {
	instances DBInstanceLister
	threshold decimal.Decimal
}

func NewAnalyzer(instances DBInstanceLister, threshold decimal.Decimal) *Analyzer {
	return &Analyzer{instances: instances, threshold: threshold}
}

func (a *Analyzer) Name() string { return "rds" }

// Analyze checks every DB instance in the region once RDS spend passes the
// threshold. The listing is not scoped to the project tag.
func (a *Analyzer) Analyze(ctx context.Context, serviceCosts *costs.ServiceCosts) ([]recommendation.Recommendation, error) {
	if !serviceCosts.Get(constants.SERVICE_RDS).GreaterThan(a.threshold) {
		return nil, nil
	}

	instances, err := a.instances.ListDBInstances(ctx)
	if err != nil {
		return nil, fmt.Errorf("analyzing RDS costs: %w", err)
	}

	var recs []recommendation.Recommendation
	for _, inst := range instances {
		// "xlarge" contains "large"
		if strings.Contains(inst.Class, "large") {
			recs = append(recs, recommendation.Recommendation{
				Type:             recommendation.RDSRightsizing,
				Resource:         inst.ID,
				CurrentClass:     inst.Class,
				Recommendation:   "Monitor CPU and memory utilization to determine if downsizing is possible",
				PotentialSavings: "Up to 40% cost reduction",
			})
		}

		if inst.BackupRetentionDays > maxBackupRetentionDays {
			retention := fmt.Sprintf("%d days", inst.BackupRetentionDays)
			recs = append(recs, recommendation.Recommendation{
				Type:             recommendation.RDSBackupOptimization,
				Resource:         inst.ID,
				CurrentRetention: retention,
				Recommendation:   fmt.Sprintf("Consider reducing backup retention period (currently %s) if not required for compliance", retention),
				PotentialSavings: "Reduce backup storage costs",
			})
		}
	}
	return recs, nil
}
