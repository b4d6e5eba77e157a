package ec2

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

// Instance types treated as oversized.
var largeTypes = []string{"m5.large", "m5.xlarge"}

type InstanceLister interface {
	ListInstances(ctx context.Context, state awsclient.InstanceState, tag awsclient.Tag) ([]awsclient.Instance, error)
}

type Analyzer struct {
	instances InstanceLister
	tag       awsclient.Tag
	threshold decimal.Decimal
}

func NewAnalyzer(instances InstanceLister, tag awsclient.Tag, threshold decimal.Decimal) *Analyzer {
	return &Analyzer{instances: instances, tag: tag, threshold: threshold}
}

func (a *Analyzer) Name() string { return "ec2" }

// Analyze looks at running project instances once EC2 spend passes the
// threshold. Each instance can yield a rightsizing and a spot suggestion.
func (a *Analyzer) Analyze(ctx context.Context, serviceCosts *costs.ServiceCosts) ([]recommendation.Recommendation, error) {
	if !serviceCosts.Get(constants.SERVICE_EC2).GreaterThan(a.threshold) {
		return nil, nil
	}

	instances, err := a.instances.ListInstances(ctx, awsclient.InstanceRunning, a.tag)
	if err != nil {
		return nil, fmt.Errorf("analyzing EC2 costs: %w", err)
	}

	var recs []recommendation.Recommendation
	for _, inst := range instances {
		if isLarge(inst.Type) {
			recs = append(recs, recommendation.Recommendation{
				Type:             recommendation.EC2Rightsizing,
				Resource:         inst.ID,
				CurrentType:      inst.Type,
				Recommendation:   "Consider downsizing to m5.medium if CPU utilization is consistently low",
				PotentialSavings: "Up to 50% cost reduction",
			})
		}
		if !inst.Spot {
			recs = append(recs, recommendation.Recommendation{
				Type:             recommendation.EC2SpotInstances,
				Resource:         inst.ID,
				Recommendation:   "Consider using Spot instances for non-critical workloads",
				PotentialSavings: "Up to 70% cost reduction",
			})
		}
	}
	return recs, nil
}

func isLarge(instanceType string) bool {
	for _, prefix := range largeTypes {
		if strings.HasPrefix(instanceType, prefix) {
			return true
		}
	}
	return false
}
