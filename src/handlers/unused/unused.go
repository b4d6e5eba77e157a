package unused

import (
	"context"
	"fmt"

	awsclient "cost-optimizer/src/aws"
	"cost-optimizer/src/costs"
	"cost-optimizer/src/recommendation"

	"github.com/shopspring/decimal"
)

// ebsPricePerGBMonth is the flat rate used to estimate unattached volume cost.
var ebsPricePerGBMonth = decimal.RequireFromString("0.10")

type InstanceLister interface {
	ListInstances(ctx context.Context, state awsclient.InstanceState, tag awsclient.Tag) ([]awsclient.Instance, error)
}

type VolumeLister interface {
	ListAvailableVolumes(ctx context.Context, tag awsclient.Tag) ([]awsclient.Volume, error)
}

// Analyzer flags stopped instances and unattached volumes regardless of spend.
type Analyzer struct {
	instances InstanceLister
	volumes   VolumeLister
	tag       awsclient.Tag
}

func NewAnalyzer(instances InstanceLister, volumes VolumeLister, tag awsclient.Tag) *Analyzer {
	return &Analyzer{instances: instances, volumes: volumes, tag: tag}
}

func (a *Analyzer) Name() string { return "unused" }

// Analyze lists stopped instances, then unattached volumes. If the volume query
// fails the stopped-instance recommendations are still returned with the error.
func (a *Analyzer) Analyze(ctx context.Context, _ *costs.ServiceCosts) ([]recommendation.Recommendation, error) {
	stopped, err := a.instances.ListInstances(ctx, awsclient.InstanceStopped, a.tag)
	if err != nil {
		return nil, fmt.Errorf("checking unused resources: %w", err)
	}

	var recs []recommendation.Recommendation
	for _, inst := range stopped {
		recs = append(recs, recommendation.Recommendation{
			Type:             recommendation.UnusedEC2Instance,
			Resource:         inst.ID,
			Recommendation:   "Consider terminating long-stopped instances if no longer needed",
			PotentialSavings: "Eliminate EBS storage costs",
		})
	}

	volumes, err := a.volumes.ListAvailableVolumes(ctx, a.tag)
	if err != nil {
		return recs, fmt.Errorf("checking unused resources: %w", err)
	}

	for _, v := range volumes {
		recs = append(recs, recommendation.Recommendation{
			Type:             recommendation.UnattachedEBSVolume,
			Resource:         v.ID,
			Size:             fmt.Sprintf("%d GB", v.SizeGB),
			Recommendation:   "Delete unattached EBS volumes if no longer needed",
			PotentialSavings: fmt.Sprintf("$%s/month", MonthlyVolumeCost(v.SizeGB).StringFixedBank(2)),
		})
	}
	return recs, nil
}

func MonthlyVolumeCost(sizeGB int32) decimal.Decimal {
	return decimal.NewFromInt32(sizeGB).Mul(ebsPricePerGBMonth)
}
