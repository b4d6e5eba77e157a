package ec2

import (
	"context"
	"errors"
	"testing"

	awsclient "cost-optimizer/src/aws"
	"cost-optimizer/src/costs"
	"cost-optimizer/src/recommendation"
	"cost-optimizer/src/shared/constants"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInstances struct {
	instances []awsclient.Instance
	err       error

	calls int
	state awsclient.InstanceState
	tag   awsclient.Tag
}

func (f *fakeInstances) ListInstances(_ context.Context, state awsclient.InstanceState, tag awsclient.Tag) ([]awsclient.Instance, error) {
	f.calls++
	f.state, f.tag = state, tag
	return f.instances, f.err
}

var shop = awsclient.Tag{Key: "Project", Value: "shop"}

func ec2Costs(amount string) *costs.ServiceCosts {
	sc := costs.NewServiceCosts()
	sc.Add(constants.SERVICE_EC2, decimal.RequireFromString(amount))
	return sc
}

func TestAnalyze_BelowThresholdSkipsInventory(t *testing.T) {
	fake := &fakeInstances{instances: []awsclient.Instance{{ID: "i-1", Type: "m5.large"}}}
	a := NewAnalyzer(fake, shop, decimal.NewFromInt(100))

	for _, amount := range []string{"0", "99.99", "100"} {
		recs, err := a.Analyze(context.Background(), ec2Costs(amount))
		require.NoError(t, err)
		assert.Empty(t, recs, amount)
	}
	assert.Equal(t, 0, fake.calls)
}

func TestAnalyze_PerInstance(t *testing.T) {
	tests := []struct {
		name     string
		instance awsclient.Instance
		want     []recommendation.Type
	}{
		{
			name:     "large on-demand yields rightsizing and spot",
			instance: awsclient.Instance{ID: "i-1", Type: "m5.large"},
			want:     []recommendation.Type{recommendation.EC2Rightsizing, recommendation.EC2SpotInstances},
		},
		{
			name:     "xlarge on-demand yields rightsizing and spot",
			instance: awsclient.Instance{ID: "i-1", Type: "m5.xlarge"},
			want:     []recommendation.Type{recommendation.EC2Rightsizing, recommendation.EC2SpotInstances},
		},
		{
			name:     "large spot yields rightsizing only",
			instance: awsclient.Instance{ID: "i-1", Type: "m5.large", Spot: true},
			want:     []recommendation.Type{recommendation.EC2Rightsizing},
		},
		{
			name:     "small on-demand yields spot only",
			instance: awsclient.Instance{ID: "i-1", Type: "t3.medium"},
			want:     []recommendation.Type{recommendation.EC2SpotInstances},
		},
		{
			name:     "2xlarge is not a designated large class",
			instance: awsclient.Instance{ID: "i-1", Type: "m5.2xlarge", Spot: true},
			want:     nil,
		},
		{
			name:     "small spot yields nothing",
			instance: awsclient.Instance{ID: "i-1", Type: "t3.medium", Spot: true},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeInstances{instances: []awsclient.Instance{tt.instance}}
			a := NewAnalyzer(fake, shop, decimal.NewFromInt(100))

			recs, err := a.Analyze(context.Background(), ec2Costs("150"))
			require.NoError(t, err)

			var got []recommendation.Type
			for _, r := range recs {
				assert.Equal(t, "i-1", r.Resource)
				got = append(got, r.Type)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyze_QueriesRunningProjectInstancesInOrder(t *testing.T) {
	fake := &fakeInstances{instances: []awsclient.Instance{
		{ID: "i-b", Type: "m5.large"},
		{ID: "i-a", Type: "t3.micro"},
	}}
	a := NewAnalyzer(fake, shop, decimal.NewFromInt(100))

	recs, err := a.Analyze(context.Background(), ec2Costs("100.01"))
	require.NoError(t, err)

	assert.Equal(t, awsclient.InstanceRunning, fake.state)
	assert.Equal(t, shop, fake.tag)

	require.Len(t, recs, 3)
	assert.Equal(t, recommendation.Recommendation{
		Type:             recommendation.EC2Rightsizing,
		Resource:         "i-b",
		CurrentType:      "m5.large",
		Recommendation:   "Consider downsizing to m5.medium if CPU utilization is consistently low",
		PotentialSavings: "Up to 50% cost reduction",
	}, recs[0])
	assert.Equal(t, "i-b", recs[1].Resource)
	assert.Equal(t, "i-a", recs[2].Resource)
	assert.Equal(t, "Up to 70% cost reduction", recs[2].PotentialSavings)
}

func TestAnalyze_InventoryError(t *testing.T) {
	a := NewAnalyzer(&fakeInstances{err: errors.New("UnauthorizedOperation")}, shop, decimal.NewFromInt(100))

	recs, err := a.Analyze(context.Background(), ec2Costs("500"))
	assert.Error(t, err)
	assert.Empty(t, recs)
}
