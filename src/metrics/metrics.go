// Package metrics publishes the headline numbers of a run as CloudWatch
// custom metrics so spend can be graphed and alarmed on.
package metrics

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/shopspring/decimal"
)

const (
	MetricTotalCost           = "TotalCost"
	MetricRecommendationCount = "RecommendationCount"
)

type Putter interface {
	PutMetrics(ctx context.Context, namespace string, data []types.MetricDatum) error
}

type Publisher struct {
	putter    Putter
	namespace string
}

func NewPublisher(putter Putter, namespace string) *Publisher {
	return &Publisher{putter: putter, namespace: namespace}
}

type Summary struct {
	Project             string
	Environment         string
	TotalCost           decimal.Decimal
	RecommendationCount int
	Timestamp           time.Time
}

func (p *Publisher) Publish(ctx context.Context, s Summary) error {
	return p.putter.PutMetrics(ctx, p.namespace, Datums(s))
}

func Datums(s Summary) []types.MetricDatum {
	dims := []types.Dimension{
		{Name: aws.String("Project"), Value: aws.String(s.Project)},
		{Name: aws.String("Environment"), Value: aws.String(s.Environment)},
	}
	return []types.MetricDatum{
		{
			MetricName: aws.String(MetricTotalCost),
			Dimensions: dims,
			Timestamp:  aws.Time(s.Timestamp),
			Unit:       types.StandardUnitNone,
			Value:      aws.Float64(s.TotalCost.InexactFloat64()),
		},
		{
			MetricName: aws.String(MetricRecommendationCount),
			Dimensions: dims,
			Timestamp:  aws.Time(s.Timestamp),
			Unit:       types.StandardUnitCount,
			Value:      aws.Float64(float64(s.RecommendationCount)),
		},
	}
}
