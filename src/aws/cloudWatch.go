package awsclient

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

type MetricQuery struct {
	Namespace      string
	MetricName     string
	DimensionName  string
	DimensionValue string
	Start          time.Time
	End            time.Time
}

// GetAvgMetric averages the hourly Average datapoints of a single-dimension
// metric over the query window.
func (c *AWSClient) GetAvgMetric(ctx context.Context, q MetricQuery) (float64, error) {
	out, err := c.CloudWatch.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(q.Namespace),
		MetricName: aws.String(q.MetricName),
		Dimensions: []types.Dimension{
			{
				Name:  aws.String(q.DimensionName),
				Value: aws.String(q.DimensionValue),
			},
		},
		StartTime: aws.Time(q.Start),
		EndTime:   aws.Time(q.End),
		Period:    aws.Int32(3600), // hourly average
		Statistics: []types.Statistic{
			types.StatisticAverage,
		},
	})
	if err != nil {
		return 0, fmt.Errorf("GetMetricStatistics for %s failed: %w", q.MetricName, err)
	}

	if len(out.Datapoints) == 0 {
		return 0, fmt.Errorf("no datapoints for %s", q.MetricName)
	}

	var total float64
	for _, dp := range out.Datapoints {
		total += aws.ToFloat64(dp.Average)
	}
	return total / float64(len(out.Datapoints)), nil
}

func (c *AWSClient) PutMetrics(ctx context.Context, namespace string, data []types.MetricDatum) error {
	_, err := c.CloudWatch.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(namespace),
		MetricData: data,
	})
	if err != nil {
		return fmt.Errorf("PutMetricData to %s failed: %w", namespace, err)
	}
	return nil
}
