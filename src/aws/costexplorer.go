package awsclient

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
)

const (
	blendedCost = "BlendedCost"
	dateLayout  = "2006-01-02"
)

// ServiceAmount is one SERVICE group of a Cost Explorer time bucket. Amount is
// kept as the raw decimal string the API returns.
type ServiceAmount struct {
	Service string
	Amount  string
}

type CostBucket struct {
	Start  string
	End    string
	Groups []ServiceAmount
}

// GetServiceCosts queries monthly blended cost grouped by service for the
// resources carrying tag. Every page is followed; bucket order is kept.
func (c *AWSClient) GetServiceCosts(ctx context.Context, start, end time.Time, tag Tag) ([]CostBucket, error) {
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: aws.String(start.Format(dateLayout)),
			End:   aws.String(end.Format(dateLayout)),
		},
		Granularity: types.GranularityMonthly,
		Metrics:     []string{blendedCost},
		GroupBy: []types.GroupDefinition{
			{Type: types.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
		},
		Filter: &types.Expression{
			Tags: &types.TagValues{
				Key:    aws.String(tag.Key),
				Values: []string{tag.Value},
			},
		},
	}

	var buckets []CostBucket
	for {
		out, err := c.CostExplorer.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("GetCostAndUsage failed: %w", err)
		}

		for _, result := range out.ResultsByTime {
			bucket := CostBucket{}
			if result.TimePeriod != nil {
				bucket.Start = aws.ToString(result.TimePeriod.Start)
				bucket.End = aws.ToString(result.TimePeriod.End)
			}
			for _, group := range result.Groups {
				if len(group.Keys) == 0 {
					continue
				}
				metric, ok := group.Metrics[blendedCost]
				if !ok {
					continue
				}
				bucket.Groups = append(bucket.Groups, ServiceAmount{
					Service: group.Keys[0],
					Amount:  aws.ToString(metric.Amount),
				})
			}
			buckets = append(buckets, bucket)
		}

		if out.NextPageToken == nil {
			break
		}
		input.NextPageToken = out.NextPageToken
	}
	return buckets, nil
}
