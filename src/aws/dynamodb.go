package awsclient

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const BillingModeProvisioned = string(dbtypes.BillingModeProvisioned)

type TableInfo struct {
	TableName          string  `json:"tableName"`
	TableArn           string  `json:"tableArn"`
	BillingMode        string  `json:"billingMode"`
	ReadCapacityUnits  int64   `json:"readCapacityUnits"`
	WriteCapacityUnits int64   `json:"writeCapacityUnits"`
	AvgConsumedRead    float64 `json:"avgConsumedRead"`
	AvgConsumedWrite   float64 `json:"avgConsumedWrite"`
	MetricsAvailable   bool    `json:"metricsAvailable"`
}

func (c *AWSClient) GetDynamoDbTables(ctx context.Context) ([]string, error) {
	var allTables []string
	listTablesInput := &dynamodb.ListTablesInput{}

	for {
		listOut, err := c.DynamoDB.ListTables(ctx, listTablesInput)
		if err != nil {
			return nil, fmt.Errorf("ListTables failed: %w", err)
		}

		allTables = append(allTables, listOut.TableNames...)
		if listOut.LastEvaluatedTableName == nil {
			break
		}
		listTablesInput.ExclusiveStartTableName = listOut.LastEvaluatedTableName
	}
	return allTables, nil
}

// DescribeTableUsage reads the provisioned capacity of tableName and its
// average consumed capacity over the trailing windowDays.
func (c *AWSClient) DescribeTableUsage(ctx context.Context, tableName string, windowDays int, now time.Time) (TableInfo, error) {
	desc, err := c.DynamoDB.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		return TableInfo{}, fmt.Errorf("DescribeTable %s failed: %w", tableName, err)
	}

	t := desc.Table
	billing := BillingModeProvisioned
	if t.BillingModeSummary != nil {
		billing = string(t.BillingModeSummary.BillingMode)
	}

	info := TableInfo{
		TableName:   tableName,
		TableArn:    aws.ToString(t.TableArn),
		BillingMode: billing,
	}
	if billing != BillingModeProvisioned {
		return info, nil
	}

	if t.ProvisionedThroughput != nil {
		info.ReadCapacityUnits = aws.ToInt64(t.ProvisionedThroughput.ReadCapacityUnits)
		info.WriteCapacityUnits = aws.ToInt64(t.ProvisionedThroughput.WriteCapacityUnits)
	}

	start := now.Add(-time.Duration(windowDays) * 24 * time.Hour)
	query := func(metric string) MetricQuery {
		return MetricQuery{
			Namespace:      "AWS/DynamoDB",
			MetricName:     metric,
			DimensionName:  "TableName",
			DimensionValue: tableName,
			Start:          start,
			End:            now,
		}
	}

	readUsage, err1 := c.GetAvgMetric(ctx, query("ConsumedReadCapacityUnits"))
	writeUsage, err2 := c.GetAvgMetric(ctx, query("ConsumedWriteCapacityUnits"))
	info.AvgConsumedRead = readUsage
	info.AvgConsumedWrite = writeUsage
	info.MetricsAvailable = err1 == nil && err2 == nil

	return info, nil
}
