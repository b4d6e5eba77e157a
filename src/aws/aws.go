package awsclient

import (
	"context"
	"fmt"

	"cost-optimizer/src/shared/constants"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Tag scopes inventory and billing queries to one logical project.
type Tag struct {
	Key   string
	Value string
}

type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

type EC2API interface {
	ec2.DescribeInstancesAPIClient
	ec2.DescribeVolumesAPIClient
}

type RDSAPI interface {
	rds.DescribeDBInstancesAPIClient
}

type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type CloudWatchAPI interface {
	GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

type DynamoDBAPI interface {
	ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type AWSClientOpts struct {
	Region string
}

// AWSClient bundles the service clients the analysis talks to. Fields are
// interfaces so tests can swap in fakes.
type AWSClient struct {
	CostExplorer CostExplorerAPI
	EC2          EC2API
	RDS          RDSAPI
	SNS          SNSAPI
	CloudWatch   CloudWatchAPI
	DynamoDB     DynamoDBAPI
}

func NewAWSClient(ctx context.Context, opts AWSClientOpts) (*AWSClient, error) {
	region := opts.Region
	if region == "" {
		region = constants.US_EAST_1
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &AWSClient{
		// Cost Explorer is only served from us-east-1.
		CostExplorer: costexplorer.NewFromConfig(cfg, func(o *costexplorer.Options) {
			o.Region = constants.US_EAST_1
		}),
		EC2:        ec2.NewFromConfig(cfg),
		RDS:        rds.NewFromConfig(cfg),
		SNS:        sns.NewFromConfig(cfg),
		CloudWatch: cloudwatch.NewFromConfig(cfg),
		DynamoDB:   dynamodb.NewFromConfig(cfg),
	}, nil
}
