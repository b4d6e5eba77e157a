package optimizer

import (
	"context"
	"time"

	awsclient "cost-optimizer/src/aws"
	"cost-optimizer/src/config"
	"cost-optimizer/src/handlers/dynamodb"
	"cost-optimizer/src/handlers/ec2"
	"cost-optimizer/src/handlers/rds"
	"cost-optimizer/src/handlers/storagecost"
	"cost-optimizer/src/handlers/unused"
	"cost-optimizer/src/metrics"
	"cost-optimizer/src/notify"
	"cost-optimizer/src/recommendation"

	"go.uber.org/zap"
)

// DefaultOptions wires the AWS-backed collaborators described by cfg.
func DefaultOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Options, error) {
	client, err := awsclient.NewAWSClient(ctx, awsclient.AWSClientOpts{Region: cfg.Region})
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Billing:   client,
		Analyzers: Analyzers(cfg, client, time.Now, logger),
		Notifier:  notify.New(client, cfg.SNSTopicARN, logger),
		Now:       time.Now,
		Logger:    logger,
	}
	if cfg.MetricsNamespace != "" {
		opts.Metrics = metrics.NewPublisher(client, cfg.MetricsNamespace)
	}
	return opts, nil
}

// Analyzers returns the analyzers in report order: compute, database, storage,
// unused resources, then DynamoDB when enabled.
func Analyzers(cfg *config.Config, client *awsclient.AWSClient, now func() time.Time, logger *zap.Logger) []recommendation.Analyzer {
	tag := Tag(cfg)
	analyzers := []recommendation.Analyzer{
		ec2.NewAnalyzer(client, tag, cfg.Thresholds.Compute),
		rds.NewAnalyzer(client, cfg.Thresholds.Database),
		storagecost.NewAnalyzer(cfg.Thresholds.ObjectStorage, cfg.Thresholds.BlockStorage),
		unused.NewAnalyzer(client, client, tag),
	}
	if cfg.DynamoDBAnalysis {
		analyzers = append(analyzers, dynamodb.NewAnalyzer(client, cfg.Thresholds.DynamoDB, now, logger))
	}
	return analyzers
}
