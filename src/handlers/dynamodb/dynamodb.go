package dynamodb

import (
	"context"
	"fmt"
	"sync"
	"time"

	awsclient "cost-optimizer/src/aws"
	"cost-optimizer/src/costs"
	"cost-optimizer/src/recommendation"
	"cost-optimizer/src/shared/constants"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxInFlight bounds concurrent DescribeTableUsage calls, each of which costs
// one DescribeTable and two GetMetricStatistics requests.
const maxInFlight = 4

type TableSource interface {
	GetDynamoDbTables(ctx context.Context) ([]string, error)
	DescribeTableUsage(ctx context.Context, tableName string, windowDays int, now time.Time) (awsclient.TableInfo, error)
}

// Analyzer suggests on-demand capacity for under-used provisioned tables.
type Analyzer struct {
	tables     TableSource
	threshold  decimal.Decimal
	windowDays int
	inFlight   int
	now        func() time.Time
	logger     *zap.Logger
}

func NewAnalyzer(tables TableSource, threshold decimal.Decimal, now func() time.Time, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		tables:     tables,
		threshold:  threshold,
		windowDays: constants.DYNAMODB_WINDOW_DAYS,
		inFlight:   maxInFlight,
		now:        now,
		logger:     logger,
	}
}

func (a *Analyzer) Name() string { return "dynamodb" }

func (a *Analyzer) Analyze(ctx context.Context, serviceCosts *costs.ServiceCosts) ([]recommendation.Recommendation, error) {
	if !serviceCosts.Get(constants.SERVICE_DYNAMODB).GreaterThan(a.threshold) {
		return nil, nil
	}

	names, err := a.tables.GetDynamoDbTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("analyzing DynamoDB tables: %w", err)
	}

	now := a.now()
	infos := make([]*awsclient.TableInfo, len(names))
	sem := make(chan struct{}, a.inFlight)
	wg := sync.WaitGroup{}
	for i, name := range names {
		i, name := i, name
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			info, err := a.tables.DescribeTableUsage(ctx, name, a.windowDays, now)
			if err != nil {
				a.logger.Warn("skipping table", zap.String("table", name), zap.Error(err))
				return
			}
			infos[i] = &info
		}()
	}
	wg.Wait()

	var recs []recommendation.Recommendation
	for _, t := range infos {
		if t == nil || t.BillingMode != awsclient.BillingModeProvisioned || !t.MetricsAvailable {
			continue
		}
		analysis, ok := analyzeProvisionedTable(*t, 24*a.windowDays)
		if !ok || analysis.UtilizationPct >= lowUtilizationPct {
			continue
		}
		recs = append(recs, recommendation.Recommendation{
			Type:     recommendation.DynamoDBCapacityMode,
			Resource: t.TableName,
			Recommendation: fmt.Sprintf(
				"Consider switching to PAY_PER_REQUEST (average utilization %.1f%% of provisioned capacity costing $%s over %d days)",
				analysis.UtilizationPct, analysis.CurrentCost.StringFixedBank(2), a.windowDays),
			PotentialSavings: fmt.Sprintf("$%s over %d days", analysis.PotentialSavings.StringFixedBank(2), a.windowDays),
		})
	}
	return recs, nil
}
