// Package optimizer runs one cost analysis: aggregate spend, run the analyzers,
// render the report and notify when there is something to act on.
package optimizer

import (
	"context"
	"sync"
	"time"

	awsclient "cost-optimizer/src/aws"
	"cost-optimizer/src/config"
	"cost-optimizer/src/costs"
	"cost-optimizer/src/metrics"
	"cost-optimizer/src/recommendation"
	"cost-optimizer/src/report"
	"cost-optimizer/src/shared/constants"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Notifier interface {
	Send(ctx context.Context, report, project, environment string) error
}

type MetricsPublisher interface {
	Publish(ctx context.Context, s metrics.Summary) error
}

// Options holds the collaborators of an Optimizer. Analyzers run in slice
// order as far as the report is concerned. A nil Notifier or Metrics disables
// that step.
type Options struct {
	Billing   costs.BillingSource
	Analyzers []recommendation.Analyzer
	Notifier  Notifier
	Metrics   MetricsPublisher
	Now       func() time.Time
	Logger    *zap.Logger
}

type Optimizer struct {
	cfg       *config.Config
	billing   costs.BillingSource
	analyzers []recommendation.Analyzer
	notifier  Notifier
	metrics   MetricsPublisher
	now       func() time.Time
	logger    *zap.Logger
}

func New(cfg *config.Config, opts Options) *Optimizer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Optimizer{
		cfg:       cfg,
		billing:   opts.Billing,
		analyzers: opts.Analyzers,
		notifier:  opts.Notifier,
		metrics:   opts.Metrics,
		now:       opts.Now,
		logger:    opts.Logger,
	}
}

type Result struct {
	RunID           string
	Period          costs.Period
	Costs           *costs.ServiceCosts
	Recommendations []recommendation.Recommendation
	Report          string
	Notified        bool
}

// Run performs one analysis. Only a billing failure is returned as an error;
// analyzer, notification and metric failures are logged and skipped.
func (o *Optimizer) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	logger := o.logger.With(
		zap.String("run_id", runID),
		zap.String("project", o.cfg.ProjectName),
		zap.String("environment", o.cfg.Environment),
	)
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.With(zap.String("request_id", lc.AwsRequestID))
	}

	now := o.now()
	period := costs.TrailingPeriod(now, constants.ANALYSIS_WINDOW_DAYS)
	serviceCosts, err := costs.Aggregate(ctx, o.billing, period, Tag(o.cfg))
	if err != nil {
		return nil, err
	}
	logger.Info("aggregated costs",
		zap.String("total", serviceCosts.Total().StringFixed(2)),
		zap.Int("services", serviceCosts.Len()))

	recs := o.analyze(ctx, serviceCosts, logger)

	text := report.Report{
		Project:         o.cfg.ProjectName,
		Environment:     o.cfg.Environment,
		GeneratedAt:     now,
		Costs:           serviceCosts,
		Recommendations: recs,
	}.String()

	result := &Result{
		RunID:           runID,
		Period:          period,
		Costs:           serviceCosts,
		Recommendations: recs,
		Report:          text,
	}

	if len(recs) > 0 && o.notifier != nil {
		if err := o.notifier.Send(ctx, text, o.cfg.ProjectName, o.cfg.Environment); err != nil {
			logger.Error("error sending notification", zap.Error(err))
		} else {
			result.Notified = true
		}
	}

	if o.metrics != nil {
		err := o.metrics.Publish(ctx, metrics.Summary{
			Project:             o.cfg.ProjectName,
			Environment:         o.cfg.Environment,
			TotalCost:           serviceCosts.Total(),
			RecommendationCount: len(recs),
			Timestamp:           now,
		})
		if err != nil {
			logger.Warn("error publishing metrics", zap.Error(err))
		}
	}

	logger.Info("cost optimization analysis completed", zap.Int("recommendations", len(recs)))
	return result, nil
}

// analyze runs the analyzers concurrently and concatenates their output in
// analyzer order. A failing or panicking analyzer contributes only what it
// returned.
func (o *Optimizer) analyze(ctx context.Context, serviceCosts *costs.ServiceCosts, logger *zap.Logger) []recommendation.Recommendation {
	results := make([][]recommendation.Recommendation, len(o.analyzers))

	wg := sync.WaitGroup{}
	for i, a := range o.analyzers {
		i, a := i, a
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.Error("analyzer panicked", zap.String("analyzer", a.Name()), zap.Any("panic", r))
				}
			}()

			recs, err := a.Analyze(ctx, serviceCosts)
			if err != nil {
				logger.Warn("analyzer failed", zap.String("analyzer", a.Name()), zap.Error(err))
			}
			results[i] = recs
		}()
	}
	wg.Wait()

	return lo.Flatten(results)
}

func Tag(cfg *config.Config) awsclient.Tag {
	return awsclient.Tag{Key: cfg.ProjectTagKey, Value: cfg.ProjectName}
}
