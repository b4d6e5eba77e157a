package cmd

import (
	"cost-optimizer/src/config"
	"cost-optimizer/src/costs"
	"cost-optimizer/src/optimizer"
	"cost-optimizer/src/recommendation"

	"github.com/shopspring/decimal"
)

// Export is the JSON form of one run written by --output.
type Export struct {
	RunID           string                          `json:"run_id"`
	Project         string                          `json:"project"`
	Environment     string                          `json:"environment"`
	PeriodStart     string                          `json:"period_start"`
	PeriodEnd       string                          `json:"period_end"`
	TotalCost       decimal.Decimal                 `json:"total_cost"`
	Services        []costs.ServiceCost             `json:"services"`
	Recommendations []recommendation.Recommendation `json:"recommendations"`
	Notified        bool                            `json:"notified"`
}

func NewExport(cfg *config.Config, result *optimizer.Result) Export {
	return Export{
		RunID:           result.RunID,
		Project:         cfg.ProjectName,
		Environment:     cfg.Environment,
		PeriodStart:     result.Period.Start.Format("2006-01-02"),
		PeriodEnd:       result.Period.End.Format("2006-01-02"),
		TotalCost:       result.Costs.Total(),
		Services:        result.Costs.Top(result.Costs.Len()),
		Recommendations: result.Recommendations,
		Notified:        result.Notified,
	}
}
