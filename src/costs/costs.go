// Package costs aggregates Cost Explorer spend per service for one project.
package costs

import (
	"context"
	"fmt"
	"sort"
	"time"

	awsclient "cost-optimizer/src/aws"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type BillingSource interface {
	GetServiceCosts(ctx context.Context, start, end time.Time, tag awsclient.Tag) ([]awsclient.CostBucket, error)
}

type ServiceCost struct {
	Service string          `json:"service"`
	Amount  decimal.Decimal `json:"amount"`
}

// ServiceCosts maps service name to accumulated cost. Services keep the order
// in which they were first seen so ties sort reproducibly.
type ServiceCosts struct {
	order   []string
	amounts map[string]decimal.Decimal
	total   decimal.Decimal
}

func NewServiceCosts() *ServiceCosts {
	return &ServiceCosts{amounts: map[string]decimal.Decimal{}}
}

func (s *ServiceCosts) Add(service string, amount decimal.Decimal) {
	current, ok := s.amounts[service]
	if !ok {
		s.order = append(s.order, service)
	}
	s.amounts[service] = current.Add(amount)
	s.total = s.total.Add(amount)
}

// Get returns the cost of service, zero when it never appeared.
func (s *ServiceCosts) Get(service string) decimal.Decimal {
	return s.amounts[service]
}

func (s *ServiceCosts) Total() decimal.Decimal {
	return s.total
}

func (s *ServiceCosts) Len() int {
	return len(s.order)
}

func (s *ServiceCosts) All() []ServiceCost {
	return lo.Map(s.order, func(service string, _ int) ServiceCost {
		return ServiceCost{Service: service, Amount: s.amounts[service]}
	})
}

// Top returns at most n services by cost, highest first. Equal costs keep
// insertion order.
func (s *ServiceCosts) Top(n int) []ServiceCost {
	all := s.All()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Amount.GreaterThan(all[j].Amount)
	})
	if n < len(all) {
		all = all[:n]
	}
	return all
}

// Period is a [Start, End) date range.
type Period struct {
	Start time.Time
	End   time.Time
}

// TrailingPeriod ends on now's calendar date and starts days before it.
func TrailingPeriod(now time.Time, days int) Period {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Period{Start: end.AddDate(0, 0, -days), End: end}
}

// Aggregate issues one billing query for period and sums every returned
// amount per service across all time buckets. Any failure aborts.
func Aggregate(ctx context.Context, src BillingSource, period Period, tag awsclient.Tag) (*ServiceCosts, error) {
	buckets, err := src.GetServiceCosts(ctx, period.Start, period.End, tag)
	if err != nil {
		return nil, fmt.Errorf("querying billing data: %w", err)
	}

	costs := NewServiceCosts()
	for _, bucket := range buckets {
		for _, group := range bucket.Groups {
			amount, err := decimal.NewFromString(group.Amount)
			if err != nil {
				return nil, fmt.Errorf("parsing cost %q for %s: %w", group.Amount, group.Service, err)
			}
			costs.Add(group.Service, amount)
		}
	}
	return costs, nil
}
