package services

import (
	"time"

	"github.com/shopspring/decimal"

	"resellit/internal/apperr"
	"resellit/internal/repos"
)

type StatsService struct {
	stats *repos.StatsRepo
}

func NewStatsService(stats *repos.StatsRepo) *StatsService {
	return &StatsService{stats: stats}
}

// Statistics is the marketplace health snapshot served to admins.
type Statistics struct {
	TotalUsers    int             `json:"total_users"`
	TotalSellers  int             `json:"total_sellers"`
	TotalBuyers   int             `json:"total_buyers"`
	ActiveSellers int             `json:"active_sellers"`
	ActiveBuyers  int             `json:"active_buyers"`
	TotalOrders   int             `json:"total_orders"`
	OrdersYear    int             `json:"orders_year"`
	OrdersMonth   int             `json:"orders_month"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	ProfitYear    decimal.Decimal `json:"profit_year"`
	ProfitMonth   decimal.Decimal `json:"profit_month"`
	LastUpdated   string          `json:"last_updated"`
}

func (s *StatsService) Snapshot() (Statistics, error) {
	now := time.Now().UTC()
	year := now.Format("2006")
	month := now.Format("01")

	var (
		out Statistics
		err error
	)
	step := func(f func() error) {
		if err == nil {
			err = f()
		}
	}
	step(func() (e error) { out.TotalUsers, e = s.stats.TotalUsers(); return })
	step(func() (e error) { out.TotalSellers, e = s.stats.UsersWithRole("seller"); return })
	step(func() (e error) { out.TotalBuyers, e = s.stats.UsersWithRole("buyer"); return })
	step(func() (e error) { out.ActiveSellers, e = s.stats.ActiveSellers(); return })
	step(func() (e error) { out.ActiveBuyers, e = s.stats.ActiveBuyers(); return })
	step(func() (e error) { out.TotalOrders, e = s.stats.TotalOrders(); return })
	step(func() (e error) { out.OrdersYear, e = s.stats.OrdersInYear(year); return })
	step(func() (e error) { out.OrdersMonth, e = s.stats.OrdersInMonth(year, month); return })
	step(func() (e error) { out.TotalProfit, e = s.stats.TotalProfit(); return })
	step(func() (e error) { out.ProfitYear, e = s.stats.ProfitInYear(year); return })
	step(func() (e error) { out.ProfitMonth, e = s.stats.ProfitInMonth(year, month); return })
	if err != nil {
		return Statistics{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	out.LastUpdated = now.Format(time.RFC3339)
	return out, nil
}
