package repos

import (
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type StatsRepo struct{ db *sqlx.DB }

func NewStatsRepo(db *sqlx.DB) *StatsRepo { return &StatsRepo{db: db} }

func (r *StatsRepo) count(query string, args ...any) (int, error) {
	var n int
	err := r.db.Get(&n, query, args...)
	return n, err
}

func (r *StatsRepo) sum(query string, args ...any) (decimal.Decimal, error) {
	var v float64
	if err := r.db.Get(&v, query, args...); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(v), nil
}

func (r *StatsRepo) TotalUsers() (int, error) {
	return r.count(`SELECT COUNT(*) FROM users`)
}

// UsersWithRole counts users holding the named role; 0 if the role is absent.
func (r *StatsRepo) UsersWithRole(roleName string) (int, error) {
	return r.count(`
	  SELECT COUNT(*) FROM users u
	  JOIN roles r ON r.id = u.role_id
	  WHERE r.name = ?`, roleName)
}

// ActiveSellers counts distinct users with at least one listing.
func (r *StatsRepo) ActiveSellers() (int, error) {
	return r.count(`SELECT COUNT(DISTINCT user_id) FROM items`)
}

// ActiveBuyers counts distinct users with at least one order placed.
func (r *StatsRepo) ActiveBuyers() (int, error) {
	return r.count(`SELECT COUNT(DISTINCT buyer_id) FROM orders`)
}

func (r *StatsRepo) TotalOrders() (int, error) {
	return r.count(`SELECT COUNT(*) FROM orders`)
}

func (r *StatsRepo) OrdersInYear(year string) (int, error) {
	return r.count(`SELECT COUNT(*) FROM orders WHERE strftime('%Y', created_at) = ?`, year)
}

func (r *StatsRepo) OrdersInMonth(year, month string) (int, error) {
	return r.count(`
	  SELECT COUNT(*) FROM orders
	  WHERE strftime('%Y', created_at) = ? AND strftime('%m', created_at) = ?`, year, month)
}

func (r *StatsRepo) TotalProfit() (decimal.Decimal, error) {
	return r.sum(`SELECT COALESCE(SUM(total), 0) FROM orders`)
}

func (r *StatsRepo) ProfitInYear(year string) (decimal.Decimal, error) {
	return r.sum(`SELECT COALESCE(SUM(total), 0) FROM orders WHERE strftime('%Y', created_at) = ?`, year)
}

func (r *StatsRepo) ProfitInMonth(year, month string) (decimal.Decimal, error) {
	return r.sum(`
	  SELECT COALESCE(SUM(total), 0) FROM orders
	  WHERE strftime('%Y', created_at) = ? AND strftime('%m', created_at) = ?`, year, month)
}
