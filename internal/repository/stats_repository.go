package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardStats holds the admin dashboard counters.
type DashboardStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	ActiveDonors      int64 `json:"activeDonors"`
	PendingRequests   int64 `json:"pendingRequests"`
	EmergencyRequests int64 `json:"emergencyRequests"`
}

// DistributionRow is one bucket of a grouped count.
type DistributionRow struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// MonthlyCount is one month's request volume.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// Analytics aggregates chart data for the admin dashboard.
type Analytics struct {
	BloodTypeDistribution []DistributionRow `json:"bloodTypeDistribution"`
	UrgencyDistribution   []DistributionRow `json:"urgencyDistribution"`
	StatusDistribution    []DistributionRow `json:"statusDistribution"`
	MonthlyTrends         []MonthlyCount    `json:"monthlyTrends"`
}

// StatsRepository runs aggregate queries for the admin dashboard.
type StatsRepository interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Analytics(ctx context.Context, since time.Time) (*Analytics, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository instantiates repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) Dashboard(ctx context.Context) (*DashboardStats, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM users),
            (SELECT COUNT(*) FROM donors WHERE is_available),
            (SELECT COUNT(*) FROM blood_requests WHERE status='pending'),
            (SELECT COUNT(*) FROM blood_requests WHERE status='pending' AND urgency='emergency')`

	var stats DashboardStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalUsers,
		&stats.ActiveDonors,
		&stats.PendingRequests,
		&stats.EmergencyRequests,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepository) Analytics(ctx context.Context, since time.Time) (*Analytics, error) {
	analytics := &Analytics{}

	var err error
	analytics.BloodTypeDistribution, err = r.distribution(ctx,
		`SELECT blood_type, COUNT(*) FROM donors GROUP BY blood_type ORDER BY blood_type`)
	if err != nil {
		return nil, err
	}
	analytics.UrgencyDistribution, err = r.distribution(ctx,
		`SELECT urgency, COUNT(*) FROM blood_requests GROUP BY urgency ORDER BY urgency`)
	if err != nil {
		return nil, err
	}
	analytics.StatusDistribution, err = r.distribution(ctx,
		`SELECT status, COUNT(*) FROM blood_requests GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
        SELECT to_char(created_at, 'YYYY-MM') AS month, COUNT(*)
        FROM blood_requests WHERE created_at >= $1
        GROUP BY month ORDER BY month`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var mc MonthlyCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		analytics.MonthlyTrends = append(analytics.MonthlyTrends, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return analytics, nil
}

func (r *statsRepository) distribution(ctx context.Context, query string) ([]DistributionRow, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDistribution(rows)
}

func scanDistribution(rows pgx.Rows) ([]DistributionRow, error) {
	var result []DistributionRow
	for rows.Next() {
		var row DistributionRow
		if err := rows.Scan(&row.Key, &row.Count); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
