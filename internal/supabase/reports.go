package supabase

import (
	"fmt"
	"time"

	"shootflow-backend/internal/models"
)

// ReportSummary feeds the admin dashboard: shoot counts per status, open
// issue count, and quoted-vs-paid revenue totals.
func (d *DatabaseClient) ReportSummary(now time.Time) (*models.ReportSummaryResponse, error) {
	summary := &models.ReportSummaryResponse{
		ShootsByStatus: make(map[string]int),
	}

	rows, err := d.db.Query(`SELECT status, COUNT(*) FROM shoots GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count shoots by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		summary.ShootsByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = d.db.QueryRow(`
		SELECT COUNT(*) FROM issues WHERE status IN ('open', 'in-progress')
	`).Scan(&summary.OpenIssues)
	if err != nil {
		return nil, fmt.Errorf("failed to count open issues: %w", err)
	}

	err = d.db.QueryRow(`
		SELECT COALESCE(SUM(total_quote), 0), COALESCE(SUM(total_paid), 0) FROM shoots
	`).Scan(&summary.TotalQuoted, &summary.TotalPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	weekStart := now.AddDate(0, 0, -int(now.Weekday()))
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, now.Location())
	err = d.db.QueryRow(`
		SELECT COUNT(*) FROM shoots WHERE scheduled_date >= $1 AND scheduled_date < $2
	`, weekStart, weekStart.AddDate(0, 0, 7)).Scan(&summary.ShootsThisWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to count weekly shoots: %w", err)
	}

	return summary, nil
}
