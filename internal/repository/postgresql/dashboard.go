package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/techqilla/ems-backend-go/internal/domain/dashboard"
	"github.com/techqilla/ems-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// AdminSummary implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) AdminSummary(ctx context.Context, today time.Time) (dashboard.AdminSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees WHERE is_active),
			(SELECT COUNT(*) FROM departments),
			(SELECT COALESCE(SUM(net_salary), 0) FROM salaries),
			(SELECT COUNT(*) FROM leaves WHERE status = 'pending'),
			(SELECT COUNT(*) FROM leaves WHERE status = 'approved'),
			(SELECT COUNT(*) FROM leaves WHERE status = 'rejected'),
			(SELECT COUNT(*) FROM attendances WHERE date = $1 AND status = 'present'),
			(SELECT COUNT(*) FROM attendances WHERE date = $1 AND status = 'absent'),
			(SELECT COUNT(*) FROM attendances WHERE date = $1 AND status IN ('leave', 'half-day')),
			(SELECT COUNT(*) FROM attendances WHERE date = $1 AND status = 'late')
	`

	var s dashboard.AdminSummary
	err := q.QueryRow(ctx, query, today).Scan(
		&s.TotalEmployees,
		&s.TotalDepartments,
		&s.TotalSalaryPaid,
		&s.PendingLeaves,
		&s.ApprovedLeaves,
		&s.RejectedLeaves,
		&s.PresentToday,
		&s.AbsentToday,
		&s.OnLeaveToday,
		&s.LateToday,
	)
	if err != nil {
		return dashboard.AdminSummary{}, fmt.Errorf("failed to compute admin summary: %w", err)
	}

	shiftQuery := `
		SELECT s.display_name, COUNT(e.id)
		FROM shifts s
		LEFT JOIN employees e ON e.shift_id = s.id AND e.is_active
		GROUP BY s.display_name
	`

	rows, err := q.Query(ctx, shiftQuery)
	if err != nil {
		return dashboard.AdminSummary{}, fmt.Errorf("failed to count employees per shift: %w", err)
	}
	defer rows.Close()

	s.EmployeesPerShift = make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return dashboard.AdminSummary{}, fmt.Errorf("failed to scan shift count: %w", err)
		}
		s.EmployeesPerShift[name] = count
	}

	return s, rows.Err()
}

// EmployeeSummary implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) EmployeeSummary(ctx context.Context, employeeID string, now time.Time) (dashboard.EmployeeSummary, error) {
	q := GetQuerier(ctx, r.db)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	query := `
		SELECT
			(SELECT COUNT(*) FROM attendances
				WHERE employee_id = $1 AND date >= $2 AND date <= $3 AND status IN ('present', 'late')),
			(SELECT COUNT(*) FROM attendances
				WHERE employee_id = $1 AND date >= $2 AND date <= $3 AND status = 'late'),
			(SELECT COALESCE(SUM(total_days), 0) FROM leaves
				WHERE employee_id = $1 AND status = 'approved' AND EXTRACT(YEAR FROM from_date) = $4),
			(SELECT COUNT(*) FROM leaves
				WHERE employee_id = $1 AND status = 'pending'),
			(SELECT COALESCE(ROUND(AVG(working_hours)::numeric, 2), 0) FROM attendances
				WHERE employee_id = $1 AND date >= $2 AND date <= $3)
	`

	var s dashboard.EmployeeSummary
	err := q.QueryRow(ctx, query, employeeID, monthStart, now, now.Year()).Scan(
		&s.DaysPresentThisMonth,
		&s.DaysLateThisMonth,
		&s.LeavesTakenThisYear,
		&s.PendingLeaves,
		&s.AvgWorkingHours,
	)
	if err != nil {
		return dashboard.EmployeeSummary{}, fmt.Errorf("failed to compute employee summary: %w", err)
	}

	return s, nil
}
