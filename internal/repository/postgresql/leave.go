package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/techqilla/ems-backend-go/internal/domain/leave"
	"github.com/techqilla/ems-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveSelect = `
	SELECT l.id, l.employee_id, l.type, l.from_date, l.end_date, l.total_days, l.is_half_day,
		l.half_day_period, l.reason, l.status, l.admin_comments, l.reviewed_by, l.reviewed_date,
		l.created_at, l.updated_at,
		u.name, e.employee_code, d.name
	FROM leaves l
	JOIN employees e ON e.id = l.employee_id
	JOIN users u ON u.id = e.user_id
	JOIN departments d ON d.id = e.department_id
`

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID,
		&l.EmployeeID,
		&l.Type,
		&l.FromDate,
		&l.EndDate,
		&l.TotalDays,
		&l.IsHalfDay,
		&l.HalfDayPeriod,
		&l.Reason,
		&l.Status,
		&l.AdminComments,
		&l.ReviewedBy,
		&l.ReviewedDate,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.EmployeeName,
		&l.EmployeeCode,
		&l.DepartmentName,
	)
	return l, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (id, employee_id, type, from_date, end_date, total_days, is_half_day,
			half_day_period, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id
	`

	var createdID string
	err := q.QueryRow(ctx, query,
		l.ID,
		l.EmployeeID,
		l.Type,
		l.FromDate,
		l.EndDate,
		l.TotalDays,
		l.IsHalfDay,
		l.HalfDayPeriod,
		l.Reason,
		l.Status,
	).Scan(&createdID)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return r.GetByID(ctx, createdID)
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLeave(q.QueryRow(ctx, leaveSelect+` WHERE l.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave request %s: %w", id, err)
	}

	return l, nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.ListFilter) ([]leave.Leave, int, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("l.employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("l.status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("l.type = $%d", argIdx))
		args = append(args, filter.Type)
		argIdx++
	}
	if filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, filter.DepartmentID)
		argIdx++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM l.from_date) = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `
		SELECT COUNT(*)
		FROM leaves l
		JOIN employees e ON e.id = l.employee_id
	` + whereClause

	var total int
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := leaveSelect + whereClause +
		fmt.Sprintf(" ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		leaves = append(leaves, l)
	}

	return leaves, total, rows.Err()
}

// UpdateStatus implements leave.LeaveRepository.
//
// The WHERE status = 'pending' guard makes each review a single-shot
// transition: a second reviewer gets zero rows and ErrAlreadyReviewed.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, adminComments *string, reviewedBy string, reviewedDate time.Time) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $1, admin_comments = $2, reviewed_by = $3, reviewed_date = $4, updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, status, adminComments, reviewedBy, reviewedDate, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Missing or already reviewed; disambiguate for the caller.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return leave.Leave{}, getErr
			}
			return leave.Leave{}, leave.ErrAlreadyReviewed
		}
		return leave.Leave{}, fmt.Errorf("failed to update leave request %s: %w", id, err)
	}

	return r.GetByID(ctx, updatedID)
}

// UsedDaysInYear implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) UsedDaysInYear(ctx context.Context, employeeID string, year int) (leave.UsedDays, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT type, COALESCE(SUM(total_days), 0)
		FROM leaves
		WHERE employee_id = $1
		  AND status IN ('pending', 'approved')
		  AND EXTRACT(YEAR FROM from_date) = $2
		GROUP BY type
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum used leave days: %w", err)
	}
	defer rows.Close()

	used := leave.UsedDays{}
	for rows.Next() {
		var t leave.Type
		var days float64
		if err := rows.Scan(&t, &days); err != nil {
			return nil, fmt.Errorf("failed to scan used leave days: %w", err)
		}
		used[t] = days
	}

	return used, rows.Err()
}

// MonthlyUsedDays implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) MonthlyUsedDays(ctx context.Context, employeeID string, year int) (map[int]map[leave.Type]float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXTRACT(MONTH FROM from_date)::int, type, COALESCE(SUM(total_days), 0)
		FROM leaves
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND EXTRACT(YEAR FROM from_date) = $2
		GROUP BY 1, 2
		ORDER BY 1
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly leave usage: %w", err)
	}
	defer rows.Close()

	usage := make(map[int]map[leave.Type]float64)
	for rows.Next() {
		var month int
		var t leave.Type
		var days float64
		if err := rows.Scan(&month, &t, &days); err != nil {
			return nil, fmt.Errorf("failed to scan monthly leave usage: %w", err)
		}
		if usage[month] == nil {
			usage[month] = make(map[leave.Type]float64)
		}
		usage[month][t] = days
	}

	return usage, rows.Err()
}
