package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/techqilla/ems-backend-go/internal/domain/attendance"
	"github.com/techqilla/ems-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, employee_id, date, status, check_in, check_out, working_hours,
	is_late, late_by_minutes, leave_id, remarks, is_manual_entry, marked_by, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.Date,
		&a.Status,
		&a.CheckIn,
		&a.CheckOut,
		&a.WorkingHours,
		&a.IsLate,
		&a.LateByMinutes,
		&a.LeaveID,
		&a.Remarks,
		&a.IsManualEntry,
		&a.MarkedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance %s: %w", id, err)
	}

	return a, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 AND date = $2`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance for employee %s on %s: %w",
			employeeID, date.Format("2006-01-02"), err)
	}

	return a, nil
}

// CheckIn implements attendance.AttendanceRepository.
//
// The UNIQUE(employee_id, date) constraint arbitrates concurrent
// check-ins: the conflict branch only claims rows that have no check_in
// yet, so the loser of a race gets zero rows back and is told the slot
// is taken.
func (r *attendanceRepositoryImpl) CheckIn(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, employee_id, date, status, check_in, is_late, late_by_minutes,
			is_manual_entry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, NOW(), NOW())
		ON CONFLICT (employee_id, date) DO UPDATE
		SET status = EXCLUDED.status,
			check_in = EXCLUDED.check_in,
			is_late = EXCLUDED.is_late,
			late_by_minutes = EXCLUDED.late_by_minutes,
			updated_at = NOW()
		WHERE attendances.check_in IS NULL AND attendances.leave_id IS NULL
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		a.ID,
		a.EmployeeID,
		a.Date,
		a.Status,
		a.CheckIn,
		a.IsLate,
		a.LateByMinutes,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	return created, nil
}

// UpdateCheckout implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateCheckout(ctx context.Context, id string, checkOut time.Time, workingHours float64, status attendance.Status) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $1, working_hours = $2, status = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query, checkOut, workingHours, status, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to record checkout for attendance %s: %w", id, err)
	}

	return updated, nil
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, employee_id, date, status, check_in, check_out, working_hours,
			is_late, late_by_minutes, leave_id, remarks, is_manual_entry, marked_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		ON CONFLICT (employee_id, date) DO UPDATE
		SET status = EXCLUDED.status,
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			working_hours = EXCLUDED.working_hours,
			is_late = EXCLUDED.is_late,
			late_by_minutes = EXCLUDED.late_by_minutes,
			leave_id = EXCLUDED.leave_id,
			remarks = EXCLUDED.remarks,
			is_manual_entry = EXCLUDED.is_manual_entry,
			marked_by = EXCLUDED.marked_by,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	upserted, err := scanAttendance(q.QueryRow(ctx, query,
		a.ID,
		a.EmployeeID,
		a.Date,
		a.Status,
		a.CheckIn,
		a.CheckOut,
		a.WorkingHours,
		a.IsLate,
		a.LateByMinutes,
		a.LeaveID,
		a.Remarks,
		a.IsManualEntry,
		a.MarkedBy,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance for employee %s on %s: %w",
			a.EmployeeID, a.Date.Format("2006-01-02"), err)
	}

	return upserted, nil
}

// DeleteLeaveGenerated implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DeleteLeaveGenerated(ctx context.Context, employeeID string, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM attendances
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		  AND status IN ('leave', 'half-day')
		  AND is_manual_entry = false
	`

	tag, err := q.Exec(ctx, query, employeeID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to delete leave-generated attendance for employee %s: %w", employeeID, err)
	}

	return tag.RowsAffected(), nil
}

// ListOpenSince implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListOpenSince(ctx context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE check_in IS NOT NULL AND check_in <= $1 AND check_out IS NULL
		ORDER BY check_in ASC
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance sessions: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.Attendance, int, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"employee_id = $1"}
	args := []interface{}{filter.EmployeeID}
	argIdx := 2

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance history: %w", err)
	}

	query := `SELECT ` + attendanceColumns + ` FROM attendances` + whereClause +
		fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance history: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, total, rows.Err()
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.date = $1"}
	args := []interface{}{filter.Date}
	argIdx := 2

	if filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, filter.DepartmentID)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(u.name ILIKE $%d OR e.employee_code ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	joinClause := `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		JOIN users u ON u.id = e.user_id
		JOIN shifts s ON s.id = e.shift_id
	`

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*)`+joinClause+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance roster: %w", err)
	}

	query := `
		SELECT a.id, a.employee_id, a.date, a.status, a.check_in, a.check_out, a.working_hours,
			a.is_late, a.late_by_minutes, a.leave_id, a.remarks, a.is_manual_entry, a.marked_by,
			a.created_at, a.updated_at,
			u.name, e.employee_code, s.display_name
	` + joinClause + whereClause +
		fmt.Sprintf(" ORDER BY e.employee_code ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance roster: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID,
			&a.EmployeeID,
			&a.Date,
			&a.Status,
			&a.CheckIn,
			&a.CheckOut,
			&a.WorkingHours,
			&a.IsLate,
			&a.LateByMinutes,
			&a.LeaveID,
			&a.Remarks,
			&a.IsManualEntry,
			&a.MarkedBy,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.EmployeeName,
			&a.EmployeeCode,
			&a.ShiftName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, total, rows.Err()
}

// StatsByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) StatsByEmployee(ctx context.Context, employeeID string, from, to time.Time) (attendance.StatsResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'absent'),
			COUNT(*) FILTER (WHERE status = 'half-day'),
			COUNT(*) FILTER (WHERE status = 'leave'),
			COUNT(*) FILTER (WHERE status = 'late'),
			COALESCE(ROUND(AVG(working_hours)::numeric, 2), 0)
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
	`

	var stats attendance.StatsResponse
	err := q.QueryRow(ctx, query, employeeID, from, to).Scan(
		&stats.TotalDays,
		&stats.PresentDays,
		&stats.AbsentDays,
		&stats.HalfDays,
		&stats.LeaveDays,
		&stats.LateDays,
		&stats.AvgWorkingHours,
	)
	if err != nil {
		return attendance.StatsResponse{}, fmt.Errorf("failed to compute attendance stats for employee %s: %w", employeeID, err)
	}

	return stats, nil
}
