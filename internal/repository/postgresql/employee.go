package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/techqilla/ems-backend-go/internal/domain/employee"
	"github.com/techqilla/ems-backend-go/internal/domain/shift"
	"github.com/techqilla/ems-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.user_id, e.employee_code, e.phone, e.gender, e.date_of_birth, e.date_of_joining,
		e.designation, e.department_id, e.shift_id, e.base_salary, e.profile_image, e.is_active,
		e.created_at, e.updated_at,
		u.name, u.email, u.role,
		d.name,
		s.id, s.name, s.display_name, s.start_time, s.end_time, s.grace_minutes, s.minimum_hours, s.is_active, s.created_at, s.updated_at
	FROM employees e
	JOIN users u ON u.id = e.user_id
	JOIN departments d ON d.id = e.department_id
	JOIN shifts s ON s.id = e.shift_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var s shift.Shift
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.EmployeeCode,
		&e.Phone,
		&e.Gender,
		&e.DateOfBirth,
		&e.DateOfJoining,
		&e.Designation,
		&e.DepartmentID,
		&e.ShiftID,
		&e.BaseSalary,
		&e.ProfileImage,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.Name,
		&e.Email,
		&e.Role,
		&e.DepartmentName,
		&s.ID,
		&s.Name,
		&s.DisplayName,
		&s.StartTime,
		&s.EndTime,
		&s.GraceMinutes,
		&s.MinimumHours,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	e.Shift = &s
	return e, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, user_id, employee_code, phone, gender, date_of_birth, date_of_joining,
			designation, department_id, shift_id, base_salary, profile_image, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id
	`

	var createdID string
	err := q.QueryRow(ctx, query,
		e.ID,
		e.UserID,
		e.EmployeeCode,
		e.Phone,
		e.Gender,
		e.DateOfBirth,
		e.DateOfJoining,
		e.Designation,
		e.DepartmentID,
		e.ShiftID,
		e.BaseSalary,
		e.ProfileImage,
		e.IsActive,
	).Scan(&createdID)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return r.GetByID(ctx, createdID)
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}

	return e, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.user_id = $1`, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user %s: %w", userID, err)
	}

	return e, nil
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.employee_code = $1`, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code %s: %w", code, err)
	}

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, filter.DepartmentID)
		argIdx++
	}
	if filter.ShiftID != "" {
		conditions = append(conditions, fmt.Sprintf("e.shift_id = $%d", argIdx))
		args = append(args, filter.ShiftID)
		argIdx++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(u.name ILIKE $%d OR e.employee_code ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("e.is_active = $%d", argIdx))
		args = append(args, *filter.IsActive)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `
		SELECT COUNT(*)
		FROM employees e
		JOIN users u ON u.id = e.user_id
	` + whereClause

	var total int
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := employeeSelect + whereClause + fmt.Sprintf(" ORDER BY e.employee_code ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, total, rows.Err()
}

// ListActiveByShift implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActiveByShift(ctx context.Context, shiftID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, employeeSelect+` WHERE e.shift_id = $1 AND e.is_active`, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by shift %s: %w", shiftID, err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET phone = $1, gender = $2, date_of_birth = $3, designation = $4,
			department_id = $5, shift_id = $6, base_salary = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		e.Phone,
		e.Gender,
		e.DateOfBirth,
		e.Designation,
		e.DepartmentID,
		e.ShiftID,
		e.BaseSalary,
		e.IsActive,
		e.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee %s: %w", e.ID, err)
	}

	return r.GetByID(ctx, updatedID)
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdateProfileImage implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateProfileImage(ctx context.Context, id string, imageURL string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET profile_image = $1, updated_at = NOW() WHERE id = $2`, imageURL, id)
	if err != nil {
		return fmt.Errorf("failed to update profile image for employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
