package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/techqilla/ems-backend-go/internal/domain/salary"
	"github.com/techqilla/ems-backend-go/internal/pkg/database"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

const salarySelect = `
	SELECT s.id, s.employee_id, s.basic_salary, s.allowances, s.deductions, s.net_salary,
		s.pay_date, s.created_at, s.updated_at,
		u.name, e.employee_code
	FROM salaries s
	JOIN employees e ON e.id = s.employee_id
	JOIN users u ON u.id = e.user_id
`

func scanSalary(row pgx.Row) (salary.Salary, error) {
	var s salary.Salary
	err := row.Scan(
		&s.ID,
		&s.EmployeeID,
		&s.BasicSalary,
		&s.Allowances,
		&s.Deductions,
		&s.NetSalary,
		&s.PayDate,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.EmployeeName,
		&s.EmployeeCode,
	)
	return s, err
}

// Create implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Create(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salaries (id, employee_id, basic_salary, allowances, deductions, net_salary, pay_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id
	`

	var createdID string
	err := q.QueryRow(ctx, query,
		s.ID,
		s.EmployeeID,
		s.BasicSalary,
		s.Allowances,
		s.Deductions,
		s.NetSalary,
		s.PayDate,
	).Scan(&createdID)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to create salary record: %w", err)
	}

	return r.GetByID(ctx, createdID)
}

// GetByID implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByID(ctx context.Context, id string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSalary(q.QueryRow(ctx, salarySelect+` WHERE s.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary record %s: %w", id, err)
	}

	return s, nil
}

// ListByEmployee implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, salarySelect+` WHERE s.employee_id = $1 ORDER BY s.pay_date DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	var salaries []salary.Salary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		salaries = append(salaries, s)
	}

	return salaries, rows.Err()
}
