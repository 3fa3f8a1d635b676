package salary

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/techqilla/ems-backend-go/internal/domain/employee"
	"github.com/techqilla/ems-backend-go/internal/domain/salary"
)

type SalaryServiceImpl struct {
	salary.SalaryRepository
	employee.EmployeeRepository
	loc *time.Location
}

func NewSalaryService(salaryRepo salary.SalaryRepository, employeeRepo employee.EmployeeRepository, loc *time.Location) salary.SalaryService {
	return &SalaryServiceImpl{
		SalaryRepository:   salaryRepo,
		EmployeeRepository: employeeRepo,
		loc:                loc,
	}
}

func mapSalaryToResponse(s salary.Salary) salary.SalaryResponse {
	return salary.SalaryResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		EmployeeCode: s.EmployeeCode,
		BasicSalary:  s.BasicSalary,
		Allowances:   s.Allowances,
		Deductions:   s.Deductions,
		NetSalary:    s.NetSalary,
		PayDate:      s.PayDate.Format("2006-01-02"),
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
	}
}

// Add implements salary.SalaryService.
func (s *SalaryServiceImpl) Add(ctx context.Context, req salary.AddSalaryRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return salary.SalaryResponse{}, err
	}

	payDate, _ := time.ParseInLocation("2006-01-02", req.PayDate, s.loc)

	created, err := s.SalaryRepository.Create(ctx, salary.Salary{
		ID:          uuid.New().String(),
		EmployeeID:  req.EmployeeID,
		BasicSalary: req.BasicSalary,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		NetSalary:   salary.Net(req.BasicSalary, req.Allowances, req.Deductions),
		PayDate:     payDate,
	})
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	return mapSalaryToResponse(created), nil
}

// History implements salary.SalaryService.
func (s *SalaryServiceImpl) History(ctx context.Context, employeeID string) ([]salary.SalaryResponse, error) {
	records, err := s.SalaryRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]salary.SalaryResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapSalaryToResponse(record))
	}
	return responses, nil
}

// MyHistory implements salary.SalaryService.
func (s *SalaryServiceImpl) MyHistory(ctx context.Context) ([]salary.SalaryResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("user_id claim is missing or invalid")
	}

	e, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.History(ctx, e.ID)
}
