package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/techqilla/ems-backend-go/internal/domain/dashboard"
	"github.com/techqilla/ems-backend-go/internal/domain/employee"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	employee.EmployeeRepository
	loc *time.Location
	now func() time.Time
}

func NewDashboardService(dashboardRepo dashboard.DashboardRepository, employeeRepo employee.EmployeeRepository, loc *time.Location) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: dashboardRepo,
		EmployeeRepository:  employeeRepo,
		loc:                 loc,
		now:                 time.Now,
	}
}

// AdminSummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) AdminSummary(ctx context.Context) (dashboard.AdminSummary, error) {
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	return s.DashboardRepository.AdminSummary(ctx, today)
}

// EmployeeSummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) EmployeeSummary(ctx context.Context) (dashboard.EmployeeSummary, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return dashboard.EmployeeSummary{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return dashboard.EmployeeSummary{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	e, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return dashboard.EmployeeSummary{}, err
	}

	return s.DashboardRepository.EmployeeSummary(ctx, e.ID, s.now().In(s.loc))
}
