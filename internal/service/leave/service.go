package leave

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/techqilla/ems-backend-go/internal/domain/attendance"
	"github.com/techqilla/ems-backend-go/internal/domain/employee"
	"github.com/techqilla/ems-backend-go/internal/domain/leave"
	"github.com/techqilla/ems-backend-go/internal/pkg/database"
	"github.com/techqilla/ems-backend-go/internal/pkg/email"
	"github.com/techqilla/ems-backend-go/internal/repository/postgresql"
)

const autoMarkRemarks = "Auto-marked due to approved leave"

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRepository
	employee.EmployeeRepository
	attendance.AttendanceRepository
	emailService email.EmailService
	adminEmail   string
	loc          *time.Location
	now          func() time.Time
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	emailService email.EmailService,
	adminEmail string,
	loc *time.Location,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                   db,
		LeaveRepository:      leaveRepo,
		EmployeeRepository:   employeeRepo,
		AttendanceRepository: attendanceRepo,
		emailService:         emailService,
		adminEmail:           adminEmail,
		loc:                  loc,
		now:                  time.Now,
	}
}

func mapLeaveToResponse(l leave.Leave) leave.LeaveResponse {
	resp := leave.LeaveResponse{
		ID:             l.ID,
		EmployeeID:     l.EmployeeID,
		EmployeeName:   l.EmployeeName,
		EmployeeCode:   l.EmployeeCode,
		DepartmentName: l.DepartmentName,
		Type:           string(l.Type),
		FromDate:       l.FromDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		TotalDays:      l.TotalDays,
		IsHalfDay:      l.IsHalfDay,
		Reason:         l.Reason,
		Status:         string(l.Status),
		AdminComments:  l.AdminComments,
		ReviewedBy:     l.ReviewedBy,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
	}
	if l.HalfDayPeriod != nil {
		period := string(*l.HalfDayPeriod)
		resp.HalfDayPeriod = &period
	}
	if l.ReviewedDate != nil {
		reviewed := l.ReviewedDate.Format(time.RFC3339)
		resp.ReviewedDate = &reviewed
	}
	return resp
}

func (s *LeaveServiceImpl) currentEmployee(ctx context.Context) (employee.Employee, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return employee.Employee{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	return s.EmployeeRepository.GetByUserID(ctx, userID)
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	e, err := s.currentEmployee(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	fromDate, _ := time.ParseInLocation("2006-01-02", req.FromDate, s.loc)
	endDate, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.loc)

	if endDate.Before(fromDate) {
		return leave.LeaveResponse{}, leave.ErrInvalidDateRange
	}
	if req.IsHalfDay && !fromDate.Equal(endDate) {
		return leave.LeaveResponse{}, leave.ErrHalfDaySingleDate
	}

	totalDays := leave.TotalDays(fromDate, endDate, req.IsHalfDay)
	leaveType := leave.Type(req.Type)

	now := s.now().In(s.loc)
	allowance := leave.AccruedAllowance(e.DateOfJoining, now)
	used, err := s.LeaveRepository.UsedDaysInYear(ctx, e.ID, now.Year())
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if used[leaveType]+totalDays > allowance {
		return leave.LeaveResponse{}, leave.ErrInsufficientBalance
	}

	newLeave := leave.Leave{
		ID:         uuid.New().String(),
		EmployeeID: e.ID,
		Type:       leaveType,
		FromDate:   fromDate,
		EndDate:    endDate,
		TotalDays:  totalDays,
		IsHalfDay:  req.IsHalfDay,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	}
	if req.HalfDayPeriod != nil {
		period := leave.HalfDayPeriod(*req.HalfDayPeriod)
		newLeave.HalfDayPeriod = &period
	}

	created, err := s.LeaveRepository.Create(ctx, newLeave)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if s.adminEmail != "" {
		if err := s.emailService.SendLeaveApplication(s.adminEmail, email.LeaveApplicationData{
			EmployeeName: created.EmployeeName,
			EmployeeCode: created.EmployeeCode,
			Department:   created.DepartmentName,
			LeaveType:    string(created.Type),
			FromDate:     created.FromDate.Format("2006-01-02"),
			EndDate:      created.EndDate.Format("2006-01-02"),
			TotalDays:    created.TotalDays,
			Reason:       created.Reason,
			IsHalfDay:    created.IsHalfDay,
		}); err != nil {
			slog.Warn("failed to send leave application email", "leave_id", created.ID, "error", err)
		}
	}

	return mapLeaveToResponse(created), nil
}

// GetByID implements leave.LeaveService.
func (s *LeaveServiceImpl) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	l, err := s.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return mapLeaveToResponse(l), nil
}

// MyLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) MyLeaves(ctx context.Context, filter leave.ListFilter) (leave.ListResponse, error) {
	e, err := s.currentEmployee(ctx)
	if err != nil {
		return leave.ListResponse{}, err
	}
	filter.EmployeeID = e.ID

	return s.List(ctx, filter)
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.ListFilter) (leave.ListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	leaves, total, err := s.LeaveRepository.List(ctx, filter)
	if err != nil {
		return leave.ListResponse{}, err
	}

	items := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		items = append(items, mapLeaveToResponse(l))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	start := 0
	end := 0
	if len(items) > 0 {
		start = (filter.Page-1)*filter.Limit + 1
		end = start + len(items) - 1
	}

	return leave.ListResponse{
		Items: items,
		Pagination: leave.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalItems: total,
			TotalPages: totalPages,
			Showing:    fmt.Sprintf("showing %d-%d of %d", start, end, total),
		},
	}, nil
}

// Balance implements leave.LeaveService.
func (s *LeaveServiceImpl) Balance(ctx context.Context) (leave.BalanceResponse, error) {
	e, err := s.currentEmployee(ctx)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	now := s.now().In(s.loc)
	allowance := leave.AccruedAllowance(e.DateOfJoining, now)

	used, err := s.LeaveRepository.UsedDaysInYear(ctx, e.ID, now.Year())
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	balanceFor := func(t leave.Type) leave.TypeBalance {
		return leave.TypeBalance{
			Allowed:   allowance,
			Used:      used[t],
			Remaining: allowance - used[t],
		}
	}

	return leave.BalanceResponse{
		Year:   now.Year(),
		Sick:   balanceFor(leave.TypeSick),
		Casual: balanceFor(leave.TypeCasual),
	}, nil
}

// Breakdown implements leave.LeaveService.
func (s *LeaveServiceImpl) Breakdown(ctx context.Context) (leave.BreakdownResponse, error) {
	e, err := s.currentEmployee(ctx)
	if err != nil {
		return leave.BreakdownResponse{}, err
	}

	now := s.now().In(s.loc)
	usage, err := s.LeaveRepository.MonthlyUsedDays(ctx, e.ID, now.Year())
	if err != nil {
		return leave.BreakdownResponse{}, err
	}

	resp := leave.BreakdownResponse{Year: now.Year()}
	for month := 1; month <= 12; month++ {
		entry := leave.MonthUsage{Month: time.Month(month).String()}
		if byType, ok := usage[month]; ok {
			entry.Sick = byType[leave.TypeSick]
			entry.Casual = byType[leave.TypeCasual]
		}
		resp.Months = append(resp.Months, entry)
	}

	return resp, nil
}

// Review implements leave.LeaveService.
//
// Approval writes one attendance row per literal calendar date of the
// leave range; check-in records are keyed by shift day instead. The
// two keying schemes coexist on purpose: a night worker's session row
// and a leave row for the same calendar date answer different
// questions.
func (s *LeaveServiceImpl) Review(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	reviewedBy, ok := claims["user_id"].(string)
	if !ok || reviewedBy == "" {
		return leave.LeaveResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	status := leave.Status(req.Status)
	now := s.now().In(s.loc)

	var reviewed leave.Leave
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		reviewed, err = s.LeaveRepository.UpdateStatus(txCtx, req.ID, status, req.AdminComments, reviewedBy, now)
		if err != nil {
			return err
		}

		switch status {
		case leave.StatusApproved:
			return s.markLeaveAttendance(txCtx, reviewed)
		case leave.StatusRejected:
			_, err := s.AttendanceRepository.DeleteLeaveGenerated(txCtx, reviewed.EmployeeID, reviewed.FromDate, reviewed.EndDate)
			return err
		}
		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	s.notifyEmployee(ctx, reviewed)

	return mapLeaveToResponse(reviewed), nil
}

// markLeaveAttendance upserts one attendance row per calendar date in
// the approved range. Re-approving the same range overwrites the same
// rows, so the operation is idempotent.
func (s *LeaveServiceImpl) markLeaveAttendance(ctx context.Context, l leave.Leave) error {
	status := attendance.StatusLeave
	if l.IsHalfDay {
		status = attendance.StatusHalfDay
	}
	remarks := autoMarkRemarks

	for date := l.FromDate; !date.After(l.EndDate); date = date.AddDate(0, 0, 1) {
		_, err := s.AttendanceRepository.Upsert(ctx, attendance.Attendance{
			ID:            uuid.New().String(),
			EmployeeID:    l.EmployeeID,
			Date:          date,
			Status:        status,
			LeaveID:       &l.ID,
			Remarks:       &remarks,
			IsManualEntry: false,
		})
		if err != nil {
			return fmt.Errorf("failed to mark leave attendance for %s: %w", date.Format("2006-01-02"), err)
		}
	}

	return nil
}

func (s *LeaveServiceImpl) notifyEmployee(ctx context.Context, l leave.Leave) {
	e, err := s.EmployeeRepository.GetByID(ctx, l.EmployeeID)
	if err != nil {
		slog.Warn("failed to look up employee for leave status email", "leave_id", l.ID, "error", err)
		return
	}

	data := email.LeaveStatusData{
		EmployeeName: l.EmployeeName,
		LeaveType:    string(l.Type),
		FromDate:     l.FromDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		Status:       string(l.Status),
	}
	if l.AdminComments != nil {
		data.AdminComments = *l.AdminComments
	}

	if err := s.emailService.SendLeaveStatusUpdate(e.Email, data); err != nil {
		slog.Warn("failed to send leave status email", "leave_id", l.ID, "error", err)
	}
}
