package employee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/techqilla/ems-backend-go/internal/domain/department"
	"github.com/techqilla/ems-backend-go/internal/domain/employee"
	"github.com/techqilla/ems-backend-go/internal/domain/shift"
	"github.com/techqilla/ems-backend-go/internal/domain/user"
	"github.com/techqilla/ems-backend-go/internal/pkg/database"
	"github.com/techqilla/ems-backend-go/internal/repository/postgresql"
	"github.com/techqilla/ems-backend-go/internal/service/file"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
	user.UserRepository
	department.DepartmentRepository
	shift.ShiftRepository
	fileService file.FileService
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	departmentRepo department.DepartmentRepository,
	shiftRepo shift.ShiftRepository,
	fileService file.FileService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                   db,
		EmployeeRepository:   employeeRepo,
		UserRepository:       userRepo,
		DepartmentRepository: departmentRepo,
		ShiftRepository:      shiftRepo,
		fileService:          fileService,
	}
}

func mapEmployeeToResponse(e employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		Name:           e.Name,
		Email:          e.Email,
		Role:           e.Role,
		EmployeeCode:   e.EmployeeCode,
		Phone:          e.Phone,
		Gender:         e.Gender,
		DateOfJoining:  e.DateOfJoining.Format("2006-01-02"),
		Designation:    e.Designation,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		ShiftID:        e.ShiftID,
		BaseSalary:     e.BaseSalary,
		ProfileImage:   e.ProfileImage,
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
	}
	if e.DateOfBirth != nil {
		dob := e.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	if e.Shift != nil {
		resp.ShiftName = e.Shift.DisplayName
	}
	return resp
}

// Create implements employee.EmployeeService.
//
// Creates the login account and the employee profile in one
// transaction so a failed profile insert never leaves an orphan user.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	exists, err := s.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if exists {
		return employee.EmployeeResponse{}, user.ErrUserEmailExists
	}

	if _, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.DepartmentRepository.GetByID(ctx, req.DepartmentID); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if _, err := s.ShiftRepository.GetByID(ctx, req.ShiftID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := user.RoleEmployee
	if req.Role == string(user.RoleAdmin) {
		role = user.RoleAdmin
	}

	doj, _ := time.Parse("2006-01-02", req.DateOfJoining)

	var dob *time.Time
	if req.DateOfBirth != nil {
		parsed, _ := time.Parse("2006-01-02", *req.DateOfBirth)
		dob = &parsed
	}

	var created employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		newUser, err := s.UserRepository.Create(txCtx, user.User{
			ID:           uuid.New().String(),
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         role,
		})
		if err != nil {
			return err
		}

		created, err = s.EmployeeRepository.Create(txCtx, employee.Employee{
			ID:            uuid.New().String(),
			UserID:        newUser.ID,
			EmployeeCode:  req.EmployeeCode,
			Phone:         req.Phone,
			Gender:        req.Gender,
			DateOfBirth:   dob,
			DateOfJoining: doj,
			Designation:   req.Designation,
			DepartmentID:  req.DepartmentID,
			ShiftID:       req.ShiftID,
			BaseSalary:    req.BaseSalary,
			IsActive:      true,
		})
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(created), nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(e), nil
}

// Me implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Me(ctx context.Context) (employee.EmployeeResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return employee.EmployeeResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	e, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(e), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListFilter) (employee.ListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListResponse{}, err
	}

	items := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		items = append(items, mapEmployeeToResponse(e))
	}

	return employee.ListResponse{
		Items:      items,
		Pagination: buildPagination(filter.Page, filter.Limit, total, len(items)),
	}, nil
}

func buildPagination(page, limit, total, count int) employee.Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	start := 0
	end := 0
	if count > 0 {
		start = (page-1)*limit + 1
		end = start + count - 1
	}
	return employee.Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
		Showing:    fmt.Sprintf("showing %d-%d of %d", start, end, total),
	}
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		u, err := s.UserRepository.GetByID(ctx, existing.UserID)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		u.Name = *req.Name
		if err := s.UserRepository.Update(ctx, u); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.Gender != nil {
		existing.Gender = req.Gender
	}
	if req.DateOfBirth != nil {
		parsed, _ := time.Parse("2006-01-02", *req.DateOfBirth)
		existing.DateOfBirth = &parsed
	}
	if req.Designation != nil {
		existing.Designation = *req.Designation
	}
	if req.DepartmentID != nil {
		if _, err := s.DepartmentRepository.GetByID(ctx, *req.DepartmentID); err != nil {
			return employee.EmployeeResponse{}, err
		}
		existing.DepartmentID = *req.DepartmentID
	}
	if req.ShiftID != nil {
		if _, err := s.ShiftRepository.GetByID(ctx, *req.ShiftID); err != nil {
			return employee.EmployeeResponse{}, err
		}
		existing.ShiftID = *req.ShiftID
	}
	if req.BaseSalary != nil {
		existing.BaseSalary = *req.BaseSalary
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	updated, err := s.EmployeeRepository.Update(ctx, existing)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(updated), nil
}

// Delete implements employee.EmployeeService.
//
// Removes the profile and its login account together.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	existing, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.EmployeeRepository.Delete(txCtx, id); err != nil {
			return err
		}
		return s.UserRepository.Delete(txCtx, existing.UserID)
	})
}

// UploadProfileImage implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadProfileImage(ctx context.Context, id string, filename string, f io.Reader) (string, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, id); err != nil {
		return "", err
	}

	path, err := s.fileService.UploadProfileImage(ctx, id, f, filename)
	if err != nil {
		return "", err
	}

	url, err := s.fileService.GetFileURL(ctx, path)
	if err != nil {
		return "", err
	}

	if err := s.EmployeeRepository.UpdateProfileImage(ctx, id, url); err != nil {
		return "", err
	}

	return url, nil
}
