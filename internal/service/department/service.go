package department

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/techqilla/ems-backend-go/internal/domain/department"
)

type DepartmentServiceImpl struct {
	department.DepartmentRepository
}

func NewDepartmentService(repo department.DepartmentRepository) department.DepartmentService {
	return &DepartmentServiceImpl{DepartmentRepository: repo}
}

func mapDepartmentToResponse(d department.Department) department.DepartmentResponse {
	return department.DepartmentResponse{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		EmployeeCount: d.EmployeeCount,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     d.UpdatedAt.Format(time.RFC3339),
	}
}

// Create implements department.DepartmentService.
func (s *DepartmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	if _, err := s.DepartmentRepository.GetByName(ctx, req.Name); err == nil {
		return department.DepartmentResponse{}, department.ErrDepartmentNameExists
	} else if !errors.Is(err, department.ErrDepartmentNotFound) {
		return department.DepartmentResponse{}, err
	}

	created, err := s.DepartmentRepository.Create(ctx, department.Department{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	return mapDepartmentToResponse(created), nil
}

// GetByID implements department.DepartmentService.
func (s *DepartmentServiceImpl) GetByID(ctx context.Context, id string) (department.DepartmentResponse, error) {
	d, err := s.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return mapDepartmentToResponse(d), nil
}

// List implements department.DepartmentService.
func (s *DepartmentServiceImpl) List(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := s.DepartmentRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, mapDepartmentToResponse(d))
	}

	return responses, nil
}

// Update implements department.DepartmentService.
func (s *DepartmentServiceImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	existing, err := s.DepartmentRepository.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	if req.Name != nil && *req.Name != existing.Name {
		if other, err := s.DepartmentRepository.GetByName(ctx, *req.Name); err == nil && other.ID != existing.ID {
			return department.DepartmentResponse{}, department.ErrDepartmentNameExists
		} else if err != nil && !errors.Is(err, department.ErrDepartmentNotFound) {
			return department.DepartmentResponse{}, err
		}
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = req.Description
	}

	updated, err := s.DepartmentRepository.Update(ctx, existing)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	return mapDepartmentToResponse(updated), nil
}

// Delete implements department.DepartmentService.
func (s *DepartmentServiceImpl) Delete(ctx context.Context, id string) error {
	count, err := s.DepartmentRepository.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return department.ErrDepartmentInUse
	}

	return s.DepartmentRepository.Delete(ctx, id)
}
