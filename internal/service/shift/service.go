package shift

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/techqilla/ems-backend-go/internal/domain/shift"
)

const (
	defaultGraceMinutes = 15
	defaultMinimumHours = 8
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
}

func NewShiftService(repo shift.ShiftRepository) shift.ShiftService {
	return &ShiftServiceImpl{ShiftRepository: repo}
}

func mapShiftToResponse(s shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:              s.ID,
		Name:            string(s.Name),
		DisplayName:     s.DisplayName,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		GraceMinutes:    s.GraceMinutes,
		MinimumHours:    s.MinimumHours,
		IsCrossMidnight: s.CrossesMidnight(),
		IsActive:        s.IsActive,
		EmployeeCount:   s.EmployeeCount,
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	if _, err := s.ShiftRepository.GetByDisplayName(ctx, req.DisplayName); err == nil {
		return shift.ShiftResponse{}, shift.ErrDisplayNameExists
	} else if !errors.Is(err, shift.ErrShiftNotFound) {
		return shift.ShiftResponse{}, err
	}

	newShift := shift.Shift{
		ID:           uuid.New().String(),
		Name:         shift.Name(req.Name),
		DisplayName:  req.DisplayName,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		GraceMinutes: defaultGraceMinutes,
		MinimumHours: defaultMinimumHours,
		IsActive:     true,
	}
	if req.GraceMinutes != nil {
		newShift.GraceMinutes = *req.GraceMinutes
	}
	if req.MinimumHours != nil {
		newShift.MinimumHours = *req.MinimumHours
	}

	created, err := s.ShiftRepository.Create(ctx, newShift)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return mapShiftToResponse(created), nil
}

// GetByID implements shift.ShiftService.
func (s *ShiftServiceImpl) GetByID(ctx context.Context, id string) (shift.ShiftResponse, error) {
	found, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return mapShiftToResponse(found), nil
}

// List implements shift.ShiftService.
func (s *ShiftServiceImpl) List(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := s.ShiftRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, mapShiftToResponse(sh))
	}

	return responses, nil
}

// Update implements shift.ShiftService.
func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.ShiftRepository.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if req.DisplayName != nil && *req.DisplayName != existing.DisplayName {
		if other, err := s.ShiftRepository.GetByDisplayName(ctx, *req.DisplayName); err == nil && other.ID != existing.ID {
			return shift.ShiftResponse{}, shift.ErrDisplayNameExists
		} else if err != nil && !errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ShiftResponse{}, err
		}
		existing.DisplayName = *req.DisplayName
	}
	if req.Name != nil {
		existing.Name = shift.Name(*req.Name)
	}
	if req.StartTime != nil {
		existing.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		existing.EndTime = *req.EndTime
	}
	if req.GraceMinutes != nil {
		existing.GraceMinutes = *req.GraceMinutes
	}
	if req.MinimumHours != nil {
		existing.MinimumHours = *req.MinimumHours
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	updated, err := s.ShiftRepository.Update(ctx, existing)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return mapShiftToResponse(updated), nil
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	count, err := s.ShiftRepository.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shift.ErrShiftInUse
	}

	return s.ShiftRepository.Delete(ctx, id)
}

// Stats implements shift.ShiftService.
func (s *ShiftServiceImpl) Stats(ctx context.Context) (shift.ShiftStatsResponse, error) {
	shifts, err := s.ShiftRepository.List(ctx)
	if err != nil {
		return shift.ShiftStatsResponse{}, err
	}

	stats := shift.ShiftStatsResponse{
		TotalShifts:      len(shifts),
		EmployeesByShift: make(map[string]int, len(shifts)),
	}
	for _, sh := range shifts {
		if sh.IsActive {
			stats.ActiveShifts++
		}
		stats.EmployeesByShift[sh.DisplayName] = sh.EmployeeCount
	}

	return stats, nil
}
