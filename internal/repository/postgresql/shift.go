package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/techqilla/ems-backend-go/internal/domain/shift"
	"github.com/techqilla/ems-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, name, display_name, start_time, end_time, grace_minutes, minimum_hours, is_active, created_at, updated_at`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(
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
	return s, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (id, name, display_name, start_time, end_time, grace_minutes, minimum_hours, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query,
		s.ID,
		s.Name,
		s.DisplayName,
		s.StartTime,
		s.EndTime,
		s.GraceMinutes,
		s.MinimumHours,
		s.IsActive,
	))
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return created, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`

	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift %s: %w", id, err)
	}

	return s, nil
}

// GetByDisplayName implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByDisplayName(ctx context.Context, displayName string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE LOWER(display_name) = LOWER($1)`

	s, err := scanShift(q.QueryRow(ctx, query, displayName))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by display name: %w", err)
	}

	return s, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.name, s.display_name, s.start_time, s.end_time, s.grace_minutes, s.minimum_hours, s.is_active, s.created_at, s.updated_at,
			(SELECT COUNT(*) FROM employees e WHERE e.shift_id = s.id AND e.is_active) AS employee_count
		FROM shifts s
		ORDER BY s.start_time ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		if err := rows.Scan(
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
			&s.EmployeeCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET name = $1, display_name = $2, start_time = $3, end_time = $4,
			grace_minutes = $5, minimum_hours = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING ` + shiftColumns

	updated, err := scanShift(q.QueryRow(ctx, query,
		s.Name,
		s.DisplayName,
		s.StartTime,
		s.EndTime,
		s.GraceMinutes,
		s.MinimumHours,
		s.IsActive,
		s.ID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift %s: %w", s.ID, err)
	}

	return updated, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// CountEmployees implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) CountEmployees(ctx context.Context, id string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE shift_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees for shift %s: %w", id, err)
	}

	return count, nil
}
