package employee

import (
	"time"

	"github.com/techqilla/ems-backend-go/internal/domain/shift"
)

type Employee struct {
	ID            string
	UserID        string
	EmployeeCode  string
	Phone         *string
	Gender        *string
	DateOfBirth   *time.Time
	DateOfJoining time.Time
	Designation   string
	DepartmentID  string
	ShiftID       string
	BaseSalary    float64
	ProfileImage  *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	Name           string
	Email          string
	Role           string
	DepartmentName string
	Shift          *shift.Shift
}
