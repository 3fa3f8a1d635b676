package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half-day"
	StatusLeave   Status = "leave"
	StatusLate    Status = "late"
)

func ValidStatuses() []string {
	return []string{
		string(StatusPresent),
		string(StatusAbsent),
		string(StatusHalfDay),
		string(StatusLeave),
		string(StatusLate),
	}
}

// Attendance is one employee's record for one date. Date is always
// midnight-truncated; for computed records it is the shift day the
// check-in resolved to, for leave-generated and manual records it is
// the literal calendar date.
type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	Status        Status
	CheckIn       *time.Time
	CheckOut      *time.Time
	WorkingHours  *float64
	IsLate        bool
	LateByMinutes int
	LeaveID       *string
	Remarks       *string
	IsManualEntry bool
	MarkedBy      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	EmployeeName string
	EmployeeCode string
	ShiftName    string
}
