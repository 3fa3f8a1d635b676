package leave

import "time"

type Type string

const (
	TypeSick   Type = "sick"
	TypeCasual Type = "casual"
)

func ValidTypes() []string {
	return []string{string(TypeSick), string(TypeCasual)}
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type HalfDayPeriod string

const (
	PeriodMorning   HalfDayPeriod = "morning"
	PeriodAfternoon HalfDayPeriod = "afternoon"
)

func ValidHalfDayPeriods() []string {
	return []string{string(PeriodMorning), string(PeriodAfternoon)}
}

type Leave struct {
	ID            string
	EmployeeID    string
	Type          Type
	FromDate      time.Time
	EndDate       time.Time
	TotalDays     float64
	IsHalfDay     bool
	HalfDayPeriod *HalfDayPeriod
	Reason        string
	Status        Status
	AdminComments *string
	ReviewedBy    *string
	ReviewedDate  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	EmployeeName   string
	EmployeeCode   string
	DepartmentName string
}
