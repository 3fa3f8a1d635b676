package dashboard

type AdminSummary struct {
	TotalEmployees    int            `json:"total_employees"`
	TotalDepartments  int            `json:"total_departments"`
	TotalSalaryPaid   float64        `json:"total_salary_paid"`
	PendingLeaves     int            `json:"pending_leaves"`
	ApprovedLeaves    int            `json:"approved_leaves"`
	RejectedLeaves    int            `json:"rejected_leaves"`
	PresentToday      int            `json:"present_today"`
	AbsentToday       int            `json:"absent_today"`
	OnLeaveToday      int            `json:"on_leave_today"`
	LateToday         int            `json:"late_today"`
	EmployeesPerShift map[string]int `json:"employees_per_shift"`
}

type EmployeeSummary struct {
	DaysPresentThisMonth int     `json:"days_present_this_month"`
	DaysLateThisMonth    int     `json:"days_late_this_month"`
	LeavesTakenThisYear  float64 `json:"leaves_taken_this_year"`
	PendingLeaves        int     `json:"pending_leaves"`
	AvgWorkingHours      float64 `json:"avg_working_hours"`
}
