package shift

import "time"

type Name string

const (
	NameMorning Name = "Morning"
	NameNight   Name = "Night"
	NameGeneral Name = "General"
)

func ValidNames() []string {
	return []string{string(NameMorning), string(NameNight), string(NameGeneral)}
}

type Shift struct {
	ID           string
	Name         Name
	DisplayName  string
	StartTime    string // "HH:MM", 24-hour
	EndTime      string // "HH:MM", 24-hour
	GraceMinutes int
	MinimumHours float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeCount int
}

// CrossesMidnight reports whether the shift ends on the day after it
// starts. A shift whose end time is not after its start time wraps past
// midnight (a 24h shift is not representable).
func (s Shift) CrossesMidnight() bool {
	startH, startM, err := ParseClock(s.StartTime)
	if err != nil {
		return false
	}
	endH, endM, err := ParseClock(s.EndTime)
	if err != nil {
		return false
	}
	return endH*60+endM <= startH*60+startM
}
