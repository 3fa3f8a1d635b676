package shift

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseClock parses a 24-hour "HH:MM" clock string.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	return hour, minute, nil
}

// Window is the concrete time window a shift occupies on a given shift day.
type Window struct {
	Start          time.Time // scheduled start
	End            time.Time // scheduled end, next day for cross-midnight shifts
	GraceEnd       time.Time // latest on-time check-in
	CheckInOpensAt time.Time // earliest accepted check-in, one hour before start
}

// ExpectedHours is the scheduled length of the shift.
func (w Window) ExpectedHours() float64 {
	return w.End.Sub(w.Start).Hours()
}

// ResolveShiftDay maps a wall-clock instant to the calendar day the
// shift session belongs to. For cross-midnight shifts an instant before
// noon is attributed to the previous day's session, so a 22:00-06:00
// worker checking out at 05:30 lands on the day they started.
func ResolveShiftDay(ts time.Time, s Shift) time.Time {
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	if s.CrossesMidnight() && ts.Hour() < 12 {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// WindowFor computes the shift's window anchored on shiftDay, which
// must be a midnight-truncated time as returned by ResolveShiftDay.
func (s Shift) WindowFor(shiftDay time.Time) (Window, error) {
	startH, startM, err := ParseClock(s.StartTime)
	if err != nil {
		return Window{}, err
	}
	endH, endM, err := ParseClock(s.EndTime)
	if err != nil {
		return Window{}, err
	}

	loc := shiftDay.Location()
	start := time.Date(shiftDay.Year(), shiftDay.Month(), shiftDay.Day(), startH, startM, 0, 0, loc)
	end := time.Date(shiftDay.Year(), shiftDay.Month(), shiftDay.Day(), endH, endM, 0, 0, loc)
	if s.CrossesMidnight() {
		end = end.AddDate(0, 0, 1)
	}

	return Window{
		Start:          start,
		End:            end,
		GraceEnd:       start.Add(time.Duration(s.GraceMinutes) * time.Minute),
		CheckInOpensAt: start.Add(-1 * time.Hour),
	}, nil
}

// LateStatus reports whether a check-in at ts is late for the window
// and by how many whole minutes. Lateness is measured from the
// scheduled start, not from the end of the grace period, so the first
// late minute count is always greater than the grace allowance.
func (w Window) LateStatus(ts time.Time) (isLate bool, lateByMinutes int) {
	if !ts.After(w.GraceEnd) {
		return false, 0
	}
	return true, int(math.Floor(ts.Sub(w.Start).Minutes()))
}

// ValidateCheckIn rejects check-ins outside the accepted window. The
// returned errors wrap ErrCheckInTooEarly and ErrShiftOver with the
// shift's scheduled times.
func (s Shift) ValidateCheckIn(ts time.Time, w Window) error {
	if ts.Before(w.CheckInOpensAt) {
		return fmt.Errorf("%w: shift starts at %s, check-in opens one hour before", ErrCheckInTooEarly, s.StartTime)
	}
	if ts.After(w.End) {
		return fmt.Errorf("%w: shift ended at %s", ErrShiftOver, s.EndTime)
	}
	return nil
}
