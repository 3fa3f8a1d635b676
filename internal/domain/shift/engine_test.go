package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayShift() Shift {
	return Shift{
		Name:         NameGeneral,
		DisplayName:  "General Day",
		StartTime:    "09:00",
		EndTime:      "18:00",
		GraceMinutes: 15,
		MinimumHours: 8,
	}
}

func nightShift() Shift {
	return Shift{
		Name:         NameNight,
		DisplayName:  "Night Ops",
		StartTime:    "22:00",
		EndTime:      "06:00",
		GraceMinutes: 15,
		MinimumHours: 8,
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)

	for _, bad := range []string{"24:00", "12:60", "12", "ab:cd", ""} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, "ParseClock(%q)", bad)
	}
}

func TestCrossesMidnight(t *testing.T) {
	assert.False(t, dayShift().CrossesMidnight())
	assert.True(t, nightShift().CrossesMidnight())

	// equal start and end wraps too
	s := dayShift()
	s.EndTime = s.StartTime
	assert.True(t, s.CrossesMidnight())
}

func TestResolveShiftDay(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name  string
		shift Shift
		ts    time.Time
		want  time.Time
	}{
		{"day shift morning", dayShift(), time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC), day(10)},
		{"day shift early hours stays same day", dayShift(), time.Date(2025, 3, 10, 1, 30, 0, 0, time.UTC), day(10)},
		{"night shift evening", nightShift(), time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC), day(10)},
		{"night shift after midnight rolls back", nightShift(), time.Date(2025, 3, 11, 1, 30, 0, 0, time.UTC), day(10)},
		{"night shift 11:59 still previous day", nightShift(), time.Date(2025, 3, 11, 11, 59, 0, 0, time.UTC), day(10)},
		{"night shift at noon is its own day", nightShift(), time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC), day(11)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ResolveShiftDay(c.ts, c.shift)
			assert.True(t, got.Equal(c.want), "got %v want %v", got, c.want)
		})
	}
}

func TestWindowFor(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	w, err := dayShift().WindowFor(day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC), w.End)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC), w.GraceEnd)
	assert.Equal(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), w.CheckInOpensAt)
	assert.InDelta(t, 9.0, w.ExpectedHours(), 1e-9)

	nw, err := nightShift().WindowFor(day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC), nw.Start)
	assert.Equal(t, time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC), nw.End)
	assert.InDelta(t, 8.0, nw.ExpectedHours(), 1e-9)
}

func TestLateStatus(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	w, err := dayShift().WindowFor(day)
	require.NoError(t, err)

	// Exactly at grace end is on time.
	isLate, lateBy := w.LateStatus(w.GraceEnd)
	assert.False(t, isLate)
	assert.Equal(t, 0, lateBy)

	// One minute past grace is late, counted from the scheduled start.
	isLate, lateBy = w.LateStatus(w.GraceEnd.Add(time.Minute))
	assert.True(t, isLate)
	assert.Equal(t, 16, lateBy)

	// Partial minutes round down.
	isLate, lateBy = w.LateStatus(w.Start.Add(22*time.Minute + 45*time.Second))
	assert.True(t, isLate)
	assert.Equal(t, 22, lateBy)
}

func TestValidateCheckIn(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	s := dayShift()
	w, err := s.WindowFor(day)
	require.NoError(t, err)

	assert.ErrorIs(t, s.ValidateCheckIn(w.CheckInOpensAt.Add(-time.Second), w), ErrCheckInTooEarly)
	assert.NoError(t, s.ValidateCheckIn(w.CheckInOpensAt, w))
	assert.NoError(t, s.ValidateCheckIn(w.End, w))
	assert.ErrorIs(t, s.ValidateCheckIn(w.End.Add(time.Second), w), ErrShiftOver)
}
