package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAccruedAllowance(t *testing.T) {
	cases := []struct {
		name string
		doj  time.Time
		now  time.Time
		want float64
	}{
		{"joined years ago, june", date(2020, time.March, 15), date(2025, time.June, 10), 6},
		{"joined years ago, january", date(2020, time.March, 15), date(2025, time.January, 2), 1},
		{"joined this year in march, checked in june", date(2025, time.March, 1), date(2025, time.June, 10), 4},
		{"joined this month", date(2025, time.June, 1), date(2025, time.June, 10), 1},
		{"joined december last year", date(2024, time.December, 20), date(2025, time.February, 5), 2},
		{"joins next month", date(2025, time.July, 1), date(2025, time.June, 10), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, AccruedAllowance(c.doj, c.now))
		})
	}
}

func TestTotalDays(t *testing.T) {
	assert.Equal(t, 1.0, TotalDays(date(2025, 6, 10), date(2025, 6, 10), false))
	assert.Equal(t, 3.0, TotalDays(date(2025, 6, 10), date(2025, 6, 12), false))
	assert.Equal(t, 0.5, TotalDays(date(2025, 6, 10), date(2025, 6, 10), true))
}

func TestTotalDaysAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 2025-03-09 is a 23-hour day in this zone; the count must still be
	// whole calendar days.
	from := time.Date(2025, time.March, 8, 0, 0, 0, 0, loc)
	end := time.Date(2025, time.March, 10, 0, 0, 0, 0, loc)
	assert.Equal(t, 3.0, TotalDays(from, end, false))

	// Fall-back day, 25 hours.
	from = time.Date(2025, time.November, 1, 0, 0, 0, 0, loc)
	end = time.Date(2025, time.November, 3, 0, 0, 0, 0, loc)
	assert.Equal(t, 3.0, TotalDays(from, end, false))
}
