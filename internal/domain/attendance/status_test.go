package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCheckoutStatus(t *testing.T) {
	cases := []struct {
		name         string
		workingHours float64
		minimumHours float64
		wasLate      bool
		want         Status
	}{
		{"well under half minimum", 2, 8, false, StatusHalfDay},
		{"just under half minimum", 3.99, 8, false, StatusHalfDay},
		{"exactly half minimum", 4, 8, false, StatusHalfDay},
		{"between half and minimum", 6, 8, false, StatusHalfDay},
		{"just under minimum", 7.99, 8, false, StatusHalfDay},
		{"exactly minimum on time", 8, 8, false, StatusPresent},
		{"exactly minimum late", 8, 8, true, StatusLate},
		{"over minimum on time", 9.5, 8, false, StatusPresent},
		{"over minimum late", 9.5, 8, true, StatusLate},
		{"short day late stays half-day", 3, 8, true, StatusHalfDay},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ResolveCheckoutStatus(c.workingHours, c.minimumHours, c.wasLate)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 8.26, RoundHours(8.2551))
	assert.Equal(t, 8.25, RoundHours(8.2549))
	assert.Equal(t, 0.0, RoundHours(0))
	assert.Equal(t, 7.5, RoundHours(7.5))
}
