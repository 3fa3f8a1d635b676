package attendance

import "math"

// RoundHours rounds a duration in hours to two decimal places, the
// precision working hours are stored with.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// ResolveCheckoutStatus decides the final status of a computed record
// at checkout time. Working under half the minimum is a half day, a
// full minimum keeps the check-in verdict (late or present), anything
// in between is also a half day.
func ResolveCheckoutStatus(workingHours, minimumHours float64, wasLate bool) Status {
	if workingHours < minimumHours/2 {
		return StatusHalfDay
	}
	if workingHours >= minimumHours {
		if wasLate {
			return StatusLate
		}
		return StatusPresent
	}
	return StatusHalfDay
}
