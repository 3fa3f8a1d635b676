package leave

import "time"

// MonthlyAccrualDays is how many days of each leave type an employee
// earns per month.
const MonthlyAccrualDays = 1

// AccruedAllowance returns the days of a single leave type available in
// now's calendar year. Accrual starts at the joining month in the
// joining year and at January in later years, one day per month up to
// and including the current month.
func AccruedAllowance(dateOfJoining, now time.Time) float64 {
	if dateOfJoining.After(now) {
		return 0
	}
	startMonth := 1
	if dateOfJoining.Year() == now.Year() {
		startMonth = int(dateOfJoining.Month())
	}
	months := int(now.Month()) - startMonth + 1
	if months < 0 {
		months = 0
	}
	return float64(months * MonthlyAccrualDays)
}

// TotalDays computes the day count a leave application consumes. Half
// days are fixed at 0.5; full leaves span the inclusive date range.
// Dates must be midnight-truncated. Counting walks calendar days so a
// DST transition inside the range cannot produce a fractional count.
func TotalDays(fromDate, endDate time.Time, isHalfDay bool) float64 {
	if isHalfDay {
		return 0.5
	}
	days := 0
	for d := fromDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		days++
	}
	return float64(days)
}
