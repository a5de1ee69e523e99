package emi

import "time"

// AddMonths moves t forward by n calendar months keeping the day of month,
// clamped to the last day of the target month (Jan 31 + 1 month = Feb 28/29).
// Only the date part of t is kept.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

// ElapsedMonths counts whole monthly anniversaries of origination reached by
// today. A month counts once today's day of month reaches the origination day.
// Dates before origination count as zero.
func ElapsedMonths(origination, today time.Time) int {
	today = today.In(origination.Location())
	oy, om, od := origination.Date()
	ty, tm, td := today.Date()

	n := (ty-oy)*12 + int(tm-om)
	if td < od {
		n--
	}
	if n < 0 {
		return 0
	}
	return n
}

// NextDueDate projects the next installment date from origination as seen on
// today. It does not look at payments made.
func NextDueDate(origination, today time.Time) time.Time {
	return AddMonths(origination, ElapsedMonths(origination, today)+1)
}
