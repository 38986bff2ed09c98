package date

// Schedule is a strictly increasing sequence of adjusted dates generated
// by stepping from a start date toward an end date.
type Schedule struct {
	dates []Date
}

// NewSchedule generates a schedule from start to end with the given step.
// The first date is adjust(start); further dates are obtained by advancing
// the last kept date by step until the result exceeds end. When includeEnd
// is set (or the schedule would otherwise be empty) adjust(end) is
// appended. Duplicates that arise from adjustment are dropped, so the
// result is strictly increasing.
func NewSchedule(start, end Date, step Duration, cal Calendar, includeEnd bool) Schedule {
	var dates []Date

	current := cal.Adjust(start)
	dates = append(dates, current)

	for {
		next := cal.Advance(current, step)
		if next > end {
			break
		}
		if next > dates[len(dates)-1] {
			dates = append(dates, next)
		}
		current = next
	}

	if includeEnd || len(dates) == 0 {
		endDate := cal.Adjust(end)
		if len(dates) == 0 || dates[len(dates)-1] < endDate {
			dates = append(dates, endDate)
		}
	}

	return Schedule{dates: dates}
}

// Dates returns the generated dates. The slice is owned by the schedule
// and must not be mutated.
func (s Schedule) Dates() []Date {
	return s.dates
}

// Len returns the number of dates.
func (s Schedule) Len() int {
	return len(s.dates)
}

// At returns the i-th date.
func (s Schedule) At(i int) Date {
	return s.dates[i]
}
