package tasks

import "time"

// MonthGrid returns the weeks covering month, Sunday first. Days outside the month are included
// so every row has seven dates.
func MonthGrid(month time.Time) [][]time.Time {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))
	last := first.AddDate(0, 1, -1)

	var weeks [][]time.Time
	for day := start; !day.After(last); {
		week := make([]time.Time, 7)
		for i := range week {
			week[i] = day
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
