package availability

import "time"

// DayInfo is the per-day cell of a month view.
type DayInfo struct {
	Day        int       `json:"day"`
	Date       string    `json:"date"` // YYYY-MM-DD
	DateKey    string    `json:"date_key"`
	Status     DayStatus `json:"status"`
	Selectable bool      `json:"selectable"`
}

// mondayFirstOffset maps time.Weekday (Sunday=0) to the column offset of a
// Monday-first week grid. This is the only place the display ordering
// exists; everything else reasons in the stored Sunday=0 numbering.
var mondayFirstOffset = [7]int{6, 0, 1, 2, 3, 4, 5}

// FirstDayOffset returns how many leading blank cells a Monday-first grid
// needs before day 1 of the given month.
func FirstDayOffset(year int, month time.Month, loc *time.Location) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return mondayFirstOffset[first.Weekday()]
}

// MonthStatuses classifies every day of a calendar month.
func MonthStatuses(year int, month time.Month, now time.Time, sched Schedule, booked map[string][]string, horizonDays int) []DayInfo {
	loc := now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]DayInfo, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, loc)
		status := ClassifyDay(date, now, sched, booked, horizonDays)
		days = append(days, DayInfo{
			Day:        d,
			Date:       date.Format("2006-01-02"),
			DateKey:    DateKey(date),
			Status:     status,
			Selectable: status.Selectable(),
		})
	}
	return days
}
