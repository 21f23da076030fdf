package attendance

import "time"

type CalendarDay struct {
	Date           time.Time
	Records        []Attendance
	IsCurrentMonth bool
	IsToday        bool
}

// BuildCalendar lays records out on whole weeks covering the 0-based month of year.
// Weeks begin on weekStart. now decides IsToday and is compared by calendar date.
// An invalid period yields an empty grid.
func BuildCalendar(records []Attendance, month, year int, now time.Time, weekStart time.Weekday) []CalendarDay {
	if !ValidPeriod(month, year) || weekStart < time.Sunday || weekStart > time.Saturday {
		return []CalendarDay{}
	}

	target := time.Month(month + 1)
	first := time.Date(year, target, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7
	trail := (int(weekStart) + 6 - int(last.Weekday()) + 7) % 7
	start := first.AddDate(0, 0, -lead)
	end := last.AddDate(0, 0, trail)

	byDay := make(map[time.Time][]Attendance)
	for _, rec := range records {
		day := CivilDay(rec.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		byDay[day] = append(byDay[day], rec)
	}

	grid := make([]CalendarDay, 0, lead+last.Day()+trail)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dayRecords := byDay[day]
		if dayRecords == nil {
			dayRecords = []Attendance{}
		}
		grid = append(grid, CalendarDay{
			Date:           day,
			Records:        dayRecords,
			IsCurrentMonth: day.Month() == target,
			IsToday:        SameDay(day, now),
		})
	}

	return grid
}

// FlattenCurrentMonth collects the records of in-month cells in grid order.
func FlattenCurrentMonth(grid []CalendarDay) []Attendance {
	var result []Attendance
	for _, day := range grid {
		if day.IsCurrentMonth {
			result = append(result, day.Records...)
		}
	}
	return result
}
