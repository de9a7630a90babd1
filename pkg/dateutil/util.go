package dateutil

import "time"

// Day returns the calendar day of t as midnight UTC. The year, month and day
// are read in the location of t, so a local evening stays on its local day.
func Day(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from -> to, ignoring the
// time of day. It is negative if to is before from.
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}

func IsSameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// CurrentWeek returns the monday of the ISO week containing t.
func CurrentWeek(t time.Time) time.Time {
	day := Day(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func LastWeek(t time.Time) time.Time {
	return CurrentWeek(t).AddDate(0, 0, -7)
}

func CurrentMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func LastMonth(t time.Time) time.Time {
	return CurrentMonth(t).AddDate(0, -1, 0)
}
