package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)

	require.Equal(t, 0, DaysBetween(base, base.Add(-23*time.Hour)))
	require.Equal(t, 1, DaysBetween(base, base.Add(2*time.Minute)))
	require.Equal(t, 3, DaysBetween(base, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, -1, DaysBetween(base, time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)))

	// Crosses the end of february in a leap year.
	require.Equal(t, 2, DaysBetween(
		time.Date(2024, 2, 28, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	))
}

func TestDay_KeepsLocalDate(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	evening := time.Date(2024, 5, 1, 22, 0, 0, 0, loc)

	require.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Day(evening))
	require.True(t, IsSameDay(evening, time.Date(2024, 5, 1, 1, 0, 0, 0, loc)))
}

func TestWeekAndMonth(t *testing.T) {
	wednesday := time.Date(2024, 5, 8, 15, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), CurrentWeek(wednesday))
	require.Equal(t, time.Date(2024, 4, 29, 0, 0, 0, 0, time.UTC), LastWeek(wednesday))

	sunday := time.Date(2024, 5, 12, 15, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), CurrentWeek(sunday))

	require.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), CurrentMonth(wednesday))
	require.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), LastMonth(wednesday))
}
