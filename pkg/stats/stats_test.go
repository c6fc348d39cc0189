package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestStreaks(t *testing.T) {
	times := []time.Time{
		date(2024, 1, 1),
		date(2024, 1, 2),
		date(2024, 1, 3),
		date(2024, 1, 5),
	}

	t.Run("Today Active", func(t *testing.T) {
		assert.Equal(t, 3, CurrentStreak(times, date(2024, 1, 3)))
	})

	t.Run("Yesterday Active", func(t *testing.T) {
		assert.Equal(t, 3, CurrentStreak(times, date(2024, 1, 4)))
	})

	t.Run("After Gap", func(t *testing.T) {
		assert.Equal(t, 1, CurrentStreak(times, date(2024, 1, 6)))
	})

	t.Run("Broken", func(t *testing.T) {
		assert.Equal(t, 0, CurrentStreak(times, date(2024, 1, 8)))
	})

	t.Run("Future Days Ignored", func(t *testing.T) {
		assert.Equal(t, 1, CurrentStreak(times, date(2024, 1, 1)))
	})

	t.Run("Longest", func(t *testing.T) {
		assert.Equal(t, 3, LongestStreak(times))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, 0, CurrentStreak(nil, date(2024, 1, 1)))
		assert.Equal(t, 0, LongestStreak(nil))
	})

	t.Run("Same Day Counted Once", func(t *testing.T) {
		dup := []time.Time{
			time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC),
		}
		assert.Equal(t, 1, LongestStreak(dup))
		assert.Equal(t, 1, CurrentStreak(dup, date(2024, 1, 1)))
	})
}

func TestDistinctMonths(t *testing.T) {
	times := []time.Time{date(2024, 1, 1), date(2024, 1, 20), date(2024, 3, 2), date(2023, 3, 2)}
	assert.Equal(t, 3, DistinctMonths(times))
	assert.Len(t, DistinctDays(times), 4)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	times := []time.Time{
		now.Add(-1 * time.Hour),
		now.Add(-24 * time.Hour),
		now.Add(-10 * 24 * time.Hour),
		now.Add(-40 * 24 * time.Hour),
		now.Add(-100 * 24 * time.Hour),
	}

	s := Summarize(times, now)
	assert.Equal(t, 5, s.TotalMoments)
	assert.Equal(t, 2, s.ThisWeek)
	assert.Equal(t, 3, s.ThisMonth)
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 2, s.LongestStreak)
	assert.InDelta(t, 4.0/12.0, s.WeeklyAverage, 1e-9)
	require.NotEmpty(t, s.Monthly)
	assert.Equal(t, "2024-03", s.Monthly[0].Period)
}

func TestMonthly(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	times := []time.Time{
		date(2023, 6, 30), // outside the window
		date(2023, 7, 1),
		date(2024, 5, 1),
		date(2024, 5, 9),
		date(2024, 6, 1),
	}

	asc := Monthly(times, now, Asc)
	assert.Equal(t, []Bucket{
		{Period: "2023-07", Count: 1},
		{Period: "2024-05", Count: 2},
		{Period: "2024-06", Count: 1},
	}, asc)

	desc := Monthly(times, now, Desc)
	assert.Equal(t, "2024-06", desc[0].Period)
	assert.Equal(t, "2023-07", desc[len(desc)-1].Period)
}

func TestWeekly(t *testing.T) {
	// Wednesday
	now := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	times := []time.Time{
		date(2024, 6, 10), // Monday
		date(2024, 6, 12),
		date(2024, 6, 9), // Sunday of the previous week
		date(2024, 3, 1), // outside twelve weeks
	}

	buckets := Weekly(times, now, Desc)
	assert.Equal(t, []Bucket{
		{Period: "2024-06-10", Count: 2},
		{Period: "2024-06-03", Count: 1},
	}, buckets)
}

func TestWeekStart(t *testing.T) {
	sunday := date(2024, 6, 16)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), WeekStart(sunday))
	monday := date(2024, 6, 17)
	assert.Equal(t, time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC), WeekStart(monday))
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("", Desc)
	assert.NoError(t, err)
	assert.Equal(t, Desc, o)

	o, err = ParseOrder("asc", Desc)
	assert.NoError(t, err)
	assert.Equal(t, Asc, o)

	_, err = ParseOrder("sideways", Desc)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestWindowStarts(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC) // Wednesday
	assert.Equal(t, time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), MonthlyWindowStart(now))
	assert.Equal(t, time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC), WeeklyWindowStart(now))
}
