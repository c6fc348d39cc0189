// Package stats computes streaks and activity aggregates over moment dates.
// All functions are pure and bucket by UTC calendar day.
package stats

import (
	"errors"
	"sort"
	"time"
)

const (
	weekWindow    = 7 * 24 * time.Hour
	monthWindow   = 30 * 24 * time.Hour
	averageWeeks  = 12
	trailingMonth = 12
	trailingWeeks = 12
)

// Order selects how buckets are sorted.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ErrInvalidOrder is returned by ParseOrder for anything but asc or desc.
var ErrInvalidOrder = errors.New("order must be asc or desc")

// ParseOrder parses a query value. Empty selects def.
func ParseOrder(s string, def Order) (Order, error) {
	switch Order(s) {
	case "":
		return def, nil
	case Asc, Desc:
		return Order(s), nil
	}
	return "", ErrInvalidOrder
}

// Bucket is the number of moments in one period.
type Bucket struct {
	Period string
	Count  int
}

// Summary is the statistics view for a couple.
type Summary struct {
	TotalMoments  int
	ThisWeek      int
	ThisMonth     int
	CurrentStreak int
	LongestStreak int
	WeeklyAverage float64
	Monthly       []Bucket
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daySet(times []time.Time) map[time.Time]struct{} {
	set := make(map[time.Time]struct{}, len(times))
	for _, t := range times {
		set[Day(t)] = struct{}{}
	}
	return set
}

// DistinctDays returns the sorted set of days that have at least one moment.
func DistinctDays(times []time.Time) []time.Time {
	set := daySet(times)
	days := make([]time.Time, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// DistinctMonths returns how many calendar months have at least one moment.
func DistinctMonths(times []time.Time) int {
	set := make(map[string]struct{})
	for _, t := range times {
		set[monthKey(t)] = struct{}{}
	}
	return len(set)
}

// CurrentStreak counts consecutive active days ending today, or yesterday if
// today has no moment yet. Days after today are ignored.
func CurrentStreak(times []time.Time, today time.Time) int {
	set := daySet(times)
	cursor := Day(today)
	if _, ok := set[cursor]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
		if _, ok := set[cursor]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := set[cursor]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

// LongestStreak returns the longest run of consecutive active days.
func LongestStreak(times []time.Time) int {
	days := DistinctDays(times)
	longest, run := 0, 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// Summarize builds the full statistics view at now.
func Summarize(times []time.Time, now time.Time) Summary {
	s := Summary{
		TotalMoments:  len(times),
		CurrentStreak: CurrentStreak(times, now),
		LongestStreak: LongestStreak(times),
		Monthly:       Monthly(times, now, Asc),
	}

	weekStart := now.Add(-weekWindow)
	monthStart := now.Add(-monthWindow)
	averageStart := now.Add(-averageWeeks * weekWindow)
	recent := 0
	for _, t := range times {
		if !t.Before(weekStart) {
			s.ThisWeek++
		}
		if !t.Before(monthStart) {
			s.ThisMonth++
		}
		if !t.Before(averageStart) {
			recent++
		}
	}
	s.WeeklyAverage = float64(recent) / averageWeeks
	return s
}

func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// WeekStart returns the Monday of t's ISO week.
func WeekStart(t time.Time) time.Time {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// Monthly buckets moments by YYYY-MM over the trailing twelve calendar months,
// the current month included. Empty months are omitted.
func Monthly(times []time.Time, now time.Time, order Order) []Bucket {
	return bucket(times, MonthlyWindowStart(now), monthKey, order)
}

// MonthlyWindowStart is the first instant Monthly counts.
func MonthlyWindowStart(now time.Time) time.Time {
	y, m, _ := now.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trailingMonth - 1), 0)
}

// WeeklyWindowStart is the first instant Weekly counts.
func WeeklyWindowStart(now time.Time) time.Time {
	return WeekStart(now).AddDate(0, 0, -7*(trailingWeeks-1))
}

// Weekly buckets moments by ISO week start over the trailing twelve weeks.
// Empty weeks are omitted.
func Weekly(times []time.Time, now time.Time, order Order) []Bucket {
	return bucket(times, WeeklyWindowStart(now), func(t time.Time) string {
		return WeekStart(t).Format("2006-01-02")
	}, order)
}

func bucket(times []time.Time, start time.Time, key func(time.Time) string, order Order) []Bucket {
	counts := make(map[string]int)
	for _, t := range times {
		if t.Before(start) {
			continue
		}
		counts[key(t)]++
	}

	buckets := make([]Bucket, 0, len(counts))
	for k, c := range counts {
		buckets = append(buckets, Bucket{Period: k, Count: c})
	}
	// Keys are zero-padded dates so lexical order is chronological.
	sort.Slice(buckets, func(i, j int) bool {
		if order == Desc {
			return buckets[i].Period > buckets[j].Period
		}
		return buckets[i].Period < buckets[j].Period
	})
	return buckets
}
