package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// WeeksLived returns the number of whole weeks elapsed between birth and now.
// The count is floored, so it goes negative when now precedes birth.
func WeeksLived(birth, now time.Time) int {
	elapsed := now.Sub(birth)
	weeks := elapsed / config.Week
	if elapsed%config.Week < 0 {
		weeks--
	}
	return int(weeks)
}

// TotalWeeks returns the number of weeks in a lifespan (52 per year).
func TotalWeeks(l Lifespan) int {
	return l.Years() * config.WeeksPerYear
}

// WeeksRemaining returns the weeks left in the lifespan, never below zero.
func WeeksRemaining(birth time.Time, l Lifespan, now time.Time) int {
	return max(0, TotalWeeks(l)-WeeksLived(birth, now))
}

// CompletionPercentage returns the share of the lifespan already lived,
// capped at 100.
func CompletionPercentage(birth time.Time, l Lifespan, now time.Time) float64 {
	return completion(WeeksLived(birth, now), TotalWeeks(l))
}

func completion(lived, total int) float64 {
	return math.Min(config.PercentMax, float64(lived)/float64(total)*config.PercentMax)
}

// Age returns the age in completed calendar years: the year difference,
// minus one when the birthday has not yet occurred in now's year.
// now is read in birth's location so both dates use the same calendar.
func Age(birth, now time.Time) int {
	now = now.In(birth.Location())
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// WeekDateRange returns the first and last instant of the week at index
// (0-based) counted from birth. The end is one millisecond before the next
// week starts.
func WeekDateRange(birth time.Time, index int) (start, end time.Time) {
	start = birth.Add(time.Duration(index) * config.Week)
	end = start.Add(config.Week - time.Millisecond)
	return start, end
}

// FormatDateRange renders a week range as "Jan 1 – Jan 7, 2024". When the
// range crosses a year boundary both ends carry their own year.
func FormatDateRange(start, end time.Time) string {
	if start.Year() == end.Year() {
		return fmt.Sprintf(config.FormatRangeSameYear,
			start.Format(config.DateFormatMonthDay),
			end.Format(config.DateFormatMonthDay),
			end.Year())
	}
	return fmt.Sprintf(config.FormatRangeCrossYear,
		start.Format(config.DateFormatMonthDayYear),
		end.Format(config.DateFormatMonthDayYear))
}
