// Package analytics computes streaks over habit completions.
//
// Every function here is pure: inputs are never mutated, nothing is read
// from the clock or the filesystem, and the reference instant for
// "current" questions is always passed in by the caller.
package analytics

import (
	"fmt"
	"time"

	"github.com/HendryAvila/habits/internal/habit"
)

const secondsPerDay = 24 * 60 * 60

// epochMonday is the day index of 1970-01-05, the first Monday after the
// Unix epoch. Week indexes count Monday-aligned weeks from it.
const epochMonday = 4

// Period is the calendar bucket a completion falls into. It is a tagged
// union on Kind:
//
//	Kind == habit.Daily:  Year, Month, Day identify the calendar date
//	Kind == habit.Weekly: Year, Week identify the ISO-8601 week
//
// Fields that do not belong to the Kind are zero.
type Period struct {
	Kind  habit.Periodicity
	Year  int
	Month time.Month
	Day   int
	Week  int
}

// PeriodOf returns the period containing t for the given periodicity.
// t is bucketed by its own wall clock, i.e. in t.Location().
func PeriodOf(t time.Time, p habit.Periodicity) Period {
	if p == habit.Weekly {
		year, week := t.ISOWeek()
		return Period{Kind: habit.Weekly, Year: year, Week: week}
	}
	year, month, day := t.Date()
	return Period{Kind: habit.Daily, Year: year, Month: month, Day: day}
}

// Index returns a continuous ordinal for the period: days since
// 1970-01-01 for daily periods, Monday-aligned weeks since 1970-01-05 for
// weekly ones. Two periods of the same kind are adjacent exactly when
// their indexes differ by one, across year boundaries included.
func (p Period) Index() int {
	if p.Kind == habit.Weekly {
		jan4 := dayIndex(p.Year, time.January, 4)
		week1Monday := jan4 - isoWeekdayOffset(time.Date(p.Year, time.January, 4, 0, 0, 0, 0, time.UTC).Weekday())
		monday := week1Monday + (p.Week-1)*7
		return floorDiv(monday-epochMonday, 7)
	}
	return dayIndex(p.Year, p.Month, p.Day)
}

// Next returns the period immediately after p.
func (p Period) Next() Period { return periodAt(p.Kind, p.Index()+1) }

// Prev returns the period immediately before p.
func (p Period) Prev() Period { return periodAt(p.Kind, p.Index()-1) }

// String renders "2024-01-05" for daily and "2024-W01" for weekly periods.
func (p Period) String() string {
	if p.Kind == habit.Weekly {
		return fmt.Sprintf("%04d-W%02d", p.Year, p.Week)
	}
	return fmt.Sprintf("%04d-%02d-%02d", p.Year, int(p.Month), p.Day)
}

// periodAt is the inverse of Index.
func periodAt(kind habit.Periodicity, index int) Period {
	if kind == habit.Weekly {
		return PeriodOf(dayStart(index*7+epochMonday), habit.Weekly)
	}
	return PeriodOf(dayStart(index), habit.Daily)
}

func dayIndex(year int, month time.Month, day int) int {
	// Midnight UTC is an exact multiple of a day, negative years included.
	return int(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

func dayStart(index int) time.Time {
	return time.Unix(int64(index)*secondsPerDay, 0).UTC()
}

// isoWeekdayOffset maps Monday..Sunday to 0..6.
func isoWeekdayOffset(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
