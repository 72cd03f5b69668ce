// Package fixtures provides the five predefined demo habits with four weeks
// of completion history. The data is fixed so it doubles as test input with
// known streaks.
package fixtures

import (
	"fmt"
	"time"

	"github.com/HendryAvila/habits/internal/habit"
)

// Start is the fixed first day of fixture history. 2024-01-01 is a Monday.
var Start = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	fixtureDays  = 28
	fixtureWeeks = 4
)

// definition describes one predefined habit.
type definition struct {
	id          string
	name        string
	periodicity habit.Periodicity
	skip        []int
}

// IDs are fixed so repeated loads produce byte-identical files.
var definitions = []definition{
	{"00000000-0000-4000-8000-000000000001", "Drink Water", habit.Daily, nil},
	{"00000000-0000-4000-8000-000000000002", "Morning Walk", habit.Daily, []int{3, 10, 18}},
	{"00000000-0000-4000-8000-000000000003", "Read 20 Pages", habit.Daily, []int{14, 15, 16, 17, 18, 19, 20}},
	{"00000000-0000-4000-8000-000000000004", "Go to the Gym", habit.Weekly, nil},
	{"00000000-0000-4000-8000-000000000005", "Weekly Planning", habit.Weekly, []int{2}},
}

// Habits returns fresh copies of the five predefined habits:
//
//	Drink Water      daily,  28 days, no gaps           (longest 28)
//	Morning Walk     daily,  days 3, 10, 18 missed      (longest 9)
//	Read 20 Pages    daily,  days 14-20 missed          (longest 14)
//	Go to the Gym    weekly, 4 weeks, no gaps           (longest 4)
//	Weekly Planning  weekly, week 2 missed              (longest 2)
//
// Daily check-offs happen at 09:00 UTC, weekly ones on Monday 10:00 UTC.
func Habits() []*habit.Habit {
	out := make([]*habit.Habit, 0, len(definitions))
	for _, s := range definitions {
		var completions []time.Time
		if s.periodicity == habit.Weekly {
			completions = weeklyCompletions(Start, fixtureWeeks, s.skip)
		} else {
			completions = dailyCompletions(Start, fixtureDays, s.skip)
		}

		h, err := habit.Restore(s.id, s.name, s.periodicity, Start, completions)
		if err != nil {
			// The table above is static; failing here is a programming error.
			panic(fmt.Sprintf("fixtures: building %q: %v", s.name, err))
		}
		out = append(out, h)
	}
	return out
}

// Seed adds every predefined habit whose name is not already taken.
// Existing habits are never overwritten: colliding fixtures are skipped
// and reported.
func Seed(c *habit.Collection) (added, skipped []string) {
	for _, h := range Habits() {
		if c.Has(h.Name()) {
			skipped = append(skipped, h.Name())
			continue
		}
		if err := c.Add(h); err != nil {
			skipped = append(skipped, h.Name())
			continue
		}
		added = append(added, h.Name())
	}
	return added, skipped
}

func dailyCompletions(start time.Time, days int, skip []int) []time.Time {
	var out []time.Time
	for i := 0; i < days; i++ {
		if contains(skip, i) {
			continue
		}
		out = append(out, start.AddDate(0, 0, i).Add(9*time.Hour))
	}
	return out
}

func weeklyCompletions(start time.Time, weeks int, skip []int) []time.Time {
	var out []time.Time
	for i := 0; i < weeks; i++ {
		if contains(skip, i) {
			continue
		}
		out = append(out, start.AddDate(0, 0, 7*i).Add(10*time.Hour))
	}
	return out
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
