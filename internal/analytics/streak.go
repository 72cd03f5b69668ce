package analytics

import (
	"slices"
	"time"

	"github.com/HendryAvila/habits/internal/habit"
)

// CompletedPeriods returns the distinct periods holding at least one
// completion, in ascending order. Several check-offs in the same period
// collapse into one entry.
func CompletedPeriods(h *habit.Habit) []Period {
	byIndex := make(map[int]Period)
	for _, ts := range h.Completions() {
		p := PeriodOf(ts, h.Periodicity())
		byIndex[p.Index()] = p
	}

	periods := make([]Period, 0, len(byIndex))
	for _, p := range byIndex {
		periods = append(periods, p)
	}
	slices.SortFunc(periods, func(a, b Period) int {
		return a.Index() - b.Index()
	})
	return periods
}

// LongestStreak returns the length of the longest run of consecutive
// completed periods. A habit without completions has a longest streak of 0.
func LongestStreak(h *habit.Habit) int {
	periods := CompletedPeriods(h)

	longest, run := 0, 0
	for i, p := range periods {
		if i > 0 && p.Index() == periods[i-1].Index()+1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// CurrentStreak counts consecutive completed periods ending at the period
// that contains asOf. The period containing asOf is still in progress: if
// it has a completion it is counted, otherwise the streak is the run that
// ends at the previous period. A gap anywhere else ends the streak.
func CurrentStreak(h *habit.Habit, asOf time.Time) int {
	done := completedIndexes(h)

	p := PeriodOf(asOf, h.Periodicity())
	if !done[p.Index()] {
		p = p.Prev()
	}

	n := 0
	for done[p.Index()] {
		n++
		p = p.Prev()
	}
	return n
}

// Overall is the longest streak across a set of habits.
type Overall struct {
	Streak int `json:"streak"`
	// Habits holds every habit name reaching Streak, in input order.
	// Empty when Streak is 0.
	Habits []string `json:"habits"`
}

// LongestStreakOverall returns the best LongestStreak among habits and
// all habits that tie for it, in input order. An empty input, or one in
// which no habit has a completion, yields a zero Overall.
func LongestStreakOverall(habits []*habit.Habit) Overall {
	var best Overall
	for _, h := range habits {
		streak := LongestStreak(h)
		switch {
		case streak == 0:
			continue
		case streak > best.Streak:
			best = Overall{Streak: streak, Habits: []string{h.Name()}}
		case streak == best.Streak:
			best.Habits = append(best.Habits, h.Name())
		}
	}
	return best
}

// PeriodStatus pairs a period with whether it was completed.
type PeriodStatus struct {
	Period    Period
	Completed bool
}

// Timeline returns the last n periods up to and including the one
// containing asOf, oldest first.
func Timeline(h *habit.Habit, asOf time.Time, n int) []PeriodStatus {
	if n <= 0 {
		return nil
	}
	done := completedIndexes(h)
	last := PeriodOf(asOf, h.Periodicity()).Index()

	out := make([]PeriodStatus, 0, n)
	p := periodAt(h.Periodicity(), last-n+1)
	for range n {
		out = append(out, PeriodStatus{Period: p, Completed: done[p.Index()]})
		p = p.Next()
	}
	return out
}

func completedIndexes(h *habit.Habit) map[int]bool {
	done := make(map[int]bool)
	for _, ts := range h.Completions() {
		done[PeriodOf(ts, h.Periodicity()).Index()] = true
	}
	return done
}
