package analytics

import (
	"time"

	"github.com/HendryAvila/habits/internal/habit"
)

// FilterByPeriodicity returns the habits with exactly this periodicity,
// keeping their relative order. The input slice is left untouched.
func FilterByPeriodicity(habits []*habit.Habit, p habit.Periodicity) []*habit.Habit {
	out := make([]*habit.Habit, 0, len(habits))
	for _, h := range habits {
		if h.Periodicity() == p {
			out = append(out, h)
		}
	}
	return out
}

// Snapshot is a read-only view of a habit for listings.
type Snapshot struct {
	Name        string            `json:"name"`
	Periodicity habit.Periodicity `json:"periodicity"`
	CreatedAt   time.Time         `json:"created_at"`
	Completions int               `json:"completions"`
}

// ListHabits returns one Snapshot per habit in collection order.
func ListHabits(habits []*habit.Habit) []Snapshot {
	out := make([]Snapshot, len(habits))
	for i, h := range habits {
		out[i] = Snapshot{
			Name:        h.Name(),
			Periodicity: h.Periodicity(),
			CreatedAt:   h.CreatedAt(),
			Completions: h.CompletionCount(),
		}
	}
	return out
}

// Report is the per-habit streak summary printed by the shell and the
// MCP surface.
type Report struct {
	Name             string            `json:"name"`
	Periodicity      habit.Periodicity `json:"periodicity"`
	Current          int               `json:"current_streak"`
	Longest          int               `json:"longest_streak"`
	CompletedPeriods int               `json:"completed_periods"`
}

// Alive reports whether the habit currently has a running streak.
func (r Report) Alive() bool { return r.Current > 0 }

// Summarize builds a Report for every habit as of the given instant.
func Summarize(habits []*habit.Habit, asOf time.Time) []Report {
	out := make([]Report, len(habits))
	for i, h := range habits {
		out[i] = Report{
			Name:             h.Name(),
			Periodicity:      h.Periodicity(),
			Current:          CurrentStreak(h, asOf),
			Longest:          LongestStreak(h),
			CompletedPeriods: len(CompletedPeriods(h)),
		}
	}
	return out
}
