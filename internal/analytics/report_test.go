package analytics

import (
	"testing"
	"time"

	"github.com/HendryAvila/habits/internal/fixtures"
	"github.com/HendryAvila/habits/internal/habit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(hs []*habit.Habit) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.Name()
	}
	return out
}

func TestFilterByPeriodicity_Fixtures(t *testing.T) {
	hs := fixtures.Habits()

	assert.Equal(t, []string{"Drink Water", "Morning Walk", "Read 20 Pages"}, names(FilterByPeriodicity(hs, habit.Daily)))
	assert.Equal(t, []string{"Go to the Gym", "Weekly Planning"}, names(FilterByPeriodicity(hs, habit.Weekly)))
}

func TestFilterByPeriodicity_DoesNotMutateInput(t *testing.T) {
	hs := []*habit.Habit{
		newHabit(t, "w1", habit.Weekly),
		newHabit(t, "d1", habit.Daily),
		newHabit(t, "w2", habit.Weekly),
	}
	before := names(hs)

	got := FilterByPeriodicity(hs, habit.Weekly)
	got[0] = nil

	assert.Equal(t, before, names(hs))
}

func TestFilterByPeriodicity_NoMatch(t *testing.T) {
	hs := []*habit.Habit{newHabit(t, "d1", habit.Daily)}

	assert.Empty(t, FilterByPeriodicity(hs, habit.Weekly))
}

func TestListHabits_SnapshotInOrder(t *testing.T) {
	hs := fixtures.Habits()

	got := ListHabits(hs)

	require.Len(t, got, 5)
	assert.Equal(t, Snapshot{
		Name:        "Morning Walk",
		Periodicity: habit.Daily,
		CreatedAt:   fixtures.Start,
		Completions: 25,
	}, got[1])
	assert.Equal(t, "Weekly Planning", got[4].Name)
	assert.Equal(t, 3, got[4].Completions)
}

func TestSummarize(t *testing.T) {
	asOf := fixtures.Start.AddDate(0, 0, 28).Add(8 * time.Hour)

	got := Summarize(fixtures.Habits(), asOf)

	require.Len(t, got, 5)
	assert.Equal(t, Report{
		Name:             "Read 20 Pages",
		Periodicity:      habit.Daily,
		Current:          7,
		Longest:          14,
		CompletedPeriods: 21,
	}, got[2])
	assert.True(t, got[2].Alive())

	late := Summarize(fixtures.Habits(), fixtures.Start.AddDate(0, 3, 0))
	for _, r := range late {
		assert.False(t, r.Alive(), "%s should have lapsed", r.Name)
	}
}
