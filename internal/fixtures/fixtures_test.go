package fixtures

import (
	"testing"
	"time"

	"github.com/HendryAvila/habits/internal/habit"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHabits_FivePredefined(t *testing.T) {
	hs := Habits()
	require.Len(t, hs, 5)

	var daily, weekly int
	for _, h := range hs {
		switch h.Periodicity() {
		case habit.Daily:
			daily++
		case habit.Weekly:
			weekly++
		}
		assert.True(t, h.CreatedAt().Equal(Start), "%s created at %s", h.Name(), h.CreatedAt())
	}
	assert.Equal(t, 3, daily)
	assert.Equal(t, 2, weekly)
}

func TestHabits_CompletionCounts(t *testing.T) {
	want := map[string]int{
		"Drink Water":     28,
		"Morning Walk":    25,
		"Read 20 Pages":   21,
		"Go to the Gym":   4,
		"Weekly Planning": 3,
	}
	for _, h := range Habits() {
		assert.Equal(t, want[h.Name()], h.CompletionCount(), h.Name())
	}
}

func TestHabits_WithinFourWeeks(t *testing.T) {
	end := Start.AddDate(0, 0, 28)
	for _, h := range Habits() {
		for _, ts := range h.Completions() {
			assert.False(t, ts.Before(Start), "%s: %s before start", h.Name(), ts)
			assert.True(t, ts.Before(end), "%s: %s after four weeks", h.Name(), ts)
		}
	}
}

func TestHabits_Deterministic(t *testing.T) {
	type view struct {
		ID, Name    string
		Periodicity habit.Periodicity
		Completions []time.Time
	}
	flatten := func(hs []*habit.Habit) []view {
		out := make([]view, len(hs))
		for i, h := range hs {
			out[i] = view{h.ID(), h.Name(), h.Periodicity(), h.Completions()}
		}
		return out
	}

	if diff := cmp.Diff(flatten(Habits()), flatten(Habits())); diff != "" {
		t.Errorf("Habits() differs between calls (-first +second):\n%s", diff)
	}
}

func TestHabits_FreshValues(t *testing.T) {
	first := Habits()
	require.NoError(t, first[0].CheckOff(Start.AddDate(0, 2, 0)))

	second := Habits()
	assert.Equal(t, 28, second[0].CompletionCount())
}

func TestSeed_EmptyCollection(t *testing.T) {
	c, _ := habit.NewCollection()

	added, skipped := Seed(c)

	assert.Equal(t, []string{"Drink Water", "Morning Walk", "Read 20 Pages", "Go to the Gym", "Weekly Planning"}, added)
	assert.Empty(t, skipped)
	assert.Equal(t, 5, c.Len())
}

func TestSeed_TwiceDoesNotDuplicate(t *testing.T) {
	c, _ := habit.NewCollection()
	Seed(c)

	added, skipped := Seed(c)

	assert.Empty(t, added)
	assert.Len(t, skipped, 5)
	assert.Equal(t, 5, c.Len())
}

func TestSeed_KeepsExistingHabitOnCollision(t *testing.T) {
	mine, err := habit.New("Drink Water", habit.Weekly, Start)
	require.NoError(t, err)
	c, _ := habit.NewCollection(mine)

	added, skipped := Seed(c)

	assert.Equal(t, []string{"Drink Water"}, skipped)
	assert.Len(t, added, 4)

	got, err := c.Get("Drink Water")
	require.NoError(t, err)
	assert.Same(t, mine, got)
	assert.Equal(t, habit.Weekly, got.Periodicity())
}
