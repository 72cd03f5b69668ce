package analytics

import (
	"testing"
	"time"

	"github.com/HendryAvila/habits/internal/fixtures"
	"github.com/HendryAvila/habits/internal/habit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// newHabit builds a habit created on 2024-01-01 and checked off at the
// given offsets (in days) from creation, at 09:00.
func newHabit(t *testing.T, name string, p habit.Periodicity, dayOffsets ...int) *habit.Habit {
	t.Helper()
	h, err := habit.New(name, p, created)
	require.NoError(t, err)
	for _, d := range dayOffsets {
		require.NoError(t, h.CheckOff(created.AddDate(0, 0, d).Add(9*time.Hour)))
	}
	return h
}

func at(dayOffset int) time.Time {
	return created.AddDate(0, 0, dayOffset).Add(18 * time.Hour)
}

// --- Zero completions ---

func TestStreaks_NoCompletions(t *testing.T) {
	for _, p := range habit.Periodicities {
		h := newHabit(t, "fresh", p)

		assert.Equal(t, 0, LongestStreak(h), p)
		assert.Equal(t, 0, CurrentStreak(h, at(0)), p)
		assert.Empty(t, CompletedPeriods(h), p)
	}
}

func TestStreaks_CheckedOffOnCreationDay(t *testing.T) {
	h := newHabit(t, "new", habit.Daily, 0)

	assert.Equal(t, 1, LongestStreak(h))
	assert.Equal(t, 1, CurrentStreak(h, at(0)))
}

// --- CompletedPeriods ---

func TestCompletedPeriods_DistinctAndSorted(t *testing.T) {
	h := newHabit(t, "walk", habit.Daily, 5, 1, 3, 1)

	got := CompletedPeriods(h)

	require.Len(t, got, 3)
	assert.Equal(t, "2024-01-02", got[0].String())
	assert.Equal(t, "2024-01-04", got[1].String())
	assert.Equal(t, "2024-01-06", got[2].String())
}

func TestCompletedPeriods_SamePeriodIsIdempotent(t *testing.T) {
	once := newHabit(t, "once", habit.Daily, 2)
	twice := newHabit(t, "twice", habit.Daily, 2)
	require.NoError(t, twice.CheckOff(created.AddDate(0, 0, 2).Add(21*time.Hour)))

	assert.Equal(t, CompletedPeriods(once), CompletedPeriods(twice))
	assert.Equal(t, LongestStreak(once), LongestStreak(twice))
}

func TestCompletedPeriods_WeeklyBucketsWholeWeek(t *testing.T) {
	// Monday, Wednesday and Sunday of the first week, then Tuesday of the next.
	h := newHabit(t, "gym", habit.Weekly, 0, 2, 6, 8)

	got := CompletedPeriods(h)

	require.Len(t, got, 2)
	assert.Equal(t, "2024-W01", got[0].String())
	assert.Equal(t, "2024-W02", got[1].String())
}

// --- LongestStreak ---

func TestLongestStreak_DailyRunBrokenByGap(t *testing.T) {
	// D, D+1, D+2 completed, D+3 missed.
	h := newHabit(t, "walk", habit.Daily, 0, 1, 2, 4)

	assert.Equal(t, 3, LongestStreak(h))
}

func TestLongestStreak_WeeklyGapBreaksRun(t *testing.T) {
	// Weeks W, W+1, skip W+2, W+3.
	h := newHabit(t, "gym", habit.Weekly, 0, 7, 21)

	assert.Equal(t, 2, LongestStreak(h))
}

func TestLongestStreak_UnorderedInput(t *testing.T) {
	h := newHabit(t, "walk", habit.Daily, 9, 2, 8, 0, 1, 7, 10)

	assert.Equal(t, 4, LongestStreak(h))
}

func TestLongestStreak_DailyAcrossYearEnd(t *testing.T) {
	start := time.Date(2023, time.December, 30, 0, 0, 0, 0, time.UTC)
	h, err := habit.New("read", habit.Daily, start)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.NoError(t, h.CheckOff(start.AddDate(0, 0, i).Add(time.Hour)))
	}

	assert.Equal(t, 4, LongestStreak(h))
}

func TestLongestStreak_WeeklyAcrossISOYearEnd(t *testing.T) {
	// 2020 has 53 ISO weeks: W52, W53, 2021-W01, 2021-W02.
	start := time.Date(2020, time.December, 21, 0, 0, 0, 0, time.UTC)
	h, err := habit.New("plan", habit.Weekly, start)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.NoError(t, h.CheckOff(start.AddDate(0, 0, 7*i+1)))
	}

	assert.Equal(t, 4, LongestStreak(h))
}

func TestLongestStreak_WeeklyDoesNotResetAtCalendarYear(t *testing.T) {
	// 2024-W52 and 2025-W01; the second check-off falls on 2024-12-31.
	start := time.Date(2024, time.December, 23, 0, 0, 0, 0, time.UTC)
	h, err := habit.New("plan", habit.Weekly, start)
	require.NoError(t, err)
	require.NoError(t, h.CheckOff(time.Date(2024, time.December, 24, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, h.CheckOff(time.Date(2024, time.December, 31, 8, 0, 0, 0, time.UTC)))

	assert.Equal(t, 2, LongestStreak(h))
}

func TestLongestStreak_Fixtures(t *testing.T) {
	want := map[string]int{
		"Drink Water":     28,
		"Morning Walk":    9,
		"Read 20 Pages":   14,
		"Go to the Gym":   4,
		"Weekly Planning": 2,
	}
	for _, h := range fixtures.Habits() {
		assert.Equal(t, want[h.Name()], LongestStreak(h), h.Name())
	}
}

// --- CurrentStreak ---

func TestCurrentStreak_InProgressPeriodCompleted(t *testing.T) {
	h := newHabit(t, "walk", habit.Daily, 0, 1, 2)

	assert.Equal(t, 3, CurrentStreak(h, at(2)))
}

func TestCurrentStreak_InProgressPeriodNotYetCompleted(t *testing.T) {
	h := newHabit(t, "walk", habit.Daily, 0, 1, 2)

	// Day 3 has no check-off yet; the streak ending yesterday is still alive.
	assert.Equal(t, 3, CurrentStreak(h, at(3)))
}

func TestCurrentStreak_MissedPreviousPeriod(t *testing.T) {
	h := newHabit(t, "walk", habit.Daily, 0, 1, 2)

	assert.Equal(t, 0, CurrentStreak(h, at(4)))
}

func TestCurrentStreak_StopsAtFirstGap(t *testing.T) {
	h := newHabit(t, "walk", habit.Daily, 0, 1, 3, 4, 5)

	assert.Equal(t, 3, CurrentStreak(h, at(5)))
	assert.Equal(t, 3, LongestStreak(h))
}

func TestCurrentStreak_IgnoresCompletionsAfterAsOf(t *testing.T) {
	h := newHabit(t, "walk", habit.Daily, 0, 1, 2, 3, 4)

	assert.Equal(t, 2, CurrentStreak(h, at(1)))
}

func TestCurrentStreak_Weekly(t *testing.T) {
	h := newHabit(t, "gym", habit.Weekly, 0, 7, 14)

	assert.Equal(t, 3, CurrentStreak(h, at(16)), "third week completed")
	assert.Equal(t, 3, CurrentStreak(h, at(22)), "fourth week in progress")
	assert.Equal(t, 0, CurrentStreak(h, at(29)), "fourth week missed")
}

func TestCurrentStreak_Fixtures(t *testing.T) {
	// The day after fixture history ends: every daily habit's last day was
	// day 27, every weekly habit's last week was week 3.
	asOf := fixtures.Start.AddDate(0, 0, 28).Add(8 * time.Hour)
	want := map[string]int{
		"Drink Water":     28,
		"Morning Walk":    9,
		"Read 20 Pages":   7,
		"Go to the Gym":   4,
		"Weekly Planning": 1,
	}
	for _, h := range fixtures.Habits() {
		assert.Equal(t, want[h.Name()], CurrentStreak(h, asOf), h.Name())
	}
}

// --- LongestStreakOverall ---

func TestLongestStreakOverall_Empty(t *testing.T) {
	got := LongestStreakOverall(nil)

	assert.Equal(t, 0, got.Streak)
	assert.Empty(t, got.Habits)
}

func TestLongestStreakOverall_NoCompletions(t *testing.T) {
	got := LongestStreakOverall([]*habit.Habit{newHabit(t, "a", habit.Daily)})

	assert.Equal(t, 0, got.Streak)
	assert.Empty(t, got.Habits)
}

func TestLongestStreakOverall_Fixtures(t *testing.T) {
	got := LongestStreakOverall(fixtures.Habits())

	assert.Equal(t, Overall{Streak: 28, Habits: []string{"Drink Water"}}, got)
}

func TestLongestStreakOverall_TiesReportAllInInputOrder(t *testing.T) {
	hs := []*habit.Habit{
		newHabit(t, "b", habit.Daily, 0, 1, 2),
		newHabit(t, "short", habit.Daily, 0),
		newHabit(t, "a", habit.Weekly, 0, 7, 14),
	}

	got := LongestStreakOverall(hs)

	assert.Equal(t, 3, got.Streak)
	assert.Equal(t, []string{"b", "a"}, got.Habits)
}

// --- Timeline ---

func TestTimeline_LastPeriods(t *testing.T) {
	h := newHabit(t, "walk", habit.Daily, 0, 2, 3)

	got := Timeline(h, at(4), 5)

	require.Len(t, got, 5)
	assert.Equal(t, "2024-01-01", got[0].Period.String())
	assert.Equal(t, "2024-01-05", got[4].Period.String())
	var completed []bool
	for _, ps := range got {
		completed = append(completed, ps.Completed)
	}
	assert.Equal(t, []bool{true, false, true, true, false}, completed)
}

func TestTimeline_NonPositive(t *testing.T) {
	h := newHabit(t, "walk", habit.Daily, 0)

	assert.Nil(t, Timeline(h, at(0), 0))
}
