package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/habits/internal/analytics"
	"github.com/HendryAvila/habits/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// timelineLength is how many recent periods habit_streaks shows for a
// single habit.
const timelineLength = 8

// StreaksTool handles the habit_streaks MCP tool.
type StreaksTool struct {
	store storage.Store
	loc   *time.Location
}

// NewStreaksTool creates a StreaksTool. "now" is read in loc.
func NewStreaksTool(store storage.Store, loc *time.Location) *StreaksTool {
	return &StreaksTool{store: store, loc: loc}
}

// Definition returns the MCP tool definition for registration.
func (t *StreaksTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_streaks",
		mcp.WithDescription(
			"Streak analytics. With `name`, shows that habit's current and longest "+
				"streak plus its recent periods. Without it, shows the streak table for "+
				"every habit and the longest streak overall. A period that is still in "+
				"progress never breaks a streak.",
		),
		mcp.WithString("name",
			mcp.Description("Exact habit name. Omit for all habits."),
		),
	)
}

// Handle processes the habit_streaks tool call.
func (t *StreaksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := t.store.Load()
	if err != nil {
		return errorResult(err)
	}
	now := timeNow().In(t.loc)

	if name := strings.TrimSpace(req.GetString("name", "")); name != "" {
		h, err := c.Get(name)
		if err != nil {
			return errorResult(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "# Streaks: %s\n\n", h.Name())
		fmt.Fprintf(&sb, "**Periodicity:** %s\n", h.Periodicity())
		fmt.Fprintf(&sb, "**Current streak:** %d\n", analytics.CurrentStreak(h, now))
		fmt.Fprintf(&sb, "**Longest streak:** %d\n\n", analytics.LongestStreak(h))
		sb.WriteString("## Recent Periods\n\n")
		for _, ps := range analytics.Timeline(h, now, timelineLength) {
			marker := "⬜"
			if ps.Completed {
				marker = "✅"
			}
			fmt.Fprintf(&sb, "- %s %s\n", marker, ps.Period)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}

	habits := c.Habits()
	if len(habits) == 0 {
		return mcp.NewToolResultText("# Streaks\n\nNo habits yet."), nil
	}

	var sb strings.Builder
	sb.WriteString("# Streaks\n\n")
	sb.WriteString("| Habit | Periodicity | Current | Longest | Completed periods |\n")
	sb.WriteString("|-------|-------------|---------|---------|-------------------|\n")
	alive := 0
	for _, r := range analytics.Summarize(habits, now) {
		if r.Alive() {
			alive++
		}
		fmt.Fprintf(&sb, "| %s | %s | %d | %d | %d |\n",
			r.Name, r.Periodicity, r.Current, r.Longest, r.CompletedPeriods)
	}
	fmt.Fprintf(&sb, "\n**%d of %d** habits have a running streak.\n", alive, len(habits))

	overall := analytics.LongestStreakOverall(habits)
	sb.WriteString("\n## Longest Streak Overall\n\n")
	if overall.Streak == 0 {
		sb.WriteString("No streaks yet.\n")
	} else {
		fmt.Fprintf(&sb, "**%d** by %s\n", overall.Streak, strings.Join(overall.Habits, ", "))
	}

	return mcp.NewToolResultText(sb.String()), nil
}
