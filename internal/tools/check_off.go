package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/HendryAvila/habits/internal/analytics"
	"github.com/HendryAvila/habits/internal/habit"
	"github.com/HendryAvila/habits/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// CheckOffTool handles the habit_check_off MCP tool.
type CheckOffTool struct {
	store storage.Store
	loc   *time.Location
}

// NewCheckOffTool creates a CheckOffTool. loc is the zone completed_at is
// read in.
func NewCheckOffTool(store storage.Store, loc *time.Location) *CheckOffTool {
	return &CheckOffTool{store: store, loc: loc}
}

// Definition returns the MCP tool definition for registration.
func (t *CheckOffTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_check_off",
		mcp.WithDescription(
			"Record a completion of a habit. Several completions inside the same "+
				"day (daily) or ISO week (weekly) count once for streaks. "+
				"Completions before the habit was created are rejected.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Exact name of the habit."),
		),
		mcp.WithString("completed_at",
			mcp.Description("When it was done, as 'YYYY-MM-DD HH:MM' in the user's timezone. Omit for now."),
		),
	)
}

// Handle processes the habit_check_off tool call.
func (t *CheckOffTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, errResult := requireName(req)
	if errResult != nil {
		return errResult, nil
	}

	now := timeNow().In(t.loc)
	ts, err := habit.ParseTimestamp(req.GetString("completed_at", ""), now, t.loc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var current int
	err = mutate(t.store, func(c *habit.Collection) error {
		if err := c.CheckOff(name, ts); err != nil {
			return err
		}
		h, _ := c.Get(name)
		current = analytics.CurrentStreak(h, now)
		return nil
	})
	if err != nil {
		return errorResult(err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Checked off **%s** at %s.\n\nCurrent streak: **%d**.",
		name, ts.Format(displayLayout), current,
	)), nil
}
