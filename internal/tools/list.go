package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/habits/internal/analytics"
	"github.com/HendryAvila/habits/internal/habit"
	"github.com/HendryAvila/habits/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListTool handles the habit_list MCP tool.
type ListTool struct {
	store storage.Store
	loc   *time.Location
}

// NewListTool creates a ListTool with the given store and display zone.
func NewListTool(store storage.Store, loc *time.Location) *ListTool {
	return &ListTool{store: store, loc: loc}
}

// Definition returns the MCP tool definition for registration.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_list",
		mcp.WithDescription(
			"List tracked habits in creation order, optionally only those with "+
				"one periodicity.",
		),
		mcp.WithString("periodicity",
			mcp.Description("Only list habits with this periodicity. Omit for all."),
			mcp.Enum(periodicityEnum()...),
		),
	)
}

// Handle processes the habit_list tool call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := t.store.Load()
	if err != nil {
		return errorResult(err)
	}

	habits := c.Habits()
	title := "Habits"
	if raw := req.GetString("periodicity", ""); raw != "" {
		p, err := habit.ParsePeriodicity(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		habits = analytics.FilterByPeriodicity(habits, p)
		title = fmt.Sprintf("%s Habits", strings.ToUpper(string(p[:1]))+string(p[1:]))
	}

	if len(habits) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"# %s\n\nNo habits yet. Create one with `habit_create` or load the "+
				"examples with `habit_load_fixtures`.", title)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	sb.WriteString("| Name | Periodicity | Created | Completions |\n")
	sb.WriteString("|------|-------------|---------|-------------|\n")
	for _, s := range analytics.ListHabits(habits) {
		fmt.Fprintf(&sb, "| %s | %s | %s | %d |\n",
			s.Name, s.Periodicity, s.CreatedAt.In(t.loc).Format(displayLayout), s.Completions)
	}

	return mcp.NewToolResultText(sb.String()), nil
}
