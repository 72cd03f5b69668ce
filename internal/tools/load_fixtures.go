package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/habits/internal/fixtures"
	"github.com/HendryAvila/habits/internal/habit"
	"github.com/HendryAvila/habits/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// LoadFixturesTool handles the habit_load_fixtures MCP tool.
type LoadFixturesTool struct {
	store storage.Store
}

// NewLoadFixturesTool creates a LoadFixturesTool with the given store.
func NewLoadFixturesTool(store storage.Store) *LoadFixturesTool {
	return &LoadFixturesTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *LoadFixturesTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_load_fixtures",
		mcp.WithDescription(
			"Load the five predefined example habits with four weeks of history "+
				"starting 2024-01-01. Habits whose name already exists are skipped, "+
				"never overwritten.",
		),
	)
}

// Handle processes the habit_load_fixtures tool call.
func (t *LoadFixturesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var added, skipped []string
	err := mutate(t.store, func(c *habit.Collection) error {
		added, skipped = fixtures.Seed(c)
		return nil
	})
	if err != nil {
		return errorResult(err)
	}

	var sb strings.Builder
	sb.WriteString("# Example Habits\n\n")
	fmt.Fprintf(&sb, "**Added (%d):** %s\n", len(added), joinOrNone(added))
	fmt.Fprintf(&sb, "**Skipped, name already exists (%d):** %s\n", len(skipped), joinOrNone(skipped))
	return mcp.NewToolResultText(sb.String()), nil
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
