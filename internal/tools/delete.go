package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/habits/internal/habit"
	"github.com/HendryAvila/habits/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// DeleteTool handles the habit_delete MCP tool.
type DeleteTool struct {
	store storage.Store
}

// NewDeleteTool creates a DeleteTool with the given store.
func NewDeleteTool(store storage.Store) *DeleteTool {
	return &DeleteTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_delete",
		mcp.WithDescription(
			"Delete a habit and its whole completion history. This cannot be undone; "+
				"confirm with the user before calling it.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Exact name of the habit to delete."),
		),
	)
}

// Handle processes the habit_delete tool call.
func (t *DeleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, errResult := requireName(req)
	if errResult != nil {
		return errResult, nil
	}

	if err := mutate(t.store, func(c *habit.Collection) error {
		return c.Remove(name)
	}); err != nil {
		return errorResult(err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted habit **%s**.", name)), nil
}
