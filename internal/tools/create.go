package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/HendryAvila/habits/internal/habit"
	"github.com/HendryAvila/habits/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateTool handles the habit_create MCP tool.
type CreateTool struct {
	store storage.Store
	loc   *time.Location
}

// NewCreateTool creates a CreateTool with the given store and display zone.
func NewCreateTool(store storage.Store, loc *time.Location) *CreateTool {
	return &CreateTool{store: store, loc: loc}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_create",
		mcp.WithDescription(
			"Create a new habit. Names are unique; creating a habit whose name "+
				"already exists fails and leaves the existing habit untouched.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Habit name, e.g. 'Drink Water'. Surrounding whitespace is trimmed."),
		),
		mcp.WithString("periodicity",
			mcp.Required(),
			mcp.Description("How often the habit should be completed."),
			mcp.Enum(periodicityEnum()...),
		),
	)
}

// Handle processes the habit_create tool call.
func (t *CreateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	periodicity, err := habit.ParsePeriodicity(req.GetString("periodicity", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var created *habit.Habit
	err = mutate(t.store, func(c *habit.Collection) error {
		h, err := habit.New(req.GetString("name", ""), periodicity, timeNow().In(t.loc))
		if err != nil {
			return err
		}
		if err := c.Add(h); err != nil {
			return err
		}
		created = h
		return nil
	})
	if err != nil {
		return errorResult(err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Habit Created\n\n"+
			"**Name:** %s\n"+
			"**Periodicity:** %s\n"+
			"**Created:** %s\n\n"+
			"Check it off with `habit_check_off`.",
		created.Name(), created.Periodicity(), created.CreatedAt().Format(displayLayout),
	)), nil
}
