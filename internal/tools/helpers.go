// Package tools implements MCP tool handlers for the habit tracker.
//
// Each tool receives its dependencies via its struct and returns a handler
// compatible with mcp-go's CallToolRequest signature.
//
// Design principles:
// - SRP: each file = one tool
// - DIP: tools depend on storage.Store, not on a backend
// - every call loads the collection, applies one operation and saves on
//   mutation, so the shell and the server never hold stale state
package tools

import (
	"errors"
	"fmt"
	"time"

	"github.com/HendryAvila/habits/internal/habit"
	"github.com/HendryAvila/habits/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// displayLayout formats timestamps in tool output.
const displayLayout = "2006-01-02 15:04"

// mutate loads the collection, applies fn and saves the result. Nothing is
// saved when fn fails.
func mutate(store storage.Store, fn func(c *habit.Collection) error) error {
	c, err := store.Load()
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return store.Save(c)
}

// errorResult turns a domain or storage error into a tool error the
// assistant can show the user. Anything else is returned as a Go error.
func errorResult(err error) (*mcp.CallToolResult, error) {
	var ve *habit.ValidationError
	var nf *habit.NotFoundError
	var se *storage.StorageError
	switch {
	case errors.As(err, &ve):
		return mcp.NewToolResultError(ve.Error()), nil
	case errors.As(err, &nf):
		return mcp.NewToolResultError(nf.Error() + ". Use `habit_list` to see existing habits."), nil
	case errors.As(err, &se):
		return mcp.NewToolResultError(fmt.Sprintf(
			"The habit data at %s could not be used: %v\n\n"+
				"Run `habits` in a terminal to inspect or reset it.", se.Path, se.Err)), nil
	default:
		return nil, err
	}
}

// periodicityEnum lists the allowed periodicities for tool schemas.
func periodicityEnum() []string {
	out := make([]string, len(habit.Periodicities))
	for i, p := range habit.Periodicities {
		out[i] = string(p)
	}
	return out
}

// requireName extracts the trimmed, non-empty "name" argument.
func requireName(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	name, err := habit.ValidateName(req.GetString("name", ""))
	if err != nil {
		return "", mcp.NewToolResultError(err.Error())
	}
	return name, nil
}
