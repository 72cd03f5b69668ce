// Package resources implements MCP resource handlers for the habit tracker.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (habits://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/HendryAvila/habits/internal/analytics"
	"github.com/HendryAvila/habits/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// SummaryURI addresses the streak summary resource.
const SummaryURI = "habits://summary"

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// Summary is the JSON document served at SummaryURI.
type Summary struct {
	AsOf    time.Time          `json:"as_of"`
	Habits  []analytics.Report `json:"habits"`
	Overall analytics.Overall  `json:"overall"`
}

// Handler manages habit resource endpoints.
type Handler struct {
	store storage.Store
	loc   *time.Location
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store storage.Store, loc *time.Location) *Handler {
	return &Handler{store: store, loc: loc}
}

// SummaryResource returns the MCP resource definition for the streak table.
func (h *Handler) SummaryResource() mcp.Resource {
	return mcp.NewResource(
		SummaryURI,
		"Habit Streak Summary",
		mcp.WithResourceDescription("Current and longest streak for every habit, plus the longest streak overall"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleSummary returns the streak summary as JSON.
func (h *Handler) HandleSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	c, err := h.store.Load()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	habits := c.Habits()
	now := timeNow().In(h.loc)
	summary := Summary{
		AsOf:    now,
		Habits:  analytics.Summarize(habits, now),
		Overall: analytics.LongestStreakOverall(habits),
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
