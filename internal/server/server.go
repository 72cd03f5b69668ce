// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it receives the concrete store and
// injects it into the tools/prompts/resources that depend on abstractions.
// No business logic lives here, only wiring.
package server

import (
	"time"

	"github.com/HendryAvila/habits/internal/prompts"
	"github.com/HendryAvila/habits/internal/resources"
	"github.com/HendryAvila/habits/internal/storage"
	"github.com/HendryAvila/habits/internal/tools"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. loc is the user's timezone for "now" and
// typed timestamps.
func New(store storage.Store, loc *time.Location, logger *zap.Logger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := server.NewMCPServer(
		"habits",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register habit tools ---

	createTool := tools.NewCreateTool(store, loc)
	s.AddTool(createTool.Definition(), createTool.Handle)

	deleteTool := tools.NewDeleteTool(store)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	checkOffTool := tools.NewCheckOffTool(store, loc)
	s.AddTool(checkOffTool.Definition(), checkOffTool.Handle)

	listTool := tools.NewListTool(store, loc)
	s.AddTool(listTool.Definition(), listTool.Handle)

	streaksTool := tools.NewStreaksTool(store, loc)
	s.AddTool(streaksTool.Definition(), streaksTool.Handle)

	fixturesTool := tools.NewLoadFixturesTool(store)
	s.AddTool(fixturesTool.Definition(), fixturesTool.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(store, loc)
	s.AddResource(resourceHandler.SummaryResource(), resourceHandler.HandleSummary)

	logger.Debug("mcp server configured",
		zap.String("version", Version),
		zap.String("data", store.Path()),
		zap.String("timezone", loc.String()))
	return s
}

// serverInstructions returns the system instructions that tell the AI
// how to use the habit tracker.
func serverInstructions() string {
	return `You have access to a personal habit tracker.

## WHAT IT TRACKS
- Habits are either daily or weekly. Names are unique.
- A completion ("check-off") counts for the day, or ISO week, it falls in.
  Several check-offs in one period count once.
- A streak is a run of consecutive periods with at least one check-off.
  The period in progress never breaks a streak: if today (or this week)
  has no check-off yet, the current streak is the run ending yesterday
  (or last week).

## HOW TO USE IT
- Use habit_list to see what exists before creating or checking off.
- Use habit_check_off when the user says they did something. Pass
  completed_at ("YYYY-MM-DD HH:MM") only when they name a past time.
- Use habit_streaks for progress questions.
- habit_delete removes all history. Always confirm with the user first.
- habit_load_fixtures adds five example habits; it never overwrites.

The habits://summary resource holds the same streak table as JSON.`
}
