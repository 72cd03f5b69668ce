package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the habit-start MCP prompt.
// It walks a new user through creating their first habits.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("habit-start",
		mcp.WithPromptDescription(
			"Set up habit tracking: create your first habits or load the examples.",
		),
	)
}

// Handle processes the habit-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Start Tracking Habits",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"I want to start tracking habits. Please run `habit_list` first.\n\n" +
						"If I have no habits yet:\n" +
						"1. Ask me whether I want the five example habits (`habit_load_fixtures`) or my own\n" +
						"2. For my own, ask for each habit's name and whether it is daily or weekly, then call `habit_create`\n\n" +
						"If I already have habits, show them and ask which one I did today so you can call `habit_check_off`.",
				),
			},
		},
	}, nil
}
