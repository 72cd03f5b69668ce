// Package prompts implements MCP prompt handlers for the habit tracker.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the habit-review MCP prompt.
// It asks the AI to read the streak table and coach the user.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("habit-review",
		mcp.WithPromptDescription(
			"Review your habits: which streaks are alive, which have lapsed, "+
				"and what to focus on next.",
		),
		mcp.WithArgument("habit",
			mcp.ArgumentDescription("Focus the review on one habit. Default: all habits"),
		),
	)
}

// Handle processes the habit-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text := "Please run `habit_streaks` to get my streak table.\n\n" +
		"Then:\n" +
		"1. Celebrate the habits whose current streak is alive, longest first\n" +
		"2. List the habits whose current streak is 0 and how long their best run was\n" +
		"3. Point out the longest streak overall\n" +
		"4. Suggest one concrete thing to check off today"

	if args := req.Params.Arguments; args != nil {
		if name, ok := args["habit"]; ok && name != "" {
			text = fmt.Sprintf(
				"Please run `habit_streaks` with name %q.\n\n"+
					"Then:\n"+
					"1. Tell me the current and longest streak\n"+
					"2. Show the recent periods and point out any gaps\n"+
					"3. Tell me what I need to do to keep the streak alive this period",
				name)
		}
	}

	return &mcp.GetPromptResult{
		Description: "Habit Review",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}
