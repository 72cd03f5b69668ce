package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func promptText(t *testing.T, result *mcp.GetPromptResult) string {
	t.Helper()
	if len(result.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(result.Messages))
	}
	tc, ok := result.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", result.Messages[0].Content)
	}
	return tc.Text
}

func TestReviewPrompt(t *testing.T) {
	p := NewReviewPrompt()
	if p.Definition().Name != "habit-review" {
		t.Errorf("name = %q, want habit-review", p.Definition().Name)
	}

	result, err := p.Handle(context.Background(), mcp.GetPromptRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if text := promptText(t, result); !strings.Contains(text, "habit_streaks") {
		t.Errorf("review should call habit_streaks: %s", text)
	}

	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"habit": "Drink Water"}
	result, err = p.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if text := promptText(t, result); !strings.Contains(text, `"Drink Water"`) {
		t.Errorf("focused review should name the habit: %s", text)
	}
}

func TestStartPrompt(t *testing.T) {
	p := NewStartPrompt()
	if p.Definition().Name != "habit-start" {
		t.Errorf("name = %q, want habit-start", p.Definition().Name)
	}

	result, err := p.Handle(context.Background(), mcp.GetPromptRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := promptText(t, result)
	for _, tool := range []string{"habit_list", "habit_load_fixtures", "habit_create"} {
		if !strings.Contains(text, tool) {
			t.Errorf("start prompt should mention %s", tool)
		}
	}
}
