package server

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/HendryAvila/habits/internal/storage"
)

func TestNew_RegistersEverything(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habits.json"), nil)
	s := New(store, time.UTC, nil)
	if s == nil {
		t.Fatal("New returned nil")
	}

	msg := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	resp := s.HandleMessage(context.Background(), json.RawMessage(msg))

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	for _, name := range []string{"habit_create", "habit_delete", "habit_check_off", "habit_list", "habit_streaks", "habit_load_fixtures"} {
		if !strings.Contains(string(data), `"`+name+`"`) {
			t.Errorf("tools/list should include %s", name)
		}
	}
}

func TestServerInstructions(t *testing.T) {
	text := serverInstructions()
	for _, want := range []string{"habit_check_off", "never breaks a streak", "habits://summary"} {
		if !strings.Contains(text, want) {
			t.Errorf("instructions should mention %q", want)
		}
	}
}
