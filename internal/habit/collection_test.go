package habit

import (
	"errors"
	"testing"
	"time"
)

func mustNew(t *testing.T, name string, p Periodicity) *Habit {
	t.Helper()
	h, err := New(name, p, day0)
	if err != nil {
		t.Fatalf("New(%q) failed: %v", name, err)
	}
	return h
}

func TestCollection_AddKeepsInsertionOrder(t *testing.T) {
	c, _ := NewCollection()
	for _, name := range []string{"c", "a", "b"} {
		if err := c.Add(mustNew(t, name, Daily)); err != nil {
			t.Fatalf("Add(%s) failed: %v", name, err)
		}
	}

	got := c.Names()
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names = %v, want %v", got, want)
		}
	}
}

func TestCollection_AddRejectsDuplicateName(t *testing.T) {
	c, _ := NewCollection(mustNew(t, "Walk", Daily))

	err := c.Add(mustNew(t, "Walk", Weekly))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestNewCollection_RejectsDuplicates(t *testing.T) {
	_, err := NewCollection(mustNew(t, "Walk", Daily), mustNew(t, "Walk", Daily))
	if err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestCollection_GetUnknown(t *testing.T) {
	c, _ := NewCollection()
	_, err := c.Get("nope")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if nf.Name != "nope" {
		t.Errorf("Name = %s, want nope", nf.Name)
	}
}

func TestCollection_RemoveIsIdempotentWithNotFound(t *testing.T) {
	c, _ := NewCollection(mustNew(t, "Walk", Daily), mustNew(t, "Read", Daily))

	if err := c.Remove("Walk"); err != nil {
		t.Fatalf("first Remove failed: %v", err)
	}
	if c.Has("Walk") {
		t.Error("Walk should be gone")
	}

	err := c.Remove("Walk")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("second Remove error = %v, want *NotFoundError", err)
	}
	if c.Len() != 1 || !c.Has("Read") {
		t.Errorf("second Remove must not change the collection, got %v", c.Names())
	}
}

func TestCollection_CheckOff(t *testing.T) {
	c, _ := NewCollection(mustNew(t, "Walk", Daily))

	if err := c.CheckOff("Walk", day0.Add(time.Hour)); err != nil {
		t.Fatalf("CheckOff failed: %v", err)
	}
	h, _ := c.Get("Walk")
	if h.CompletionCount() != 1 {
		t.Errorf("CompletionCount = %d, want 1", h.CompletionCount())
	}

	var nf *NotFoundError
	if err := c.CheckOff("Run", day0); !errors.As(err, &nf) {
		t.Errorf("CheckOff unknown error = %v, want *NotFoundError", err)
	}
}

func TestCollection_CloneIsIndependent(t *testing.T) {
	c, _ := NewCollection(mustNew(t, "Walk", Daily), mustNew(t, "Read", Daily))

	cp := c.Clone()
	if err := cp.CheckOff("Walk", day0.Add(time.Hour)); err != nil {
		t.Fatalf("CheckOff failed: %v", err)
	}
	if err := cp.Remove("Read"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if c.Len() != 2 {
		t.Errorf("original Len = %d, want 2", c.Len())
	}
	walk, _ := c.Get("Walk")
	if walk.CompletionCount() != 0 {
		t.Errorf("original Walk has %d completions, want 0", walk.CompletionCount())
	}
	cpWalk, _ := cp.Get("Walk")
	if cpWalk.CompletionCount() != 1 || cpWalk.ID() != walk.ID() {
		t.Error("clone should carry the new completion and keep the ID")
	}
}

func TestCollection_HabitsReturnsCopy(t *testing.T) {
	c, _ := NewCollection(mustNew(t, "Walk", Daily))
	hs := c.Habits()
	hs[0] = nil

	if c.Habits()[0] == nil {
		t.Error("mutating the returned slice must not change the collection")
	}
}
