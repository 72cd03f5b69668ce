package habit

import (
	"fmt"
	"time"
)

// Collection is an ordered set of habits keyed by name. Insertion order is
// kept for display. A Collection is not safe for concurrent use.
type Collection struct {
	habits []*Habit
}

// NewCollection builds a collection from habits, rejecting duplicate names.
func NewCollection(habits ...*Habit) (*Collection, error) {
	c := &Collection{habits: make([]*Habit, 0, len(habits))}
	for _, h := range habits {
		if err := c.Add(h); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Clone returns a deep copy. Changes to the copy, including check-offs,
// leave c untouched.
func (c *Collection) Clone() *Collection {
	out := &Collection{habits: make([]*Habit, len(c.habits))}
	for i, h := range c.habits {
		out.habits[i] = h.clone()
	}
	return out
}

// Len returns the number of habits.
func (c *Collection) Len() int { return len(c.habits) }

// Habits returns the habits in insertion order. The slice is a copy; the
// habits themselves are shared.
func (c *Collection) Habits() []*Habit {
	out := make([]*Habit, len(c.habits))
	copy(out, c.habits)
	return out
}

// Names returns the habit names in insertion order.
func (c *Collection) Names() []string {
	names := make([]string, len(c.habits))
	for i, h := range c.habits {
		names[i] = h.name
	}
	return names
}

// Has reports whether a habit with this name exists.
func (c *Collection) Has(name string) bool {
	return c.index(name) >= 0
}

// Add appends h. A habit whose name is already taken is rejected.
func (c *Collection) Add(h *Habit) error {
	if h == nil {
		return &ValidationError{Field: "habit", Reason: "habit must not be nil"}
	}
	if c.Has(h.name) {
		return &ValidationError{
			Field:  "name",
			Reason: fmt.Sprintf("a habit named %q already exists", h.name),
		}
	}
	c.habits = append(c.habits, h)
	return nil
}

// Get returns the habit with this name.
func (c *Collection) Get(name string) (*Habit, error) {
	i := c.index(name)
	if i < 0 {
		return nil, &NotFoundError{Name: name}
	}
	return c.habits[i], nil
}

// Remove deletes the habit and its completions. Removing a name that is
// not present returns a NotFoundError and changes nothing.
func (c *Collection) Remove(name string) error {
	i := c.index(name)
	if i < 0 {
		return &NotFoundError{Name: name}
	}
	c.habits = append(c.habits[:i], c.habits[i+1:]...)
	return nil
}

// CheckOff records a completion for the named habit.
func (c *Collection) CheckOff(name string, ts time.Time) error {
	h, err := c.Get(name)
	if err != nil {
		return err
	}
	return h.CheckOff(ts)
}

func (c *Collection) index(name string) int {
	for i, h := range c.habits {
		if h.name == name {
			return i
		}
	}
	return -1
}
