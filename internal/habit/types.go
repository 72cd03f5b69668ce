// Package habit holds the habit entity and the ordered collection that the
// shell, the MCP tools and the stores pass around.
//
// A Habit is immutable except for CheckOff: name, periodicity and creation
// time are fixed once the value exists. The Collection owns uniqueness of
// names and is the unit of persistence.
package habit

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// --- Periodicity enum ---

// Periodicity is how often a habit is expected to be completed.
type Periodicity string

const (
	Daily  Periodicity = "daily"
	Weekly Periodicity = "weekly"
)

// validPeriodicities is the set of allowed periodicities.
var validPeriodicities = map[Periodicity]bool{
	Daily:  true,
	Weekly: true,
}

// Periodicities lists the allowed values in display order.
var Periodicities = []Periodicity{Daily, Weekly}

// PeriodicityChoices joins the allowed values with sep, e.g. "daily/weekly".
func PeriodicityChoices(sep string) string {
	names := make([]string, len(Periodicities))
	for i, p := range Periodicities {
		names[i] = string(p)
	}
	return strings.Join(names, sep)
}

// ValidatePeriodicity returns a ValidationError if p is not recognized.
func ValidatePeriodicity(p Periodicity) error {
	if !validPeriodicities[p] {
		return &ValidationError{
			Field:  "periodicity",
			Reason: fmt.Sprintf("invalid periodicity %q: must be one of: %s", string(p), PeriodicityChoices(", ")),
		}
	}
	return nil
}

// ParsePeriodicity normalizes user input ("  Weekly ") and validates it.
func ParsePeriodicity(s string) (Periodicity, error) {
	p := Periodicity(strings.ToLower(strings.TrimSpace(s)))
	if err := ValidatePeriodicity(p); err != nil {
		return "", err
	}
	return p, nil
}

// --- Habit ---

// Habit is a trackable recurring activity.
type Habit struct {
	id          string
	name        string
	periodicity Periodicity
	createdAt   time.Time
	completions []time.Time
}

// New creates a habit with a fresh ID. The name is trimmed; an empty name
// or an unknown periodicity is rejected.
func New(name string, periodicity Periodicity, createdAt time.Time) (*Habit, error) {
	return Restore(uuid.NewString(), name, periodicity, createdAt, nil)
}

// Restore rebuilds a habit from persisted fields, enforcing the same
// invariants as New and CheckOff. Used by the stores.
func Restore(id, name string, periodicity Periodicity, createdAt time.Time, completions []time.Time) (*Habit, error) {
	name, err := ValidateName(name)
	if err != nil {
		return nil, err
	}
	if err := ValidatePeriodicity(periodicity); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, &ValidationError{Field: "id", Reason: "habit id must not be empty"}
	}
	if createdAt.IsZero() {
		return nil, &ValidationError{Field: "created_at", Reason: "creation time must be set"}
	}

	h := &Habit{
		id:          id,
		name:        name,
		periodicity: periodicity,
		createdAt:   createdAt,
		completions: make([]time.Time, 0, len(completions)),
	}
	for _, ts := range completions {
		if err := h.CheckOff(ts); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// ValidateName trims the name and rejects it when nothing is left.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: "name", Reason: "habit name cannot be empty"}
	}
	return name, nil
}

// ID returns the habit's storage identifier.
func (h *Habit) ID() string { return h.id }

// Name returns the habit's unique name.
func (h *Habit) Name() string { return h.name }

// Periodicity returns the habit's periodicity.
func (h *Habit) Periodicity() Periodicity { return h.periodicity }

// CreatedAt returns the creation timestamp.
func (h *Habit) CreatedAt() time.Time { return h.createdAt }

// Completions returns a copy of the completion timestamps in the order
// they were recorded.
func (h *Habit) Completions() []time.Time {
	out := make([]time.Time, len(h.completions))
	copy(out, h.completions)
	return out
}

// CompletionCount returns the number of recorded completions.
func (h *Habit) CompletionCount() int { return len(h.completions) }

// CheckOff records a completion at ts. Timestamps before the habit was
// created are rejected and leave the habit unchanged.
func (h *Habit) CheckOff(ts time.Time) error {
	if ts.Before(h.createdAt) {
		return &ValidationError{
			Field: "completed_at",
			Reason: fmt.Sprintf("completion %s is before habit %q was created (%s)",
				ts.Format(time.RFC3339), h.name, h.createdAt.Format(time.RFC3339)),
		}
	}
	h.completions = append(h.completions, ts)
	return nil
}

// Equal reports whether both habits carry the same name.
func (h *Habit) Equal(other *Habit) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.name == other.name
}

func (h *Habit) clone() *Habit {
	cp := *h
	cp.completions = h.Completions()
	return &cp
}

// --- Timestamps ---

// TimestampLayout is the format users type completion times in.
const TimestampLayout = "2006-01-02 15:04"

// ParseTimestamp reads "YYYY-MM-DD HH:MM" in loc. A blank input returns
// now, already converted to loc.
func ParseTimestamp(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.In(loc), nil
	}
	ts, err := time.ParseInLocation(TimestampLayout, s, loc)
	if err != nil {
		return time.Time{}, &ValidationError{
			Field:  "completed_at",
			Reason: fmt.Sprintf("%q is not in the format YYYY-MM-DD HH:MM", s),
		}
	}
	return ts, nil
}
