// Package shell implements the interactive numbered-menu console.
//
// The shell owns the in-memory collection for the session. It loads it
// once at start, mutates it through the habit package, answers queries
// through analytics and saves it after every successful mutation. Every
// error is reported and the loop continues. End of input or a cancelled
// context (Ctrl-C) exits cleanly, even while a prompt is waiting.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/HendryAvila/habits/internal/analytics"
	"github.com/HendryAvila/habits/internal/fixtures"
	"github.com/HendryAvila/habits/internal/habit"
	"github.com/HendryAvila/habits/internal/storage"
	"go.uber.org/zap"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// ErrAborted is returned by Run when the user declines to reset
// unreadable data.
var ErrAborted = errors.New("unreadable habit data left untouched")

// displayLayout formats timestamps for the user.
const displayLayout = "2006-01-02 15:04"

// Shell is one interactive session.
type Shell struct {
	store  storage.Store
	in     *bufio.Scanner
	out    io.Writer
	loc    *time.Location
	logger *zap.Logger
	styles Styles

	// Set by Run for the session.
	ctx    context.Context
	lines  <-chan inputLine
	habits *habit.Collection
}

// inputLine is one line read from the input, or the read error.
type inputLine struct {
	text string
	err  error
}

// New creates a shell reading commands from in and writing to out. loc is
// the zone "now" and typed timestamps are interpreted in.
func New(store storage.Store, in io.Reader, out io.Writer, loc *time.Location, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Shell{
		store:  store,
		in:     bufio.NewScanner(in),
		out:    out,
		loc:    loc,
		logger: logger,
		styles: NewStyles(out),
	}
}

// Run loads the habits and runs the menu loop until Exit, end of input or
// ctx cancellation.
func (s *Shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.ctx = ctx
	s.lines = s.readLines(ctx)

	err := s.start()
	if s.finished(err) {
		return nil
	}
	if err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			s.println("\nGoodbye!")
			return nil
		}

		s.printMainMenu()
		choice, err := s.prompt("Select an option: ")
		if s.finished(err) {
			s.println("\nGoodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		option, ok := s.parseOption(choice, 7)
		if !ok {
			continue
		}

		switch option {
		case 1:
			err = s.createHabit()
		case 2:
			err = s.deleteHabit()
		case 3:
			s.printHabits("Tracked Habits", s.habits.Habits())
		case 4:
			err = s.checkOffHabit()
		case 5:
			err = s.analyticsMenu()
		case 6:
			s.loadFixtures()
		case 7:
			s.println("Goodbye!")
			return nil
		}

		if s.finished(err) {
			s.println("\nGoodbye!")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// finished reports whether err ends the session without being an error:
// end of input or cancellation.
func (s *Shell) finished(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// readLines feeds input lines to the returned channel until end of input
// or ctx is done. The channel is closed at end of input.
func (s *Shell) readLines(ctx context.Context) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		for s.in.Scan() {
			select {
			case lines <- inputLine{text: s.in.Text()}:
			case <-ctx.Done():
				return
			}
		}
		if err := s.in.Err(); err != nil {
			select {
			case lines <- inputLine{err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return lines
}

// start loads the collection, handling unreadable data and the first run.
func (s *Shell) start() error {
	c, err := s.store.Load()
	var se *storage.StorageError
	switch {
	case errors.As(err, &se):
		s.logger.Warn("stored habits unreadable", zap.Error(err))
		s.failure(fmt.Sprintf("The habit data at %s cannot be read: %v", se.Path, se.Err))
		ok, err := s.confirm("Move it aside and start with no habits?")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrAborted, se.Path)
		}
		backup, err := s.store.Reset()
		if err != nil {
			return err
		}
		s.success(fmt.Sprintf("Moved the old data to %s.", backup))
		if c, err = habit.NewCollection(); err != nil {
			return err
		}
	case err != nil:
		return err
	}
	s.habits = c

	if s.habits.Len() == 0 {
		s.println(s.styles.Title.Render("Welcome to Habit Tracker"))
		ok, err := s.confirm("You have no habits yet. Load the 5 predefined example habits?")
		if err != nil {
			return err
		}
		if ok {
			s.loadFixtures()
		}
	}
	return nil
}

// --- Actions ---

func (s *Shell) createHabit() error {
	name, err := s.prompt("Enter habit name: ")
	if err != nil {
		return err
	}
	raw, err := s.prompt("Enter periodicity (" + habit.PeriodicityChoices("/") + "): ")
	if err != nil {
		return err
	}

	periodicity, err := habit.ParsePeriodicity(raw)
	if err != nil {
		s.failure(err.Error())
		return nil
	}
	h, err := habit.New(name, periodicity, s.now())
	if err != nil {
		s.failure(err.Error())
		return nil
	}
	if s.update(func(c *habit.Collection) error { return c.Add(h) }) {
		s.success(fmt.Sprintf("Habit %q created.", h.Name()))
	}
	return nil
}

func (s *Shell) deleteHabit() error {
	if s.habits.Len() == 0 {
		s.println("No habits to delete.")
		return nil
	}
	h, err := s.selectHabit(s.habits.Habits())
	if err != nil || h == nil {
		return err
	}

	ok, err := s.confirm(fmt.Sprintf("Delete %q and all its history?", h.Name()))
	if err != nil || !ok {
		return err
	}
	if s.update(func(c *habit.Collection) error { return c.Remove(h.Name()) }) {
		s.success(fmt.Sprintf("Habit %q deleted.", h.Name()))
	}
	return nil
}

func (s *Shell) checkOffHabit() error {
	if s.habits.Len() == 0 {
		s.println("No habits to check off.")
		return nil
	}
	h, err := s.selectHabit(s.habits.Habits())
	if err != nil || h == nil {
		return err
	}

	raw, err := s.prompt("Completed at (YYYY-MM-DD HH:MM, blank for now): ")
	if err != nil {
		return err
	}
	now := s.now()
	ts, err := habit.ParseTimestamp(raw, now, s.loc)
	if err != nil {
		s.failure(err.Error())
		return nil
	}
	if !s.update(func(c *habit.Collection) error { return c.CheckOff(h.Name(), ts) }) {
		return nil
	}
	if h, err = s.habits.Get(h.Name()); err == nil {
		s.success(fmt.Sprintf("Checked off %q at %s. Current streak: %d.",
			h.Name(), ts.Format(displayLayout), analytics.CurrentStreak(h, now)))
	}
	return nil
}

func (s *Shell) loadFixtures() {
	next := s.habits.Clone()
	added, skipped := fixtures.Seed(next)
	if len(added) > 0 && !s.commit(next) {
		return
	}
	if len(added) > 0 {
		s.success(fmt.Sprintf("Loaded %d predefined habits: %s.", len(added), strings.Join(added, ", ")))
	}
	if len(skipped) > 0 {
		s.println(s.styles.Warning.Render(fmt.Sprintf(
			"Skipped %d that already exist: %s.", len(skipped), strings.Join(skipped, ", "))))
	}
}

// --- Analytics ---

func (s *Shell) analyticsMenu() error {
	if s.habits.Len() == 0 {
		s.println("No habits available for analytics.")
		return nil
	}

	s.println("")
	s.println(s.styles.Title.Render("Analytics"))
	s.println("1) List all habits")
	s.println("2) List habits by periodicity")
	s.println("3) Streaks for one habit")
	s.println("4) Longest streak across all habits")
	s.println("5) Streak table")
	s.println("6) Back to main menu")

	choice, err := s.prompt("Select an option: ")
	if err != nil {
		return err
	}
	option, ok := s.parseOption(choice, 6)
	if !ok {
		return nil
	}

	habits := s.habits.Habits()
	now := s.now()
	switch option {
	case 1:
		s.printHabits("All Habits", habits)
	case 2:
		raw, err := s.prompt("Enter periodicity (" + habit.PeriodicityChoices("/") + "): ")
		if err != nil {
			return err
		}
		p, err := habit.ParsePeriodicity(raw)
		if err != nil {
			s.failure(err.Error())
			return nil
		}
		s.printHabits(strings.ToUpper(string(p[:1]))+string(p[1:])+" Habits", analytics.FilterByPeriodicity(habits, p))
	case 3:
		h, err := s.selectHabit(habits)
		if err != nil || h == nil {
			return err
		}
		s.printStreaks(h, now)
	case 4:
		overall := analytics.LongestStreakOverall(habits)
		if overall.Streak == 0 {
			s.println("No streak data available.")
		} else {
			s.println(fmt.Sprintf("Longest streak overall: %s (%d)",
				strings.Join(overall.Habits, ", "), overall.Streak))
		}
	case 5:
		t := newTable("Streaks", "Habit", "Periodicity", "Current", "Longest", "Periods")
		alive := 0
		for _, r := range analytics.Summarize(habits, now) {
			if r.Alive() {
				alive++
			}
			t.addRow(r.Name, string(r.Periodicity),
				strconv.Itoa(r.Current), strconv.Itoa(r.Longest), strconv.Itoa(r.CompletedPeriods))
		}
		s.println(t.view(s.styles))
		s.println(fmt.Sprintf("Running streaks: %d of %d habits", alive, len(habits)))
	case 6:
	}
	return nil
}

func (s *Shell) printStreaks(h *habit.Habit, now time.Time) {
	s.println("")
	s.println(s.styles.Title.Render(h.Name()))
	s.println(fmt.Sprintf("Current streak: %d", analytics.CurrentStreak(h, now)))
	s.println(fmt.Sprintf("Longest streak: %d", analytics.LongestStreak(h)))

	var sb strings.Builder
	for _, ps := range analytics.Timeline(h, now, 7) {
		mark := s.styles.Muted.Render("·")
		if ps.Completed {
			mark = s.styles.Success.Render("✔")
		}
		fmt.Fprintf(&sb, "%s %s  ", mark, ps.Period)
	}
	s.println(strings.TrimRight(sb.String(), " "))
	s.println("")
}

// --- Helpers ---

func (s *Shell) printMainMenu() {
	s.println("")
	s.println(s.styles.Title.Render("Habit Tracker"))
	s.println("1) Create habit")
	s.println("2) Delete habit")
	s.println("3) List habits")
	s.println("4) Check off habit")
	s.println("5) Analytics")
	s.println("6) Load predefined habits")
	s.println("7) Exit")
}

func (s *Shell) printHabits(title string, habits []*habit.Habit) {
	if len(habits) == 0 {
		s.println("No habits found.")
		return
	}
	t := newTable(title, "#", "Name", "Periodicity", "Created", "Completions")
	for i, snap := range analytics.ListHabits(habits) {
		t.addRow(strconv.Itoa(i+1), snap.Name, string(snap.Periodicity),
			snap.CreatedAt.In(s.loc).Format(displayLayout), strconv.Itoa(snap.Completions))
	}
	s.println(t.view(s.styles))
}

// selectHabit asks for a habit by list number or exact name. A nil habit
// with a nil error means the choice was invalid and already reported.
func (s *Shell) selectHabit(habits []*habit.Habit) (*habit.Habit, error) {
	s.printHabits("Habits", habits)
	choice, err := s.prompt("Select habit (number or name): ")
	if err != nil {
		return nil, err
	}
	choice = strings.TrimSpace(choice)

	if n, convErr := strconv.Atoi(choice); convErr == nil {
		if n < 1 || n > len(habits) {
			s.failure(fmt.Sprintf("please enter a number between 1 and %d", len(habits)))
			return nil, nil
		}
		return habits[n-1], nil
	}
	for _, h := range habits {
		if h.Name() == choice {
			return h, nil
		}
	}
	s.failure((&habit.NotFoundError{Name: choice}).Error())
	return nil, nil
}

// update applies fn to a copy of the collection and commits the copy.
// Errors from fn are reported and nothing changes.
func (s *Shell) update(fn func(c *habit.Collection) error) bool {
	next := s.habits.Clone()
	if err := fn(next); err != nil {
		s.failure(err.Error())
		return false
	}
	return s.commit(next)
}

// commit saves next and only then makes it the session state, so a failed
// save leaves the session on the last stored collection.
func (s *Shell) commit(next *habit.Collection) bool {
	if err := s.store.Save(next); err != nil {
		s.logger.Error("saving habits failed", zap.Error(err))
		s.failure(fmt.Sprintf("could not save: %v", err))
		return false
	}
	s.habits = next
	return true
}

func (s *Shell) now() time.Time {
	return timeNow().In(s.loc)
}

func (s *Shell) parseOption(choice string, limit int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil || n < 1 || n > limit {
		s.failure(fmt.Sprintf("please enter a number between 1 and %d", limit))
		return 0, false
	}
	return n, true
}

// prompt prints label and waits for one line. io.EOF signals end of
// input; the context error is returned if the session is cancelled first.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	select {
	case <-s.ctx.Done():
		return "", s.ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		if line.err != nil {
			return "", fmt.Errorf("reading input: %w", line.err)
		}
		return line.text, nil
	}
}

func (s *Shell) confirm(question string) (bool, error) {
	answer, err := s.prompt(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) success(msg string) {
	s.println(s.styles.Success.Render("✔ " + msg))
}

func (s *Shell) failure(msg string) {
	s.println(s.styles.Error.Render("✖ Error: " + msg))
}
