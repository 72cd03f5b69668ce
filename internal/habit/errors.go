package habit

import "fmt"

// ValidationError reports input that violates a habit invariant: an empty
// name, an unknown periodicity, a duplicate name or a completion recorded
// before the habit existed. The operation that returned it had no effect.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a habit name that is absent from the collection.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("habit %q not found", e.Name)
}
