package todo

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for each failure kind. The typed errors below match them
// with errors.Is, so callers can branch on the kind without a type switch.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("task not found")
	ErrPersistence = errors.New("persistence failed")
	ErrCorruptData = errors.New("corrupt task file")
)

var (
	errEmptyDescription = errors.New("description must not be empty")
	errIDsExhausted     = errors.New("no task ids left to assign")
)

// ValidationError represents invalid caller input.
type ValidationError struct {
	Field string // input or JSON path the error refers to
	Err   error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidation as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports an id that is not in the collection.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

// Is reports ErrNotFound as a match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PersistenceError wraps an I/O failure on the task file.
type PersistenceError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s task file %s: %s", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is reports ErrPersistence as a match.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// CorruptDataError reports a task file that exists but cannot be used.
type CorruptDataError struct {
	Path     string
	Problems []error
}

func (e *CorruptDataError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "corrupt task file %s", e.Path)
	switch len(e.Problems) {
	case 0:
	case 1:
		fmt.Fprintf(&b, ": %s", e.Problems[0])
	default:
		fmt.Fprintf(&b, ": %d problems:", len(e.Problems))
		for _, p := range e.Problems {
			fmt.Fprintf(&b, "\n  - %s", p)
		}
	}
	return b.String()
}

// Is reports ErrCorruptData as a match.
func (e *CorruptDataError) Is(target error) bool {
	return target == ErrCorruptData
}
