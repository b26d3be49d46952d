package todo

import (
	"fmt"
	"strings"
	"time"
)

// ValidateDescription trims raw and rejects blank input.
func ValidateDescription(raw string) (string, error) {
	desc := strings.TrimSpace(raw)
	if desc == "" {
		return "", &ValidationError{Field: "description", Err: errEmptyDescription}
	}
	return desc, nil
}

// ValidateID rejects ids that can never exist.
func ValidateID(id int) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Err: fmt.Errorf("must be a positive integer, got %d", id)}
	}
	return nil
}

// NewTask builds a todo task created at now.
func NewTask(id int, description string, now time.Time) (Task, error) {
	if err := ValidateID(id); err != nil {
		return Task{}, err
	}
	desc, err := ValidateDescription(description)
	if err != nil {
		return Task{}, err
	}
	return Task{
		ID:          id,
		Description: desc,
		Status:      StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
