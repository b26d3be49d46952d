package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/nibzard/tracker-go/internal/todo"
	"github.com/nibzard/tracker-go/internal/ui"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitValidation  = 2
	ExitNotFound    = 3
	ExitCorrupt     = 4
	ExitPersistence = 5
	ExitInterrupted = 130
)

// ExitCode maps an error returned by Run to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, todo.ErrCorruptData):
		return ExitCorrupt
	case errors.Is(err, todo.ErrPersistence):
		return ExitPersistence
	case errors.Is(err, todo.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, todo.ErrValidation):
		return ExitValidation
	default:
		return ExitError
	}
}

// PrintError writes err to w in the same boxed style as other messages.
func PrintError(w io.Writer, err error) {
	_ = ui.NewRenderer(w).Message(ui.KindError, err.Error())
}
