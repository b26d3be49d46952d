package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/tracker-go/internal/todo"
)

// addCommand creates a task from the remaining arguments.
func (a *app) addCommand(args []string) error {
	if len(args) == 0 {
		return usagef("usage: tracker add <description>")
	}
	task, err := a.repo.Add(joinArgs(args))
	if err != nil {
		return err
	}
	return a.out.Infof("Task added successfully (ID: %d)", task.ID)
}

// updateCommand replaces a task's description.
func (a *app) updateCommand(args []string) error {
	if len(args) < 2 {
		return usagef("usage: tracker update <id> <description>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	task, err := a.repo.Update(id, joinArgs(args[1:]))
	if err != nil {
		return err
	}
	return a.out.Infof("Task %d updated", task.ID)
}

// deleteCommand removes a task.
func (a *app) deleteCommand(args []string) error {
	if len(args) != 1 {
		return usagef("usage: tracker delete <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.repo.Delete(id); err != nil {
		return err
	}
	return a.out.Infof("Task %d deleted", id)
}

// markCommand sets a task's status.
func (a *app) markCommand(name string, status todo.Status, args []string) error {
	if len(args) != 1 {
		return usagef("usage: tracker %s <id>", name)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	task, err := a.repo.MarkStatus(id, status)
	if err != nil {
		return err
	}
	return a.out.Infof("Task %d marked as %s", task.ID, task.Status.Label())
}

// listCommand prints tasks, optionally restricted to one status.
// "in progress" may be passed as two words.
func (a *app) listCommand(args []string) error {
	filter, err := todo.ParseFilter(strings.Join(args, " "))
	if err != nil {
		return err
	}
	tasks, err := a.repo.List(filter)
	if err != nil {
		return err
	}
	return a.out.Tasks(tasks, filter)
}

// showCommand prints a single task.
func (a *app) showCommand(args []string) error {
	if len(args) != 1 {
		return usagef("usage: tracker show <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	task, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	return a.out.Task(task)
}

// parseID converts a command-line id. Range checks happen in the repository.
func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &todo.ValidationError{Field: "id", Err: fmt.Errorf("%q is not a task id", raw)}
	}
	return id, nil
}
