package todo

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Status represents a task status.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label returns the display form of the status, e.g. "IN PROGRESS".
func (s Status) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(s), "-", " "))
}

// ParseStatus converts user input into a Status.
// Matching ignores case and accepts "_" or " " in place of "-".
func ParseStatus(raw string) (Status, error) {
	s := Status(normalizeToken(raw))
	if !s.Valid() {
		return "", &ValidationError{
			Field: "status",
			Err:   fmt.Errorf("invalid status %q, must be one of: todo, in-progress, done", raw),
		}
	}
	return s, nil
}

// Filter narrows List results by status.
type Filter string

// FilterAll matches every task.
const FilterAll Filter = "all"

// ParseFilter converts user input into a Filter. Empty input means FilterAll.
func ParseFilter(raw string) (Filter, error) {
	token := normalizeToken(raw)
	if token == "" || token == string(FilterAll) {
		return FilterAll, nil
	}
	if !Status(token).Valid() {
		return "", &ValidationError{
			Field: "filter",
			Err:   fmt.Errorf("invalid filter %q, must be one of: all, todo, in-progress, done", raw),
		}
	}
	return Filter(token), nil
}

// FilterFor returns the filter that matches tasks with the given status.
func FilterFor(s Status) Filter {
	return Filter(s)
}

// All reports whether f matches every task.
func (f Filter) All() bool {
	return f == "" || f == FilterAll
}

// Match reports whether task passes the filter.
func (f Filter) Match(task Task) bool {
	if f.All() {
		return true
	}
	return task.Status == Status(f)
}

func normalizeToken(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.Join(strings.Fields(s), "-")
}

// Task represents a single task in the collection.
type Task struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SchemaVersion is the task file format version written by this package.
const SchemaVersion = 1

// File represents the task file structure.
type File struct {
	SchemaVersion int    `json:"schema_version"`
	NextID        int    `json:"next_id"`
	Tasks         []Task `json:"tasks"`
}

// NewFile returns an empty collection, as seen on first run.
func NewFile() *File {
	return &File{
		SchemaVersion: SchemaVersion,
		NextID:        1,
		Tasks:         []Task{},
	}
}

// GetTask returns a task by ID, or nil if not found.
// The pointer refers into f.Tasks.
func (f *File) GetTask(id int) *Task {
	if i := f.indexOf(id); i >= 0 {
		return &f.Tasks[i]
	}
	return nil
}

// RemoveTask deletes the task with id, keeping the order of the rest.
// It reports whether a task was removed.
func (f *File) RemoveTask(id int) bool {
	i := f.indexOf(id)
	if i < 0 {
		return false
	}
	f.Tasks = append(f.Tasks[:i], f.Tasks[i+1:]...)
	return true
}

// CountByStatus returns the number of tasks in each status.
func (f *File) CountByStatus() map[Status]int {
	counts := make(map[Status]int, len(Statuses()))
	for _, s := range Statuses() {
		counts[s] = 0
	}
	for _, t := range f.Tasks {
		counts[t.Status]++
	}
	return counts
}

func (f *File) indexOf(id int) int {
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *File) maxID() int {
	highest := 0
	for _, t := range f.Tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest
}

// reconcileNextID raises NextID so it exceeds every id in the collection.
// It saturates at math.MaxInt, where Add refuses to assign further ids.
func (f *File) reconcileNextID() {
	highest := f.maxID()
	if highest == math.MaxInt {
		f.NextID = math.MaxInt
		return
	}
	if next := highest + 1; f.NextID < next {
		f.NextID = next
	}
}

// Validate checks the collection invariants: positive, pairwise-distinct ids,
// known statuses, non-blank descriptions, and updated_at not before
// created_at. It returns every problem found.
func (f *File) Validate() []error {
	var problems []error
	seen := make(map[int]int, len(f.Tasks))
	for i, task := range f.Tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		if task.ID <= 0 {
			problems = append(problems, &ValidationError{
				Field: path + ".id",
				Err:   fmt.Errorf("must be positive, got %d", task.ID),
			})
		} else if first, dup := seen[task.ID]; dup {
			problems = append(problems, &ValidationError{
				Field: path + ".id",
				Err:   fmt.Errorf("duplicate id %d (first used by tasks[%d])", task.ID, first),
			})
		} else {
			seen[task.ID] = i
		}
		if strings.TrimSpace(task.Description) == "" {
			problems = append(problems, &ValidationError{
				Field: path + ".description",
				Err:   errEmptyDescription,
			})
		}
		if !task.Status.Valid() {
			problems = append(problems, &ValidationError{
				Field: path + ".status",
				Err:   fmt.Errorf("invalid status %q", task.Status),
			})
		}
		if task.UpdatedAt.Before(task.CreatedAt) {
			problems = append(problems, &ValidationError{
				Field: path + ".updated_at",
				Err:   fmt.Errorf("%s is before created_at %s", task.UpdatedAt.Format(time.RFC3339Nano), task.CreatedAt.Format(time.RFC3339Nano)),
			})
		}
	}
	return problems
}
