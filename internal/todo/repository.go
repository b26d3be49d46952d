package todo

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tracker-go/internal/logging"
)

// Storage loads and saves the whole task collection.
// *Store is the file-backed implementation.
type Storage interface {
	Load() (*File, error)
	Save(f *File) error
}

// Repository enforces the task rules on top of a Storage.
// Each call reloads the collection, so it always acts on the latest saved state.
type Repository struct {
	storage Storage
	now     func() time.Time
	logger  *log.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the time source used for created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets the logger that records mutations at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRepository returns a Repository backed by storage.
func NewRepository(storage Storage, opts ...Option) *Repository {
	r := &Repository{
		storage: storage,
		now:     time.Now,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add creates a todo task with the next id and saves it.
func (r *Repository) Add(description string) (Task, error) {
	desc, err := ValidateDescription(description)
	if err != nil {
		return Task{}, err
	}

	f, err := r.storage.Load()
	if err != nil {
		return Task{}, err
	}

	if f.NextID == math.MaxInt {
		return Task{}, &ValidationError{Field: "next_id", Err: errIDsExhausted}
	}
	task, err := NewTask(f.NextID, desc, r.clock())
	if err != nil {
		return Task{}, err
	}
	f.Tasks = append(f.Tasks, task)
	f.NextID = task.ID + 1

	if err := r.storage.Save(f); err != nil {
		return Task{}, err
	}
	r.logger.Debug("task added", "id", task.ID)
	return task, nil
}

// Update replaces a task's description.
func (r *Repository) Update(id int, description string) (Task, error) {
	desc, err := ValidateDescription(description)
	if err != nil {
		return Task{}, err
	}
	task, err := r.mutate(id, func(t *Task) {
		t.Description = desc
	})
	if err != nil {
		return Task{}, err
	}
	r.logger.Debug("task updated", "id", task.ID)
	return task, nil
}

// MarkStatus sets a task's status. Every status is reachable from every
// other, and re-marking with the current status still refreshes updated_at.
func (r *Repository) MarkStatus(id int, status Status) (Task, error) {
	if !status.Valid() {
		_, err := ParseStatus(string(status))
		return Task{}, err
	}
	task, err := r.mutate(id, func(t *Task) {
		t.Status = status
	})
	if err != nil {
		return Task{}, err
	}
	r.logger.Debug("task status changed", "id", task.ID, "status", task.Status)
	return task, nil
}

// Delete removes a task permanently. Its id is not reused.
func (r *Repository) Delete(id int) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	f, err := r.storage.Load()
	if err != nil {
		return err
	}
	if !f.RemoveTask(id) {
		return &NotFoundError{ID: id}
	}
	if err := r.storage.Save(f); err != nil {
		return err
	}
	r.logger.Debug("task deleted", "id", id)
	return nil
}

// List returns the tasks matching filter in stored order.
func (r *Repository) List(filter Filter) ([]Task, error) {
	f, err := r.storage.Load()
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, 0, len(f.Tasks))
	for _, t := range f.Tasks {
		if filter.Match(t) {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// Get returns a single task.
func (r *Repository) Get(id int) (Task, error) {
	if err := ValidateID(id); err != nil {
		return Task{}, err
	}
	f, err := r.storage.Load()
	if err != nil {
		return Task{}, err
	}
	t := f.GetTask(id)
	if t == nil {
		return Task{}, &NotFoundError{ID: id}
	}
	return *t, nil
}

// mutate loads the collection, applies fn to the task with id, refreshes
// updated_at, and saves.
func (r *Repository) mutate(id int, fn func(*Task)) (Task, error) {
	if err := ValidateID(id); err != nil {
		return Task{}, err
	}
	f, err := r.storage.Load()
	if err != nil {
		return Task{}, err
	}
	t := f.GetTask(id)
	if t == nil {
		return Task{}, &NotFoundError{ID: id}
	}

	fn(t)
	t.UpdatedAt = r.clockAfter(t.UpdatedAt)

	if err := r.storage.Save(f); err != nil {
		return Task{}, err
	}
	return *t, nil
}

func (r *Repository) clock() time.Time {
	return r.now().UTC()
}

// clockAfter returns the current time, nudged forward so it is strictly
// later than prev.
func (r *Repository) clockAfter(prev time.Time) time.Time {
	now := r.clock()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}
