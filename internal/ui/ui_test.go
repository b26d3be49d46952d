package ui

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tracker-go/internal/todo"
)

var testNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T, descriptions ...string) *todo.Repository {
	t.Helper()
	store, err := todo.NewStore(filepath.Join(t.TempDir(), "tasks.json"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	repo := todo.NewRepository(store, todo.WithClock(func() time.Time { return testNow }))
	for _, d := range descriptions {
		if _, err := repo.Add(d); err != nil {
			t.Fatalf("Add(%q) failed: %v", d, err)
		}
	}
	return repo
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEmptyMessage(t *testing.T) {
	tests := []struct {
		filter todo.Filter
		want   string
	}{
		{todo.FilterAll, "No tasks have been created yet"},
		{"", "No tasks have been created yet"},
		{todo.FilterFor(todo.StatusTodo), "No TODO tasks found"},
		{todo.FilterFor(todo.StatusInProgress), "No IN PROGRESS tasks found"},
		{todo.FilterFor(todo.StatusDone), "No DONE tasks found"},
	}
	for _, tt := range tests {
		if got := EmptyMessage(tt.filter); got != tt.want {
			t.Errorf("EmptyMessage(%q) = %q, want %q", tt.filter, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2026, 10, 16, 9, 5, 30, 999999999, time.UTC)
	if got := FormatTime(ts, time.UTC); got != "2026-10-16 09:05:30" {
		t.Errorf("FormatTime() = %q", got)
	}
	plus2 := time.FixedZone("plus2", 2*60*60)
	if got := FormatTime(ts, plus2); got != "2026-10-16 11:05:30" {
		t.Errorf("FormatTime(+2) = %q", got)
	}
	if got := FormatTime(time.Time{}, time.UTC); got != "" {
		t.Errorf("FormatTime(zero) = %q, want empty", got)
	}
}

func TestRendererTasks(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, WithLocation(time.UTC))

	tasks := []todo.Task{
		{ID: 1, Description: "Buy groceries", Status: todo.StatusDone, CreatedAt: testNow, UpdatedAt: testNow.Add(time.Hour)},
		{ID: 7, Description: "Write report", Status: todo.StatusInProgress, CreatedAt: testNow, UpdatedAt: testNow},
	}
	if err := r.Tasks(tasks, todo.FilterAll); err != nil {
		t.Fatalf("Tasks failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"ID", "DESCRIPTION", "STATUS", "CREATED AT", "UPDATED AT",
		"Buy groceries", "Write report", "DONE", "IN PROGRESS",
		"2026-10-16 09:00:00", "2026-10-16 10:00:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Buy groceries") > strings.Index(out, "Write report") {
		t.Error("rows must keep the given order")
	}
}

func TestRendererEmptyList(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	if err := r.Tasks(nil, todo.FilterFor(todo.StatusDone)); err != nil {
		t.Fatalf("Tasks failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "No DONE tasks found") {
		t.Errorf("unexpected empty output:\n%s", out)
	}
}

func TestRendererMessage(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	if err := r.Message(KindError, "task 4 not found"); err != nil {
		t.Fatalf("Message failed: %v", err)
	}
	if err := r.Infof("Task %d added", 3); err != nil {
		t.Fatalf("Infof failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ERROR", "task 4 not found", "INFO", "Task 3 added"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTUIModelShowsTasks(t *testing.T) {
	repo := newTestRepo(t, "first", "second")
	m := newTUIModel(repo, "/tmp/tasks.json", NewRenderer(&bytes.Buffer{}, WithLocation(time.UTC)), time.Second, "")
	m.Init()

	view := m.View()
	for _, want := range []string{"Task Tracker", "first", "second", "Task file: /tmp/tasks.json", "Refreshing every 1s"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTUIModelFilterKeys(t *testing.T) {
	repo := newTestRepo(t, "first", "second", "third")
	if _, err := repo.MarkStatus(2, todo.StatusDone); err != nil {
		t.Fatalf("MarkStatus failed: %v", err)
	}
	m := newTUIModel(repo, "tasks.json", NewRenderer(&bytes.Buffer{}), time.Second, todo.FilterAll)
	m.Init()

	m.Update(keyMsg("3"))
	if len(m.tasks) != 1 || m.tasks[0].ID != 2 {
		t.Fatalf("done filter: got %+v", m.tasks)
	}
	if !strings.Contains(m.View(), "Filter: DONE") {
		t.Error("view should show the active filter")
	}

	m.Update(keyMsg("2"))
	if len(m.tasks) != 0 {
		t.Fatalf("in-progress filter: got %+v", m.tasks)
	}
	if !strings.Contains(m.View(), "No IN PROGRESS tasks found") {
		t.Error("view should show the empty message")
	}

	m.Update(keyMsg("1"))
	if len(m.tasks) != 2 {
		t.Fatalf("todo filter: got %d tasks", len(m.tasks))
	}

	m.Update(keyMsg("0"))
	if len(m.tasks) != 3 {
		t.Fatalf("cleared filter: got %d tasks", len(m.tasks))
	}
}

func TestTUIModelMarkSelected(t *testing.T) {
	repo := newTestRepo(t, "first", "second")
	m := newTUIModel(repo, "tasks.json", NewRenderer(&bytes.Buffer{}), time.Second, todo.FilterAll)
	m.Init()

	m.Update(keyMsg("down"))
	m.Update(keyMsg("down"))
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1 (clamped)", m.cursor)
	}
	m.Update(keyMsg("p"))

	task, err := repo.Get(2)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if task.Status != todo.StatusInProgress {
		t.Errorf("status = %s, want in-progress", task.Status)
	}
	if !strings.Contains(m.View(), "Task 2 marked as IN PROGRESS") {
		t.Errorf("view should confirm the change:\n%s", m.View())
	}

	m.Update(keyMsg("up"))
	m.Update(keyMsg("d"))
	task, err = repo.Get(1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if task.Status != todo.StatusDone {
		t.Errorf("status = %s, want done", task.Status)
	}
}

type failingTracker struct{ err error }

func (f failingTracker) List(todo.Filter) ([]todo.Task, error) { return nil, f.err }

func (f failingTracker) MarkStatus(int, todo.Status) (todo.Task, error) {
	return todo.Task{}, f.err
}

func TestTUIModelLoadError(t *testing.T) {
	corrupt := &todo.CorruptDataError{Path: "tasks.json", Problems: []error{errors.New("invalid JSON")}}
	m := newTUIModel(failingTracker{err: corrupt}, "tasks.json", NewRenderer(&bytes.Buffer{}), time.Second, todo.FilterAll)
	m.Init()

	view := m.View()
	if !strings.Contains(view, "Error loading task file") || !strings.Contains(view, "invalid JSON") {
		t.Errorf("view should show the load error:\n%s", view)
	}

	// Marking does nothing while the file cannot be loaded.
	m.Update(keyMsg("d"))
	if m.notice != "" {
		t.Errorf("notice = %q, want empty", m.notice)
	}
}

func TestTUIModelHelpAndQuit(t *testing.T) {
	m := newTUIModel(newTestRepo(t), "tasks.json", NewRenderer(&bytes.Buffer{}), time.Second, todo.FilterAll)
	m.Init()

	m.Update(keyMsg("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen should be shown")
	}
	m.Update(keyMsg("h"))
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen should be hidden again")
	}

	for _, key := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Fatalf("%s: expected a command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected quit", key)
		}
	}
}

func TestTUIModelTickReloads(t *testing.T) {
	repo := newTestRepo(t, "first")
	m := newTUIModel(repo, "tasks.json", NewRenderer(&bytes.Buffer{}), time.Second, todo.FilterAll)
	m.Init()

	if _, err := repo.Add("added elsewhere"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if len(m.tasks) != 2 {
		t.Errorf("tasks after tick = %d, want 2", len(m.tasks))
	}
}

func TestRunTUIRequiresTTY(t *testing.T) {
	err := RunTUI(context.Background(), newTestRepo(t), "tasks.json", WithIO(strings.NewReader(""), &bytes.Buffer{}))
	if !errors.Is(err, ErrNotTTY) {
		t.Errorf("RunTUI error = %v, want ErrNotTTY", err)
	}
}

func TestWithRefresh(t *testing.T) {
	c := &tuiConfig{refresh: 2 * time.Second}

	WithRefresh(500 * time.Millisecond)(c)
	if c.refresh != 500*time.Millisecond {
		t.Errorf("refresh = %s, want 500ms", c.refresh)
	}

	WithRefresh(0)(c)
	WithRefresh(-time.Second)(c)
	if c.refresh != 500*time.Millisecond {
		t.Errorf("non-positive durations must be ignored, got %s", c.refresh)
	}
}
