package ui

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/tracker-go/internal/todo"
)

// TimeLayout is how timestamps are shown in tables.
const TimeLayout = "2006-01-02 15:04:05"

// MessageKind labels a one-line message box.
type MessageKind string

const (
	KindInfo  MessageKind = "info"
	KindError MessageKind = "error"
)

// Label returns the upper-case tag shown in the message box.
func (k MessageKind) Label() string {
	switch k {
	case KindError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Renderer writes task tables and messages to a writer.
type Renderer struct {
	w        io.Writer
	loc      *time.Location
	renderer *lipgloss.Renderer
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLocation sets the zone timestamps are shown in. Defaults to local time.
func WithLocation(loc *time.Location) RendererOption {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// NewRenderer returns a Renderer writing to w. Colors are enabled only when
// w is a terminal.
func NewRenderer(w io.Writer, opts ...RendererOption) *Renderer {
	r := &Renderer{
		w:        w,
		loc:      time.Local,
		renderer: lipgloss.NewRenderer(w),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tasks prints tasks as a table, or the empty-state message for filter.
func (r *Renderer) Tasks(tasks []todo.Task, filter todo.Filter) error {
	if len(tasks) == 0 {
		return r.Message(KindInfo, EmptyMessage(filter))
	}
	_, err := fmt.Fprintln(r.w, r.TaskTable(tasks, -1))
	return err
}

// Task prints a single task as a one-row table.
func (r *Renderer) Task(task todo.Task) error {
	_, err := fmt.Fprintln(r.w, r.TaskTable([]todo.Task{task}, -1))
	return err
}

// Message prints msg in a bordered box tagged with the kind label.
func (r *Renderer) Message(kind MessageKind, msg string) error {
	labelStyle := r.renderer.NewStyle().Bold(true).Padding(0, 1)
	if kind == KindError {
		labelStyle = labelStyle.Foreground(lipgloss.Color("9"))
	} else {
		labelStyle = labelStyle.Foreground(lipgloss.Color("12"))
	}
	cell := r.renderer.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.renderer.NewStyle().Faint(true)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return labelStyle
			}
			return cell
		}).
		Row(kind.Label(), msg)
	_, err := fmt.Fprintln(r.w, t.String())
	return err
}

// Infof prints a formatted info message.
func (r *Renderer) Infof(format string, args ...any) error {
	return r.Message(KindInfo, fmt.Sprintf(format, args...))
}

// Table prints a plain bordered table.
func (r *Renderer) Table(headers []string, rows [][]string) error {
	header := r.renderer.NewStyle().Bold(true).Padding(0, 1)
	cell := r.renderer.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.renderer.NewStyle().Faint(true)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(r.w, t.String())
	return err
}

// TaskTable renders tasks with id, description, status and both timestamps.
// The row at index selected is highlighted; pass -1 for none.
func (r *Renderer) TaskTable(tasks []todo.Task, selected int) string {
	header := r.renderer.NewStyle().Bold(true).Padding(0, 1)
	cell := r.renderer.NewStyle().Padding(0, 1)
	highlight := cell.Reverse(true)

	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, r.taskRow(task))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.renderer.NewStyle().Faint(true)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case row == selected:
				return highlight
			case col == 2 && row >= 0 && row < len(tasks):
				return cell.Foreground(statusColor(tasks[row].Status))
			default:
				return cell
			}
		}).
		Headers("ID", "DESCRIPTION", "STATUS", "CREATED AT", "UPDATED AT").
		Rows(rows...)
	return t.String()
}

func (r *Renderer) taskRow(t todo.Task) []string {
	return []string{
		strconv.Itoa(t.ID),
		t.Description,
		t.Status.Label(),
		FormatTime(t.CreatedAt, r.loc),
		FormatTime(t.UpdatedAt, r.loc),
	}
}

// FormatTime shows t in loc with second precision.
func FormatTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(TimeLayout)
}

// EmptyMessage is shown when a listing has no tasks.
func EmptyMessage(filter todo.Filter) string {
	if filter.All() {
		return "No tasks have been created yet"
	}
	return fmt.Sprintf("No %s tasks found", todo.Status(filter).Label())
}

func statusColor(s todo.Status) lipgloss.Color {
	switch s {
	case todo.StatusInProgress:
		return lipgloss.Color("11")
	case todo.StatusDone:
		return lipgloss.Color("10")
	default:
		return lipgloss.Color("7")
	}
}
